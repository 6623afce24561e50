package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"carbon-whatif/dataset"
	"carbon-whatif/integrations/minimax"
	"carbon-whatif/simulator"
)

// Orchestrator pilote la conversation en deux tours avec Minimax :
// tour 1, extraction d'intention (le modèle choisit les surcharges via
// l'outil recalculate_emissions) ; tour 2, synthèse narrative à partir des
// résultats calculés. Tout le calcul numérique entre les deux est pur et
// local (package simulator).
type Orchestrator struct {
	client   chatAPI
	baseline simulator.Baseline
	snapshot simulator.Snapshot
}

// chatAPI isole les deux points d'entrée de l'API externe, pour pouvoir
// substituer le client dans les tests.
type chatAPI interface {
	Chat(ctx context.Context, messages []minimax.Message, temperature float64) (string, error)
	ChatWithTools(ctx context.Context, messages []minimax.Message, tools []minimax.Tool) (string, []minimax.Invocation, error)
}

var orchestrator *Orchestrator

func Init() {
	client, err := minimax.NewClientFromEnv()
	if err != nil {
		log.Printf("⚠️ Minimax désactivé: %v", err)
		orchestrator = nil
		return
	}
	orchestrator = newOrchestrator(client)
}

func Get() *Orchestrator {
	return orchestrator
}

func (o *Orchestrator) IsReady() bool {
	return o != nil && o.client != nil
}

func newOrchestrator(client chatAPI) *Orchestrator {
	baseline := simulator.DefaultBaseline()
	return &Orchestrator{
		client:   client,
		baseline: baseline,
		snapshot: simulator.NewSnapshot(baseline),
	}
}

// TotalsSummary est le résumé avant/après exposé au frontend.
type TotalsSummary struct {
	TotalKgCO2e float64 `json:"total_kg_co2e"`
	PerUnitKg   float64 `json:"per_unit_kg"`
}

// SimulationResponse est le corps de réponse de POST /simulate. En cas
// d'issue sans appel d'outil, seuls Scenario, Narrative et Err sont
// renseignés — échec doux, à reformuler, pas une erreur serveur.
type SimulationResponse struct {
	Scenario     string                `json:"scenario"`
	Overrides    simulator.OverrideSet `json:"overrides,omitempty"`
	Original     *TotalsSummary        `json:"original,omitempty"`
	Simulated    *TotalsSummary        `json:"simulated,omitempty"`
	Diff         *simulator.Diff       `json:"diff,omitempty"`
	StageDetails *simulator.Results    `json:"stage_details,omitempty"`
	Narrative    string                `json:"narrative"`
	Err          string                `json:"error,omitempty"`
}

// toolResultPayload est le message tool synthétique renvoyé au modèle au
// tour 2.
type toolResultPayload struct {
	ScenarioName     string                `json:"scenario_name"`
	OverridesApplied simulator.OverrideSet `json:"overrides_applied"`
	SimulatedTotals  simulator.Totals      `json:"simulated_totals"`
	Diff             simulator.Diff        `json:"diff"`
}

// RunScenario exécute la machine à deux tours. Sémantique d'échec :
// erreur API au tour 1 fatale (rien à calculer sans surcharges choisies),
// erreur au tour 2 récupérée localement (les chiffres priment sur la
// prose). Une ValidationError du résolveur remonte telle quelle.
func (o *Orchestrator) RunScenario(ctx context.Context, scenario string) (SimulationResponse, error) {
	messages := buildIntentMessages(scenario)

	content, invocations, err := o.client.ChatWithTools(ctx, messages, []minimax.Tool{recalcTool()})
	if err != nil {
		return SimulationResponse{}, fmt.Errorf("extraction d'intention échouée : %w", err)
	}

	if len(invocations) == 0 {
		return SimulationResponse{
			Scenario:  scenario,
			Narrative: content,
			Err:       "Le modèle n'a pas appelé l'outil de recalcul. Reformulez votre scénario.",
		}, nil
	}

	inv := invocations[0]
	overrides, scenarioName, err := extractArguments(inv, scenario)
	if err != nil {
		return SimulationResponse{}, err
	}

	params, err := simulator.Resolve(overrides, o.baseline)
	if err != nil {
		return SimulationResponse{}, err
	}
	results := simulator.Recalculate(params, o.baseline)
	diff := simulator.CompareToBaseline(o.snapshot, results)

	narrative := o.narrate(ctx, messages, content, inv, scenarioName, overrides, results, diff)

	return SimulationResponse{
		Scenario:  scenarioName,
		Overrides: overrides,
		Original: &TotalsSummary{
			TotalKgCO2e: diff.Total.OriginalKg,
			PerUnitKg:   diff.PerUnit.OriginalKg,
		},
		Simulated: &TotalsSummary{
			TotalKgCO2e: diff.Total.SimulatedKg,
			PerUnitKg:   diff.PerUnit.SimulatedKg,
		},
		Diff:         &diff,
		StageDetails: &results,
		Narrative:    narrative,
	}, nil
}

// narrate joue le tour 2. En cas d'échec réseau, on dégrade vers une
// phrase synthétisée depuis le diff plutôt que de perdre les résultats.
func (o *Orchestrator) narrate(ctx context.Context, messages []minimax.Message, content string, inv minimax.Invocation, scenarioName string, overrides simulator.OverrideSet, results simulator.Results, diff simulator.Diff) string {
	payload, err := json.MarshalIndent(toolResultPayload{
		ScenarioName:     scenarioName,
		OverridesApplied: overrides,
		SimulatedTotals:  results.Totals,
		Diff:             diff,
	}, "", "  ")
	if err != nil {
		payload = []byte("{}")
	}

	messages = appendToolExchange(messages, content, inv, string(payload))

	narrative, err := o.client.Chat(ctx, messages, 0.3)
	if err != nil {
		log.Printf("⚠️ synthèse narrative échouée, repli local: %v", err)
		return fmt.Sprintf("Scénario '%s' appliqué. Variation totale des émissions : %.2f%%.", scenarioName, diff.Total.DeltaPct)
	}
	return narrative
}

// AnswerQuestion répond à une question libre sur les données, par
// complétion simple avec le tableau de bord complet en contexte.
func (o *Orchestrator) AnswerQuestion(ctx context.Context, question string) (string, error) {
	return o.client.Chat(ctx, buildQAMessages(dataset.ContextJSON(), question), 0.3)
}

func extractArguments(inv minimax.Invocation, fallbackName string) (simulator.OverrideSet, string, error) {
	overrides := simulator.OverrideSet{}
	if raw, ok := inv.Arguments["overrides"]; ok && raw != nil {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, "", &simulator.ValidationError{Key: "overrides", Value: raw}
		}
		overrides = simulator.OverrideSet(m)
	}

	scenarioName := fallbackName
	if raw, ok := inv.Arguments["scenario_name"]; ok {
		if s, ok := raw.(string); ok && s != "" {
			scenarioName = s
		}
	}

	return overrides, scenarioName, nil
}
