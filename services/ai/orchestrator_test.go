package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbon-whatif/integrations/minimax"
	"carbon-whatif/simulator"
)

// stubChat rejoue des réponses fixées et capture les conversations
// envoyées, pour vérifier l'assemblage des deux tours sans réseau.
type stubChat struct {
	toolsContent     string
	toolsInvocations []minimax.Invocation
	toolsErr         error

	chatContent string
	chatErr     error

	toolsMessages []minimax.Message
	chatMessages  []minimax.Message
	chatCalls     int
}

func (s *stubChat) Chat(_ context.Context, messages []minimax.Message, _ float64) (string, error) {
	s.chatCalls++
	s.chatMessages = messages
	return s.chatContent, s.chatErr
}

func (s *stubChat) ChatWithTools(_ context.Context, messages []minimax.Message, _ []minimax.Tool) (string, []minimax.Invocation, error) {
	s.toolsMessages = messages
	return s.toolsContent, s.toolsInvocations, s.toolsErr
}

func evInvocation() minimax.Invocation {
	return minimax.Invocation{
		ID:   "call_abc123",
		Name: "recalculate_emissions",
		Arguments: map[string]any{
			"overrides":     map[string]any{"port_drayage.ev_pct": float64(100)},
			"scenario_name": "100% EV Drayage",
		},
	}
}

func TestRunScenario_HappyPath(t *testing.T) {
	stub := &stubChat{
		toolsContent:     "Modeling full EV drayage.",
		toolsInvocations: []minimax.Invocation{evInvocation()},
		chatContent:      "Switching to full EV drayage cuts drayage emissions by 85%.",
	}
	o := newOrchestrator(stub)

	res, err := o.RunScenario(context.Background(), "switch all drayage trips to electric trucks")
	require.NoError(t, err)

	assert.Equal(t, "100% EV Drayage", res.Scenario)
	assert.Empty(t, res.Err)
	assert.Equal(t, stub.chatContent, res.Narrative)

	require.NotNil(t, res.StageDetails)
	assert.Equal(t, 7, res.StageDetails.PortDrayage.EVTrips)
	assert.Equal(t, 0, res.StageDetails.PortDrayage.DieselTrips)

	require.NotNil(t, res.Diff)
	assert.Less(t, res.Diff.Total.DeltaKg, 0.0)
	require.NotNil(t, res.Original)
	require.NotNil(t, res.Simulated)
	assert.Less(t, res.Simulated.TotalKgCO2e, res.Original.TotalKgCO2e)
}

func TestRunScenario_Round2ConversationShape(t *testing.T) {
	stub := &stubChat{
		toolsContent:     "ok",
		toolsInvocations: []minimax.Invocation{evInvocation()},
		chatContent:      "narrative",
	}
	o := newOrchestrator(stub)

	_, err := o.RunScenario(context.Background(), "ev drayage")
	require.NoError(t, err)

	// system, user, assistant (écho de l'appel), tool (résultat calculé)
	require.Len(t, stub.chatMessages, 4)
	assert.Equal(t, "system", stub.chatMessages[0].Role)
	assert.Equal(t, "user", stub.chatMessages[1].Role)

	echo := stub.chatMessages[2]
	assert.Equal(t, "assistant", echo.Role)
	require.Len(t, echo.ToolCalls, 1)
	assert.Equal(t, "call_abc123", echo.ToolCalls[0].ID)
	assert.Equal(t, "recalculate_emissions", echo.ToolCalls[0].Function.Name)
	assert.Contains(t, echo.ToolCalls[0].Function.Arguments, "port_drayage.ev_pct")

	toolMsg := stub.chatMessages[3]
	assert.Equal(t, "tool", toolMsg.Role)
	assert.Equal(t, "call_abc123", toolMsg.ToolCallID)
	assert.Contains(t, toolMsg.Content, "scenario_name")
	assert.Contains(t, toolMsg.Content, "simulated_totals")
	assert.Contains(t, toolMsg.Content, "overrides_applied")
}

func TestRunScenario_MissingCallIDGetsSynthesizedOne(t *testing.T) {
	inv := evInvocation()
	inv.ID = ""
	stub := &stubChat{
		toolsInvocations: []minimax.Invocation{inv},
		chatContent:      "narrative",
	}
	o := newOrchestrator(stub)

	_, err := o.RunScenario(context.Background(), "ev drayage")
	require.NoError(t, err)

	echo := stub.chatMessages[2]
	require.Len(t, echo.ToolCalls, 1)
	assert.True(t, strings.HasPrefix(echo.ToolCalls[0].ID, "call_"))
	assert.Equal(t, echo.ToolCalls[0].ID, stub.chatMessages[3].ToolCallID)
}

func TestRunScenario_NoInvocationIsSoftFailure(t *testing.T) {
	stub := &stubChat{
		toolsContent: "I don't have a parameter for that, sorry.",
	}
	o := newOrchestrator(stub)

	res, err := o.RunScenario(context.Background(), "make the bottles invisible")
	require.NoError(t, err, "l'issue sans appel n'est pas une erreur")

	assert.Equal(t, "make the bottles invisible", res.Scenario)
	assert.Equal(t, stub.toolsContent, res.Narrative)
	assert.NotEmpty(t, res.Err)
	assert.Nil(t, res.Diff)
	assert.Nil(t, res.StageDetails)
	assert.Zero(t, stub.chatCalls, "aucun recalcul ni tour 2 ne doit avoir lieu")
}

func TestRunScenario_Round1FailureIsFatal(t *testing.T) {
	stub := &stubChat{toolsErr: errors.New("timeout")}
	o := newOrchestrator(stub)

	_, err := o.RunScenario(context.Background(), "ev drayage")
	require.Error(t, err)
	assert.Zero(t, stub.chatCalls)
}

func TestRunScenario_Round2FailureDegradesNarrative(t *testing.T) {
	stub := &stubChat{
		toolsInvocations: []minimax.Invocation{evInvocation()},
		chatErr:          errors.New("connexion coupée"),
	}
	o := newOrchestrator(stub)

	res, err := o.RunScenario(context.Background(), "ev drayage")
	require.NoError(t, err, "l'échec du tour 2 ne doit pas perdre les résultats")

	require.NotNil(t, res.Diff)
	assert.Equal(t, 7, res.StageDetails.PortDrayage.EVTrips)
	assert.Contains(t, res.Narrative, "100% EV Drayage")
	assert.Contains(t, res.Narrative, "%")
}

func TestRunScenario_InvalidOverrideTypeSurfacesValidationError(t *testing.T) {
	stub := &stubChat{
		toolsInvocations: []minimax.Invocation{{
			Name: "recalculate_emissions",
			Arguments: map[string]any{
				"overrides":     map[string]any{"manufacturing.renewable_pct": "cinquante"},
				"scenario_name": "Usine solaire",
			},
		}},
	}
	o := newOrchestrator(stub)

	_, err := o.RunScenario(context.Background(), "usine solaire")
	var vErr *simulator.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "manufacturing.renewable_pct", vErr.Key)
	assert.Zero(t, stub.chatCalls)
}

func TestRunScenario_NonObjectOverridesRejected(t *testing.T) {
	stub := &stubChat{
		toolsInvocations: []minimax.Invocation{{
			Name:      "recalculate_emissions",
			Arguments: map[string]any{"overrides": "tout en vert"},
		}},
	}
	o := newOrchestrator(stub)

	_, err := o.RunScenario(context.Background(), "tout en vert")
	var vErr *simulator.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "overrides", vErr.Key)
}

func TestRunScenario_ScenarioNameFallsBackToUserText(t *testing.T) {
	stub := &stubChat{
		toolsInvocations: []minimax.Invocation{{
			Name:      "recalculate_emissions",
			Arguments: map[string]any{"overrides": map[string]any{}},
		}},
		chatContent: "narrative",
	}
	o := newOrchestrator(stub)

	res, err := o.RunScenario(context.Background(), "scénario sans nom")
	require.NoError(t, err)
	assert.Equal(t, "scénario sans nom", res.Scenario)
}
