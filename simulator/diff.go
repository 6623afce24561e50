package simulator

// Snapshot est l'agrégat de référence figé contre lequel toute simulation
// est comparée. Il est dérivé une fois du run par défaut (aucune
// surcharge), ce qui garantit par construction qu'un scénario vide
// reproduit exactement la référence. Immuable, durée de vie du processus.
type Snapshot struct {
	TotalKg    float64
	TotalUnits int
	Stages     []string
	ByStage    map[string]float64
}

// NewSnapshot construit la référence à partir des constantes de base.
func NewSnapshot(b Baseline) Snapshot {
	p, _ := Resolve(nil, b) // un OverrideSet vide ne peut pas échouer
	res := Recalculate(p, b)

	stages := make([]string, 0, len(res.Totals.ByStage))
	byStage := make(map[string]float64, len(res.Totals.ByStage))
	for _, s := range orderedShares(res.Totals.ByStage) {
		stages = append(stages, s.Stage)
		byStage[s.Stage] = s.KgCO2e
	}

	return Snapshot{
		TotalKg:    res.Totals.TotalKgCO2e,
		TotalUnits: b.TotalUnits,
		Stages:     stages,
		ByStage:    byStage,
	}
}

// orderedShares remet le classement par magnitude dans l'ordre de la
// chaîne logistique, pour un diff par étape stable et lisible.
func orderedShares(shares []StageShare) []StageShare {
	order := []string{
		StageRawMaterials,
		StageInlandTrucking,
		StageManufacturing,
		StagePackaging,
		StageOceanFreight,
		StagePortDrayage,
		StageWarehousing,
		StageDistribution,
		StageLastMile,
	}
	byName := make(map[string]StageShare, len(shares))
	for _, s := range shares {
		byName[s.Stage] = s
	}
	out := make([]StageShare, 0, len(order))
	for _, name := range order {
		if s, ok := byName[name]; ok {
			out = append(out, s)
		}
	}
	return out
}

type DiffTotal struct {
	OriginalKg  float64 `json:"original_kg"`
	SimulatedKg float64 `json:"simulated_kg"`
	DeltaKg     float64 `json:"delta_kg"`
	DeltaPct    float64 `json:"delta_pct"`
}

type DiffPerUnit struct {
	OriginalKg  float64 `json:"original_kg"`
	SimulatedKg float64 `json:"simulated_kg"`
	DeltaKg     float64 `json:"delta_kg"`
}

type StageDiff struct {
	Stage       string  `json:"stage"`
	OriginalKg  float64 `json:"original_kg"`
	SimulatedKg float64 `json:"simulated_kg"`
	DeltaKg     float64 `json:"delta_kg"`
	DeltaPct    float64 `json:"delta_pct"`
}

// Diff est la comparaison avant/après, calculée à la demande, jamais
// persistée.
type Diff struct {
	Total   DiffTotal   `json:"total"`
	PerUnit DiffPerUnit `json:"per_unit"`
	ByStage []StageDiff `json:"by_stage"`
}

// CompareToBaseline produit les écarts absolus et relatifs, au total et
// par étape. Une étape présente dans la référence mais absente de la
// simulation est tolérée : écart nul plutôt qu'échec.
func CompareToBaseline(snap Snapshot, sim Results) Diff {
	simByStage := make(map[string]float64, len(sim.Totals.ByStage))
	for _, s := range sim.Totals.ByStage {
		simByStage[s.Stage] = s.KgCO2e
	}
	simTotal := sim.Totals.TotalKgCO2e

	d := Diff{
		Total: DiffTotal{
			OriginalKg:  snap.TotalKg,
			SimulatedKg: round1(simTotal),
			DeltaKg:     round1(simTotal - snap.TotalKg),
			DeltaPct:    round2((simTotal - snap.TotalKg) / snap.TotalKg * 100),
		},
		PerUnit: DiffPerUnit{
			OriginalKg:  round4(snap.TotalKg / float64(snap.TotalUnits)),
			SimulatedKg: round4(simTotal / float64(snap.TotalUnits)),
			DeltaKg:     round4((simTotal - snap.TotalKg) / float64(snap.TotalUnits)),
		},
	}

	for _, stage := range snap.Stages {
		orig := snap.ByStage[stage]
		simVal, ok := simByStage[stage]
		if !ok {
			simVal = orig
		}
		delta := simVal - orig
		deltaPct := 0.0
		if orig > 0 {
			deltaPct = round2(delta / orig * 100)
		}
		d.ByStage = append(d.ByStage, StageDiff{
			Stage:       stage,
			OriginalKg:  orig,
			SimulatedKg: round1(simVal),
			DeltaKg:     round1(delta),
			DeltaPct:    deltaPct,
		})
	}

	return d
}
