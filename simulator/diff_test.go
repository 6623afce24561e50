package simulator

import "testing"

func TestCompareToBaseline_IdenticalRunHasZeroDeltas(t *testing.T) {
	b := DefaultBaseline()
	snap := NewSnapshot(b)
	res := Recalculate(mustResolve(t, nil, b), b)

	d := CompareToBaseline(snap, res)

	withinTolerance(t, "delta total", d.Total.DeltaKg, 0, 0.15)
	withinTolerance(t, "delta_pct total", d.Total.DeltaPct, 0, 0.01)
	withinTolerance(t, "delta per_unit", d.PerUnit.DeltaKg, 0, 0.0002)
	if len(d.ByStage) != 9 {
		t.Fatalf("attendu 9 étapes, reçu %d", len(d.ByStage))
	}
	for _, s := range d.ByStage {
		withinTolerance(t, s.Stage+" delta", s.DeltaKg, 0, 0.15)
		withinTolerance(t, s.Stage+" delta_pct", s.DeltaPct, 0, 0.01)
	}
}

func TestCompareToBaseline_EVScenario(t *testing.T) {
	b := DefaultBaseline()
	snap := NewSnapshot(b)
	res := Recalculate(mustResolve(t, OverrideSet{"port_drayage.ev_pct": 100.0}, b), b)

	d := CompareToBaseline(snap, res)

	if d.Total.DeltaKg >= 0 {
		t.Fatalf("le passage au 100%% EV doit réduire le total, delta = %v", d.Total.DeltaKg)
	}
	for _, s := range d.ByStage {
		if s.Stage == StagePortDrayage {
			// 7 × 23.0 = 161.0 contre 1110.8 de référence.
			nearlyEqual(t, "drayage delta", s.DeltaKg, round1(161.0-1110.8))
			if s.DeltaPct >= 0 {
				t.Fatalf("delta_pct drayage = %v, attendu négatif", s.DeltaPct)
			}
		} else {
			withinTolerance(t, s.Stage+" delta", s.DeltaKg, 0, 0.15)
		}
	}
}

func TestCompareToBaseline_MissingStageToleratedAsZeroDelta(t *testing.T) {
	b := DefaultBaseline()
	snap := NewSnapshot(b)
	res := Recalculate(mustResolve(t, nil, b), b)

	// Décomposition amputée d'une étape : ne doit jamais échouer,
	// l'étape absente compte pour un écart nul.
	pruned := res.Totals.ByStage[:0:0]
	for _, s := range res.Totals.ByStage {
		if s.Stage != StageOceanFreight {
			pruned = append(pruned, s)
		}
	}
	res.Totals.ByStage = pruned

	d := CompareToBaseline(snap, res)

	found := false
	for _, s := range d.ByStage {
		if s.Stage == StageOceanFreight {
			found = true
			nearlyEqual(t, "delta étape absente", s.DeltaKg, 0)
			nearlyEqual(t, "delta_pct étape absente", s.DeltaPct, 0)
		}
	}
	if !found {
		t.Fatal("l'étape absente doit rester présente dans le diff")
	}
}

func TestCompareToBaseline_StageOrderIsSupplyChainOrder(t *testing.T) {
	b := DefaultBaseline()
	snap := NewSnapshot(b)
	d := CompareToBaseline(snap, Recalculate(mustResolve(t, nil, b), b))

	want := []string{
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
	for i, s := range d.ByStage {
		if s.Stage != want[i] {
			t.Fatalf("étape %d = %q, attendu %q", i, s.Stage, want[i])
		}
	}
}
