package simulator

import (
	"errors"
	"testing"
)

func TestResolve_Defaults(t *testing.T) {
	b := DefaultBaseline()
	p, err := Resolve(OverrideSet{}, b)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	nearlyEqual(t, "SteelFactor", p.SteelFactor, 1.83)
	nearlyEqual(t, "TritanFactor", p.TritanFactor, 3.8)
	nearlyEqual(t, "SiliconeFactor", p.SiliconeFactor, 4.23)
	nearlyEqual(t, "GridFactor", p.GridFactor, 0.581)
	nearlyEqual(t, "MfgRenewable", p.MfgRenewable, 0)
	nearlyEqual(t, "EVShare", p.EVShare, 0.143)
	if p.SpeedMode != "" {
		t.Fatalf("SpeedMode = %q, attendu vide", p.SpeedMode)
	}
	if p.AllSameSpeed {
		t.Fatal("AllSameSpeed devrait être faux par défaut")
	}
}

func TestResolve_Deterministic(t *testing.T) {
	b := DefaultBaseline()
	o := OverrideSet{
		"manufacturing.renewable_pct": 40.0,
		"ocean_freight.speed_mode":    "ultra_slow",
		"distribution.ftl_shift_pct":  25.0,
	}

	p1, err1 := Resolve(o, b)
	p2, err2 := Resolve(o, b)
	if err1 != nil || err2 != nil {
		t.Fatalf("Resolve: %v / %v", err1, err2)
	}
	if p1 != p2 {
		t.Fatalf("résolution non déterministe : %+v != %+v", p1, p2)
	}
}

func TestResolve_PercentNormalizationAndClamping(t *testing.T) {
	b := DefaultBaseline()
	cases := []struct {
		name string
		pct  float64
		want float64
	}{
		{"nominal", 50, 0.5},
		{"plein", 100, 1},
		{"au-dessus", 250, 1},
		{"négatif", -10, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Resolve(OverrideSet{"port_drayage.ev_pct": tc.pct}, b)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			nearlyEqual(t, "EVShare", p.EVShare, tc.want)
		})
	}
}

func TestResolve_NegativeFactorClampedToZero(t *testing.T) {
	b := DefaultBaseline()
	p, err := Resolve(OverrideSet{"raw_materials.steel_factor": -2.0}, b)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	nearlyEqual(t, "SteelFactor", p.SteelFactor, 0)
}

func TestResolve_UnknownKeysIgnored(t *testing.T) {
	b := DefaultBaseline()
	p, err := Resolve(OverrideSet{
		"nonexistent.parameter":    42.0,
		"raw_materials.unicornium": "beaucoup",
	}, b)
	if err != nil {
		t.Fatalf("les clés inconnues ne doivent jamais échouer : %v", err)
	}
	nearlyEqual(t, "SteelFactor", p.SteelFactor, 1.83)
}

func TestResolve_TypeMismatchNamesKey(t *testing.T) {
	b := DefaultBaseline()
	_, err := Resolve(OverrideSet{"manufacturing.renewable_pct": "cinquante"}, b)

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("attendu ValidationError, reçu %v", err)
	}
	if vErr.Key != "manufacturing.renewable_pct" {
		t.Fatalf("clé fautive = %q", vErr.Key)
	}
}

func TestResolve_BoolFromString(t *testing.T) {
	b := DefaultBaseline()
	p, err := Resolve(OverrideSet{"ocean_freight.all_same_speed": "true"}, b)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !p.AllSameSpeed {
		t.Fatal("AllSameSpeed devrait accepter \"true\" textuel")
	}

	_, err = Resolve(OverrideSet{"ocean_freight.all_same_speed": 3.0}, b)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("un nombre pour un booléen doit échouer, reçu %v", err)
	}
}

func TestResolve_IntegerValuesAccepted(t *testing.T) {
	b := DefaultBaseline()
	p, err := Resolve(OverrideSet{"warehousing.renewable_pct": 50}, b)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	nearlyEqual(t, "WHRenewable", p.WHRenewable, 0.5)
}
