package simulator

import (
	"fmt"
	"strconv"
)

// OverrideSet associe des clés en notation pointée (namespace.champ) aux
// valeurs choisies pour un scénario. Les clés inconnues sont ignorées :
// un scénario mal formé doit se dégrader, pas échouer.
type OverrideSet map[string]any

// ValidationError signale une valeur de surcharge d'un type inutilisable.
// Les calculateurs ne doivent jamais recevoir un type invalide.
type ValidationError struct {
	Key   string
	Value any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("surcharge %q invalide : valeur %v (%T) inutilisable", e.Key, e.Value, e.Value)
}

// Params est le jeu de paramètres entièrement résolu consommé par les
// calculateurs d'étape. Les pourcentages 0-100 sont déjà normalisés en
// fractions 0.0-1.0 et bornés.
type Params struct {
	SteelFactor    float64
	TritanFactor   float64
	SiliconeFactor float64

	GridFactor       float64
	MfgRenewable     float64 // fraction
	SpeedMode        string  // vide = aucun changement
	AllSameSpeed     bool
	EVShare          float64 // fraction
	WHRenewable      float64 // fraction
	WHEfficiencyGain float64 // fraction
	FTLShift         float64 // fraction
}

// Resolve applique les surcharges aux valeurs par défaut de la référence.
// Résolution pure : mêmes entrées, mêmes sorties. Seule erreur possible :
// ValidationError sur un type incompatible.
func Resolve(o OverrideSet, b Baseline) (Params, error) {
	p := Params{
		SteelFactor:    b.SteelFactor,
		TritanFactor:   b.TritanFactor,
		SiliconeFactor: b.SiliconeFactor,
		GridFactor:     b.GridFactor,
		EVShare:        clampFraction(b.DefaultEVPct / 100.0),
	}

	var err error
	if p.SteelFactor, err = resolveFactor(o, "raw_materials.steel_factor", p.SteelFactor); err != nil {
		return Params{}, err
	}
	if p.TritanFactor, err = resolveFactor(o, "raw_materials.tritan_factor", p.TritanFactor); err != nil {
		return Params{}, err
	}
	if p.SiliconeFactor, err = resolveFactor(o, "raw_materials.silicone_factor", p.SiliconeFactor); err != nil {
		return Params{}, err
	}
	if p.GridFactor, err = resolveFactor(o, "manufacturing.grid_factor", p.GridFactor); err != nil {
		return Params{}, err
	}
	if p.MfgRenewable, err = resolvePercent(o, "manufacturing.renewable_pct", 0); err != nil {
		return Params{}, err
	}
	if p.SpeedMode, err = resolveString(o, "ocean_freight.speed_mode", ""); err != nil {
		return Params{}, err
	}
	if p.AllSameSpeed, err = resolveBool(o, "ocean_freight.all_same_speed", false); err != nil {
		return Params{}, err
	}
	if p.EVShare, err = resolvePercent(o, "port_drayage.ev_pct", p.EVShare); err != nil {
		return Params{}, err
	}
	if p.WHRenewable, err = resolvePercent(o, "warehousing.renewable_pct", 0); err != nil {
		return Params{}, err
	}
	if p.WHEfficiencyGain, err = resolvePercent(o, "warehousing.efficiency_gain_pct", 0); err != nil {
		return Params{}, err
	}
	if p.FTLShift, err = resolvePercent(o, "distribution.ftl_shift_pct", 0); err != nil {
		return Params{}, err
	}

	return p, nil
}

// resolveFactor lit un facteur d'émission, borné à zéro : aucune surcharge
// ne doit pouvoir produire une étape négative.
func resolveFactor(o OverrideSet, key string, def float64) (float64, error) {
	v, err := resolveNumber(o, key, def)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		v = 0
	}
	return v, nil
}

// resolvePercent lit un pourcentage 0-100 et le normalise en fraction,
// bornée à [0, 1]. def est déjà une fraction.
func resolvePercent(o OverrideSet, key string, def float64) (float64, error) {
	raw, ok := o[key]
	if !ok {
		return clampFraction(def), nil
	}
	n, ok := asNumber(raw)
	if !ok {
		return 0, &ValidationError{Key: key, Value: raw}
	}
	return clampFraction(n / 100.0), nil
}

func resolveNumber(o OverrideSet, key string, def float64) (float64, error) {
	raw, ok := o[key]
	if !ok {
		return def, nil
	}
	n, ok := asNumber(raw)
	if !ok {
		return 0, &ValidationError{Key: key, Value: raw}
	}
	return n, nil
}

func resolveString(o OverrideSet, key, def string) (string, error) {
	raw, ok := o[key]
	if !ok {
		return def, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", &ValidationError{Key: key, Value: raw}
	}
	return s, nil
}

// resolveBool tolère les booléens écrits "true"/"false" : certains modèles
// renvoient les drapeaux sous forme de texte.
func resolveBool(o OverrideSet, key string, def bool) (bool, error) {
	raw, ok := o[key]
	if !ok {
		return def, nil
	}
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, &ValidationError{Key: key, Value: raw}
		}
		return b, nil
	default:
		return false, &ValidationError{Key: key, Value: raw}
	}
}

func asNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
