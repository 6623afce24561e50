package simulator

import "math"

// Calculateurs d'étape. Chacun est une fonction pure
// (Params, Baseline) → résultat typé + total non arrondi.
// L'arrondi se fait une seule fois, à la construction du résultat,
// jamais en cours de calcul — le total brut alimente l'agrégation.

type RawMaterialsResult struct {
	TotalKgCO2e    float64 `json:"total_kg_co2e"`
	SteelKgCO2e    float64 `json:"steel_kg_co2e"`
	TritanKgCO2e   float64 `json:"tritan_kg_co2e"`
	SiliconeKgCO2e float64 `json:"silicone_kg_co2e"`
	OtherKgCO2e    float64 `json:"other_kg_co2e"`
	PerUnitKg      float64 `json:"per_unit_kg"`
}

type PassThroughResult struct {
	TotalKgCO2e float64 `json:"total_kg_co2e"`
	PerUnitKg   float64 `json:"per_unit_kg"`
}

type ManufacturingResult struct {
	TotalKgCO2e    float64 `json:"total_kg_co2e"`
	ElectricityKg  float64 `json:"electricity_kg_co2e"`
	GridFactorUsed float64 `json:"grid_factor_used"`
	RenewablePct   float64 `json:"renewable_pct"`
	PerUnitKg      float64 `json:"per_unit_kg"`
}

type ShipmentResult struct {
	Name         string  `json:"name"`
	Speed        string  `json:"speed"`
	Containers   int     `json:"containers"`
	CO2Kg        float64 `json:"co2_kg"`
	CO2PerUnitKg float64 `json:"co2_per_unit_kg"`
}

type OceanFreightResult struct {
	TotalKgCO2e float64          `json:"total_kg_co2e"`
	PerUnitKg   float64          `json:"per_unit_kg"`
	Shipments   []ShipmentResult `json:"shipments"`
}

type DrayageResult struct {
	TotalKgCO2e float64 `json:"total_kg_co2e"`
	DieselTrips int     `json:"diesel_trips"`
	EVTrips     int     `json:"ev_trips"`
	PerUnitKg   float64 `json:"per_unit_kg"`
}

type WarehousingResult struct {
	TotalKgCO2e       float64 `json:"total_kg_co2e"`
	RenewablePct      float64 `json:"renewable_pct"`
	EfficiencyGainPct float64 `json:"efficiency_gain_pct"`
	PerUnitKg         float64 `json:"per_unit_kg"`
}

type DistributionResult struct {
	TotalKgCO2e float64 `json:"total_kg_co2e"`
	FTLShiftPct float64 `json:"ftl_shift_pct"`
	PerUnitKg   float64 `json:"per_unit_kg"`
}

// calcRawMaterials : masse connue par unité (deux formats de gourde)
// × facteur CO2 par kg, sommée sur acier, résine Tritan et silicone,
// plus les petits postes constants.
func calcRawMaterials(p Params, b Baseline) (RawMaterialsResult, float64) {
	units24 := float64(b.Units24oz)
	units32 := float64(b.Units32oz)

	steel := (units24*b.SteelKg24oz + units32*b.SteelKg32oz) * p.SteelFactor
	tritan := (units24*b.TritanKg24oz + units32*b.TritanKg32oz) * p.TritanFactor
	silicone := (units24*b.SiliconeKg24oz + units32*b.SiliconeKg32oz) * p.SiliconeFactor

	total := steel + tritan + silicone + b.OtherMaterialsKg
	return RawMaterialsResult{
		TotalKgCO2e:    round1(total),
		SteelKgCO2e:    round1(steel),
		TritanKgCO2e:   round1(tritan),
		SiliconeKgCO2e: round1(silicone),
		OtherKgCO2e:    b.OtherMaterialsKg,
		PerUnitKg:      round4(total / float64(b.TotalUnits)),
	}, total
}

func calcInlandTrucking(_ Params, b Baseline) (PassThroughResult, float64) {
	return passThrough(b.InlandTruckingKg, b.TotalUnits), b.InlandTruckingKg
}

// calcManufacturing : l'électricité annuelle de l'usine est ramenée à la
// part de production de la ligne, puis le facteur réseau est déplacé
// linéairement par la fraction renouvelable — l'énergie consommée ne
// change pas, seule son intensité carbone baisse. Gaz et diesel restent
// constants à l'échelle de la part.
func calcManufacturing(p Params, b Baseline) (ManufacturingResult, float64) {
	share := float64(b.TotalUnits) / b.FacilityAnnualUnit
	effectiveGrid := p.GridFactor * (1 - p.MfgRenewable)
	electricity := b.AnnualKWh * share * effectiveGrid
	gas := b.GasTonnes * 1000 * share
	diesel := b.DieselTonnes * 1000 * share

	total := electricity + gas + diesel
	return ManufacturingResult{
		TotalKgCO2e:    round1(total),
		ElectricityKg:  round1(electricity),
		GridFactorUsed: round4(effectiveGrid),
		RenewablePct:   round1(p.MfgRenewable * 100),
		PerUnitKg:      round4(total / float64(b.TotalUnits)),
	}, total
}

func calcPackaging(_ Params, b Baseline) (PassThroughResult, float64) {
	return passThrough(b.PackagingKg, b.TotalUnits), b.PackagingKg
}

// calcOceanFreight : coût CO2 par conteneur 40HC indexé (vitesse × classe
// de navire). Une vitesse demandée s'applique soit à toutes les traversées
// (all_same_speed), soit uniquement aux traversées actuellement "express"
// — on ne ralentit que les lignes les plus rapides, les autres régimes
// restent volontairement intouchés. Vitesse ou classe inconnue : repli sur
// le régime le plus lent et la classe la plus courante.
func calcOceanFreight(p Params, b Baseline) (OceanFreightResult, float64) {
	var total float64
	details := make([]ShipmentResult, 0, len(b.Shipments))

	for _, s := range b.Shipments {
		speed := s.Speed
		if p.SpeedMode != "" {
			if p.AllSameSpeed || s.Speed == "express" {
				speed = p.SpeedMode
			}
		}

		tier, ok := b.OceanCO2PerBox[speed]
		if !ok {
			tier = b.OceanCO2PerBox[b.SlowestSpeed]
		}
		perBox, ok := tier[s.TEUClass]
		if !ok {
			perBox = b.FallbackBoxCO2Kg
		}

		co2 := perBox * float64(s.Containers)
		total += co2
		details = append(details, ShipmentResult{
			Name:         s.Name,
			Speed:        speed,
			Containers:   s.Containers,
			CO2Kg:        round1(co2),
			CO2PerUnitKg: round4(co2 / float64(s.Units)),
		})
	}

	return OceanFreightResult{
		TotalKgCO2e: round1(total),
		PerUnitKg:   round4(total / float64(b.TotalUnits)),
		Shipments:   details,
	}, total
}

// calcPortDrayage : la part EV demandée est appliquée au nombre fixe de
// rotations et arrondie à la rotation entière la plus proche, le diesel
// absorbe le reste.
func calcPortDrayage(p Params, b Baseline) (DrayageResult, float64) {
	totalTrips := b.DrayageDieselTrips + b.DrayageEVTrips
	evTrips := int(math.Round(float64(totalTrips) * p.EVShare))
	dieselTrips := totalTrips - evTrips

	total := float64(dieselTrips)*b.DrayageDieselKg + float64(evTrips)*b.DrayageEVKg
	return DrayageResult{
		TotalKgCO2e: round1(total),
		DieselTrips: dieselTrips,
		EVTrips:     evTrips,
		PerUnitKg:   round4(total / float64(b.TotalUnits)),
	}, total
}

// calcWarehousing : seule la fraction électricité du total entrepôt est
// remisée par le renouvelable ; le gain d'efficacité réduit ensuite
// uniformément l'ensemble du total post-renouvelable.
func calcWarehousing(p Params, b Baseline) (WarehousingResult, float64) {
	total := b.WarehousingKg *
		(b.ElectricityShare*(1-p.WHRenewable) + (1 - b.ElectricityShare)) *
		(1 - p.WHEfficiencyGain)

	return WarehousingResult{
		TotalKgCO2e:       round1(total),
		RenewablePct:      round1(p.WHRenewable * 100),
		EfficiencyGainPct: round1(p.WHEfficiencyGain * 100),
		PerUnitKg:         round4(total / float64(b.TotalUnits)),
	}, total
}

// calcDistribution : la fraction de volume LTL basculée en FTL est
// re-tarifée avec la remise empirique FTLShiftDiscount plutôt qu'au tarif
// FTL de référence (moyenne de flotte mixte, comportement documenté).
func calcDistribution(p Params, b Baseline) (DistributionResult, float64) {
	shifted := b.LTLKg * p.FTLShift
	total := b.FTLKg + (b.LTLKg - shifted) + shifted*b.FTLShiftDiscount

	return DistributionResult{
		TotalKgCO2e: round1(total),
		FTLShiftPct: round1(p.FTLShift * 100),
		PerUnitKg:   round4(total / float64(b.TotalUnits)),
	}, total
}

// calcLastMile : seule étape rapportée aux unités e-commerce, pas à la
// production totale.
func calcLastMile(_ Params, b Baseline) (PassThroughResult, float64) {
	return passThrough(b.LastMileKg, b.EcommerceUnits), b.LastMileKg
}

func passThrough(totalKg float64, units int) PassThroughResult {
	return PassThroughResult{
		TotalKgCO2e: totalKg,
		PerUnitKg:   round4(totalKg / float64(units)),
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
