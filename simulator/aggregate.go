package simulator

import "sort"

// Results est la décomposition complète d'une simulation : les neuf
// étapes plus les totaux. Les clés JSON sont le contrat d'API du champ
// stage_details.
type Results struct {
	RawMaterials   RawMaterialsResult  `json:"raw_materials"`
	InlandTrucking PassThroughResult   `json:"inland_trucking"`
	Manufacturing  ManufacturingResult `json:"manufacturing"`
	Packaging      PassThroughResult   `json:"packaging"`
	OceanFreight   OceanFreightResult  `json:"ocean_freight"`
	PortDrayage    DrayageResult       `json:"port_drayage"`
	Warehousing    WarehousingResult   `json:"warehousing"`
	Distribution   DistributionResult  `json:"distribution"`
	LastMile       PassThroughResult   `json:"last_mile"`
	Totals         Totals              `json:"totals"`
}

// StageShare est une ligne du classement par étape.
type StageShare struct {
	Stage  string  `json:"stage"`
	KgCO2e float64 `json:"kg_co2e"`
	Pct    float64 `json:"pct"`
}

// Totals porte le total général et le classement des étapes par poids
// décroissant.
type Totals struct {
	TotalKgCO2e     float64      `json:"total_kg_co2e"`
	TotalTonnesCO2e float64      `json:"total_tonnes_co2e"`
	PerUnitKg       float64      `json:"per_unit_kg"`
	ByStage         []StageShare `json:"by_stage"`
}

// Recalculate exécute les neuf calculateurs avec les paramètres résolus
// et agrège les totaux. Le total général est toujours strictement positif :
// les constantes d'étape sont non négatives et les postes fixes non nuls,
// donc aucune division par zéro possible dans les pourcentages.
func Recalculate(p Params, b Baseline) Results {
	var r Results
	var raw [9]float64

	r.RawMaterials, raw[0] = calcRawMaterials(p, b)
	r.InlandTrucking, raw[1] = calcInlandTrucking(p, b)
	r.Manufacturing, raw[2] = calcManufacturing(p, b)
	r.Packaging, raw[3] = calcPackaging(p, b)
	r.OceanFreight, raw[4] = calcOceanFreight(p, b)
	r.PortDrayage, raw[5] = calcPortDrayage(p, b)
	r.Warehousing, raw[6] = calcWarehousing(p, b)
	r.Distribution, raw[7] = calcDistribution(p, b)
	r.LastMile, raw[8] = calcLastMile(p, b)

	names := [9]string{
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

	var grand float64
	for _, v := range raw {
		grand += v
	}

	byStage := make([]StageShare, 0, len(names))
	for i, name := range names {
		byStage = append(byStage, StageShare{
			Stage:  name,
			KgCO2e: round1(raw[i]),
			Pct:    round1(raw[i] / grand * 100),
		})
	}
	sort.SliceStable(byStage, func(i, j int) bool {
		return byStage[i].KgCO2e > byStage[j].KgCO2e
	})

	r.Totals = Totals{
		TotalKgCO2e:     round1(grand),
		TotalTonnesCO2e: round2(grand / 1000),
		PerUnitKg:       round4(grand / float64(b.TotalUnits)),
		ByStage:         byStage,
	}
	return r
}
