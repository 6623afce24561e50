package simulator

// Constantes de référence extraites du tableau de bord carbone FreeSip
// (Q3-Q4 2025, 90 000 unités). Tout est regroupé dans une valeur Baseline
// immuable passée explicitement aux calculs, jamais en état global.

// Shipment décrit une traversée océanique du lot.
type Shipment struct {
	Name       string
	Containers int
	Units      int
	TEUClass   int
	Speed      string
}

// Baseline regroupe les constantes physiques de la chaîne logistique.
type Baseline struct {
	TotalUnits     int
	EcommerceUnits int
	Units24oz      int
	Units32oz      int

	// Masses par unité (kg) pour les deux formats de gourde.
	SteelKg24oz    float64
	SteelKg32oz    float64
	TritanKg24oz   float64
	TritanKg32oz   float64
	SiliconeKg24oz float64
	SiliconeKg32oz float64

	// Facteurs d'émission par défaut (kg CO2e / kg de matière).
	SteelFactor    float64
	TritanFactor   float64
	SiliconeFactor float64

	// Revêtement poudre + paille PP, petits postes gardés constants (kg CO2e).
	OtherMaterialsKg float64

	// Usine : électricité annuelle (kWh), production annuelle totale de
	// l'usine (unités), facteur réseau Zhejiang, gaz et diesel (tonnes/an).
	AnnualKWh          float64
	FacilityAnnualUnit float64
	GridFactor         float64
	GasTonnes          float64
	DieselTonnes       float64

	// Postes fixes (kg CO2e).
	InlandTruckingKg float64
	PackagingKg      float64
	LastMileKg       float64

	// Fret océanique : traversées réelles et coût CO2 par conteneur 40HC
	// selon le régime de vitesse et la classe de navire.
	Shipments        []Shipment
	OceanCO2PerBox   map[string]map[int]float64
	SlowestSpeed     string
	FallbackBoxCO2Kg float64

	// Drayage portuaire.
	DrayageDieselTrips int
	DrayageEVTrips     int
	DrayageDieselKg    float64
	DrayageEVKg        float64
	DefaultEVPct       float64

	// Entrepôt : total Q3-Q4 et part attribuable à l'électricité.
	WarehousingKg    float64
	ElectricityShare float64

	// Distribution DC → détail : FTL consolidé vs LTL, et remise empirique
	// appliquée au volume LTL basculé en FTL (g/tonne-mile moyen).
	FTLKg            float64
	LTLKg            float64
	FTLShiftDiscount float64
}

// DefaultBaseline retourne les mesures réelles Q3-Q4 2025.
func DefaultBaseline() Baseline {
	return Baseline{
		TotalUnits:     90000,
		EcommerceUnits: 18500,
		Units24oz:      60500,
		Units32oz:      29500,

		SteelKg24oz:    0.260,
		SteelKg32oz:    0.327,
		TritanKg24oz:   0.038,
		TritanKg32oz:   0.042,
		SiliconeKg24oz: 0.026,
		SiliconeKg32oz: 0.030,

		SteelFactor:    1.83,
		TritanFactor:   3.8,
		SiliconeFactor: 4.23,

		OtherMaterialsKg: 944 + 496,

		AnnualKWh:          3840000,
		FacilityAnnualUnit: 4200000,
		GridFactor:         0.581,
		GasTonnes:          76.8,
		DieselTonnes:       22.0,

		InlandTruckingKg: 7927,
		PackagingKg:      720,
		LastMileKg:       12553,

		Shipments: []Shipment{
			{Name: "COSCO Orchid 0285E", Containers: 1, Units: 15000, TEUClass: 19100, Speed: "slow"},
			{Name: "COSCO Peony 0312E", Containers: 1, Units: 12000, TEUClass: 19100, Speed: "slow"},
			{Name: "COSCO Jasmine 0318E", Containers: 1, Units: 10000, TEUClass: 19100, Speed: "slow"},
			{Name: "COSCO Universe 0331E", Containers: 2, Units: 20000, TEUClass: 21237, Speed: "slow"},
			{Name: "COSCO Nebula 0338E", Containers: 1, Units: 15000, TEUClass: 19100, Speed: "slow"},
			{Name: "Maersk Edirne 249W", Containers: 1, Units: 18000, TEUClass: 15282, Speed: "express"},
		},
		OceanCO2PerBox: map[string]map[int]float64{
			"slow":       {19100: 1360, 21237: 1240, 15282: 1180},
			"moderate":   {19100: 1520, 21237: 1390, 15282: 1320},
			"express":    {19100: 1780, 21237: 1630, 15282: 1530},
			"ultra_slow": {19100: 1120, 21237: 1020, 15282: 970},
		},
		SlowestSpeed:     "slow",
		FallbackBoxCO2Kg: 1360,

		DrayageDieselTrips: 6,
		DrayageEVTrips:     1,
		DrayageDieselKg:    181.3,
		DrayageEVKg:        23.0,
		DefaultEVPct:       14.3,

		WarehousingKg:    117000,
		ElectricityShare: 0.676,

		FTLKg:            1410,
		LTLKg:            11970,
		FTLShiftDiscount: 0.63,
	}
}

// Noms d'affichage des étapes, dans l'ordre de la chaîne logistique.
// Ces libellés font partie du contrat d'API (clés du diff par étape).
const (
	StageRawMaterials   = "Raw Materials"
	StageInlandTrucking = "Inland Trucking (China)"
	StageManufacturing  = "Manufacturing"
	StagePackaging      = "Packaging Production"
	StageOceanFreight   = "Ocean Freight"
	StagePortDrayage    = "Port Drayage (US)"
	StageWarehousing    = "Warehousing (DC)"
	StageDistribution   = "DC to Retail"
	StageLastMile       = "Last Mile (e-comm)"
)
