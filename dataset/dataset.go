package dataset

import (
	"encoding/json"
	"log"
	"os"
)

// Chargement unique, au démarrage, du document JSON du tableau de bord
// carbone. Le document est servi tel quel par GET /data et injecté en
// contexte des complétions Q&A ; le moteur de recalcul n'en dépend pas,
// il embarque ses propres constantes.

const defaultDataPath = "data/owala-carbon-footprint-dashboard.json"

var (
	raw     []byte
	decoded map[string]any
	indent  string
)

// Load lit le document et le garde en mémoire pour la durée du processus.
// Fatal si absent ou illisible : le service n'a pas de sens sans ses
// données.
func Load() {
	path := os.Getenv("CARBON_DATA_PATH")
	if path == "" {
		path = defaultDataPath
	}

	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatal("Erreur lecture données carbone:", err)
	}
	if err := json.Unmarshal(b, &decoded); err != nil {
		log.Fatal("Données carbone invalides:", err)
	}

	pretty, err := json.MarshalIndent(decoded, "", "  ")
	if err != nil {
		log.Fatal("Erreur ré-encodage données carbone:", err)
	}

	raw = b
	indent = string(pretty)
	log.Println("📊 Données carbone chargées depuis", path)
}

// Raw retourne le document décodé, pour le servir verbatim.
func Raw() map[string]any {
	return decoded
}

// ContextJSON retourne le document indenté, prêt à être injecté dans un
// prompt système.
func ContextJSON() string {
	return indent
}
