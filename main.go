package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"carbon-whatif/database"
	"carbon-whatif/dataset"
	"carbon-whatif/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("pas de .env trouvé")
	}

	dataset.Load()
	database.ConnectDB()

	app := fiber.New()

	// CORS
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	routes.SetupAuthRoutes(app)
	routes.SetupCarbonRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5001"
	}
	log.Println("🚀 API carbone sur http://localhost:" + port)
	log.Println("  GET  /data     — données brutes pour les graphiques")
	log.Println("  POST /chat     — Q&A sur les données")
	log.Println("  POST /simulate — modélisation de scénarios what-if")
	log.Fatal(app.Listen(":" + port))
}
