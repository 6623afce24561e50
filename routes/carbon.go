package routes

import (
	"context"
	"errors"
	"os"
	"time"

	"carbon-whatif/dataset"
	"carbon-whatif/middleware"
	"carbon-whatif/services/ai"
	"carbon-whatif/simulator"

	"github.com/gofiber/fiber/v2"
)

// SetupCarbonRoutes expose la surface du tableau de bord carbone :
// les données brutes, le Q&A contextualisé et la simulation what-if.
func SetupCarbonRoutes(app *fiber.App) {
	ai.Init()

	app.Get("/health", func(c *fiber.Ctx) error {
		orch := ai.Get()
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  "carbon-whatif",
			"ai_ready": orch != nil && orch.IsReady(),
		})
	})

	app.Get("/data", handleData)
	app.Post("/chat", handleChat)

	// La simulation est protégée dès qu'un secret JWT est configuré ;
	// sans secret on reste ouvert, comme le reste de la surface.
	if os.Getenv("JWT_SECRET") != "" {
		app.Post("/simulate", middleware.JWTMiddleware, handleSimulate)
	} else {
		app.Post("/simulate", handleSimulate)
	}
}

// GET /data — le JSON du tableau de bord, tel quel, pour les graphiques.
func handleData(c *fiber.Ctx) error {
	return c.JSON(dataset.Raw())
}

type chatPayload struct {
	Question string `json:"question"`
}

// POST /chat — Q&A simple, contexte complet injecté dans le prompt.
func handleChat(c *fiber.Ctx) error {
	orch := ai.Get()
	if orch == nil || !orch.IsReady() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "IA indisponible"})
	}

	var payload chatPayload
	if err := c.BodyParser(&payload); err != nil || payload.Question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Question requise"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 60*time.Second)
	defer cancel()

	answer, err := orch.AnswerQuestion(ctx, payload.Question)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"answer": answer})
}

type simulatePayload struct {
	Scenario string `json:"scenario"`
}

// POST /simulate — agent what-if : deux tours Minimax autour du moteur de
// recalcul. Délai large, la requête enchaîne deux appels réseau.
func handleSimulate(c *fiber.Ctx) error {
	orch := ai.Get()
	if orch == nil || !orch.IsReady() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "IA indisponible"})
	}

	var payload simulatePayload
	if err := c.BodyParser(&payload); err != nil || payload.Scenario == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Scénario requis"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 120*time.Second)
	defer cancel()

	res, err := orch.RunScenario(ctx, payload.Scenario)
	if err != nil {
		var vErr *simulator.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(res)
}
