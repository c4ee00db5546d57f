package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"github.com/simclinic/virtual-patient/internal/api/handler"
	customMiddleware "github.com/simclinic/virtual-patient/internal/api/middleware"
	"github.com/simclinic/virtual-patient/internal/config"
	"github.com/simclinic/virtual-patient/internal/domain"
	"github.com/simclinic/virtual-patient/internal/llm"
	"github.com/simclinic/virtual-patient/internal/llm/gemini"
	"github.com/simclinic/virtual-patient/internal/llm/groq"
	"github.com/simclinic/virtual-patient/internal/llm/ollama"
	"github.com/simclinic/virtual-patient/internal/llm/openai"
	"github.com/simclinic/virtual-patient/internal/sim"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, store domain.SessionStore) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	llmRouter := buildLLMRouter(cfg)

	// Services
	patientService := sim.NewPatientService(llmRouter, "", "")
	treatmentService := sim.NewTreatmentService(llmRouter, "", "")
	evaluatorService := sim.NewEvaluatorService(llmRouter, "", "")

	// Handlers
	chatHandler := handler.NewChatHandler(patientService, store, cfg.Simulation.Stateful)
	evaluateHandler := handler.NewEvaluateHandler(evaluatorService)
	treatmentHandler := handler.NewTreatmentHandler(treatmentService, store, cfg.Simulation.Stateful)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.HealthCheck)
		r.Get("/providers", handler.ListProviders(llmRouter))

		r.Post("/chat", chatHandler.Turn)
		r.Post("/evaluate", evaluateHandler.Evaluate)
		r.Post("/treatment", treatmentHandler.Turn)
	})

	return r
}

func buildLLMRouter(cfg *config.Config) *llm.Router {
	llmRouter := llm.NewRouter(cfg.LLM.DefaultProvider)

	log.Info().Msgf("Initializing LLM providers. Default: %s", cfg.LLM.DefaultProvider)

	if cfg.LLM.Groq.APIKey != "" {
		llmRouter.RegisterProvider(groq.NewProvider(cfg.LLM.Groq.APIKey, cfg.LLM.Groq.Model))
	}
	if cfg.LLM.OpenAI.APIKey != "" {
		llmRouter.RegisterProvider(openai.NewProvider(cfg.LLM.OpenAI.APIKey, cfg.LLM.OpenAI.Model))
	}
	if cfg.LLM.Gemini.APIKey != "" {
		llmRouter.RegisterProvider(gemini.NewProvider(cfg.LLM.Gemini.APIKey, cfg.LLM.Gemini.Model))
	}
	if cfg.LLM.Ollama.Host != "" {
		log.Info().Str("host", cfg.LLM.Ollama.Host).Msg("Registering Ollama provider")
		llmRouter.RegisterProvider(ollama.NewProvider(cfg.LLM.Ollama.Host, cfg.LLM.Ollama.DefaultModel))
	}

	return llmRouter
}
