package router

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/Alijeyrad/health_companion/config"
	"github.com/Alijeyrad/health_companion/internal/api/http/handler"
	"github.com/Alijeyrad/health_companion/internal/service/chatbot"
	"github.com/Alijeyrad/health_companion/internal/service/efficacy"
	"github.com/Alijeyrad/health_companion/internal/service/followup"
	"github.com/Alijeyrad/health_companion/internal/service/lipid"
	"github.com/Alijeyrad/health_companion/internal/service/notes"
	"github.com/Alijeyrad/health_companion/internal/service/patient"
	"github.com/Alijeyrad/health_companion/internal/service/system"
	"github.com/Alijeyrad/health_companion/internal/service/transcription"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg              *config.Config
	NotesSvc         notes.Service
	FollowUpSvc      followup.Service
	PatientSvc       patient.Service
	EfficacySvc      efficacy.Service
	LipidSvc         lipid.Service
	ChatbotSvc       chatbot.Service
	TranscriptionSvc transcription.Service
	SystemSvc        system.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Initialize Handlers
	notesH := handler.NewNotesHandler(r.p.NotesSvc, r.p.FollowUpSvc)
	patientH := handler.NewPatientHandler(r.p.PatientSvc, r.p.EfficacySvc)
	lipidH := handler.NewLipidHandler(r.p.LipidSvc)
	symptomH := handler.NewSymptomHandler()
	chatH := handler.NewChatHandler(r.p.ChatbotSvc)
	transcriptionH := handler.NewTranscriptionHandler(r.p.TranscriptionSvc)
	systemH := handler.NewSystemHandler(r.p.SystemSvc)

	api := app.Group("/api/v1")

	// 3. Delegate to sub-files
	r.registerNoteRoutes(api, notesH)
	r.registerPatientRoutes(api, patientH)
	r.registerToolRoutes(api, lipidH, symptomH, chatH, transcriptionH)
	api.Get("/system/database", systemH.Database)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool { return r.p.SystemSvc.Ping(c.Context()) == nil },
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
