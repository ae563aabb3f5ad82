package app

import (
	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/Alijeyrad/health_companion/config"
	"github.com/Alijeyrad/health_companion/internal/repo"
	"github.com/Alijeyrad/health_companion/internal/service/archive"
	"github.com/Alijeyrad/health_companion/internal/service/chatbot"
	"github.com/Alijeyrad/health_companion/internal/service/efficacy"
	"github.com/Alijeyrad/health_companion/internal/service/followup"
	"github.com/Alijeyrad/health_companion/internal/service/lipid"
	"github.com/Alijeyrad/health_companion/internal/service/notes"
	"github.com/Alijeyrad/health_companion/internal/service/patient"
	"github.com/Alijeyrad/health_companion/internal/service/system"
	"github.com/Alijeyrad/health_companion/internal/service/transcription"
	"github.com/Alijeyrad/health_companion/pkg/gemini"
	"github.com/Alijeyrad/health_companion/pkg/pdftext"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideNotesService,
		ProvideFollowUpService,
		ProvideEfficacyService,
		ProvidePatientService,
		ProvideLipidService,
		ProvideChatbotService,
		ProvideTranscriptionService,
		ProvideSystemService,
	),
)

// Optional clients are only passed on when set, so services never hold a
// typed nil inside an interface.

func ProvideNotesService(client *repo.Client, gem *gemini.Client, nc *nats.Conn) notes.Service {
	var opts []notes.Option
	if gem != nil {
		opts = append(opts, notes.WithGenerator(gem))
	}
	if nc != nil {
		opts = append(opts, notes.WithPublisher(nc))
	}
	return notes.New(client, opts...)
}

func ProvideFollowUpService(client *repo.Client) followup.Service {
	return followup.New(client)
}

func ProvideEfficacyService(client *repo.Client) efficacy.Service {
	return efficacy.New(client)
}

func ProvidePatientService(client *repo.Client) patient.Service {
	return patient.New(client)
}

func ProvideLipidService(pdf *pdftext.Extractor, arc archive.Service) lipid.Service {
	return lipid.New(pdf, lipid.WithArchive(arc))
}

func ProvideChatbotService(gem *gemini.Client) chatbot.Service {
	if gem == nil {
		return chatbot.New()
	}
	return chatbot.New(chatbot.WithGenerator(gem))
}

func ProvideTranscriptionService(cfg *config.Config, gem *gemini.Client, arc archive.Service) transcription.Service {
	opts := []transcription.Option{transcription.WithArchive(arc)}
	if gem != nil {
		opts = append(opts, transcription.WithTranscriber(gem))
	}
	return transcription.New(cfg.Uploads, opts...)
}

func ProvideSystemService(client *repo.Client) system.Service {
	return system.New(client)
}
