package app

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/Alijeyrad/health_companion/config"
	"github.com/Alijeyrad/health_companion/internal/service/followup"
	"github.com/Alijeyrad/health_companion/internal/service/notes"
	"github.com/Alijeyrad/health_companion/pkg/constants"
)

// WorkerModule registers all NATS event workers.
var WorkerModule = fx.Module("workers",
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc          fx.Lifecycle
	Cfg         *config.Config
	NC          *nats.Conn
	FollowUpSvc followup.Service
}

func RegisterWorkers(p WorkerParams) {
	if p.NC == nil {
		return
	}

	var subs []*nats.Subscription
	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if p.Cfg.FollowUp.AutoGenerate {
				if sub := startFollowUpWorker(p.NC, p.FollowUpSvc); sub != nil {
					subs = append(subs, sub)
				}
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// Drain of the connection itself is handled by ProvideNatsClient
			for _, s := range subs {
				_ = s.Unsubscribe()
			}
			return nil
		},
	})
}

// ---------------------------------------------------------------------------
// followup_worker
// ---------------------------------------------------------------------------

func startFollowUpWorker(nc *nats.Conn, svc followup.Service) *nats.Subscription {
	sub, err := nc.Subscribe(constants.SubjectNoteSaved+".*", func(msg *nats.Msg) {
		HandleNoteSaved(context.Background(), svc, msg.Data)
	})
	if err != nil {
		slog.Error("followup_worker: subscribe note.saved failed", "err", err)
		return nil
	}

	slog.Info("followup_worker: started")
	return sub
}

// HandleNoteSaved regenerates the follow-up plan of the saved note.
func HandleNoteSaved(ctx context.Context, svc followup.Service, data []byte) {
	var ev notes.Event
	if err := json.Unmarshal(data, &ev); err != nil || ev.NoteID == 0 {
		slog.Warn("followup_worker: bad event payload", "data", string(data))
		return
	}

	if _, err := svc.Generate(ctx, ev.NoteID); err != nil {
		slog.Warn("followup_worker: generate failed", "note_id", ev.NoteID, "err", err)
		return
	}
	slog.Debug("followup_worker: regenerated", "note_id", ev.NoteID)
}
