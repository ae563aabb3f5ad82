package notes

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/Alijeyrad/health_companion/pkg/constants"
)

// Publisher delivers note lifecycle events. *nats.Conn satisfies it.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Event is the payload of note lifecycle messages.
type Event struct {
	NoteID int64 `json:"note_id"`
}

// SavedSubject is the subject announcing that a note and its summary were
// stored or replaced.
func SavedSubject(id int64) string {
	return constants.SubjectNoteSaved + "." + strconv.FormatInt(id, 10)
}

func DeletedSubject(id int64) string {
	return constants.SubjectNoteDeleted + "." + strconv.FormatInt(id, 10)
}

// publish is best effort; a broker outage never fails the request.
func (s *notesService) publish(ctx context.Context, subject string, id int64) {
	if s.pub == nil {
		return
	}
	data, err := json.Marshal(Event{NoteID: id})
	if err != nil {
		return
	}
	if err := s.pub.Publish(subject, data); err != nil {
		slog.WarnContext(ctx, "failed to publish note event", "subject", subject, "err", err)
	}
}
