package app

import (
	"context"
	"testing"

	"github.com/Alijeyrad/health_companion/internal/service/followup"
)

type recordingFollowUp struct {
	followup.Service
	generated []int64
}

func (r *recordingFollowUp) Generate(_ context.Context, id int64) (*followup.Actions, error) {
	r.generated = append(r.generated, id)
	return &followup.Actions{}, nil
}

func TestHandleNoteSaved(t *testing.T) {
	svc := &recordingFollowUp{}
	ctx := context.Background()

	HandleNoteSaved(ctx, svc, []byte(`{"note_id":17100000001234}`))
	HandleNoteSaved(ctx, svc, []byte(`not json`))
	HandleNoteSaved(ctx, svc, []byte(`{}`))

	if len(svc.generated) != 1 || svc.generated[0] != 17100000001234 {
		t.Errorf("generated = %v, want [17100000001234]", svc.generated)
	}
}
