package transcription

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/health_companion/config"
	"github.com/Alijeyrad/health_companion/internal/service/archive"
)

type stubBackend struct {
	text     string
	err      error
	mimeType string
}

func (b *stubBackend) Transcribe(_ context.Context, _ []byte, mimeType string) (string, error) {
	b.mimeType = mimeType
	return b.text, b.err
}

type memUploader struct{ keys []string }

func (m *memUploader) Upload(_ context.Context, key, _ string, _ io.Reader, _ int64) error {
	m.keys = append(m.keys, key)
	return nil
}

var uploads = config.UploadsConfig{AudioExtensions: []string{"mp3", "wav"}, MaxSizeMB: 1}

func TestTranscribe(t *testing.T) {
	backend := &stubBackend{text: "patient reports a mild ecg change. follow up next week"}
	up := &memUploader{}
	svc := New(uploads, WithTranscriber(backend), WithArchive(archive.New(up)))

	got, err := svc.Transcribe(context.Background(), "Visit.MP3", []byte("ID3"))
	require.NoError(t, err)
	assert.Equal(t, "Patient reports a mild ECG change. Follow up next week.", got.Transcription)
	assert.Equal(t, "audio/mpeg", backend.mimeType)
	require.Len(t, up.keys, 1)
	assert.Equal(t, up.keys[0], got.ArchiveKey)
	assert.True(t, strings.HasPrefix(got.ArchiveKey, "audio/"))
}

func TestTranscribe_Validation(t *testing.T) {
	svc := New(uploads, WithTranscriber(&stubBackend{text: "ok"}))
	ctx := context.Background()

	_, err := svc.Transcribe(ctx, "", []byte("x"))
	assert.ErrorIs(t, err, ErrNoFile)

	_, err = svc.Transcribe(ctx, "notes.txt", []byte("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "mp3, wav")

	_, err = svc.Transcribe(ctx, "noext", []byte("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = svc.Transcribe(ctx, "big.wav", make([]byte, 1<<20+1))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestTranscribe_NoBackend(t *testing.T) {
	_, err := New(uploads).Transcribe(context.Background(), "a.wav", []byte("RIFF"))
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestTranscribe_BackendFailures(t *testing.T) {
	ctx := context.Background()

	_, err := New(uploads, WithTranscriber(&stubBackend{err: errors.New("deadline exceeded")})).
		Transcribe(ctx, "a.wav", []byte("RIFF"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deadline exceeded")

	_, err = New(uploads, WithTranscriber(&stubBackend{text: "   "})).
		Transcribe(ctx, "a.wav", []byte("RIFF"))
	assert.ErrorIs(t, err, ErrEmptyTranscription)
}
