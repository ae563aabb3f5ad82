package archive

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUploader struct {
	keys  []string
	types []string
	body  []byte
	err   error
}

func (m *memUploader) Upload(_ context.Context, key, contentType string, body io.Reader, _ int64) error {
	if m.err != nil {
		return m.err
	}
	m.keys = append(m.keys, key)
	m.types = append(m.types, contentType)
	b, err := io.ReadAll(body)
	m.body = b
	return err
}

func TestStore(t *testing.T) {
	up := &memUploader{}
	svc := New(up)
	require.True(t, svc.Enabled())

	got, err := svc.Store(context.Background(), KindReport, "Lipids.PDF", []byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.True(t, strings.HasPrefix(got.Key, "reports/"))
	assert.True(t, strings.HasSuffix(got.Key, ".pdf"))
	assert.Equal(t, "application/pdf", got.MimeType)
	assert.Equal(t, int64(8), got.Size)
	assert.Equal(t, []string{got.Key}, up.keys)
	assert.Equal(t, "%PDF-1.4", string(up.body))
}

func TestStore_Disabled(t *testing.T) {
	svc := New(nil)
	assert.False(t, svc.Enabled())

	got, err := svc.Store(context.Background(), KindAudio, "visit.wav", []byte("RIFF"))
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_UploadError(t *testing.T) {
	svc := New(&memUploader{err: errors.New("bucket gone")})

	_, err := svc.Store(context.Background(), KindAudio, "visit.wav", []byte("RIFF"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket gone")
}

func TestKey(t *testing.T) {
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	key := Key(KindAudio, "Visit.MP3", at)
	assert.True(t, strings.HasPrefix(key, "audio/2024/03/"), key)
	assert.True(t, strings.HasSuffix(key, ".mp3"), key)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/octet-stream", ContentType("blob"))
	assert.Equal(t, "application/pdf", ContentType("x.pdf"))
}
