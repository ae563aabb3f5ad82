package chatbot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	reply  string
	err    error
	prompt string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.reply, g.err
}

func TestReply_Topics(t *testing.T) {
	svc := New()

	tests := []struct {
		message string
		heading string
	}{
		{"I have a terrible HEADACHE", "About Headaches"},
		{"my kid has a fever", "Cold & Flu Management"},
		{"what should I eat?", "Healthy Eating Guidelines"},
		{"I feel tired all day", "Sleep Hygiene Tips"},
		{"work makes me nervous", "Managing Stress and Anxiety"},
		{"hello", "I can help with topics like:"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got, err := svc.Reply(context.Background(), tt.message)
			require.NoError(t, err)
			assert.True(t, got.IsHTML)
			assert.Contains(t, got.Response, tt.heading)
		})
	}
}

func TestReply_EmptyMessage(t *testing.T) {
	_, err := New().Reply(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestReply_Generated(t *testing.T) {
	gen := &stubGenerator{reply: "```html\n<p>Get some Rest.</p>\n```"}
	svc := New(WithGenerator(gen))

	got, err := svc.Reply(context.Background(), "how do I recover?")
	require.NoError(t, err)
	assert.Equal(t, "\n<p>Get some <b>Rest</b>.</p>\n", got.Response)
	assert.True(t, strings.HasPrefix(gen.prompt, "You are a helpful"))
	assert.Contains(t, gen.prompt, "User: how do I recover?")
}

func TestReply_GeneratorErrors(t *testing.T) {
	got, err := New(WithGenerator(&stubGenerator{err: errors.New("Error 429: Quota exceeded")})).
		Reply(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, busyReply, got.Response)

	got, err = New(WithGenerator(&stubGenerator{err: errors.New("connection reset")})).
		Reply(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, failureReply, got.Response)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain paragraphs", "Drink Water.\n\nSleep well.", "<p>Drink <b>Water</b>.</p><p><b>Sleep</b> well.</p>"},
		{"bullet list", "Tips:\n\n* Rest often\n* Eat fruit", "<p>Tips:</p><ul><li><b>Rest</b> often</li><li>Eat fruit</li></ul>"},
		{"already html", "<ul><li>Diet</li></ul>", "<ul><li><b>Diet</b></li></ul>"},
		{"whitespace only", "  ", "<p>  </p>"},
		{"lowercase keyword untouched", "<p>rest</p>", "<p>rest</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}
