package chatbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Alijeyrad/health_companion/pkg/observability"
)

var ErrEmptyMessage = errors.New("message is required")

const systemPrompt = "You are a helpful, friendly health assistant chatbot who gives assurance and strength to users. " +
	"You provide general health information and advice, such as tips for managing common symptoms, " +
	"improving wellness, maintaining a healthy lifestyle, and addressing mental health concerns. " +
	"If a user asks for medical advice or symptoms that may require professional diagnosis, " +
	"always recommend they consult a healthcare provider. " +
	"Be empathetic, clear, and concise in your responses." +
	"\n\nIMPORTANT FORMATTING INSTRUCTIONS: Format your responses using structured HTML. Use:" +
	"\n- <p> tags for paragraphs" +
	"\n- <b> or <strong> tags for emphasis" +
	"\n- <ul> and <li> tags for lists of items" +
	"\n- <h4> tags for small headings within your response" +
	"\nWhen listing multiple items like symptoms or tips, ALWAYS use <ul> and <li> tags."

const (
	busyReply    = "<p>I'm currently experiencing high demand. Please try again in a few minutes.</p>"
	failureReply = "<p>Sorry, I couldn't process that right now. Please try again later.</p>"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type Reply struct {
	Response string `json:"response"`
	IsHTML   bool   `json:"is_html"`
}

// Generator is the text backend, satisfied by *gemini.Client.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

type Service interface {
	Reply(ctx context.Context, message string) (*Reply, error)
}

type Option func(*chatbotService)

func WithGenerator(g Generator) Option {
	return func(s *chatbotService) { s.gen = g }
}

type chatbotService struct {
	gen Generator
}

// New answers from canned topics unless a generator is supplied.
func New(opts ...Option) Service {
	s := &chatbotService{}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *chatbotService) Reply(ctx context.Context, message string) (*Reply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}
	if s.gen == nil {
		return &Reply{Response: topicReply(message), IsHTML: true}, nil
	}

	prompt := fmt.Sprintf("%s\n\nUser: %s\n\nPlease format your response with proper HTML.", systemPrompt, message)
	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		slog.WarnContext(ctx, "chatbot: generation failed", "err", err)
		observability.CountGeneratorError(ctx, "chatbot")
		return &Reply{Response: failureMessage(err), IsHTML: true}, nil
	}
	return &Reply{Response: Format(text), IsHTML: true}, nil
}

// ---------------------------------------------------------------------------
// Formatting
// ---------------------------------------------------------------------------

var (
	codeFence   = regexp.MustCompile("```html|```")
	listLine    = regexp.MustCompile(`(?m)^\s*[*-]`)
	listBullet  = regexp.MustCompile(`\s*[*-]\s+`)
	keywordBold = regexp.MustCompile(`\b(Rest|Hydration|Diet|Exercise|Sleep|Water|Medication)\b`)
)

// Format turns a model reply into HTML. Replies that already carry
// paragraph or list markup are only stripped of code fences.
func Format(reply string) string {
	reply = codeFence.ReplaceAllString(reply, "")

	if !strings.Contains(reply, "<p>") && !strings.Contains(reply, "<li>") {
		var b strings.Builder
		for _, para := range strings.Split(reply, "\n\n") {
			if strings.TrimSpace(para) == "" {
				continue
			}
			if !listLine.MatchString(para) {
				b.WriteString("<p>" + para + "</p>")
				continue
			}
			b.WriteString("<ul>")
			for _, item := range listBullet.Split(para, -1) {
				if item = strings.TrimSpace(item); item != "" {
					b.WriteString("<li>" + item + "</li>")
				}
			}
			b.WriteString("</ul>")
		}
		if b.Len() == 0 {
			reply = "<p>" + reply + "</p>"
		} else {
			reply = b.String()
		}
	}

	return keywordBold.ReplaceAllString(reply, "<b>$1</b>")
}

func failureMessage(err error) string {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") || strings.Contains(msg, "quota") {
		return busyReply
	}
	return failureReply
}
