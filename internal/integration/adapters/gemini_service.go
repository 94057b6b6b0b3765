package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/commitly/backend/internal/application/adapter"
)

const maxEncouragementLength = 280

// ErrEmptyEncouragement is returned when the model answers with no text.
var ErrEmptyEncouragement = errors.New("empty encouragement response")

// GeminiConfig configures the Gemini encouragement service.
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// GeminiService implements adapter.EncouragementService using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
	timeout   time.Duration
	generate  func(ctx context.Context, prompt string) (string, error)
}

// NewEncouragementService returns a Gemini-backed service when an API key is configured
// and a fixed-phrase composer otherwise.
func NewEncouragementService(cfg GeminiConfig) adapter.EncouragementService {
	if cfg.APIKey == "" {
		slog.Info("Gemini API key not configured, using static encouragement messages")
		return NewStaticEncouragement()
	}
	return NewGeminiService(cfg)
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(cfg GeminiConfig) *GeminiService {
	s := &GeminiService{
		apiKey:    cfg.APIKey,
		modelName: cfg.Model,
		timeout:   cfg.Timeout,
	}
	s.generate = s.generateContent
	return s
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Compose asks the model for a short congratulation. The call is bounded by the configured timeout.
func (s *GeminiService) Compose(ctx context.Context, input adapter.EncouragementInput) (string, error) {
	if !s.IsAvailable() {
		return "", fmt.Errorf("gemini service is not configured")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.generate(ctx, buildEncouragementPrompt(input))
	if err != nil {
		return "", fmt.Errorf("failed to generate encouragement: %w", err)
	}

	message := cleanEncouragement(text)
	if message == "" {
		return "", ErrEmptyEncouragement
	}
	return message, nil
}

func (s *GeminiService) generateContent(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.9)
	model.SetMaxOutputTokens(120)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return responseText(resp), nil
}

func buildEncouragementPrompt(input adapter.EncouragementInput) string {
	var sb strings.Builder

	sb.WriteString("You write short encouragement messages for a habit tracking app.\n")
	sb.WriteString("Write one or two friendly sentences congratulating the user on their streak.\n")
	sb.WriteString("Do not use hashtags, emojis or quotation marks. Answer with the message only.\n\n")
	fmt.Fprintf(&sb, "User: %s\n", input.OwnerName)
	fmt.Fprintf(&sb, "Goal: %s\n", input.GoalTitle)
	fmt.Fprintf(&sb, "Streak: %d days in a row\n", input.Streak)

	return sb.String()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}

// cleanEncouragement collapses whitespace, strips wrapping quotes and caps the length on a rune boundary.
func cleanEncouragement(text string) string {
	message := strings.Join(strings.Fields(text), " ")
	message = strings.Trim(message, "\"'`")
	message = strings.TrimSpace(message)

	runes := []rune(message)
	if len(runes) > maxEncouragementLength {
		message = strings.TrimSpace(string(runes[:maxEncouragementLength-3])) + "..."
	}
	return message
}

// StaticEncouragement picks a fixed phrase by streak length.
type StaticEncouragement struct{}

// NewStaticEncouragement creates the fallback composer.
func NewStaticEncouragement() *StaticEncouragement {
	return &StaticEncouragement{}
}

// IsAvailable is always true.
func (s *StaticEncouragement) IsAvailable() bool {
	return true
}

// Compose returns a canned message.
func (s *StaticEncouragement) Compose(_ context.Context, input adapter.EncouragementInput) (string, error) {
	switch {
	case input.Streak >= 365:
		return fmt.Sprintf("A full year of %s. That is remarkable, keep going!", input.GoalTitle), nil
	case input.Streak >= 100:
		return fmt.Sprintf("%d days of %s. You are in rare company!", input.Streak, input.GoalTitle), nil
	case input.Streak >= 30:
		return fmt.Sprintf("%d days in a row. %s is becoming a habit!", input.Streak, input.GoalTitle), nil
	default:
		return fmt.Sprintf("%d days in a row, nice work on %s!", input.Streak, input.GoalTitle), nil
	}
}
