package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const (
	defaultModel        = "gemini-2.0-flash"
	defaultTemperature  = 0.4
	defaultHistoryLimit = 10
	defaultApology      = "Sorry, I couldn't settle on a move for this position."
)

// Suggestion is the advisor's structured answer: one move in SAN or
// coordinate notation plus a short rationale. A zero Move with a
// non-empty Explanation is the soft-failure sentinel.
type Suggestion struct {
	Move        string `json:"move"`
	Explanation string `json:"explanation"`
}

type Config struct {
	APIKey       string
	Model        string
	Temperature  float32
	HistoryLimit int
	Apology      string
}

// generator is the slice of *genai.GenerativeModel the advisor needs;
// tests satisfy it with a fake.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Advisor asks the Gemini service for one move suggestion at a time.
// Responses are schema-constrained JSON; anything that still fails to
// parse is converted to the soft-failure sentinel rather than an error,
// so a bad model answer can never take the session down.
type Advisor struct {
	client       *genai.Client
	model        generator
	historyLimit int
	apology      string
	logger       *zap.Logger
}

func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Advisor, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	modelName := strings.TrimSpace(cfg.Model)
	if modelName == "" {
		modelName = defaultModel
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	model := client.GenerativeModel(modelName)
	model.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   suggestionSchema(),
		Temperature:      ptrFloat32(temperature),
	}

	return &Advisor{
		client:       client,
		model:        model,
		historyLimit: normalizeHistoryLimit(cfg.HistoryLimit),
		apology:      normalizeApology(cfg.Apology),
		logger:       logger,
	}, nil
}

func (a *Advisor) Close() error {
	if a == nil || a.client == nil {
		return nil
	}
	return a.client.Close()
}

// SuggestMove requests one suggestion for the position. Transport and
// service failures are returned as errors; a response that does not
// conform to the two-field schema yields the sentinel with a nil error.
func (a *Advisor) SuggestMove(ctx context.Context, fen string, history []string) (Suggestion, error) {
	prompt := buildPrompt(fen, trimHistory(history, a.historyLimit))

	resp, err := a.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return Suggestion{}, fmt.Errorf("generate move suggestion: %w", err)
	}

	payload, ok := firstText(resp)
	if !ok {
		a.logger.Warn("advisor response carried no text part", zap.String("fen", fen))
		return a.softFailure(), nil
	}

	var sug Suggestion
	if err := json.Unmarshal([]byte(payload), &sug); err != nil {
		a.logger.Warn("advisor response was not valid JSON",
			zap.String("fen", fen),
			zap.String("payload", payload),
			zap.Error(err),
		)
		return a.softFailure(), nil
	}
	if strings.TrimSpace(sug.Move) == "" || strings.TrimSpace(sug.Explanation) == "" {
		a.logger.Warn("advisor response missed a required field",
			zap.String("fen", fen),
			zap.String("payload", payload),
		)
		return a.softFailure(), nil
	}

	a.logger.Info("advisor suggestion received",
		zap.String("fen", fen),
		zap.String("move", sug.Move),
	)
	return sug, nil
}

func (a *Advisor) softFailure() Suggestion {
	return Suggestion{Move: "", Explanation: a.apology}
}

func suggestionSchema() *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeObject,
		Description: "A single chess move suggestion with its rationale.",
		Properties: map[string]*genai.Schema{
			"move": {
				Type:        genai.TypeString,
				Description: "The move to play, in Standard Algebraic Notation (e.g. 'Nf3', 'O-O', 'e8=Q+') or coordinate notation (e.g. 'e2e4').",
			},
			"explanation": {
				Type:        genai.TypeString,
				Description: "One or two sentences on why this move is strong.",
			},
		},
		Required: []string{"move", "explanation"},
	}
}

func firstText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", false
	}
	text, ok := content.Parts[0].(genai.Text)
	if !ok {
		return "", false
	}
	return string(text), true
}

func trimHistory(history []string, limit int) []string {
	if limit <= 0 || len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}

func normalizeHistoryLimit(limit int) int {
	if limit <= 0 {
		return defaultHistoryLimit
	}
	return limit
}

func normalizeApology(text string) string {
	if strings.TrimSpace(text) == "" {
		return defaultApology
	}
	return text
}

func ptrFloat32(f float32) *float32 {
	return &f
}
