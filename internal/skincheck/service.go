package skincheck

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ascleon/ascleon-backend/internal/llm"
	"github.com/ascleon/ascleon-backend/internal/models"
	"github.com/ascleon/ascleon-backend/internal/querylog"
)

// Triage is the structured result of a skin-image analysis. It is guidance
// for seeking care, never a diagnosis.
type Triage struct {
	Condition  string   `json:"condition"`
	Severity   string   `json:"severity"` // Mild, Moderate or Urgent
	CareSteps  []string `json:"careSteps"`
	Disclaimer string   `json:"disclaimer"`
}

// QueryLogger records completed interactions off the critical path.
type QueryLogger interface {
	LogAsync(entry querylog.Entry)
}

type Service struct {
	gen  llm.Generator
	logs QueryLogger
}

func NewService(gen llm.Generator, logs QueryLogger) *Service {
	return &Service{gen: gen, logs: logs}
}

type AnalyzeRequest struct {
	Image    string // raw base64 or data URL
	Language string
	UserID   uuid.UUID
}

// Analyze sends the image to the vision model and parses its JSON triage.
// Unparseable model output degrades to a safe default rather than an
// error.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (*Triage, error) {
	if req.Image == "" {
		return nil, fmt.Errorf("image is required")
	}

	data, mimeType, err := decodeImage(req.Image)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	language := req.Language
	prompt, ok := triagePrompts[language]
	if !ok {
		language = "en"
		prompt = triagePrompts["en"]
	}

	resp, err := s.gen.Generate(ctx, llm.GenerateRequest{
		Prompt:          prompt + "\n\nAnalyze this skin condition and provide triage information.",
		Inline:          &llm.InlineData{MIMEType: mimeType, Data: data},
		Temperature:     0.3,
		MaxOutputTokens: 500,
		JSONResponse:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze image: %w", err)
	}

	triage := parseTriage(resp.FinalText())

	answer, _ := json.Marshal(triage)
	s.logs.LogAsync(querylog.Entry{
		UserID:    req.UserID,
		Question:  "Skin condition analysis",
		Answer:    string(answer),
		Language:  language,
		QueryType: models.QueryTypeSkin,
	})

	return triage, nil
}

// parseTriage falls back to a hardcoded safe response when the model
// returns something other than the requested JSON shape.
func parseTriage(text string) *Triage {
	var triage Triage
	if err := json.Unmarshal([]byte(text), &triage); err != nil || triage.Severity == "" {
		return defaultTriage(text)
	}
	return &triage
}

func defaultTriage(condition string) *Triage {
	if strings.TrimSpace(condition) == "" {
		condition = "Unable to assess the image"
	}
	return &Triage{
		Condition: condition,
		Severity:  "Moderate",
		CareSteps: []string{
			"Keep the area clean and dry",
			"Avoid scratching or touching the affected area",
			"Consult a healthcare professional for proper evaluation",
		},
		Disclaimer: "This is NOT a medical diagnosis. Please consult a qualified healthcare professional for proper evaluation and treatment.",
	}
}

// decodeImage accepts either a data URL or bare base64 and returns the
// payload with its MIME type (default image/jpeg).
func decodeImage(image string) ([]byte, string, error) {
	mimeType := "image/jpeg"
	payload := image

	if strings.HasPrefix(image, "data:") {
		head, rest, found := strings.Cut(image, ",")
		if !found {
			return nil, "", fmt.Errorf("invalid data URL")
		}
		payload = rest
		if mt, _, _ := strings.Cut(strings.TrimPrefix(head, "data:"), ";"); mt != "" {
			mimeType = mt
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 image data: %w", err)
	}
	return data, mimeType, nil
}
