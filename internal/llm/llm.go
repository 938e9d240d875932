package llm

import (
	"context"
	"strings"
)

// Generator produces text (optionally conditioned on inline binary data,
// e.g. a PDF or an image) from the generative-language API.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// Embedder converts text into a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// InlineData is a binary payload sent alongside the prompt.
type InlineData struct {
	MIMEType string
	Data     []byte
}

type GenerateRequest struct {
	Prompt          string
	Inline          *InlineData
	Temperature     float64
	MaxOutputTokens int
	JSONResponse    bool // ask the model for application/json output
}

// Segment is one part of a model response. Reasoning ("thought") segments
// are tagged by the model and must never reach users or stored text.
type Segment struct {
	Text    string
	Thought bool
}

type GenerateResponse struct {
	Segments []Segment
}

// FinalText concatenates the non-thought segments in order. Thought
// segments are discarded entirely, never merged.
func (r *GenerateResponse) FinalText() string {
	var sb strings.Builder
	for _, s := range r.Segments {
		if s.Thought {
			continue
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}
