package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ascleon/ascleon-backend/internal/llm"
	"github.com/ascleon/ascleon-backend/pkg/textextract"
)

// ErrNoText means neither the remote model nor the local text layer
// produced any usable text. Fatal to the ingestion run.
var ErrNoText = errors.New("no text extracted from document")

const extractionPrompt = "Extract all text content from this PDF document. " +
	"Return only the extracted text without any commentary."

// Extractor turns a PDF payload into plain text. The multimodal model does
// the heavy lifting; the embedded PDF text layer is the fallback when the
// remote call fails or returns nothing.
type Extractor struct {
	gen llm.Generator
}

func NewExtractor(gen llm.Generator) *Extractor {
	return &Extractor{gen: gen}
}

func (e *Extractor) Extract(ctx context.Context, data []byte) (string, error) {
	resp, err := e.gen.Generate(ctx, llm.GenerateRequest{
		Prompt:          extractionPrompt,
		Inline:          &llm.InlineData{MIMEType: "application/pdf", Data: data},
		Temperature:     0.1,
		MaxOutputTokens: 8000,
	})
	if err != nil {
		slog.Warn("remote extraction failed, trying local text layer", "error", err)
		return e.extractLocal(data)
	}

	text := strings.TrimSpace(resp.FinalText())
	if text == "" {
		slog.Warn("remote extraction returned no text, trying local text layer")
		return e.extractLocal(data)
	}
	return text, nil
}

func (e *Extractor) extractLocal(data []byte) (string, error) {
	text, err := textextract.PDF(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNoText, err)
	}
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}
