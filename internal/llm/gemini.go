package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/ascleon/ascleon-backend/internal/config"
)

// GeminiClient implements Generator and Embedder against the Gemini API.
type GeminiClient struct {
	client     *genai.Client
	genModel   string
	embedModel string
	embedDim   int32
	maxRetries int
}

func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiClient{
		client:     client,
		genModel:   cfg.GenerationModel,
		embedModel: cfg.EmbeddingModel,
		embedDim:   int32(cfg.EmbeddingDim),
		maxRetries: cfg.MaxRetries,
	}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	parts := []*genai.Part{{Text: req.Prompt}}
	if req.Inline != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: req.Inline.MIMEType, Data: req.Inline.Data},
		})
	}
	contents := []*genai.Content{{Role: genai.RoleUser, Parts: parts}}

	genCfg := &genai.GenerateContentConfig{}
	if req.Temperature > 0 {
		genCfg.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.MaxOutputTokens > 0 {
		genCfg.MaxOutputTokens = int32(req.MaxOutputTokens)
	}
	if req.JSONResponse {
		genCfg.ResponseMIMEType = "application/json"
	}

	var resp *genai.GenerateContentResponse
	err := c.withRetry(ctx, "generate", func() error {
		var err error
		resp, err = c.client.Models.GenerateContent(ctx, c.genModel, contents, genCfg)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	return fromGenerateResponse(resp), nil
}

func (c *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: text}},
	}}

	var resp *genai.EmbedContentResponse
	err := c.withRetry(ctx, "embed", func() error {
		var err error
		resp, err = c.client.Models.EmbedContent(ctx, c.embedModel, contents, &genai.EmbedContentConfig{
			OutputDimensionality: genai.Ptr(c.embedDim),
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}

	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}
	return resp.Embeddings[0].Values, nil
}

// withRetry runs fn up to maxRetries+1 times with quadratic backoff.
func (c *GeminiClient) withRetry(ctx context.Context, op string, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt*attempt) * 500 * time.Millisecond
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			slog.Debug("retrying gemini call", "op", op, "attempt", attempt)
		}

		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}
	return fmt.Errorf("all retries exhausted for %s: %w", op, lastErr)
}

func fromGenerateResponse(resp *genai.GenerateContentResponse) *GenerateResponse {
	out := &GenerateResponse{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return out
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.Text == "" {
			continue
		}
		out.Segments = append(out.Segments, Segment{Text: p.Text, Thought: p.Thought})
	}
	return out
}
