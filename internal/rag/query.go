package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ascleon/ascleon-backend/internal/config"
	"github.com/ascleon/ascleon-backend/internal/llm"
	"github.com/ascleon/ascleon-backend/internal/models"
	"github.com/ascleon/ascleon-backend/internal/querylog"
	"github.com/ascleon/ascleon-backend/internal/vectorstore"
)

const fallbackAnswer = "Sorry, I could not generate a response."

// Searcher is the one vector-store operation the query path needs.
type Searcher interface {
	Search(ctx context.Context, embedding []float32, threshold float64, matchCount int) ([]vectorstore.Match, error)
}

// QueryLogger records completed interactions off the critical path.
type QueryLogger interface {
	LogAsync(entry querylog.Entry)
}

// AnswerCache serves and stores recent answers, best-effort.
type AnswerCache interface {
	Get(ctx context.Context, question, language, queryType string) (string, bool)
	Set(ctx context.Context, question, language, queryType, answer string)
}

// QueryService answers user questions. Retrieval context is an
// enhancement, never a precondition: embedding or search failures degrade
// to an uncontextualized answer.
type QueryService struct {
	gen      llm.Generator
	embedder llm.Embedder
	searcher Searcher
	logs     QueryLogger
	answers  AnswerCache

	topK               int
	medicalThreshold   float64
	emergencyThreshold float64
}

func NewQueryService(gen llm.Generator, embedder llm.Embedder, searcher Searcher, logs QueryLogger, answers AnswerCache, cfg config.RAGConfig) *QueryService {
	return &QueryService{
		gen:                gen,
		embedder:           embedder,
		searcher:           searcher,
		logs:               logs,
		answers:            answers,
		topK:               cfg.TopK,
		medicalThreshold:   cfg.MedicalThreshold,
		emergencyThreshold: cfg.EmergencyThreshold,
	}
}

type QueryRequest struct {
	Question  string
	Language  string
	QueryType string
	UserID    uuid.UUID
}

// Answer runs the full query sequence: embed, retrieve, assemble prompt,
// generate, then log the exchange fire-and-forget.
func (s *QueryService) Answer(ctx context.Context, req QueryRequest) (string, error) {
	language := normalizeLanguage(req.Language)
	queryType := normalizeQueryType(req.QueryType)

	if answer, ok := s.cachedAnswer(ctx, req.Question, language, queryType); ok {
		s.logs.LogAsync(querylog.Entry{
			UserID:    req.UserID,
			Question:  req.Question,
			Answer:    answer,
			Language:  language,
			QueryType: queryType,
		})
		return answer, nil
	}

	contextChunks := s.retrieve(ctx, req.Question, queryType)

	prompt := BuildSystemPrompt(language, contextChunks)
	resp, err := s.gen.Generate(ctx, llm.GenerateRequest{
		Prompt:          fmt.Sprintf("%s\n\nQuestion: %s", prompt, req.Question),
		Temperature:     0.3,
		MaxOutputTokens: 800,
	})
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}

	answer := strings.TrimSpace(resp.FinalText())
	if answer == "" {
		answer = fallbackAnswer
	}

	s.logs.LogAsync(querylog.Entry{
		UserID:    req.UserID,
		Question:  req.Question,
		Answer:    answer,
		Language:  language,
		QueryType: queryType,
	})
	// The apology is a transient outcome, not an answer worth serving for
	// the cache TTL.
	if s.answers != nil && answer != fallbackAnswer {
		s.answers.Set(ctx, req.Question, language, queryType, answer)
	}

	return answer, nil
}

func (s *QueryService) cachedAnswer(ctx context.Context, question, language, queryType string) (string, bool) {
	if s.answers == nil {
		return "", false
	}
	answer, ok := s.answers.Get(ctx, question, language, queryType)
	if !ok || answer == fallbackAnswer {
		return "", false
	}
	return answer, true
}

// retrieve embeds the question and fetches similar chunks. Any failure
// along the way means answering without context.
func (s *QueryService) retrieve(ctx context.Context, question, queryType string) []string {
	vec, err := s.embedder.Embed(ctx, question)
	if err != nil || len(vec) == 0 {
		slog.Warn("query embedding failed, answering without context", "error", err)
		return nil
	}

	threshold := s.medicalThreshold
	if queryType == models.QueryTypeEmergency {
		threshold = s.emergencyThreshold
	}

	matches, err := s.searcher.Search(ctx, vec, threshold, s.topK)
	if err != nil {
		slog.Warn("vector search failed, answering without context", "error", err)
		return nil
	}

	texts := make([]string, len(matches))
	for i, m := range matches {
		texts[i] = m.Text
	}
	return texts
}

func normalizeLanguage(language string) string {
	switch language {
	case "en", "hi", "mr":
		return language
	default:
		return "en"
	}
}

func normalizeQueryType(queryType string) string {
	if queryType == models.QueryTypeEmergency {
		return models.QueryTypeEmergency
	}
	return models.QueryTypeMedical
}
