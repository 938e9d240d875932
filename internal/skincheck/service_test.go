package skincheck

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ascleon/ascleon-backend/internal/llm"
	"github.com/ascleon/ascleon-backend/internal/models"
	"github.com/ascleon/ascleon-backend/internal/querylog"
)

type fakeGenerator struct {
	text    string
	err     error
	lastReq llm.GenerateRequest
}

func (f *fakeGenerator) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.GenerateResponse{Segments: []llm.Segment{{Text: f.text}}}, nil
}

type fakeLogger struct {
	entries []querylog.Entry
}

func (f *fakeLogger) LogAsync(e querylog.Entry) {
	f.entries = append(f.entries, e)
}

func testImage() string {
	return base64.StdEncoding.EncodeToString([]byte("fake image bytes"))
}

func TestAnalyzeParsesModelJSON(t *testing.T) {
	gen := &fakeGenerator{text: `{"condition":"Possible fungal infection","severity":"Mild","careSteps":["Keep dry"],"disclaimer":"Not a diagnosis."}`}
	logs := &fakeLogger{}
	svc := NewService(gen, logs)

	triage, err := svc.Analyze(context.Background(), AnalyzeRequest{Image: testImage(), Language: "en"})
	require.NoError(t, err)

	assert.Equal(t, "Possible fungal infection", triage.Condition)
	assert.Equal(t, "Mild", triage.Severity)
	assert.True(t, gen.lastReq.JSONResponse)

	require.Len(t, logs.entries, 1)
	assert.Equal(t, models.QueryTypeSkin, logs.entries[0].QueryType)
	assert.Equal(t, "Skin condition analysis", logs.entries[0].Question)
}

func TestAnalyzeMalformedJSONFallsBackToSafeDefault(t *testing.T) {
	gen := &fakeGenerator{text: "This looks like it might be eczema, but"}
	svc := NewService(gen, &fakeLogger{})

	triage, err := svc.Analyze(context.Background(), AnalyzeRequest{Image: testImage(), Language: "en"})
	require.NoError(t, err)

	assert.Equal(t, "Moderate", triage.Severity)
	assert.Contains(t, triage.Condition, "eczema")
	assert.NotEmpty(t, triage.CareSteps)
	assert.Contains(t, triage.Disclaimer, "NOT a medical diagnosis")
}

func TestAnalyzeDataURLImage(t *testing.T) {
	gen := &fakeGenerator{text: `{"condition":"x","severity":"Urgent","careSteps":["go to clinic"],"disclaimer":"d"}`}
	svc := NewService(gen, &fakeLogger{})

	image := "data:image/png;base64," + testImage()
	_, err := svc.Analyze(context.Background(), AnalyzeRequest{Image: image, Language: "en"})
	require.NoError(t, err)

	require.NotNil(t, gen.lastReq.Inline)
	assert.Equal(t, "image/png", gen.lastReq.Inline.MIMEType)
	assert.Equal(t, []byte("fake image bytes"), gen.lastReq.Inline.Data)
}

func TestAnalyzeUnknownLanguageFallsBackToEnglish(t *testing.T) {
	gen := &fakeGenerator{text: `{"condition":"x","severity":"Mild","careSteps":["a"],"disclaimer":"d"}`}
	logs := &fakeLogger{}
	svc := NewService(gen, logs)

	_, err := svc.Analyze(context.Background(), AnalyzeRequest{Image: testImage(), Language: "xx"})
	require.NoError(t, err)

	assert.Contains(t, gen.lastReq.Prompt, "AI medical triage assistant")
	require.Len(t, logs.entries, 1)
	assert.Equal(t, "en", logs.entries[0].Language)
}

func TestAnalyzeMissingImage(t *testing.T) {
	svc := NewService(&fakeGenerator{}, &fakeLogger{})
	_, err := svc.Analyze(context.Background(), AnalyzeRequest{Language: "en"})
	require.Error(t, err)
}

func TestAnalyzeModelFailureIsAnError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unreachable")}
	logs := &fakeLogger{}
	svc := NewService(gen, logs)

	_, err := svc.Analyze(context.Background(), AnalyzeRequest{Image: testImage(), Language: "en"})
	require.Error(t, err)
	assert.Empty(t, logs.entries)
}
