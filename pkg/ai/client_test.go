package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"lessonplan/config"
	"lessonplan/pkg/apperr"
	"lessonplan/pkg/plan/types"
)

func TestToGenAISchema(t *testing.T) {
	gs := toGenAISchema(types.LessonPlanSchema())

	require.Equal(t, genai.TypeObject, gs.Type)
	assert.Equal(t, []string{"sitesFerramentas", "unidadeConteudo", "unidadeObjetivos", "aulas"}, gs.PropertyOrdering)
	assert.Equal(t, gs.PropertyOrdering, gs.Required)

	lesson := gs.Properties["aulas"].Items
	require.NotNil(t, lesson)
	assert.Equal(t, genai.TypeArray, gs.Properties["aulas"].Type)
	assert.Equal(t, genai.TypeInteger, lesson.Properties["aula"].Type)
	assert.Equal(t, genai.TypeString, lesson.Properties["objetivos"].Items.Type)
	assert.Nil(t, toGenAISchema(nil))
}

func TestToJSONSchemaIsStrict(t *testing.T) {
	js := toJSONSchema(types.LessonPlanSchema())

	assert.Equal(t, "object", js["type"])
	assert.Equal(t, false, js["additionalProperties"])
	assert.Equal(t, []string{"sitesFerramentas", "unidadeConteudo", "unidadeObjetivos", "aulas"}, js["required"])

	aulas := js["properties"].(map[string]any)["aulas"].(map[string]any)
	assert.Equal(t, "array", aulas["type"])
	lesson := aulas["items"].(map[string]any)
	assert.Equal(t, false, lesson["additionalProperties"])
	aula := lesson["properties"].(map[string]any)["aula"].(map[string]any)
	assert.Equal(t, "integer", aula["type"])
}

func TestOpenAIGenerateJSON(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = io.WriteString(w, `{"choices":[{"message":{"content":"{\"aulas\":[]}"}}]}`)
	}))
	defer srv.Close()

	c := NewOpenAI(srv.URL+"/", "sk-test", "gpt-4o-mini", 0.2)
	out, err := c.GenerateJSON(context.Background(), "prompt text", types.LessonPlanSchema())
	require.NoError(t, err)
	assert.Equal(t, `{"aulas":[]}`, out)
	assert.Equal(t, "gpt-4o-mini", c.Model())

	assert.Equal(t, "gpt-4o-mini", got["model"])
	assert.InDelta(t, 0.2, got["temperature"], 1e-6)
	rf := got["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", rf["type"])
	msgs := got["messages"].([]any)
	assert.Equal(t, "prompt text", msgs[1].(map[string]any)["content"])
}

func TestOpenAIErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":"quota"}`)
	}))
	defer srv.Close()

	_, err := NewOpenAI(srv.URL, "k", "m", 0.2).GenerateJSON(context.Background(), "p", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota")
}

func TestOpenAINoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	_, err := NewOpenAI(srv.URL, "k", "m", 0.2).GenerateJSON(context.Background(), "p", nil)
	assert.EqualError(t, err, "no choices")
}

func TestGeminiGenerateJSON(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.5-flash:generateContent"), r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"aulas\":[]}"}]}}]}`)
	}))
	defer srv.Close()

	c, err := newGemini(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL + "/"},
	}, "", 0.2)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", c.Model())

	out, err := c.GenerateJSON(context.Background(), "prompt", types.LessonPlanSchema())
	require.NoError(t, err)
	assert.Equal(t, `{"aulas":[]}`, out)

	gc, ok := body["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig missing: %v", body)
	assert.Equal(t, "application/json", gc["responseMimeType"])
	assert.NotNil(t, gc["responseSchema"])
}

func TestGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "", 0.2)
	assert.ErrorIs(t, err, apperr.ErrConfiguration)
}

func TestMockFollowsLessonMarkers(t *testing.T) {
	prompt := "Descritores:\nD10: Reconhecer repetição.\n---\nRoteiro:\nAula 1 - intro\nbla\nAULA 2: luzes\nAula 1 de novo"
	raw, err := NewMock().GenerateJSON(context.Background(), prompt, nil)
	require.NoError(t, err)

	var out struct {
		Aulas []struct {
			Aula        int `json:"aula"`
			Descritores []struct {
				ID string `json:"id"`
			} `json:"descritores"`
		} `json:"aulas"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	require.Len(t, out.Aulas, 2)
	assert.Equal(t, 1, out.Aulas[0].Aula)
	assert.Equal(t, 2, out.Aulas[1].Aula)
	assert.Equal(t, "D10", out.Aulas[0].Descritores[0].ID)
}

func TestMockIgnoresMarkersOutsideTranscript(t *testing.T) {
	prompt := "Habilidades: aula 7 de revisão\nD10: Usar na aula 9.\n" +
		types.TranscriptHeading + "\n---\nEncontro 1: abertura\n---\nResponda."
	raw, err := NewMock().GenerateJSON(context.Background(), prompt, nil)
	require.NoError(t, err)

	var out struct {
		Aulas []struct {
			Aula int `json:"aula"`
		} `json:"aulas"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	require.Len(t, out.Aulas, 1)
	assert.Equal(t, 1, out.Aulas[0].Aula)
}

func TestMockHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMock().GenerateJSON(ctx, "Aula 1", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSelectsBackend(t *testing.T) {
	c, err := New(context.Background(), config.AppConfig{LLMProvider: config.ProviderMock})
	require.NoError(t, err)
	assert.Equal(t, "mock", c.Model())

	c, err = New(context.Background(), config.AppConfig{LLMProvider: config.ProviderOpenAI, LLMAPIKey: "k", LLMEndpoint: "http://x", LLMModel: "m"})
	require.NoError(t, err)
	assert.Equal(t, "m", c.Model())

	_, err = New(context.Background(), config.AppConfig{LLMProvider: config.ProviderGemini})
	assert.ErrorIs(t, err, apperr.ErrConfiguration)
}
