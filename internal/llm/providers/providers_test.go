// File path: internal/llm/providers/providers_test.go
package providers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/nicodishanthj/lqa-insight/internal/prompt"
)

func TestServiceErrorRendersEnvelope(t *testing.T) {
	err := &ServiceError{Status: "PERMISSION_DENIED", Code: 403, Message: "no access"}

	var decoded struct {
		Error struct {
			Status  string `json:"status"`
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(err.Error()), &decoded))
	assert.Equal(t, "PERMISSION_DENIED", decoded.Error.Status)
	assert.Equal(t, 403, decoded.Error.Code)
	assert.Equal(t, "no access", decoded.Error.Message)
}

func TestConstructorsRequireCredential(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), " ", "", "")
	assert.ErrorIs(t, err, ErrMissingCredential)
	_, err = NewOpenAIProvider("", "", "")
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestUnconfiguredProviderNamesVariable(t *testing.T) {
	p := NewUnconfiguredProvider("gemini", "GEMINI_API_KEY")
	_, err := p.Complete(context.Background(), Request{})
	require.ErrorIs(t, err, ErrMissingCredential)
	assert.Equal(t, "API key not found: set GEMINI_API_KEY", err.Error())
}

func TestGeminiSchemaKeepsOrderAndNullability(t *testing.T) {
	root := GeminiSchema(prompt.ResponseSchema())
	require.NotNil(t, root)
	assert.Equal(t, genai.TypeObject, root.Type)
	assert.Equal(t, []string{"meta", "quality_overview", "fix_list", "needs_context", "process_improvements"}, root.PropertyOrdering)

	item := root.Properties["fix_list"].Items
	require.NotNil(t, item)
	require.NotNil(t, item.Properties["dedup"].Nullable)
	assert.True(t, *item.Properties["dedup"].Nullable)
	assert.Nil(t, item.Properties["summary"].Nullable)
	assert.NotContains(t, item.Required, "missing_fields")
	assert.Equal(t, genai.TypeNumber, item.Properties["confidence"].Type)
	assert.Nil(t, GeminiSchema(nil))
}

func TestGeminiProviderCompletesAgainstServer(t *testing.T) {
	var calls atomic.Int32
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/test-model:generateContent"), r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"ok\":true}"}]}}]}`)
	}))
	defer srv.Close()

	p, err := NewGeminiProvider(context.Background(), "key", "test-model", srv.URL)
	require.NoError(t, err)

	out, err := p.Complete(context.Background(), Request{System: "sys", User: "user", Schema: prompt.ResponseSchema()})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)
	assert.Equal(t, int32(1), calls.Load())

	cfg, ok := body["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "application/json", cfg["responseMimeType"])
	assert.NotNil(t, cfg["responseSchema"])
	assert.NotNil(t, body["systemInstruction"])
}

func TestGeminiProviderMapsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":{"code":403,"message":"no access","status":"PERMISSION_DENIED"}}`)
	}))
	defer srv.Close()

	p, err := NewGeminiProvider(context.Background(), "key", "test-model", srv.URL)
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), Request{System: "sys", User: "user"})
	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr), "got %v", err)
	assert.Equal(t, 403, svcErr.Code)
	assert.Equal(t, "PERMISSION_DENIED", svcErr.Status)
	assert.Equal(t, "no access", svcErr.Message)
}

func TestGeminiProviderEmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":""}]}}]}`)
	}))
	defer srv.Close()

	p, err := NewGeminiProvider(context.Background(), "key", "test-model", srv.URL)
	require.NoError(t, err)
	_, err = p.Complete(context.Background(), Request{System: "sys", User: "user"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOpenAIProviderCompletesWithJSONSchema(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"{\"ok\":true}"}}]}`)
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("sk-test", "", srv.URL)
	require.NoError(t, err)

	out, err := p.Complete(context.Background(), Request{System: "sys", User: "user", Schema: prompt.ResponseSchema()})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)

	assert.Equal(t, DefaultOpenAIModel, body["model"])
	format, ok := body["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_schema", format["type"])
	messages, ok := body["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 2)
}

func TestOpenAIProviderDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"message":"boom","type":"server_error"}}`)
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("sk-test", "", srv.URL)
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), Request{System: "sys", User: "user"})
	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr), "got %v", err)
	assert.Equal(t, 500, svcErr.Code)
	assert.Equal(t, int32(1), calls.Load())
}
