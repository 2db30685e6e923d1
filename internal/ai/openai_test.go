package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarship-portal/internal/model"
)

func fakeChat(t *testing.T, reply string, gotReq *map[string]any) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		if gotReq != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(gotReq))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": reply}}},
		})
	}))
	t.Cleanup(srv.Close)
	c, err := NewOpenAI(Config{APIKey: "test", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)
	return c
}

func TestNewOpenAI_RequiresModel(t *testing.T) {
	_, err := NewOpenAI(Config{APIKey: "k"})
	assert.ErrorIs(t, err, ErrNoModel)
}

func TestSuggest(t *testing.T) {
	long := strings.Repeat("a", 300)
	var req map[string]any
	c := fakeChat(t, `{"excerpt":"`+long+`","meta_description":"Study in Germany with DAAD","meta_keywords":"daad, germany"}`, &req)

	s, err := c.Suggest(context.Background(), "DAAD", "<p>Full funding</p>")
	require.NoError(t, err)
	assert.Len(t, []rune(s.Excerpt), maxExcerpt)
	assert.True(t, strings.HasSuffix(s.Excerpt, "..."))
	assert.Equal(t, "Study in Germany with DAAD", s.MetaDescription)
	assert.Equal(t, "daad, germany", s.MetaKeywords)

	format, ok := req["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_object", format["type"])
}

func TestSuggest_BadJSON(t *testing.T) {
	c := fakeChat(t, "not json", nil)
	_, err := c.Suggest(context.Background(), "DAAD", "")
	assert.Error(t, err)
}

func TestSummarizeDigest(t *testing.T) {
	c := fakeChat(t, "  Three new fully funded programs this week.  ", nil)
	out, err := c.SummarizeDigest(context.Background(), []model.Post{{Title: "DAAD", Country: &model.Country{Name: "Germany"}}}, "")
	require.NoError(t, err)
	assert.Equal(t, "Three new fully funded programs this week.", out)

	out, err = c.SummarizeDigest(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Empty(t, out)
}
