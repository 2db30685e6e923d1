package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"scholarship-portal/internal/listing"
	"scholarship-portal/internal/model"
)

// Suggestion is the SEO copy proposed for a scholarship draft.
type Suggestion struct {
	Excerpt         string `json:"excerpt"`
	MetaDescription string `json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords"`
}

// Writer defines the AI copywriting used by the admin editor and the
// digest builder.
type Writer interface {
	// Suggest drafts an excerpt, meta description and keywords for a post.
	Suggest(ctx context.Context, title, content string) (Suggestion, error)
	// SummarizeDigest writes a short introduction for a set of scholarships
	// in the given language.
	SummarizeDigest(ctx context.Context, posts []model.Post, language string) (string, error)
}

// OpenAIClient implements Writer using the OpenAI Chat Completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

// ErrNoModel is returned when no chat model is configured.
var ErrNoModel = errors.New("openai: model must be specified")

func NewOpenAI(cfg Config) (*OpenAIClient, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, ErrNoModel
	}
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	return &OpenAIClient{client: c, model: cfg.Model}, nil
}

const (
	maxExcerpt  = 200
	maxMetaDesc = 160
)

func (o *OpenAIClient) Suggest(ctx context.Context, title, content string) (Suggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()
	text := listing.StripHTML(content)
	if text == "" {
		text = title
	}
	if r := []rune(text); len(r) > 3000 {
		text = string(r[:3000])
	}

	sys := `
		You write SEO copy for a scholarship listing website.
		Reply with a JSON object with the keys "excerpt", "meta_description" and "meta_keywords".
		excerpt: one or two plain sentences, at most 200 characters, summarising who can apply and what is covered.
		meta_description: at most 160 characters, includes the scholarship name and host country when known.
		meta_keywords: 5 to 8 comma separated search phrases.
		`
	user := fmt.Sprintf("Title: %s\nContent: %s", title, text)
	out, err := o.create(ctx, sys, user, true)
	if err != nil {
		slog.Error("openai: suggest error", "err", err)
		return Suggestion{}, err
	}
	var s Suggestion
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &s); err != nil {
		return Suggestion{}, fmt.Errorf("openai: decode suggestion: %w", err)
	}
	s.Excerpt = truncate(strings.TrimSpace(s.Excerpt), maxExcerpt)
	s.MetaDescription = truncate(strings.TrimSpace(s.MetaDescription), maxMetaDesc)
	s.MetaKeywords = strings.TrimSpace(s.MetaKeywords)
	return s, nil
}

func (o *OpenAIClient) SummarizeDigest(ctx context.Context, posts []model.Post, language string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 300*time.Second)
	defer cancel()
	if len(posts) == 0 {
		return "", nil
	}
	b := &strings.Builder{}
	for i, p := range posts {
		if i >= 10 {
			break
		}
		country := ""
		if p.Country != nil {
			country = p.Country.Name
		}
		fmt.Fprintf(b, "- %s (%s)\n", p.Title, country)
	}
	sys := fmt.Sprintf(`
		You write the introduction of a scholarship newsletter, write in %s, return 2 ~ 4 sentences (40–150 words).
		Mention the most notable opportunities and any upcoming deadlines.
		Be encouraging and concrete. Plain text, no links, no lists.
		`, langOrDefault(language))
	user := fmt.Sprintf("This period's scholarships (title and country):\n%s\nTask: Write the newsletter introduction.", b.String())
	out, err := o.create(ctx, sys, user, false)
	if err != nil {
		slog.Error("openai: summarize digest error", "err", err)
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (o *OpenAIClient) create(ctx context.Context, system, user string, jsonOut bool) (string, error) {
	// Default timeout guard, if caller didn't set one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 300*time.Second)
		defer cancel()
	}
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.4,
	}
	if jsonOut {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}
	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-3])) + "..."
}

func langOrDefault(lang string) string {
	l := strings.TrimSpace(lang)
	if l == "" {
		return "English"
	}
	return l
}
