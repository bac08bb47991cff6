package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/user/newsingest/internal/entity"
	"github.com/user/newsingest/internal/repository"
)

// Config carries the extraction knobs: model identifier, sampling
// temperature, output budget, and the token-threshold chunking policy
// for article text that exceeds the extractor's comfortable input size.
type Config struct {
	APIKey              string
	Model               string
	Temperature         float64
	MaxTokens           int
	ChunkTokenThreshold int
	OverlapRate         float64
}

// Extractor implements repository.RecordExtractor and
// repository.Summarizer over the Anthropic Messages API.
type Extractor struct {
	client *anthropic.Client
	cfg    Config
}

// New creates an Extractor.
func New(cfg Config) *Extractor {
	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	if cfg.ChunkTokenThreshold <= 0 {
		cfg.ChunkTokenThreshold = 1200
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1000
	}
	return &Extractor{client: &client, cfg: cfg}
}

// Extract runs schema-guided extraction over the article text. Long
// input is chunked with a small overlap and the per-chunk records are
// merged. Unusable model output maps to ErrMalformedOutput; an empty
// result maps to ErrNoData. Neither is ever raised past this boundary
// as anything but an error value.
func (e *Extractor) Extract(ctx context.Context, page *entity.Page) (*entity.ExtractedRecord, error) {
	if strings.TrimSpace(page.Text) == "" {
		return nil, repository.ErrNoData
	}

	chunks := chunkByTokens(page.Text, e.cfg.ChunkTokenThreshold, e.cfg.OverlapRate)

	merged := entity.ExtractedRecord{}
	parsed := 0
	malformed := 0
	for i, chunk := range chunks {
		text, err := e.complete(ctx, extractionSystemPrompt, chunk)
		if err != nil {
			return nil, fmt.Errorf("extraction call failed for %s (chunk %d/%d): %w", page.URL, i+1, len(chunks), err)
		}

		var rec entity.ExtractedRecord
		if err := decodeRecord(text, &rec); err != nil {
			malformed++
			slog.Warn("Discarding malformed extractor output", "url", page.URL, "chunk", i, "error", err)
			continue
		}
		mergeRecord(&merged, &rec)
		parsed++
	}

	if parsed == 0 {
		if malformed > 0 {
			return nil, repository.ErrMalformedOutput
		}
		return nil, repository.ErrNoData
	}
	if merged.Empty() {
		return nil, repository.ErrNoData
	}

	clampRecord(&merged)
	return &merged, nil
}

// Summarize writes a grouped report over stored chunks.
func (e *Extractor) Summarize(ctx context.Context, chunks []entity.Chunk, question string) (string, error) {
	var sb strings.Builder
	if question != "" {
		sb.WriteString("Question: " + question + "\n\n")
	}
	sb.WriteString("Documents:\n")
	for _, c := range chunks {
		fmt.Fprintf(&sb, "\n[%s] %s (%s, %s)\n%s\n", c.ID, c.Meta.Title, c.Meta.Organization, c.Meta.PubDate, c.Text)
	}

	report, err := e.complete(ctx, reportSystemPrompt, sb.String())
	if err != nil {
		return "", fmt.Errorf("report call failed: %w", err)
	}
	return strings.TrimSpace(report), nil
}

func (e *Extractor) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(e.cfg.Model),
		MaxTokens:   int64(e.cfg.MaxTokens),
		Temperature: anthropic.Float(e.cfg.Temperature),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Content) == 0 {
		return "", repository.ErrNoData
	}
	return resp.Content[0].Text, nil
}

// decodeRecord parses one model response into a record, tolerating
// fenced or prose-wrapped JSON. Anything that still fails to parse is
// ErrMalformedOutput.
func decodeRecord(text string, rec *entity.ExtractedRecord) error {
	cleaned := cleanJSONResponse(text)
	if cleaned == "" {
		return repository.ErrNoData
	}
	if err := json.Unmarshal([]byte(cleaned), rec); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrMalformedOutput, err)
	}
	return nil
}

// mergeRecord fills empty fields of dst from src; keywords accumulate.
func mergeRecord(dst, src *entity.ExtractedRecord) {
	if dst.Title == "" {
		dst.Title = src.Title
	}
	if dst.Organization == "" {
		dst.Organization = src.Organization
	}
	if dst.PubDate == "" {
		dst.PubDate = src.PubDate
	}
	if dst.PubTime == "" {
		dst.PubTime = src.PubTime
	}
	if dst.Summary == "" {
		dst.Summary = src.Summary
	} else if src.Summary != "" && src.Summary != dst.Summary {
		dst.Summary = dst.Summary + "\n" + src.Summary
	}
	for _, kw := range src.Keywords {
		if kw == "" || contains(dst.Keywords, kw) {
			continue
		}
		dst.Keywords = append(dst.Keywords, kw)
	}
}

// clampRecord enforces the record bounds: at most MaxKeywords keywords
// and MaxSummaryWords words of summary.
func clampRecord(rec *entity.ExtractedRecord) {
	if len(rec.Keywords) > entity.MaxKeywords {
		rec.Keywords = rec.Keywords[:entity.MaxKeywords]
	}
	words := strings.Fields(rec.Summary)
	if len(words) > entity.MaxSummaryWords {
		rec.Summary = strings.Join(words[:entity.MaxSummaryWords], " ")
	}
}

// cleanJSONResponse strips markdown fences and surrounding prose from a
// model response, leaving the outermost JSON object.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
