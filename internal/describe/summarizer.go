package describe

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ErrNoTextInResponse marks a model response carrying no usable text block.
var ErrNoTextInResponse = errors.New("describe: no text block in model response")

const (
	summaryMaxTokens  = 150
	classifyMaxTokens = 50
)

// fileKind is the closed set of summarization strategies, keyed by
// normalized file extension.
type fileKind int

const (
	kindText fileKind = iota // default: decode as text
	kindDocx                 // structural text extraction
	kindPDF                  // native document attachment, untruncated
	kindImage                // encoded image attachment
)

var imageMediaTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// classifyExtension maps a filename to its summarization strategy. The
// media type is set only for kindImage.
func classifyExtension(filename string) (fileKind, string) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		return kindDocx, ""
	case ".pdf":
		return kindPDF, ""
	}
	if mediaType, ok := imageMediaTypes[ext]; ok {
		return kindImage, mediaType
	}
	return kindText, ""
}

// Summarizer produces file summaries and folder classifications.
type Summarizer interface {
	SummarizeFile(ctx context.Context, filename string, content []byte) (string, error)
	ClassifyFolder(ctx context.Context, folderPath string, filenames []string) (string, error)
}

// SummarizerConfig holds the Anthropic client settings.
type SummarizerConfig struct {
	APIKey          string
	Model           string
	MaxRetries      int
	RequestDelay    time.Duration
	MaxContentBytes int
}

// AnthropicSummarizer generates summaries via the Anthropic Messages API,
// dispatching per file extension into text, docx, pdf or image strategies.
type AnthropicSummarizer struct {
	client          anthropic.Client
	model           anthropic.Model
	requestDelay    time.Duration
	maxContentBytes int
}

var _ Summarizer = (*AnthropicSummarizer)(nil)

// NewAnthropicSummarizer creates a summarizer from the given config.
func NewAnthropicSummarizer(cfg *SummarizerConfig) *AnthropicSummarizer {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	)
	return &AnthropicSummarizer{
		client:          client,
		model:           anthropic.Model(cfg.Model),
		requestDelay:    cfg.RequestDelay,
		maxContentBytes: cfg.MaxContentBytes,
	}
}

// SummarizeFile generates a one-sentence summary of a file.
func (s *AnthropicSummarizer) SummarizeFile(ctx context.Context, filename string, content []byte) (string, error) {
	kind, mediaType := classifyExtension(filename)

	var blocks []anthropic.ContentBlockParamUnion
	switch kind {
	case kindDocx:
		text, err := extractDocxText(content)
		if err != nil || text == "" {
			slog.Warn("docx text extraction failed", "filename", filename, "error", err)
			text = fmt.Sprintf("[could not extract text from %s]", filename)
		}
		blocks = append(blocks, anthropic.NewTextBlock(summaryPrompt(filename, truncateText(text, s.maxContentBytes))))

	case kindPDF:
		// PDFs go up whole: the API accepts the full binary document, so
		// the truncation budget does not apply.
		encoded := base64.StdEncoding.EncodeToString(content)
		blocks = append(blocks,
			anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{Data: encoded}),
			anthropic.NewTextBlock(fmt.Sprintf("Summarize this file in one sentence. File name: %s", filename)),
		)

	case kindImage:
		encoded := base64.StdEncoding.EncodeToString(content)
		blocks = append(blocks,
			anthropic.NewImageBlockBase64(mediaType, encoded),
			anthropic.NewTextBlock(fmt.Sprintf("Summarize this file in one sentence. File name: %s", filename)),
		)

	default:
		text := decodeText(truncateBytes(content, s.maxContentBytes), filename)
		blocks = append(blocks, anthropic.NewTextBlock(summaryPrompt(filename, text)))
	}

	slog.Info("summarizing file", "filename", filename, "bytes", len(content))
	summary, err := s.complete(ctx, summaryMaxTokens, blocks...)
	if err != nil {
		return "", err
	}
	slog.Info("received summary", "filename", filename)
	return summary, nil
}

// ClassifyFolder assigns a short category label to a folder from its path
// and contents. Never cached: folder composition can change semantics even
// when individual files are unchanged.
func (s *AnthropicSummarizer) ClassifyFolder(ctx context.Context, folderPath string, filenames []string) (string, error) {
	var list strings.Builder
	for _, f := range filenames {
		list.WriteString("- " + f + "\n")
	}
	prompt := fmt.Sprintf(
		"Classify this folder into a short category label (1-2 words, lowercase, hyphenated). Folder path: %s\nFiles:\n%s",
		folderPath, list.String(),
	)

	slog.Info("classifying folder", "folder", folderPath, "files", len(filenames))
	label, err := s.complete(ctx, classifyMaxTokens, anthropic.NewTextBlock(prompt))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(label), nil
}

// complete throttles, issues the Messages API call and returns the first
// text block of the response.
func (s *AnthropicSummarizer) complete(ctx context.Context, maxTokens int64, blocks ...anthropic.ContentBlockParamUnion) (string, error) {
	if s.requestDelay > 0 {
		select {
		case <-time.After(s.requestDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	message, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     s.model,
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(blocks...),
		},
	})
	if err != nil {
		return "", fmt.Errorf("messages api: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", ErrNoTextInResponse
}

func summaryPrompt(filename, content string) string {
	return fmt.Sprintf("Summarize this file in one sentence. File name: %s\n\nContent:\n%s", filename, content)
}

// decodeText renders raw bytes as prompt text, substituting the Unicode
// replacement character for invalid sequences. Content that is plainly
// binary (NUL bytes) collapses to a marker instead of replacement noise.
func decodeText(content []byte, filename string) string {
	if bytesContainNUL(content) {
		return fmt.Sprintf("[binary file: %s]", filename)
	}
	return strings.ToValidUTF8(string(content), "�")
}

func bytesContainNUL(content []byte) bool {
	for _, b := range content {
		if b == 0 {
			return true
		}
	}
	return false
}

// truncateBytes caps content at max bytes.
func truncateBytes(content []byte, max int) []byte {
	if len(content) <= max {
		return content
	}
	return content[:max]
}

// truncateText caps text at max bytes without splitting a rune.
func truncateText(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := text[:max]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
