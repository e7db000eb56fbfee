package describe

import (
	"context"
	"fmt"
	"time"

	"github.com/openmined/foldersense/internal/graph"
)

// Generator assembles folder descriptions from listings, file contents and
// AI summaries, consulting the content-addressed cache along the way.
type Generator struct {
	summarizer Summarizer
	cache      *SummaryCache

	now func() time.Time
}

// NewGenerator creates a Generator. cache may be nil to disable caching.
func NewGenerator(summarizer Summarizer, cache *SummaryCache) *Generator {
	return &Generator{
		summarizer: summarizer,
		cache:      cache,
		now:        time.Now,
	}
}

// Generate builds a fresh FolderDescription for the listing. contents maps
// filename to raw bytes; a missing entry is treated as an empty file. The
// folder is classified once per call, summaries come from the cache when
// the content hash is known.
func (g *Generator) Generate(ctx context.Context, listing *graph.FolderListing, contents map[string][]byte) (*FolderDescription, error) {
	folderType, err := g.summarizer.ClassifyFolder(ctx, listing.FolderPath, listing.Files)
	if err != nil {
		return nil, fmt.Errorf("classify folder %q: %w", listing.FolderPath, err)
	}

	files := make([]FileDescription, 0, len(listing.Files))
	for _, name := range listing.Files {
		summary, err := g.summarize(ctx, name, contents[name])
		if err != nil {
			return nil, fmt.Errorf("summarize %q: %w", name, err)
		}
		files = append(files, FileDescription{Filename: name, Summary: summary})
	}

	return &FolderDescription{
		FolderPath: listing.FolderPath,
		FolderType: folderType,
		Files:      files,
		UpdatedAt:  g.now().UTC().Format("2006-01-02"),
	}, nil
}

// summarize resolves one file's summary through the cache. Zero-length
// content skips the cache entirely so the dispatcher's own empty-file
// handling applies consistently.
func (g *Generator) summarize(ctx context.Context, filename string, content []byte) (string, error) {
	if g.cache == nil || len(content) == 0 {
		return g.summarizer.SummarizeFile(ctx, filename, content)
	}

	hash := ContentHash(content)
	if cached, ok, err := g.cache.Get(ctx, hash); err != nil {
		return "", err
	} else if ok {
		return cached, nil
	}

	summary, err := g.summarizer.SummarizeFile(ctx, filename, content)
	if err != nil {
		return "", err
	}
	if err := g.cache.Put(ctx, hash, summary); err != nil {
		return "", err
	}
	return summary, nil
}
