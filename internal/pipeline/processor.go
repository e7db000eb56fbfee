package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openmined/foldersense/internal/describe"
	"github.com/openmined/foldersense/internal/graph"
)

const descriptionContentType = "text/markdown"

// DriveClient is the remote file-store surface the pipeline consumes.
// Satisfied by *graph.Fetcher.
type DriveClient interface {
	FetchChanges(ctx context.Context, token string) ([]graph.DriveItem, string, error)
	ListChildren(ctx context.Context, folderID string) (*graph.FolderListing, error)
	GetFileContent(ctx context.Context, itemID string) ([]byte, error)
	UploadFile(ctx context.Context, folderID, filename string, content []byte, contentType string) error
}

// TokenStore persists the delta cursor between runs. Satisfied by
// *state.TokenStore.
type TokenStore interface {
	Get(ctx context.Context) (token string, found bool, err error)
	Save(ctx context.Context, token string) error
}

// DescriptionGenerator builds a folder description from a listing and its
// file contents. Satisfied by *describe.Generator.
type DescriptionGenerator interface {
	Generate(ctx context.Context, listing *graph.FolderListing, contents map[string][]byte) (*describe.FolderDescription, error)
}

// Processor drives one pipeline pass: read cursor, fetch delta, filter
// self-triggered changes, resolve affected folders, regenerate and upload
// each folder's description, then persist the new cursor.
//
// The cursor is saved only after every upload succeeded. Any fatal failure
// before that leaves the stored cursor unchanged, so the next run retries
// the same change set. Descriptions uploaded before an abort are not rolled
// back; the retried run regenerates and overwrites them.
type Processor struct {
	drive               DriveClient
	tokens              TokenStore
	generator           DescriptionGenerator
	descriptionFilename string
}

// RunReport summarizes one completed pipeline pass.
type RunReport struct {
	ChangedItems     int
	AffectedFolders  int
	ProcessedFolders []string // folder paths, in processing order
}

// NewProcessor creates a Processor.
func NewProcessor(drive DriveClient, tokens TokenStore, generator DescriptionGenerator, descriptionFilename string) *Processor {
	return &Processor{
		drive:               drive,
		tokens:              tokens,
		generator:           generator,
		descriptionFilename: descriptionFilename,
	}
}

// Run executes one full pipeline pass.
func (p *Processor) Run(ctx context.Context) (*RunReport, error) {
	slog.Info("pipeline starting")

	token, found, err := p.tokens.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		slog.Info("no stored cursor, establishing baseline")
	}

	items, newToken, err := p.drive.FetchChanges(ctx, token)
	if err != nil {
		return nil, err
	}
	slog.Info("fetched changes", "items", len(items))

	filtered := FilterSelfTriggered(items, p.descriptionFilename)
	folderIDs := ResolveFolders(filtered)
	slog.Info("resolved affected folders", "folders", len(folderIDs))

	report := &RunReport{
		ChangedItems:    len(items),
		AffectedFolders: len(folderIDs),
	}

	for _, folderID := range folderIDs {
		listing, err := p.drive.ListChildren(ctx, folderID)
		if err != nil {
			return nil, err
		}
		if err := p.describeFolder(ctx, listing); err != nil {
			return nil, err
		}
		report.ProcessedFolders = append(report.ProcessedFolders, listing.FolderPath)
	}

	// All uploads succeeded; only now is it safe to advance the cursor.
	if err := p.tokens.Save(ctx, newToken); err != nil {
		return nil, err
	}

	slog.Info("pipeline complete", "folders", len(report.ProcessedFolders))
	return report, nil
}

// describeFolder regenerates and uploads one folder's description.
// Per-file content read failures degrade to empty bytes rather than
// failing the run.
func (p *Processor) describeFolder(ctx context.Context, listing *graph.FolderListing) error {
	contents := make(map[string][]byte, len(listing.Files))
	for i, name := range listing.Files {
		data, err := p.drive.GetFileContent(ctx, listing.FileIDs[i])
		if err != nil {
			slog.Warn("failed to fetch file content, treating as empty", "filename", name, "error", err)
			data = nil
		}
		contents[name] = data
	}

	desc, err := p.generator.Generate(ctx, listing, contents)
	if err != nil {
		return err
	}

	markdown := []byte(desc.ToMarkdown())
	if err := p.drive.UploadFile(ctx, listing.FolderID, p.descriptionFilename, markdown, descriptionContentType); err != nil {
		return fmt.Errorf("upload description for %q: %w", listing.FolderPath, err)
	}
	slog.Info("uploaded description", "folder_path", listing.FolderPath, "files", len(desc.Files))
	return nil
}
