package graph

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
)

// Fetcher retrieves changed drive items via the Graph delta endpoint and
// enumerates folder contents.
type Fetcher struct {
	client    *Client
	driveUser string
}

// NewFetcher creates a Fetcher for the given drive user (UPN or object ID).
func NewFetcher(client *Client, driveUser string) *Fetcher {
	return &Fetcher{
		client:    client,
		driveUser: driveUser,
	}
}

// FetchChanges fetches all changed drive items since the given delta token.
// An empty token means first run: the call enumerates every current item to
// establish a baseline.
//
// Pagination follows @odata.nextLink until a page carries @odata.deltaLink.
// The new token is the deltaLink's token query parameter, or the verbatim
// link when the parameter is absent. A page with neither link fails with
// ErrMalformedDelta and no token is returned.
func (f *Fetcher) FetchChanges(ctx context.Context, token string) ([]DriveItem, string, error) {
	base := fmt.Sprintf("/users/%s/drive/root/delta", escapePath(f.driveUser))
	path := base
	if token != "" {
		path = base + "?token=" + url.QueryEscape(token)
	}

	var items []DriveItem
	for {
		var page deltaPage
		if err := f.client.GetJSON(ctx, path, &page); err != nil {
			return nil, "", err
		}
		for i := range page.Value {
			items = append(items, page.Value[i].toDriveItem())
		}

		switch {
		case page.DeltaLink != "":
			newToken := tokenFromDeltaLink(page.DeltaLink)
			slog.Debug("delta fetch complete", "items", len(items))
			return items, newToken, nil
		case page.NextLink != "":
			path = f.client.relativePath(page.NextLink)
		default:
			slog.Warn("delta response missing both nextLink and deltaLink; stopping")
			return nil, "", ErrMalformedDelta
		}
	}
}

// ListChildren enumerates the current file children of a folder. Sub-folders
// are excluded. The folder path comes from the first child's parent
// reference; an empty folder yields an empty path.
func (f *Fetcher) ListChildren(ctx context.Context, folderID string) (*FolderListing, error) {
	path := fmt.Sprintf("/users/%s/drive/items/%s/children", escapePath(f.driveUser), escapePath(folderID))

	listing := &FolderListing{FolderID: folderID}
	for path != "" {
		var page childrenPage
		if err := f.client.GetJSON(ctx, path, &page); err != nil {
			return nil, err
		}
		for i := range page.Value {
			child := &page.Value[i]
			if listing.FolderPath == "" {
				listing.FolderPath = child.ParentReference.Path
			}
			if child.Folder != nil || child.Name == "" {
				continue
			}
			listing.Files = append(listing.Files, child.Name)
			listing.FileIDs = append(listing.FileIDs, child.ID)
		}
		path = f.client.relativePath(page.NextLink)
	}
	return listing, nil
}

// GetFileContent downloads the raw bytes of a drive item.
func (f *Fetcher) GetFileContent(ctx context.Context, itemID string) ([]byte, error) {
	path := fmt.Sprintf("/users/%s/drive/items/%s/content", escapePath(f.driveUser), escapePath(itemID))
	return f.client.GetContent(ctx, path)
}

// UploadFile uploads content as a named file inside a folder, replacing any
// existing file with that name.
func (f *Fetcher) UploadFile(ctx context.Context, folderID, filename string, content []byte, contentType string) error {
	path := fmt.Sprintf("/users/%s/drive/items/%s:/%s:/content",
		escapePath(f.driveUser), escapePath(folderID), escapePath(filename))
	return f.client.PutContent(ctx, path, content, contentType)
}

// tokenFromDeltaLink extracts the token query parameter from a deltaLink
// URL. Some service implementations embed their cursor differently, so a
// link without the parameter is returned whole as the opaque token.
func tokenFromDeltaLink(deltaLink string) string {
	parsed, err := url.Parse(deltaLink)
	if err != nil {
		return deltaLink
	}
	if token := parsed.Query().Get("token"); token != "" {
		return token
	}
	return deltaLink
}
