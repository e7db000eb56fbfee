package pipeline

import "github.com/openmined/foldersense/internal/graph"

// ResolveFolders returns the parent folder ids affected by the changed
// items, deduplicated in first-seen order. Only live file items count:
// folders and deletions never trigger regeneration of their parent.
func ResolveFolders(items []graph.DriveItem) []string {
	seen := map[string]bool{}
	var folderIDs []string
	for _, item := range items {
		if item.IsFolder || item.IsDeleted {
			continue
		}
		if !seen[item.ParentID] {
			seen[item.ParentID] = true
			folderIDs = append(folderIDs, item.ParentID)
		}
	}
	return folderIDs
}
