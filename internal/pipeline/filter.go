package pipeline

import (
	"log/slog"

	"github.com/openmined/foldersense/internal/graph"
)

// FilterSelfTriggered drops change groups caused purely by this system's
// own description writes. Items are grouped by parent folder; a group whose
// only distinct changed name is the description filename is removed whole,
// since regenerating from it would loop forever. Groups with any other
// changed name are kept in full, description entry included.
func FilterSelfTriggered(items []graph.DriveItem, descriptionFilename string) []graph.DriveItem {
	byParent := map[string][]string{}
	for _, item := range items {
		byParent[item.ParentID] = append(byParent[item.ParentID], item.Name)
	}

	excluded := map[string]bool{}
	for parentID, names := range byParent {
		if onlyName(names, descriptionFilename) {
			excluded[parentID] = true
			slog.Info("excluding self-triggered folder", "parent_id", parentID, "filename", descriptionFilename)
		}
	}
	if len(excluded) == 0 {
		return items
	}

	kept := make([]graph.DriveItem, 0, len(items))
	for _, item := range items {
		if !excluded[item.ParentID] {
			kept = append(kept, item)
		}
	}
	return kept
}

// onlyName reports whether every name in the group equals name.
func onlyName(names []string, name string) bool {
	for _, n := range names {
		if n != name {
			return false
		}
	}
	return len(names) > 0
}
