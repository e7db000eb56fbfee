package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openmined/foldersense/internal/graph"
)

const descFile = "folder_description.md"

func item(id, name, parentID string) graph.DriveItem {
	return graph.DriveItem{ID: id, Name: name, ParentID: parentID}
}

func TestFilterSelfTriggered_DropsDescriptionOnlyGroup(t *testing.T) {
	items := []graph.DriveItem{
		item("1", descFile, "p1"),
		item("2", "real.txt", "p2"),
	}

	kept := FilterSelfTriggered(items, descFile)
	assert.Len(t, kept, 1)
	assert.Equal(t, "real.txt", kept[0].Name)
}

func TestFilterSelfTriggered_KeepsMixedGroupWhole(t *testing.T) {
	items := []graph.DriveItem{
		item("1", descFile, "p1"),
		item("2", "other.txt", "p1"),
	}

	kept := FilterSelfTriggered(items, descFile)
	// The description entry is retained too: something real changed here.
	assert.Len(t, kept, 2)
}

func TestFilterSelfTriggered_MultipleDescriptionEntriesSameParent(t *testing.T) {
	// Two delta rows for the same description file (e.g. create + modify)
	// still form a single-name group and are dropped.
	items := []graph.DriveItem{
		item("1", descFile, "p1"),
		item("1", descFile, "p1"),
	}

	kept := FilterSelfTriggered(items, descFile)
	assert.Empty(t, kept)
}

func TestFilterSelfTriggered_IndependentParents(t *testing.T) {
	items := []graph.DriveItem{
		item("1", descFile, "p1"),
		item("2", descFile, "p2"),
		item("3", "data.csv", "p2"),
		item("4", "notes.md", "p3"),
	}

	kept := FilterSelfTriggered(items, descFile)
	assert.Len(t, kept, 3)
	for _, it := range kept {
		assert.NotEqual(t, "p1", it.ParentID)
	}
}

func TestFilterSelfTriggered_NoExclusionsReturnsAll(t *testing.T) {
	items := []graph.DriveItem{
		item("1", "a.txt", "p1"),
		item("2", "b.txt", "p2"),
	}

	kept := FilterSelfTriggered(items, descFile)
	assert.Equal(t, items, kept)
}

func TestFilterSelfTriggered_EmptyInput(t *testing.T) {
	assert.Empty(t, FilterSelfTriggered(nil, descFile))
}
