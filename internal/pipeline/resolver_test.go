package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openmined/foldersense/internal/graph"
)

func TestResolveFolders_DedupPreservesFirstSeenOrder(t *testing.T) {
	items := []graph.DriveItem{
		item("1", "a.txt", "p2"),
		item("2", "b.txt", "p1"),
		item("3", "c.txt", "p2"),
		item("4", "d.txt", "p3"),
		item("5", "e.txt", "p1"),
	}

	assert.Equal(t, []string{"p2", "p1", "p3"}, ResolveFolders(items))
}

func TestResolveFolders_SkipsFolders(t *testing.T) {
	items := []graph.DriveItem{
		{ID: "1", Name: "sub", ParentID: "p1", IsFolder: true},
		{ID: "2", Name: "f.txt", ParentID: "p2"},
	}

	assert.Equal(t, []string{"p2"}, ResolveFolders(items))
}

func TestResolveFolders_SkipsDeleted(t *testing.T) {
	items := []graph.DriveItem{
		{ID: "1", Name: "gone.txt", ParentID: "p1", IsDeleted: true},
		{ID: "2", Name: "f.txt", ParentID: "p2"},
	}

	assert.Equal(t, []string{"p2"}, ResolveFolders(items))
}

func TestResolveFolders_DeletedFolderParentNeverAppears(t *testing.T) {
	items := []graph.DriveItem{
		{ID: "1", Name: "x", ParentID: "p1", IsFolder: true, IsDeleted: true},
	}

	assert.Empty(t, ResolveFolders(items))
}

func TestResolveFolders_Empty(t *testing.T) {
	assert.Empty(t, ResolveFolders(nil))
}
