package describe

import "strings"

// FileDescription is one summarized file within a folder description.
type FileDescription struct {
	Filename string
	Summary  string
}

// FolderDescription is the complete generated description of one folder.
// It is built fresh on every run and wholly replaces the previous version
// on upload.
type FolderDescription struct {
	FolderPath string
	FolderType string
	Files      []FileDescription
	UpdatedAt  string // UTC date, YYYY-MM-DD
}

// ToMarkdown serializes the description to its fixed on-drive layout:
// a --- delimited frontmatter block followed by one ## section per file,
// ending with a trailing newline. Filenames and summaries are written
// verbatim, without markdown escaping.
func (d *FolderDescription) ToMarkdown() string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("folder_path: " + d.FolderPath + "\n")
	b.WriteString("folder_type: \"" + d.FolderType + "\"\n")
	b.WriteString("updated_at: " + d.UpdatedAt + "\n")
	b.WriteString("---")
	for _, f := range d.Files {
		b.WriteString("\n\n## " + f.Filename + "\n\n" + f.Summary)
	}
	b.WriteString("\n")
	return b.String()
}
