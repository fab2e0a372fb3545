package action

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/wayfarer-tools/findx/eval"
)

// renderLs writes an "ls -dils"-style listing line for entry to w: inode
// number, size in 1K blocks, permissions, link count, owner, group, byte
// size, modification time, and path.
func renderLs(w io.Writer, entry *eval.Entry) error {
	m := entry.Metadata
	blocks := (m.Size + 1023) / 1024

	path := entry.Path
	if m.IsSymlink() && m.LinkTarget != "" {
		path = path + " -> " + m.LinkTarget
	}

	_, err := fmt.Fprintf(w, "%9d %6s %s %3d %8d %8d %11s %s %s\n",
		m.Inode,
		humanize.Comma(blocks),
		m.Mode.String(),
		m.Links,
		m.UID,
		m.GID,
		humanize.Comma(m.Size),
		m.ModTime.Format("Jan _2 15:04"),
		path,
	)
	return err
}

// Ls writes an ls -dils style listing line for entry to standard output.
func (r *Registry) Ls(entry *eval.Entry) error {
	return renderLs(r.Stdout, entry)
}

// Fls writes an ls -dils style listing line for entry to the named output
// file.
func (r *Registry) Fls(file string, entry *eval.Entry) error {
	w, err := r.openOutputFile(file)
	if err != nil {
		return err
	}
	return renderLs(w, entry)
}
