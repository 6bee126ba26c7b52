package domain

import "strings"

// Remote entry types as reported by a directory listing.
const (
	EntryTypeFile = "file"
	EntryTypeDir  = "dir"
)

// RemoteEntry is one file reported by a content source listing.
// It is created per sync pass and discarded afterwards.
type RemoteEntry struct {
	Name string
	Type string

	// ContentHash is an opaque digest of the file bytes. An empty hash is
	// treated as always changed.
	ContentHash string

	// FetchRef is passed back to the content source to fetch the bytes.
	FetchRef string
}

// FilterEntries keeps file entries whose name ends with ext.
func FilterEntries(entries []RemoteEntry, ext string) []RemoteEntry {
	out := make([]RemoteEntry, 0, len(entries))
	for _, e := range entries {
		if e.Type != EntryTypeFile || !strings.HasSuffix(e.Name, ext) {
			continue
		}
		out = append(out, e)
	}
	return out
}
