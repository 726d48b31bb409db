// Package blob stores uploaded media payloads and hands back the reference
// kept in the media table.
package blob

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Store interface {
	// Put saves data under a name derived from filename and returns a
	// stable reference to it.
	Put(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// objectName keeps the base of the client supplied name and prefixes it
// with a random id so uploads never overwrite each other.
func objectName(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == ".." {
		base = "upload"
	}
	return uuid.NewString() + "_" + base
}
