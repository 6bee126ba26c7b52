package driven

import (
	"context"

	"github.com/custodia-labs/getlicense/internal/core/domain"
)

// ContentSource reads the upstream collection.
// Both operations are synchronous and single-attempt: implementations do
// not retry, and callers treat any failure as transient.
type ContentSource interface {
	// ListDirectory returns the entries of a collection directory.
	ListDirectory(ctx context.Context, path string) ([]domain.RemoteEntry, error)

	// FetchContent returns the bytes of the file addressed by ref,
	// as reported in RemoteEntry.FetchRef.
	FetchContent(ctx context.Context, ref string) ([]byte, error)
}
