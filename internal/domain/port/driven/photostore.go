package driven

import (
	"context"
	"io"
)

// PhotoStore defines the driven port for listing photo file storage.
type PhotoStore interface {
	// Save writes the photo data to backing storage and returns the public
	// reference (URL path) to store on the listing. ext is the original file
	// extension including the leading dot.
	Save(ctx context.Context, ext string, data io.Reader) (string, error)
	// Remove deletes the file behind the given reference. Removing a
	// reference whose file is already gone is not an error.
	Remove(ctx context.Context, ref string) error
}
