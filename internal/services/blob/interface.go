// File: internal/services/blob/interface.go
package blob

import "context"

// Store uploads raw bytes under a named bucket and returns a publicly
// resolvable URL. There is no overwrite protection beyond the timestamp
// prefix on the object key; collisions within the same second are possible
// and unhandled.
type Store interface {
	Store(ctx context.Context, bucket, filename, contentType string, data []byte) (string, error)
}
