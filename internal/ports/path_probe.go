package ports

import "context"

// PathProbe reports whether a path exists on the shared task filesystem.
type PathProbe interface {
	Exists(ctx context.Context, path string) (bool, error)
}
