package imagestore

import "context"

// NoopArchive discards uploads. Used when archiving is not configured.
type NoopArchive struct{}

// NewNoopArchive constructs a discard archive.
func NewNoopArchive() *NoopArchive { return &NoopArchive{} }

// Save ignores the data and returns an empty key.
func (*NoopArchive) Save(context.Context, string, []byte, string) (string, error) {
	return "", nil
}

var _ Archive = (*NoopArchive)(nil)
