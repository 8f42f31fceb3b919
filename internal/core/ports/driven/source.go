package driven

import "context"

// FileEventType is the kind of filesystem change.
type FileEventType int

const (
	// FileCreated indicates a new or renamed-in file.
	FileCreated FileEventType = iota

	// FileRemoved indicates the file no longer exists.
	FileRemoved
)

// FileEvent is one filesystem change for a file in the watched directory.
type FileEvent struct {
	// Type is the kind of change.
	Type FileEventType

	// Path is the absolute path of the affected file.
	Path string

	// Name is the base filename.
	Name string
}

// DirectorySource produces the files of the watched document directory.
// The ingestion service is its only consumer; downstream components never
// touch the filesystem directly.
type DirectorySource interface {
	// List enumerates the directory once and returns the paths of all
	// regular files. Used for the bootstrap scan.
	List(ctx context.Context) ([]string, error)

	// Watch subscribes to change notifications for the directory and
	// streams events until ctx is cancelled. The error channel reports a
	// broken subscription; after an error the caller must call Watch
	// again to resubscribe.
	Watch(ctx context.Context) (<-chan FileEvent, <-chan error, error)

	// Read returns the current contents of a file.
	Read(path string) ([]byte, error)

	// Exists reports whether the file currently exists as a regular file.
	Exists(path string) bool

	// Close releases watch resources.
	Close() error
}
