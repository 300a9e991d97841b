package ffmpegtool

import (
	"os"
	"sync"

	"github.com/user/framefix/pkg/ports"
)

// Workspace is a temporary frames directory owned by one job.
type Workspace struct {
	dir  string
	once sync.Once
	err  error
}

// NewWorkspace creates a uniquely named directory under parent
// (the system temp dir when parent is empty).
func NewWorkspace(parent, label string) (*Workspace, error) {
	dir, err := os.MkdirTemp(parent, "framefix-"+label+"-*")
	if err != nil {
		return nil, err
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string {
	return w.dir
}

// Release removes the directory tree. Only the first call has an effect.
func (w *Workspace) Release() error {
	w.once.Do(func() {
		w.err = os.RemoveAll(w.dir)
	})
	return w.err
}

var _ ports.Workspace = (*Workspace)(nil)
