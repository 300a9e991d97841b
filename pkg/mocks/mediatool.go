package mocks

import (
	"context"
	"os"
	"sync"

	"github.com/user/framefix/pkg/ports"
)

// MediaTool is a mock implementation of ports.MediaTool.
type MediaTool struct {
	DecodeFunc func(ctx context.Context, inputPath string) (ports.Workspace, error)
	EncodeFunc func(ctx context.Context, framesDir, outputPath string, opts ports.EncodeOptions) error

	// Recorded calls for verification
	DecodeCalls []string
	EncodeCalls []EncodeCall
}

// EncodeCall records a call to Encode.
type EncodeCall struct {
	FramesDir  string
	OutputPath string
	Options    ports.EncodeOptions
}

func (m *MediaTool) Decode(ctx context.Context, inputPath string) (ports.Workspace, error) {
	m.DecodeCalls = append(m.DecodeCalls, inputPath)
	if m.DecodeFunc != nil {
		return m.DecodeFunc(ctx, inputPath)
	}
	return NewWorkspace(""), nil
}

func (m *MediaTool) Encode(ctx context.Context, framesDir, outputPath string, opts ports.EncodeOptions) error {
	m.EncodeCalls = append(m.EncodeCalls, EncodeCall{FramesDir: framesDir, OutputPath: outputPath, Options: opts})
	if m.EncodeFunc != nil {
		return m.EncodeFunc(ctx, framesDir, outputPath, opts)
	}
	return os.WriteFile(outputPath, []byte("mock video"), 0644)
}

var _ ports.MediaTool = (*MediaTool)(nil)

// Workspace is a mock implementation of ports.Workspace.
// Release removes the directory from disk when it is non-empty.
type Workspace struct {
	mu           sync.Mutex
	dir          string
	ReleaseCount int
}

// NewWorkspace creates a mock Workspace rooted at dir.
func NewWorkspace(dir string) *Workspace {
	return &Workspace{dir: dir}
}

func (m *Workspace) Dir() string {
	return m.dir
}

func (m *Workspace) Release() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReleaseCount++
	if m.ReleaseCount > 1 || m.dir == "" {
		return nil
	}
	return os.RemoveAll(m.dir)
}

// Released reports whether Release has been called.
func (m *Workspace) Released() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ReleaseCount > 0
}

var _ ports.Workspace = (*Workspace)(nil)
