package ffmpegtool

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Locator resolves the ffmpeg executable once per process.
// Priority: 1) CustomPath, 2) ArchivePath (zstd-compressed binary, unpacked to StageDir),
// 3) FFMPEG_PATH env, 4) PATH, 5) common install locations.
type Locator struct {
	CustomPath  string
	ArchivePath string
	StageDir    string // default: <os temp dir>/framefix-ffmpeg

	// Overridable for tests.
	Getenv   func(string) string
	LookPath func(string) (string, error)

	once sync.Once
	path string
	err  error
}

// NewLocator creates a Locator for an optional explicit path and archive.
func NewLocator(customPath, archivePath string) *Locator {
	return &Locator{CustomPath: customPath, ArchivePath: archivePath}
}

// Path returns the resolved executable. Resolution runs once; later calls
// return the cached result, including a cached failure.
func (l *Locator) Path() (string, error) {
	l.once.Do(func() {
		l.path, l.err = l.resolve()
	})
	return l.path, l.err
}

// Available reports whether ffmpeg can be resolved.
func (l *Locator) Available() bool {
	_, err := l.Path()
	return err == nil
}

func (l *Locator) resolve() (string, error) {
	if l.CustomPath != "" {
		if _, err := os.Stat(l.CustomPath); err == nil {
			return l.CustomPath, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, l.CustomPath)
	}

	if l.ArchivePath != "" {
		return l.stage()
	}

	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if envPath := getenv("FFMPEG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: FFMPEG_PATH %s not found", ErrFFmpegNotFound, envPath)
	}

	lookPath := l.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if path, err := lookPath(executableName()); err == nil {
		return path, nil
	}

	for _, p := range commonPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrFFmpegNotFound
}

// stage unpacks the archive next to a temp name and renames it into place,
// so a concurrent process never executes a half-written binary.
func (l *Locator) stage() (string, error) {
	dir := l.StageDir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "framefix-ffmpeg")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStagingFailed, err)
	}

	src, err := os.Open(l.ArchivePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStagingFailed, err)
	}
	defer src.Close()

	dec, err := zstd.NewReader(src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStagingFailed, err)
	}
	defer dec.Close()

	tmp, err := os.CreateTemp(dir, ".ffmpeg-*")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStagingFailed, err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, dec); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: decompress %s: %v", ErrStagingFailed, l.ArchivePath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: %v", ErrStagingFailed, err)
	}
	if err := os.Chmod(tmpPath, 0755); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: %v", ErrStagingFailed, err)
	}

	target := filepath.Join(dir, executableName())
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: %v", ErrStagingFailed, err)
	}
	return target, nil
}

func executableName() string {
	if runtime.GOOS == "windows" {
		return "ffmpeg.exe"
	}
	return "ffmpeg"
}

func commonPaths() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files (x86)\ffmpeg\bin\ffmpeg.exe`,
		}
	case "darwin":
		return []string{
			"/opt/homebrew/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/usr/bin/ffmpeg",
		}
	default:
		return []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/opt/homebrew/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}
}
