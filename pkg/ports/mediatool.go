package ports

import "context"

// Workspace is an exclusively owned temporary directory holding the frames of one job.
type Workspace interface {
	// Dir returns the absolute path of the workspace directory.
	Dir() string

	// Release deletes the directory and everything in it.
	// Calling Release more than once is a no-op.
	Release() error
}

// MediaTool abstracts the external decode/encode executable.
type MediaTool interface {
	// Decode splits the input video into numbered still images inside a freshly
	// created workspace. On error no workspace is left behind.
	Decode(ctx context.Context, inputPath string) (Workspace, error)

	// Encode assembles the numbered still images in framesDir into a video at outputPath.
	Encode(ctx context.Context, framesDir, outputPath string, opts EncodeOptions) error
}

// EncodeOptions configures re-assembly of frames into a video.
type EncodeOptions struct {
	Pattern     string  // printf file pattern inside the frames directory (default: frame_%04d.png)
	FrameRate   float64 // Frames per second (default: 30)
	StartNumber int     // First sequence number of the frame pattern (default: 1)
	Codec       string  // Video codec (default: libx264)
	PixelFormat string  // Output pixel format (default: yuv420p)
	Preset      string  // Encoder speed preset (default: fast)
	Threads     int     // Encoder threads, 0 lets the tool decide
	CRF         int     // Constant rate factor, 0 keeps the codec default
}

// DefaultEncodeOptions returns EncodeOptions with default values.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Pattern:     "frame_%04d.png",
		FrameRate:   30,
		StartNumber: 1,
		Codec:       "libx264",
		PixelFormat: "yuv420p",
		Preset:      "fast",
		Threads:     0,
	}
}
