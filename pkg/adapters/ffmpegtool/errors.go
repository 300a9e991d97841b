package ffmpegtool

import "errors"

var (
	// ErrFFmpegNotFound is returned when no ffmpeg executable can be resolved.
	ErrFFmpegNotFound = errors.New("ffmpegtool: ffmpeg not found")

	// ErrStagingFailed is returned when a compressed ffmpeg archive cannot be unpacked.
	ErrStagingFailed = errors.New("ffmpegtool: staging ffmpeg failed")

	// ErrDecodeFailed is returned when splitting a video into frames fails.
	ErrDecodeFailed = errors.New("ffmpegtool: decode failed")

	// ErrEncodeFailed is returned when assembling frames into a video fails.
	ErrEncodeFailed = errors.New("ffmpegtool: encode failed")

	// ErrSSIMUnavailable is returned when the ssim filter output has no overall score.
	ErrSSIMUnavailable = errors.New("ffmpegtool: ssim score not found in output")
)
