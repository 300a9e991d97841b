package ports

// VideoInfo describes the first video track of a container file.
type VideoInfo struct {
	Codec       string
	Width       int
	Height      int
	SampleCount int
	FrameRate   float64 // 0 when it cannot be derived
}

// VideoProber reads container metadata without decoding pixels.
type VideoProber interface {
	Probe(path string) (VideoInfo, error)
}
