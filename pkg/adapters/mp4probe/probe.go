// Package mp4probe reads video track metadata from MP4 containers.
package mp4probe

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/framefix/pkg/ports"
)

// ErrNoVideoTrack is returned when the container has no video track.
var ErrNoVideoTrack = errors.New("mp4probe: no video track found")

// Prober implements ports.VideoProber.
type Prober struct{}

var _ ports.VideoProber = (*Prober)(nil)

// New creates a new Prober.
func New() *Prober {
	return &Prober{}
}

// Probe opens path and reads its first video track.
func (p *Prober) Probe(path string) (ports.VideoInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ProbeReader(f)
}

// ProbeReader reads video track metadata from an MP4 stream.
func ProbeReader(r io.ReadSeeker) (ports.VideoInfo, error) {
	file, err := mp4.DecodeFile(r)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	if file.IsFragmented() {
		return probeFragmented(file)
	}
	return probeProgressive(file)
}

func probeProgressive(file *mp4.File) (ports.VideoInfo, error) {
	if file.Moov == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}
	trak := findVideoTrack(file.Moov.Traks)
	if trak == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}

	info := trackInfo(trak)
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
		return info, nil
	}
	stbl := trak.Mdia.Minf.Stbl

	if stbl.Stsz != nil {
		info.SampleCount = int(stbl.Stsz.SampleNumber)
	}
	if stbl.Stts != nil && info.SampleCount > 0 && trak.Mdia.Mdhd != nil {
		lastStart, lastDur := stbl.Stts.GetDecodeTime(uint32(info.SampleCount))
		total := lastStart + uint64(lastDur)
		info.FrameRate = frameRate(info.SampleCount, total, trak.Mdia.Mdhd.Timescale)
	}
	return info, nil
}

func probeFragmented(file *mp4.File) (ports.VideoInfo, error) {
	if file.Init == nil || file.Init.Moov == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}
	trak := findVideoTrack(file.Init.Moov.Traks)
	if trak == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}
	info := trackInfo(trak)
	trackID := trak.Tkhd.TrackID

	var trex *mp4.TrexBox
	if file.Init.Moov.Mvex != nil {
		for _, t := range file.Init.Moov.Mvex.Trexs {
			if t.TrackID == trackID {
				trex = t
				break
			}
		}
	}

	var total uint64
	for _, seg := range file.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			samples, err := frag.GetFullSamples(trex)
			if err != nil {
				return info, fmt.Errorf("get samples: %w", err)
			}
			for _, s := range samples {
				info.SampleCount++
				total += uint64(s.Dur)
			}
		}
	}

	if trak.Mdia.Mdhd != nil {
		info.FrameRate = frameRate(info.SampleCount, total, trak.Mdia.Mdhd.Timescale)
	}
	return info, nil
}

func findVideoTrack(traks []*mp4.TrakBox) *mp4.TrakBox {
	for _, trak := range traks {
		if trak.Mdia != nil && trak.Mdia.Hdlr != nil && trak.Mdia.Hdlr.HandlerType == "vide" {
			return trak
		}
	}
	return nil
}

func trackInfo(trak *mp4.TrakBox) ports.VideoInfo {
	info := ports.VideoInfo{Codec: "unknown"}
	if trak.Tkhd != nil {
		info.Width = int(trak.Tkhd.Width >> 16)
		info.Height = int(trak.Tkhd.Height >> 16)
	}
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return info
	}
	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		switch child.Type() {
		case "avc1", "avc3":
			info.Codec = "h264"
		case "hvc1", "hev1":
			info.Codec = "hevc"
		case "av01":
			info.Codec = "av1"
		case "vp09":
			info.Codec = "vp9"
		default:
			continue
		}
		break
	}
	return info
}

// frameRate rounds to three decimals so 30000/1001 reports 29.97.
func frameRate(samples int, duration uint64, timescale uint32) float64 {
	if samples == 0 || duration == 0 || timescale == 0 {
		return 0
	}
	fps := float64(samples) * float64(timescale) / float64(duration)
	return math.Round(fps*1000) / 1000
}
