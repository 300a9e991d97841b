package mocks

import (
	"github.com/user/framefix/pkg/ports"
)

// VideoProber is a mock implementation of ports.VideoProber.
type VideoProber struct {
	ProbeFunc func(path string) (ports.VideoInfo, error)

	ProbeCalls []string
}

func (m *VideoProber) Probe(path string) (ports.VideoInfo, error) {
	m.ProbeCalls = append(m.ProbeCalls, path)
	if m.ProbeFunc != nil {
		return m.ProbeFunc(path)
	}
	return ports.VideoInfo{}, nil
}

var _ ports.VideoProber = (*VideoProber)(nil)
