package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_Counters(t *testing.T) {
	r := New()

	r.PairScored(0.99, nil)
	r.PairScored(0.10, nil)
	r.PairScored(0, errors.New("dimension mismatch"))
	r.FramesDropped(2)
	r.FramesDropped(1)
	r.DeleteFailed()
	r.StageCompleted("decode", 2*time.Second, nil)
	r.StageCompleted("encode", time.Second, errors.New("exit 1"))
	r.JobFinished("failed")

	if got := testutil.ToFloat64(r.pairsScored); got != 3 {
		t.Errorf("expected 3 pairs scored, got %v", got)
	}
	if got := testutil.ToFloat64(r.pairErrors); got != 1 {
		t.Errorf("expected 1 pair error, got %v", got)
	}
	if got := testutil.ToFloat64(r.framesDropped); got != 3 {
		t.Errorf("expected 3 frames dropped, got %v", got)
	}
	if got := testutil.ToFloat64(r.deleteErrors); got != 1 {
		t.Errorf("expected 1 delete error, got %v", got)
	}
	if got := testutil.ToFloat64(r.stageErrors.WithLabelValues("encode")); got != 1 {
		t.Errorf("expected 1 encode error, got %v", got)
	}
	if got := testutil.ToFloat64(r.jobsFinished.WithLabelValues("failed")); got != 1 {
		t.Errorf("expected 1 failed job, got %v", got)
	}
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := New()
	r.FramesDropped(4)
	r.JobFinished("done")

	path := filepath.Join(t.TempDir(), "framefix.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		"framefix_frames_dropped_total 4",
		`framefix_jobs_total{state="done"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in textfile:\n%s", want, out)
		}
	}
}

func TestNop(t *testing.T) {
	var n Nop
	n.PairScored(1, nil)
	n.FramesDropped(1)
	n.DeleteFailed()
	n.StageCompleted("decode", time.Second, nil)
	n.JobFinished("done")
}
