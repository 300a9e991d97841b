package ports

import "context"

// Scorer computes how visually alike two still images are.
// Higher means more alike; the nominal range is 0.0 to 1.0.
type Scorer interface {
	// Score compares the images stored at pathA and pathB.
	// A non-nil error means the pair could not be compared.
	Score(ctx context.Context, pathA, pathB string) (float64, error)
}
