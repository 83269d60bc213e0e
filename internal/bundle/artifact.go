package bundle

import "time"

// Kind classifies a bundle artifact.
type Kind string

const (
	KindReport Kind = "report"
	KindData   Kind = "data"
	KindFigure Kind = "figure"
)

// Artifact is a file written into a bundle by an analysis run.
type Artifact struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	WrittenAt time.Time `json:"written_at"`
}
