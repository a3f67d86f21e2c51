package recommend

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=recommend

import (
	"context"

	"bookrec/internal/platform/googlebooks"
)

// VolumeSearcher is the upstream catalog used by the Fetcher.
type VolumeSearcher interface {
	SearchVolumes(ctx context.Context, p googlebooks.SearchParams) (*googlebooks.VolumesResponse, error)
}

// RunRepository stores the history of genre fetches.
type RunRepository interface {
	CreateRun(ctx context.Context, run *Run) (string, error)
	FinishRun(ctx context.Context, run *Run) error
	ListRecent(ctx context.Context, limit int) ([]Run, error)
}

// Fetcher fetches every book for a genre.
type Fetcher interface {
	Fetch(ctx context.Context, genre string) (Result, error)
}
