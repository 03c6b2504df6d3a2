package engine

import (
	"time"

	"github.com/dbsmedya/gocompare/internal/compare"
	"github.com/dbsmedya/gocompare/internal/verifier"
)

// Result contains statistics and status of one comparison run.
type Result struct {
	RunID            string
	Name             string
	StartedAt        time.Time
	CompletedAt      time.Time
	Duration         time.Duration
	MainSource       string
	SecondarySource  string
	Stats            LoadStats
	DroppedMain      int
	DroppedSecondary int
	UnionColumns     []string
	Summary          compare.Summary
	Report           *compare.Report
	Verification     *verifier.VerifyResult
	Success          bool
}

// LoadStats captures the row counts observed while preparing both datasets.
type LoadStats struct {
	MainRows              int
	SecondaryRows         int
	FilteredMainRows      int
	FilteredSecondaryRows int
}
