package experiment

import (
	"fmt"
	"strings"

	"github.com/simucrowd/simucrowd-backend/internal/types"
)

// Snapshot is the immutable copy of brief content taken at launch time.
// Runs and persisted analyses key off snapshot fields, never off the live
// brief, so later edits to a MasterBrief cannot rewrite history.
type Snapshot struct {
	SourceBriefID string                   `json:"sourceBriefId"`
	FrozenTitle   string                   `json:"frozenTitle"`
	FrozenContent string                   `json:"frozenContent"`
	FrozenImages  []string                 `json:"frozenImages"`
	Options       []types.ExperimentOption `json:"options,omitempty"`
}

// SnapshotFromBrief freezes a single brief for a validation run. Pure and
// deterministic: the same brief always yields the same frozen fields, and
// the image slice is copied so the snapshot never aliases the source.
func SnapshotFromBrief(b types.MasterBrief) Snapshot {
	images := make([]string, len(b.Images))
	copy(images, b.Images)
	return Snapshot{
		SourceBriefID: b.ID.String(),
		FrozenTitle:   b.Title,
		FrozenContent: b.Content,
		FrozenImages:  images,
	}
}

const (
	minCompareBriefs = 2
	maxCompareBriefs = 3
)

// ComparisonSnapshot freezes 2-3 briefs for a preference run, one option
// per brief in input order. Title and content are synthetic composites;
// there is no single "the" content in this mode.
func ComparisonSnapshot(briefs []types.MasterBrief) (Snapshot, error) {
	if len(briefs) < minCompareBriefs || len(briefs) > maxCompareBriefs {
		return Snapshot{}, fmt.Errorf("comparison requires %d to %d briefs, got %d", minCompareBriefs, maxCompareBriefs, len(briefs))
	}

	options := make([]types.ExperimentOption, 0, len(briefs))
	titles := make([]string, 0, len(briefs))
	for _, b := range briefs {
		opt := types.ExperimentOption{
			ID:          b.ID.String(),
			Title:       b.Title,
			Description: b.Content,
		}
		if len(b.Images) > 0 {
			opt.Image = b.Images[0]
		}
		options = append(options, opt)
		titles = append(titles, b.Title)
	}

	return Snapshot{
		SourceBriefID: briefs[0].ID.String(),
		FrozenTitle:   "Comparison: " + strings.Join(titles, " vs "),
		FrozenContent: fmt.Sprintf("Head-to-head comparison of %d assets: %s.", len(briefs), strings.Join(titles, ", ")),
		FrozenImages:  []string{},
		Options:       options,
	}, nil
}
