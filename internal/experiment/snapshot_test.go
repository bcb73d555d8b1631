package experiment

import (
	"testing"

	"github.com/google/uuid"

	"github.com/simucrowd/simucrowd-backend/internal/types"
)

func makeBrief(title, content string, images ...string) types.MasterBrief {
	return types.MasterBrief{
		ID:      uuid.New(),
		Title:   title,
		Content: content,
		Images:  images,
	}
}

func TestSnapshotFromBriefFreezesFields(t *testing.T) {
	brief := makeBrief("Pricing Page v3", "Try our new pricing", "data:image/png;base64,AAA")

	snap := SnapshotFromBrief(brief)

	if snap.SourceBriefID != brief.ID.String() {
		t.Fatalf("SourceBriefID = %q, want %q", snap.SourceBriefID, brief.ID.String())
	}
	if snap.FrozenTitle != "Pricing Page v3" || snap.FrozenContent != "Try our new pricing" {
		t.Fatalf("frozen fields = %q / %q", snap.FrozenTitle, snap.FrozenContent)
	}

	// Mutating the source after the freeze must not change the snapshot.
	brief.Title = "Pricing Page v4"
	brief.Content = "edited"
	brief.Images[0] = "data:image/png;base64,BBB"

	if snap.FrozenTitle != "Pricing Page v3" {
		t.Fatalf("snapshot title changed after source edit: %q", snap.FrozenTitle)
	}
	if snap.FrozenContent != "Try our new pricing" {
		t.Fatalf("snapshot content changed after source edit: %q", snap.FrozenContent)
	}
	if snap.FrozenImages[0] != "data:image/png;base64,AAA" {
		t.Fatalf("snapshot images alias the source brief")
	}
}

func TestSnapshotFromBriefDeterministic(t *testing.T) {
	brief := makeBrief("Landing Hero", "Above the fold copy")

	first := SnapshotFromBrief(brief)
	second := SnapshotFromBrief(brief)

	if first.SourceBriefID != second.SourceBriefID ||
		first.FrozenTitle != second.FrozenTitle ||
		first.FrozenContent != second.FrozenContent {
		t.Fatalf("same brief produced different frozen fields: %+v vs %+v", first, second)
	}
}

func TestComparisonSnapshotCount(t *testing.T) {
	cases := []struct {
		name    string
		briefs  int
		wantErr bool
	}{
		{name: "zero", briefs: 0, wantErr: true},
		{name: "one", briefs: 1, wantErr: true},
		{name: "two", briefs: 2, wantErr: false},
		{name: "three", briefs: 3, wantErr: false},
		{name: "four", briefs: 4, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			briefs := make([]types.MasterBrief, 0, tc.briefs)
			for i := 0; i < tc.briefs; i++ {
				briefs = append(briefs, makeBrief("B", "content"))
			}
			_, err := ComparisonSnapshot(briefs)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ComparisonSnapshot(%d briefs) err = %v, wantErr %v", tc.briefs, err, tc.wantErr)
			}
		})
	}
}

func TestComparisonSnapshotPreservesOrder(t *testing.T) {
	a := makeBrief("Alpha", "first", "img-a")
	b := makeBrief("Beta", "second")
	c := makeBrief("Gamma", "third", "img-c1", "img-c2")

	snap, err := ComparisonSnapshot([]types.MasterBrief{a, b, c})
	if err != nil {
		t.Fatalf("ComparisonSnapshot: %v", err)
	}
	if len(snap.Options) != 3 {
		t.Fatalf("options = %d, want 3", len(snap.Options))
	}

	wantTitles := []string{"Alpha", "Beta", "Gamma"}
	for i, opt := range snap.Options {
		if opt.Title != wantTitles[i] {
			t.Fatalf("options[%d].Title = %q, want %q", i, opt.Title, wantTitles[i])
		}
	}
	if snap.Options[0].ID != a.ID.String() {
		t.Fatalf("options[0].ID = %q, want %q", snap.Options[0].ID, a.ID.String())
	}
	if snap.Options[0].Image != "img-a" || snap.Options[1].Image != "" || snap.Options[2].Image != "img-c1" {
		t.Fatalf("option images = %q %q %q", snap.Options[0].Image, snap.Options[1].Image, snap.Options[2].Image)
	}
	if snap.FrozenTitle != "Comparison: Alpha vs Beta vs Gamma" {
		t.Fatalf("FrozenTitle = %q", snap.FrozenTitle)
	}
}
