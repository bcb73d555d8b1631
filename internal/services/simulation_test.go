package services

import (
	"context"
	"testing"

	"github.com/simucrowd/simucrowd-backend/internal/experiment"
	"github.com/simucrowd/simucrowd-backend/internal/types"
)

func fakeSimClient(t *testing.T, response string) *openAISimulation {
	t.Helper()
	s := &openAISimulation{log: testLogger(t), model: "test"}
	s.complete = func(ctx context.Context, system, user string) (string, error) {
		return response, nil
	}
	return s
}

func focusGroupInput() RunInput {
	return RunInput{
		Personas: []types.Persona{{ID: "p1", Name: "Dana"}},
		Mode:     types.ModeValidation,
		Snapshot: experiment.Snapshot{
			FrozenTitle:   "Spring Campaign",
			FrozenContent: "Try it free for 30 days.",
		},
		TemplateID: "ads_copy",
		Language:   "en",
	}
}

func TestRunFocusGroupProgressReachesCompletion(t *testing.T) {
	s := fakeSimClient(t, `{"results":[{"personaId":"p1","sentiment":"POSITIVE","score":80,"reaction":"ok","purchaseIntent":"High"}],"confidenceScore":72,"summary":"good","shortTitle":"Spring"}`)

	var seen []int
	out, err := s.RunFocusGroup(context.Background(), focusGroupInput(), func(p int, stage string) {
		seen = append(seen, p)
	})
	if err != nil {
		t.Fatalf("RunFocusGroup: %v", err)
	}
	if out == nil || len(out.Results) != 1 {
		t.Fatalf("unexpected output: %+v", out)
	}

	if len(seen) == 0 {
		t.Fatal("no progress reported")
	}
	for i := 1; i < len(seen); i++ {
		if seen[i] < seen[i-1] {
			t.Fatalf("progress went backwards: %v", seen)
		}
	}
	// The gauge must land on 100 so clients can close out the run UI.
	if last := seen[len(seen)-1]; last != 100 {
		t.Fatalf("final progress = %d, want 100", last)
	}
}

func TestRunFocusGroupBackfillsPersonaAndTitle(t *testing.T) {
	s := fakeSimClient(t, `{"results":[{"sentiment":"NEUTRAL","score":50,"reaction":"fine","purchaseIntent":"Medium"}],"confidenceScore":60,"summary":"meh"}`)

	out, err := s.RunFocusGroup(context.Background(), focusGroupInput(), nil)
	if err != nil {
		t.Fatalf("RunFocusGroup: %v", err)
	}
	if out.Results[0].PersonaID != "p1" {
		t.Errorf("persona id = %q, want backfill from panel", out.Results[0].PersonaID)
	}
	if out.ShortTitle != "Spring Campaign" {
		t.Errorf("short title = %q, want the frozen title", out.ShortTitle)
	}
}

func TestRunFocusGroupRejectsEmptyResults(t *testing.T) {
	s := fakeSimClient(t, `{"results":[],"confidenceScore":0,"summary":""}`)

	if _, err := s.RunFocusGroup(context.Background(), focusGroupInput(), nil); err == nil {
		t.Fatal("expected error for a run with no per-persona results")
	}
}
