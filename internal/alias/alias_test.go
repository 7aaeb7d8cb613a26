// ABOUTME: Tests for the Alias model: cloning, tags, usage recording
// ABOUTME: Covers JSON round-trip of the on-disk field layout

package alias

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	a := New("gs", "git status")
	if a.Name != "gs" || a.Command != "git status" {
		t.Errorf("unexpected fields: %+v", a)
	}
	if a.Tags == nil {
		t.Error("Tags should be non-nil")
	}
	if a.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestClone_Independent(t *testing.T) {
	t.Parallel()

	g := "git"
	a := New("gs", "git status")
	a.Tags = []string{"vcs"}
	a.Group = &g

	c := a.Clone()
	c.Tags[0] = "changed"
	*c.Group = "other"

	if a.Tags[0] != "vcs" {
		t.Error("clone shares tag slice with original")
	}
	if *a.Group != "git" {
		t.Error("clone shares group pointer with original")
	}
}

func TestTags_AddRemove(t *testing.T) {
	t.Parallel()

	a := New("gs", "git status")
	a.AddTag("vcs")
	a.AddTag("vcs")
	if len(a.Tags) != 1 {
		t.Errorf("expected 1 tag, got %v", a.Tags)
	}

	a.RemoveTag("vcs")
	if a.HasTag("vcs") {
		t.Error("tag should be removed")
	}
	a.RemoveTag("missing") // no-op
}

func TestRecordUsage_TrimsHistory(t *testing.T) {
	t.Parallel()

	a := New("gs", "git status")
	for i := 0; i < maxUsageHistory+5; i++ {
		a.RecordUsage("")
	}
	if len(a.UsageHistory) != maxUsageHistory {
		t.Errorf("expected %d records, got %d", maxUsageHistory, len(a.UsageHistory))
	}
	if a.UsedCount != maxUsageHistory+5 {
		t.Errorf("expected count %d, got %d", maxUsageHistory+5, a.UsedCount)
	}
	if a.LastUsed == nil {
		t.Error("LastUsed should be set")
	}
}

func TestUsageStats_Empty(t *testing.T) {
	t.Parallel()

	a := New("gs", "git status")
	s := a.UsageStats()
	if s.TotalUses != 0 || s.FirstUsed != nil || len(s.RecentUsage) != 0 {
		t.Errorf("unexpected stats for unused alias: %+v", s)
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	t.Parallel()

	g := "k8s"
	now := time.Now().Truncate(time.Second)
	a := &Alias{
		Name:      "k",
		Command:   "kubectl",
		Tags:      []string{"ops"},
		CreatedAt: now,
		UsedCount: 3,
		LastUsed:  &now,
		Group:     &g,
	}

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Alias
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Name != "k" || back.Command != "kubectl" || *back.Group != "k8s" {
		t.Errorf("round-trip mismatch: %+v", back)
	}
	if len(back.Tags) != 1 || back.Tags[0] != "ops" {
		t.Errorf("tags mismatch: %v", back.Tags)
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	a := New("gs", "git status")
	if got := a.String(); got != "gs='git status'" {
		t.Errorf("String() = %q", got)
	}
}
