// ABOUTME: Usage tracking file and analytics over the alias collection
// ABOUTME: Daily counts plus per-alias totals and recent usage dates

package usage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/alix-sh/alix/internal/alias"
)

// maxUsageDates caps the per-alias recent-usage list.
const maxUsageDates = 30

// aliasUsage aggregates events for one alias.
type aliasUsage struct {
	TotalUses  int      `json:"total_uses"`
	LastUsed   string   `json:"last_used,omitempty"`
	UsageDates []string `json:"usage_dates"`
}

// trackingData is the on-disk layout of the tracking file.
type trackingData struct {
	DailyUsage  map[string]int        `json:"daily_usage"`
	AliasUsage  map[string]aliasUsage `json:"alias_usage"`
	LastUpdated string                `json:"last_updated,omitempty"`
}

// Tracker records alias usage events in a JSON tracking file.
type Tracker struct {
	path string
	data trackingData
}

// NewTracker loads (or initializes) the tracking file at path.
// A corrupt file starts fresh; usage data is not worth failing over.
func NewTracker(path string) *Tracker {
	t := &Tracker{path: path}
	t.data = trackingData{
		DailyUsage: map[string]int{},
		AliasUsage: map[string]aliasUsage{},
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return t
	}
	var loaded trackingData
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return t
	}
	if loaded.DailyUsage == nil {
		loaded.DailyUsage = map[string]int{}
	}
	if loaded.AliasUsage == nil {
		loaded.AliasUsage = map[string]aliasUsage{}
	}
	t.data = loaded
	return t
}

// save writes the tracking file, best-effort.
func (t *Tracker) save() error {
	data, err := json.MarshalIndent(t.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling tracking data: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return fmt.Errorf("creating tracking dir: %w", err)
	}
	if err := os.WriteFile(t.path, data, 0o644); err != nil {
		return fmt.Errorf("writing tracking data: %w", err)
	}
	return nil
}

// Track records one usage event for the named alias.
func (t *Tracker) Track(name, context string) error {
	now := time.Now()
	day := now.Format("2006-01-02")

	t.data.DailyUsage[day]++

	au := t.data.AliasUsage[name]
	au.TotalUses++
	au.LastUsed = now.Format(time.RFC3339)
	au.UsageDates = append(au.UsageDates, au.LastUsed)
	if len(au.UsageDates) > maxUsageDates {
		au.UsageDates = au.UsageDates[len(au.UsageDates)-maxUsageDates:]
	}
	t.data.AliasUsage[name] = au

	t.data.LastUpdated = now.Format(time.RFC3339)
	return t.save()
}

// Productivity pairs an alias with the characters its use saves.
type Productivity struct {
	Name       string
	CharsSaved int
}

// Analytics summarizes usage across the whole collection.
type Analytics struct {
	TotalAliases    int
	TotalUses       int
	MostUsed        string
	LeastUsed       string
	Unused          []string
	RecentlyUsed    []string
	UsageTrends     map[string]int
	AveragePerAlias float64
	MostProductive  []Productivity
}

// Compute builds analytics for the given aliases.
func (t *Tracker) Compute(aliases []*alias.Alias) Analytics {
	a := Analytics{UsageTrends: t.data.DailyUsage}
	if len(aliases) == 0 {
		return a
	}

	a.TotalAliases = len(aliases)
	weekAgo := time.Now().AddDate(0, 0, -7)

	most, least := aliases[0], aliases[0]
	for _, al := range aliases {
		a.TotalUses += al.UsedCount
		if al.UsedCount > most.UsedCount {
			most = al
		}
		if al.UsedCount < least.UsedCount {
			least = al
		}
		if al.UsedCount == 0 {
			a.Unused = append(a.Unused, al.Name)
		}
		if al.LastUsed != nil && !al.LastUsed.Before(weekAgo) {
			a.RecentlyUsed = append(a.RecentlyUsed, al.Name)
		}
		a.MostProductive = append(a.MostProductive, Productivity{
			Name:       al.Name,
			CharsSaved: len(al.Command) - len(al.Name),
		})
	}

	a.MostUsed = most.Name
	a.LeastUsed = least.Name
	a.AveragePerAlias = float64(a.TotalUses) / float64(len(aliases))

	sort.Slice(a.MostProductive, func(i, j int) bool {
		return a.MostProductive[i].CharsSaved > a.MostProductive[j].CharsSaved
	})
	if len(a.MostProductive) > 10 {
		a.MostProductive = a.MostProductive[:10]
	}
	return a
}

// History returns recent usage timestamps for one alias, newest last,
// limited to the trailing days window.
func (t *Tracker) History(name string, days int) []time.Time {
	cutoff := time.Now().AddDate(0, 0, -days)
	var out []time.Time
	for _, raw := range t.data.AliasUsage[name].UsageDates {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil || ts.Before(cutoff) {
			continue
		}
		out = append(out, ts)
	}
	return out
}

// Cleanup drops tracking entries older than the retention window.
func (t *Tracker) Cleanup(daysToKeep int) error {
	cutoff := time.Now().AddDate(0, 0, -daysToKeep)
	cutoffDay := cutoff.Format("2006-01-02")

	for day := range t.data.DailyUsage {
		if day < cutoffDay {
			delete(t.data.DailyUsage, day)
		}
	}
	for name, au := range t.data.AliasUsage {
		kept := au.UsageDates[:0]
		for _, raw := range au.UsageDates {
			if ts, err := time.Parse(time.RFC3339, raw); err == nil && !ts.Before(cutoff) {
				kept = append(kept, raw)
			}
		}
		au.UsageDates = kept
		t.data.AliasUsage[name] = au
	}
	return t.save()
}

// Export writes the raw tracking data plus a summary to path.
func (t *Tracker) Export(path string) error {
	payload := map[string]any{
		"exported_at":   time.Now().Format(time.RFC3339),
		"tracking_data": t.data,
		"summary": map[string]any{
			"total_days_tracked":    len(t.data.DailyUsage),
			"total_aliases_tracked": len(t.data.AliasUsage),
			"last_updated":          t.data.LastUpdated,
		},
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling analytics export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing analytics export: %w", err)
	}
	return nil
}
