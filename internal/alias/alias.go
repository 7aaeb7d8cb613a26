// ABOUTME: Alias data model with usage tracking fields and JSON wire format
// ABOUTME: Field names match the aliases.json on-disk layout

package alias

import (
	"fmt"
	"time"
)

// maxUsageHistory caps per-alias usage records to bound file growth.
const maxUsageHistory = 100

// UsageRecord is a single usage event of an alias.
type UsageRecord struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Context   string    `json:"context,omitempty" yaml:"context,omitempty"`
}

// Alias is a named shell alias with metadata and usage tracking.
// Group is a pointer so an ungrouped alias serializes as null,
// matching the existing file format.
type Alias struct {
	Name         string        `json:"name" yaml:"name"`
	Command      string        `json:"command" yaml:"command"`
	Description  string        `json:"description,omitempty" yaml:"description,omitempty"`
	Tags         []string      `json:"tags" yaml:"tags"`
	CreatedAt    time.Time     `json:"created_at" yaml:"created_at"`
	UsedCount    int           `json:"used_count" yaml:"used_count"`
	Shell        string        `json:"shell,omitempty" yaml:"shell,omitempty"`
	LastUsed     *time.Time    `json:"last_used,omitempty" yaml:"last_used,omitempty"`
	UsageHistory []UsageRecord `json:"usage_history,omitempty" yaml:"usage_history,omitempty"`
	Group        *string       `json:"group,omitempty" yaml:"group,omitempty"`
}

// New creates an alias with the creation time set to now.
func New(name, command string) *Alias {
	return &Alias{
		Name:      name,
		Command:   command,
		Tags:      []string{},
		CreatedAt: time.Now(),
	}
}

// Clone returns a deep copy.
func (a *Alias) Clone() *Alias {
	c := *a
	c.Tags = append([]string(nil), a.Tags...)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	c.UsageHistory = append([]UsageRecord(nil), a.UsageHistory...)
	if a.LastUsed != nil {
		t := *a.LastUsed
		c.LastUsed = &t
	}
	if a.Group != nil {
		g := *a.Group
		c.Group = &g
	}
	return &c
}

// HasTag reports whether the alias carries the given tag.
func (a *Alias) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddTag appends a tag if not already present.
func (a *Alias) AddTag(tag string) {
	if !a.HasTag(tag) {
		a.Tags = append(a.Tags, tag)
	}
}

// RemoveTag deletes a tag if present.
func (a *Alias) RemoveTag(tag string) {
	out := a.Tags[:0]
	for _, t := range a.Tags {
		if t != tag {
			out = append(out, t)
		}
	}
	a.Tags = out
}

// RecordUsage bumps counters and appends a usage record, trimming the
// history to the most recent maxUsageHistory events.
func (a *Alias) RecordUsage(context string) {
	now := time.Now()
	a.UsedCount++
	a.LastUsed = &now
	a.UsageHistory = append(a.UsageHistory, UsageRecord{Timestamp: now, Context: context})
	if len(a.UsageHistory) > maxUsageHistory {
		a.UsageHistory = a.UsageHistory[len(a.UsageHistory)-maxUsageHistory:]
	}
}

// Stats summarizes usage for one alias.
type Stats struct {
	TotalUses   int
	FirstUsed   *time.Time
	LastUsed    *time.Time
	UsesPerDay  float64
	RecentUsage []UsageRecord
}

// UsageStats computes per-alias usage statistics.
func (a *Alias) UsageStats() Stats {
	s := Stats{TotalUses: a.UsedCount, LastUsed: a.LastUsed}
	if len(a.UsageHistory) == 0 {
		return s
	}

	first := a.UsageHistory[0].Timestamp
	s.FirstUsed = &first

	days := int(time.Since(a.CreatedAt).Hours() / 24)
	if days < 1 {
		days = 1
	}
	s.UsesPerDay = float64(a.UsedCount) / float64(days)

	recent := a.UsageHistory
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	s.RecentUsage = append([]UsageRecord(nil), recent...)
	return s
}

// String renders the alias in shell form.
func (a *Alias) String() string {
	return fmt.Sprintf("%s='%s'", a.Name, a.Command)
}
