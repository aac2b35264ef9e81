package resolve

import "time"

// InsightKind classifies an insight log entry.
type InsightKind string

const (
	InsightInference   InsightKind = "inference"
	InsightConflict    InsightKind = "conflict"
	InsightDeprecation InsightKind = "deprecation"
)

// Insight is one append-only log entry explaining why a dependency-map
// entry took its value. Every automated decision produces exactly one.
type Insight struct {
	Kind      InsightKind `json:"kind"`
	Subdir    string      `json:"subdir"`
	Ecosystem string      `json:"ecosystem"`
	Message   string      `json:"message"`
}

// Conflict records a reconciliation that changed a previously-held version.
type Conflict struct {
	Subdir    string `json:"subdir"`
	Ecosystem string `json:"ecosystem"`
	Name      string `json:"name"`
	From      string `json:"from"`
	To        string `json:"to"`
	Reason    string `json:"reason"`
}

// SubdirResult is one subdirectory's contribution: resolved dependencies
// per ecosystem, implied (hidden) dependencies, and the local logs. It is
// assembled fully before being attached to the shared Result, so a
// cancelled run never leaves partial entries behind.
type SubdirResult struct {
	Deps      map[string]map[string]string `json:"deps"`
	Hidden    []string                     `json:"hidden,omitempty"`
	Insights  []Insight                    `json:"insights,omitempty"`
	Conflicts []Conflict                   `json:"conflicts,omitempty"`
}

// Result is the engine output: the global dependency union, per-subdirectory
// maps, and the complete audit logs. Immutable after Resolve returns, and
// JSON round-trippable so the result cache can persist it as-is.
type Result struct {
	RunID       string                   `json:"run_id"`
	Fingerprint string                   `json:"fingerprint,omitempty"`
	Primary     string                   `json:"primary_ecosystem,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	Global      map[string]string        `json:"deps"`
	PerSubdir   map[string]*SubdirResult `json:"per_subdir"`
	Hidden      []string                 `json:"hidden,omitempty"`
	Conflicts   []Conflict               `json:"conflicts,omitempty"`
	Insights    []Insight                `json:"insights,omitempty"`
}
