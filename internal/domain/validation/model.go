package validation

// Check names as reported to the CLI/reporting collaborator.
const (
	CheckTablePresence  = "table_presence"
	CheckFKOrphans      = "fk_orphans"
	CheckUniqueness     = "uniqueness"
	CheckTOTConsistency = "tot_consistency"
	CheckReconciliation = "sample_reconciliation"
)

// PresenceIssue reports a required curated table that is missing or empty.
type PresenceIssue struct {
	Check  string `json:"check"`
	Table  string `json:"table"`
	Reason string `json:"reason"`
}

// OrphanIssue reports one fact row whose foreign key has no matching
// dimension row. Key names are the wire contract with the reporting layer.
type OrphanIssue struct {
	Relation    string `json:"relation"`
	ChildTable  string `json:"child_table"`
	ChildFK     string `json:"child_fk"`
	ParentTable string `json:"parent_table"`
	MissingKey  string `json:"missing_key"`
}

// DuplicateIssue reports one duplicate-key group for a declared grain.
type DuplicateIssue struct {
	Entity       string `json:"entity"`
	Grain        string `json:"grain"`
	DuplicateKey string `json:"duplicate_key"`
	Count        int    `json:"count"`
}

// TOTIssue reports a (player_id, season) group that violates the
// one-aggregate-or-many-splits rule, re-derived from staging.
type TOTIssue struct {
	PlayerID  int64  `json:"player_id"`
	Season    int    `json:"season"`
	HasTOT    bool   `json:"has_tot"`
	TeamRows  int    `json:"team_rows"`
	Violation string `json:"violation"`
}

// ReconciliationIssue reports one sampled metric outside tolerance against
// the external reference. All numeric fields are finite.
type ReconciliationIssue struct {
	Entity    string  `json:"entity"`
	RowKey    string  `json:"row_key"`
	Metric    string  `json:"metric"`
	Expected  float64 `json:"expected"`
	Actual    float64 `json:"actual"`
	Delta     float64 `json:"delta"`
	Tolerance float64 `json:"tolerance"`
}

// Report aggregates one full validation run: every check executes even when
// earlier ones find problems, and counts summarize per check.
type Report struct {
	Presence       []PresenceIssue       `json:"presence"`
	Orphans        []OrphanIssue         `json:"orphans"`
	Duplicates     []DuplicateIssue      `json:"duplicates"`
	TOTViolations  []TOTIssue            `json:"tot_violations"`
	Reconciliation []ReconciliationIssue `json:"reconciliation"`
}

// Counts returns the number of issues per check, keyed by check name.
func (r Report) Counts() map[string]int {
	return map[string]int{
		CheckTablePresence:  len(r.Presence),
		CheckFKOrphans:      len(r.Orphans),
		CheckUniqueness:     len(r.Duplicates),
		CheckTOTConsistency: len(r.TOTViolations),
		CheckReconciliation: len(r.Reconciliation),
	}
}

// Clean reports whether the run found no issues at all.
func (r Report) Clean() bool {
	for _, n := range r.Counts() {
		if n > 0 {
			return false
		}
	}
	return true
}
