package history

import "time"

const SchemaVersion = 1

// Snapshot summarizes one check run.
type Snapshot struct {
	ProjectKey      string
	RunID           string
	SchemaVersion   int
	Timestamp       time.Time
	FilesDiscovered int
	FilesInScope    int
	FilesFailed     int
	Violations      int
	// Per message ID.
	ExportViolations  int
	ImportViolations  int
	EnumViolations    int
	NonTypeViolations int
	DurationMS        int64
}

// Delta compares a run against the one before it.
type Delta struct {
	Previous   Snapshot
	Current    Snapshot
	Violations int
	InScope    int
}

// Compare returns current minus previous.
func Compare(previous, current Snapshot) Delta {
	return Delta{
		Previous:   previous,
		Current:    current,
		Violations: current.Violations - previous.Violations,
		InScope:    current.FilesInScope - previous.FilesInScope,
	}
}
