package store

import "database/sql"

// DetectorHealth mirrors the detector_health table: a per-detector panic
// count and the auto-disable state the supplemented "disable after 3
// consecutive panics" behavior (SPEC_FULL.md Supplemented features) reads
// and writes.
type DetectorHealth struct {
	DetectorID     string
	PanicCount     int
	Disabled       bool
	DisabledScanID int64
	LastError      string
}

// RecordDetectorPanic increments detectorID's panic count and, once it
// reaches threshold, marks the detector disabled for scanID — the
// auto-disable trigger.
func (s *Store) RecordDetectorPanic(detectorID string, threshold int, scanID int64, errMsg string) (disabled bool, err error) {
	err = s.batch("store.RecordDetectorPanic", func(tx *sql.Tx) error {
		var count int
		row := tx.QueryRow(`SELECT panic_count FROM detector_health WHERE detector_id = ?`, detectorID)
		switch scanErr := row.Scan(&count); scanErr {
		case nil:
		case sql.ErrNoRows:
			count = 0
		default:
			return scanErr
		}
		count++
		disabled = count >= threshold

		_, execErr := tx.Exec(`
			INSERT INTO detector_health (detector_id, panic_count, disabled, disabled_scan_id, last_panic_at, last_error)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(detector_id) DO UPDATE SET
				panic_count = excluded.panic_count, disabled = excluded.disabled,
				disabled_scan_id = excluded.disabled_scan_id, last_panic_at = excluded.last_panic_at,
				last_error = excluded.last_error
		`, detectorID, count, boolToInt(disabled), nullableScanID(disabled, scanID), nowString(), errMsg)
		return execErr
	})
	return disabled, err
}

func nullableScanID(disabled bool, scanID int64) interface{} {
	if !disabled {
		return nil
	}
	return scanID
}

// ResetDetectorHealth clears a detector's panic count at the start of a
// new scan, giving every detector a fresh 3-strike budget per run.
func (s *Store) ResetDetectorHealth(detectorID string) error {
	return s.batch("store.ResetDetectorHealth", func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO detector_health (detector_id, panic_count, disabled, disabled_scan_id, last_panic_at, last_error)
			VALUES (?, 0, 0, NULL, NULL, '')
			ON CONFLICT(detector_id) DO UPDATE SET panic_count = 0, disabled = 0, disabled_scan_id = NULL
		`, detectorID)
		return err
	})
}

// IsDetectorDisabled reports whether detectorID is currently disabled.
func (s *Store) IsDetectorDisabled(detectorID string) (bool, error) {
	var disabled int
	row := s.reader.QueryRow(`SELECT disabled FROM detector_health WHERE detector_id = ?`, detectorID)
	switch err := row.Scan(&disabled); err {
	case nil:
		return disabled != 0, nil
	case sql.ErrNoRows:
		return false, nil
	default:
		return false, err
	}
}

// RecordViolationAction appends one entry to the violation-action audit
// trail (SPEC_FULL.md Supplemented features #2): fixed/dismissed/approved
// actions against a violation with before/after state, surfaced read-only
// through query_findings.
func (s *Store) RecordViolationAction(violationID, action, before, after, reason string) error {
	return s.batch("store.RecordViolationAction", func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO violation_actions (violation_id, action, before_state, after_state, reason, recorded_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, violationID, action, before, after, reason, nowString())
		return err
	})
}

// ViolationAction is one row of the audit trail.
type ViolationAction struct {
	ViolationID string
	Action      string
	BeforeState string
	AfterState  string
	Reason      string
	RecordedAt  string
}

// ViolationActions returns the full audit trail for violationID, oldest
// first.
func (s *Store) ViolationActions(violationID string) ([]ViolationAction, error) {
	rows, err := s.reader.Query(`
		SELECT violation_id, action, before_state, after_state, reason, recorded_at
		FROM violation_actions WHERE violation_id = ? ORDER BY id
	`, violationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ViolationAction
	for rows.Next() {
		var a ViolationAction
		if err := rows.Scan(&a.ViolationID, &a.Action, &a.BeforeState, &a.AfterState, &a.Reason, &a.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
