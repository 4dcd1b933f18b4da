package store

import (
	"database/sql"
	"encoding/json"

	"github.com/standardbeagle/chorus/internal/model"
	"github.com/standardbeagle/chorus/internal/types"
)

// ReplaceViolations deletes every violation previously recorded for
// fileID, then inserts vs — the same replace-on-rescan write path
// ReplaceDetections uses, since a violation set is as fully determined by
// a file's current content as its detections are.
func (s *Store) ReplaceViolations(fileID types.FileID, scanID int64, vs []model.Violation) error {
	return s.batch("store.ReplaceViolations", func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM violations WHERE file_id = ?`, fileID); err != nil {
			return err
		}
		for _, v := range vs {
			flags, err := json.Marshal(v.AIFlags)
			if err != nil {
				return err
			}
			_, err = tx.Exec(`
				INSERT INTO violations (
					id, file_id, pattern_id, detector_id, severity,
					start_line, start_column, end_line, end_column,
					message, expected, actual, explanation,
					convention_category, convention_confidence, convention_trend,
					ai_flags, scan_id
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				v.ID, fileID, v.PatternID, v.DetectorID, string(v.Severity),
				v.Location.StartLine, v.Location.StartColumn, v.Location.EndLine, v.Location.EndColumn,
				v.Message, v.Expected, v.Actual, v.Explanation,
				v.ConventionCategory, v.ConventionConfidence, v.ConventionTrend,
				string(flags), scanID,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// QueryViolations returns violations matching filter, keyset-paginated by
// id, joined against their file path the way QueryFindings is.
func (s *Store) QueryViolations(filter Filter) ([]model.Violation, string, error) {
	query := `
		SELECT v.id, v.file_id, v.pattern_id, v.detector_id, v.severity,
		       v.start_line, v.start_column, v.end_line, v.end_column,
		       v.message, v.expected, v.actual, v.explanation,
		       v.convention_category, v.convention_confidence, v.convention_trend, v.ai_flags
		FROM violations v
		WHERE v.id > ?
		ORDER BY v.id
		LIMIT ?
	`
	rows, err := s.reader.Query(query, filter.Cursor, filter.limit())
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var out []model.Violation
	for rows.Next() {
		var v model.Violation
		var flagsJSON string
		if err := rows.Scan(
			&v.ID, &v.Location.File, &v.PatternID, &v.DetectorID, &v.Severity,
			&v.Location.StartLine, &v.Location.StartColumn, &v.Location.EndLine, &v.Location.EndColumn,
			&v.Message, &v.Expected, &v.Actual, &v.Explanation,
			&v.ConventionCategory, &v.ConventionConfidence, &v.ConventionTrend, &flagsJSON,
		); err != nil {
			return nil, "", err
		}
		_ = json.Unmarshal([]byte(flagsJSON), &v.AIFlags)
		if !containsStr(filter.Severities, string(v.Severity)) {
			continue
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	next := ""
	if len(out) == filter.limit() {
		next = out[len(out)-1].ID
	}
	return out, next, nil
}
