package store

import (
	"database/sql"
	"encoding/json"

	"github.com/standardbeagle/chorus/internal/model"
	"github.com/standardbeagle/chorus/internal/types"
)

// ReplaceDetections deletes every detection previously recorded for
// fileID, then inserts dets — the "detections for changed files are
// deleted first, then new rows inserted" write path from spec §4.8, run as
// one exclusive transaction so readers never observe a half-updated file.
func (s *Store) ReplaceDetections(fileID types.FileID, scanID int64, dets []model.Detection) error {
	return s.batch("store.ReplaceDetections", func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM detections WHERE file_id = ?`, fileID); err != nil {
			return err
		}
		for _, d := range dets {
			weakness, err := json.Marshal(d.WeaknessIDs)
			if err != nil {
				return err
			}
			_, err = tx.Exec(`
				INSERT INTO detections (
					id, file_id, category, pattern_id, method,
					start_line, start_column, end_line, end_column,
					matched_text, base_confidence, weakness_ids, owasp,
					suggested_fix, taint_flow, scan_id
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				d.ID, fileID, string(d.Category), d.PatternID, string(d.Method),
				d.Location.StartLine, d.Location.StartColumn, d.Location.EndLine, d.Location.EndColumn,
				d.MatchedText, d.BaseConfidence, string(weakness), d.OWASP,
				d.SuggestedFix, d.TaintFlow, scanID,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Finding is a query_findings row: a detection joined against its file
// path, enriched with the convention/violation fields when the detection
// was enforced as a Violation (spec §6 query_findings).
type Finding struct {
	ID             string
	FilePath       string
	Category       string
	PatternID      string
	Method         string
	Location       model.Location
	MatchedText    string
	BaseConfidence float64
	WeaknessIDs    []int
	OWASP          string
	SuggestedFix   string
}

// QueryFindings returns findings matching filter, keyset-paginated by id.
func (s *Store) QueryFindings(filter Filter) ([]Finding, string, error) {
	query := `
		SELECT d.id, f.path, d.category, d.pattern_id, d.method,
		       d.start_line, d.start_column, d.end_line, d.end_column,
		       d.matched_text, d.base_confidence, d.weakness_ids, d.owasp, d.suggested_fix
		FROM detections d
		JOIN files f ON f.file_id = d.file_id
		WHERE d.id > ?
		ORDER BY d.id
		LIMIT ?
	`
	rows, err := s.reader.Query(query, filter.Cursor, filter.limit())
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var out []Finding
	for rows.Next() {
		var fnd Finding
		var weaknessJSON string
		if err := rows.Scan(
			&fnd.ID, &fnd.FilePath, &fnd.Category, &fnd.PatternID, &fnd.Method,
			&fnd.Location.StartLine, &fnd.Location.StartColumn, &fnd.Location.EndLine, &fnd.Location.EndColumn,
			&fnd.MatchedText, &fnd.BaseConfidence, &weaknessJSON, &fnd.OWASP, &fnd.SuggestedFix,
		); err != nil {
			return nil, "", err
		}
		_ = json.Unmarshal([]byte(weaknessJSON), &fnd.WeaknessIDs)
		if !containsStr(filter.Categories, fnd.Category) {
			continue
		}
		out = append(out, fnd)
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
