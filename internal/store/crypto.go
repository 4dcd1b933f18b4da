package store

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"

	"github.com/standardbeagle/chorus/internal/security/crypto"
	"github.com/standardbeagle/chorus/internal/types"
)

// ReplaceCryptoFindings deletes every crypto finding previously recorded
// for fileID and inserts findings — the same delete-then-insert shape
// ReplaceDetections uses, since crypto findings invalidate on content hash
// exactly like convention detections do (spec §4.8 "crypto findings with
// content-hash invalidation").
func (s *Store) ReplaceCryptoFindings(fileID types.FileID, scanID int64, findings []crypto.Finding) error {
	return s.batch("store.ReplaceCryptoFindings", func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM crypto_findings WHERE file_id = ?`, fileID); err != nil {
			return err
		}
		for i, f := range findings {
			additional, err := json.Marshal(f.AdditionalWeak)
			if err != nil {
				return err
			}
			id := cryptoFindingID(fileID, i, f)
			_, err = tx.Exec(`
				INSERT INTO crypto_findings (
					id, file_id, category, severity, confidence, weakness, additional_weak,
					start_line, start_column, end_line, end_column,
					evidence, algorithm, remediation, remediation_code, language, library,
					pattern_id, content_hash, scan_id
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				id, fileID, string(f.Category), string(f.Severity), f.Confidence, f.Weakness, string(additional),
				f.Location.StartLine, f.Location.StartColumn, f.Location.EndLine, f.Location.EndColumn,
				f.Evidence, f.Algorithm, f.Remediation, f.RemediationCode, f.Language, f.Library,
				f.PatternID, hex.EncodeToString(f.ContentHash[:]), scanID,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func cryptoFindingID(fileID types.FileID, index int, f crypto.Finding) string {
	return hex.EncodeToString(f.ContentHash[:8])
}

// QueryCryptoFindings returns crypto findings matching filter, keyset-
// paginated by id.
func (s *Store) QueryCryptoFindings(filter Filter) ([]crypto.Finding, string, error) {
	rows, err := s.reader.Query(`
		SELECT id, category, severity, confidence, weakness, additional_weak,
		       start_line, start_column, end_line, end_column,
		       evidence, algorithm, remediation, remediation_code, language, library, pattern_id
		FROM crypto_findings WHERE id > ? ORDER BY id LIMIT ?
	`, filter.Cursor, filter.limit())
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var out []crypto.Finding
	var ids []string
	for rows.Next() {
		var f crypto.Finding
		var id, additionalJSON string
		if err := rows.Scan(
			&id, &f.Category, &f.Severity, &f.Confidence, &f.Weakness, &additionalJSON,
			&f.Location.StartLine, &f.Location.StartColumn, &f.Location.EndLine, &f.Location.EndColumn,
			&f.Evidence, &f.Algorithm, &f.Remediation, &f.RemediationCode, &f.Language, &f.Library, &f.PatternID,
		); err != nil {
			return nil, "", err
		}
		_ = json.Unmarshal([]byte(additionalJSON), &f.AdditionalWeak)
		if !containsStr(filter.Severities, string(f.Severity)) {
			continue
		}
		ids = append(ids, id)
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	next := ""
	if len(ids) == filter.limit() {
		next = ids[len(ids)-1]
	}
	return out, next, nil
}
