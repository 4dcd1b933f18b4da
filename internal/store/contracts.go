package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/standardbeagle/chorus/internal/contract"
)

// SaveContract upserts a Contract and replaces its operations/types/
// consumers/mismatches/breaking-changes children wholesale — simpler than
// diffing child rows, and correct because a contract's full shape is
// always recomputed from a fresh scan rather than patched incrementally.
func (s *Store) SaveContract(c contract.Contract) error {
	return s.batch("store.SaveContract", func(tx *sql.Tx) error {
		var lastVerified interface{}
		if !c.LastVerified.IsZero() {
			lastVerified = c.LastVerified.UTC().Format(time.RFC3339Nano)
		}

		_, err := tx.Exec(`
			INSERT INTO contracts (id, paradigm, service, status, confidence, last_verified, never_verified)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				paradigm = excluded.paradigm, service = excluded.service,
				status = excluded.status, confidence = excluded.confidence,
				last_verified = excluded.last_verified, never_verified = excluded.never_verified
		`, c.ID, string(c.Paradigm), c.Service, string(c.Status), c.Confidence, lastVerified, boolToInt(c.NeverVerified))
		if err != nil {
			return err
		}

		for _, stmt := range []string{
			`DELETE FROM contract_operations WHERE contract_id = ?`,
			`DELETE FROM contract_types WHERE contract_id = ?`,
			`DELETE FROM contract_consumers WHERE contract_id = ?`,
			`DELETE FROM contract_mismatches WHERE contract_id = ?`,
			`DELETE FROM contract_breaking_changes WHERE contract_id = ?`,
		} {
			if _, err := tx.Exec(stmt, c.ID); err != nil {
				return err
			}
		}

		for _, op := range c.Operations {
			opJSON, err := json.Marshal(op)
			if err != nil {
				return err
			}
			_, err = tx.Exec(`
				INSERT INTO contract_operations (contract_id, name, operation_json, auth_required, deprecated, source_file, source_line)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, c.ID, op.Name, string(opJSON), boolToInt(op.AuthRequired), boolToInt(op.Deprecated), op.Source.File, op.Source.Line)
			if err != nil {
				return err
			}
		}

		for _, t := range c.Types {
			typeJSON, err := json.Marshal(t)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(`INSERT INTO contract_types (contract_id, name, type_json) VALUES (?, ?, ?)`, c.ID, t.Name, string(typeJSON)); err != nil {
				return err
			}
		}

		for _, cons := range c.Consumers {
			var lastSeen interface{}
			if !cons.LastSeen.IsZero() {
				lastSeen = cons.LastSeen.UTC().Format(time.RFC3339Nano)
			}
			_, err := tx.Exec(`
				INSERT INTO contract_consumers (contract_id, name, source_file, source_line, last_seen, verified)
				VALUES (?, ?, ?, ?, ?, ?)
			`, c.ID, cons.Name, cons.File, cons.Line, lastSeen, boolToInt(cons.Verified))
			if err != nil {
				return err
			}
		}

		for _, m := range c.Mismatches {
			_, err := tx.Exec(`
				INSERT INTO contract_mismatches (contract_id, field_path, mismatch_type, severity, description, provider_value, consumer_value, detected_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, c.ID, m.FieldPath, string(m.Type), string(m.Severity), m.Description, m.ProviderValue, m.ConsumerValue, nowString())
			if err != nil {
				return err
			}
		}

		for _, bc := range c.BreakingChanges {
			_, err := tx.Exec(`
				INSERT INTO contract_breaking_changes (contract_id, change_type, severity, operation, field_path, description, migration_hint, detected_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, c.ID, string(bc.Type), string(bc.Severity), bc.Operation, bc.FieldPath, bc.Description, bc.MigrationHint, nowString())
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// SnapshotContract records c's full serialized state for scanID, the
// history contract-verification and breaking-change detection diff
// against.
func (s *Store) SnapshotContract(contractID string, scanID int64, c contract.Contract) error {
	blob, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.batch("store.SnapshotContract", func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO contract_snapshots (contract_id, scan_id, snapshot, taken_at)
			VALUES (?, ?, ?, ?)
		`, contractID, scanID, string(blob), nowString())
		return err
	})
}

// LatestSnapshot returns the most recently recorded snapshot for
// contractID, used by compare_contracts(before, after) when "before" isn't
// supplied directly by the caller.
func (s *Store) LatestSnapshot(contractID string) (*contract.Contract, error) {
	row := s.reader.QueryRow(`
		SELECT snapshot FROM contract_snapshots
		WHERE contract_id = ? ORDER BY scan_id DESC LIMIT 1
	`, contractID)
	var blob string
	if err := row.Scan(&blob); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	var c contract.Contract
	if err := json.Unmarshal([]byte(blob), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// QueryContracts returns contracts matching filter, keyset-paginated by
// id. Children are not rehydrated here — callers that need operations load
// them via the snapshot or a dedicated follow-up query.
func (s *Store) QueryContracts(filter Filter) ([]contract.Contract, string, error) {
	rows, err := s.reader.Query(`
		SELECT id, paradigm, service, status, confidence, last_verified, never_verified
		FROM contracts WHERE id > ? ORDER BY id LIMIT ?
	`, filter.Cursor, filter.limit())
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var out []contract.Contract
	for rows.Next() {
		var c contract.Contract
		var lastVerified sql.NullString
		var neverVerified int
		if err := rows.Scan(&c.ID, &c.Paradigm, &c.Service, &c.Status, &c.Confidence, &lastVerified, &neverVerified); err != nil {
			return nil, "", err
		}
		if lastVerified.Valid {
			c.LastVerified, _ = time.Parse(time.RFC3339Nano, lastVerified.String)
		}
		c.NeverVerified = neverVerified != 0
		if !containsStr(filter.Paradigms, string(c.Paradigm)) {
			continue
		}
		out = append(out, c)
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

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
