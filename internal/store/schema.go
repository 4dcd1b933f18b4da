package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// migration is one forward-only schema step, applied inside its own
// transaction and recorded in schema_version once it commits.
type migration func(tx *sql.Tx) error

// migrations runs in index order; never reorder or remove an entry once
// shipped, per spec §6 "migrations apply forward-only with a recorded
// version".
var migrations = []migration{
	migrateV0,
	migrateV1,
	migrateV2,
}

const schemaVersionTable = `
CREATE TABLE IF NOT EXISTS schema_version (
	version    INTEGER PRIMARY KEY,
	applied_at TEXT NOT NULL
);`

// ensureSchema brings db up to the latest migration, tolerating a
// fresh (empty) database and a partially-migrated one alike.
func ensureSchema(db *sql.DB) error {
	if _, err := db.Exec(schemaVersionTable); err != nil {
		return fmt.Errorf("store: create schema_version: %w", err)
	}

	current, err := schemaVersion(db)
	if err != nil {
		return fmt.Errorf("store: read schema version: %w", err)
	}

	for i := current + 1; i < len(migrations); i++ {
		if err := runMigration(db, i); err != nil {
			return fmt.Errorf("store: migration %d: %w", i, err)
		}
	}
	return nil
}

func schemaVersion(db *sql.DB) (int, error) {
	var version sql.NullInt64
	err := db.QueryRow(`SELECT COALESCE(MAX(version), -1) FROM schema_version`).Scan(&version)
	if err != nil {
		return -1, err
	}
	if !version.Valid {
		return -1, nil
	}
	return int(version.Int64), nil
}

func runMigration(db *sql.DB, index int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := migrations[index](tx); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO schema_version (version, applied_at) VALUES (?, datetime('now'))`, index); err != nil {
		return err
	}
	return tx.Commit()
}

// migrateV0 creates the full initial schema: spec §4.8's file metadata,
// detections, posteriors, convention state/history/contested-pairs/
// feedback, contracts and their children, crypto findings, detector
// health, and the violation-action audit trail.
func migrateV0(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE files (
			file_id      INTEGER PRIMARY KEY,
			path         TEXT NOT NULL UNIQUE,
			language     TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL,
			fast_hash    INTEGER NOT NULL,
			size         INTEGER NOT NULL DEFAULT 0,
			last_scanned TEXT NOT NULL
		)`,
		`CREATE INDEX idx_files_content_hash ON files(content_hash)`,

		`CREATE TABLE detections (
			id              TEXT PRIMARY KEY,
			file_id         INTEGER NOT NULL REFERENCES files(file_id) ON DELETE CASCADE,
			category        TEXT NOT NULL,
			pattern_id      TEXT NOT NULL,
			method          TEXT NOT NULL,
			start_line      INTEGER NOT NULL,
			start_column    INTEGER NOT NULL,
			end_line        INTEGER NOT NULL,
			end_column      INTEGER NOT NULL,
			matched_text    TEXT NOT NULL DEFAULT '',
			base_confidence REAL NOT NULL DEFAULT 0,
			weakness_ids    TEXT NOT NULL DEFAULT '[]',
			owasp           TEXT NOT NULL DEFAULT '',
			suggested_fix   TEXT NOT NULL DEFAULT '',
			taint_flow      TEXT NOT NULL DEFAULT '',
			scan_id         INTEGER NOT NULL
		)`,
		`CREATE INDEX idx_detections_file ON detections(file_id)`,
		`CREATE INDEX idx_detections_pattern ON detections(pattern_id)`,
		`CREATE INDEX idx_detections_category ON detections(category)`,

		`CREATE TABLE pattern_posteriors (
			pattern_id  TEXT NOT NULL,
			scope       TEXT NOT NULL DEFAULT '',
			alpha       REAL NOT NULL,
			beta        REAL NOT NULL,
			last_scan_id INTEGER NOT NULL DEFAULT 0,
			updated_at  TEXT NOT NULL,
			PRIMARY KEY (pattern_id, scope)
		)`,

		`CREATE TABLE convention_state (
			detector_id     TEXT NOT NULL,
			conv_key        TEXT NOT NULL,
			value           TEXT NOT NULL,
			scope_directory TEXT NOT NULL DEFAULT '',
			scope_package   TEXT NOT NULL DEFAULT '',
			alpha           REAL NOT NULL,
			beta            REAL NOT NULL,
			file_count      INTEGER NOT NULL DEFAULT 0,
			total_files     INTEGER NOT NULL DEFAULT 0,
			occurrences     INTEGER NOT NULL DEFAULT 0,
			category        TEXT NOT NULL,
			trend           TEXT NOT NULL,
			staleness       TEXT NOT NULL DEFAULT 'Fresh',
			first_seen      TEXT NOT NULL,
			last_updated    TEXT NOT NULL,
			score_tier_v2   TEXT NOT NULL DEFAULT '',
			score_tier_v1   TEXT GENERATED ALWAYS AS (
				CASE
					WHEN alpha / NULLIF(alpha + beta, 0) > 0.7 THEN 'established'
					WHEN alpha / NULLIF(alpha + beta, 0) > 0.5 THEN 'emerging'
					WHEN alpha / NULLIF(alpha + beta, 0) > 0.3 THEN 'tentative'
					ELSE 'uncertain'
				END
			) STORED,
			PRIMARY KEY (detector_id, conv_key, value, scope_directory, scope_package)
		)`,
		`CREATE INDEX idx_convention_state_tier_v1 ON convention_state(score_tier_v1)`,

		`CREATE TABLE convention_scan_history (
			detector_id     TEXT NOT NULL,
			conv_key        TEXT NOT NULL,
			value           TEXT NOT NULL,
			scope_directory TEXT NOT NULL DEFAULT '',
			scope_package   TEXT NOT NULL DEFAULT '',
			scan_id         INTEGER NOT NULL,
			frequency       REAL NOT NULL,
			recorded_at     TEXT NOT NULL,
			PRIMARY KEY (detector_id, conv_key, value, scope_directory, scope_package, scan_id)
		)`,

		`CREATE TABLE contested_pairs (
			detector_id     TEXT NOT NULL,
			conv_key        TEXT NOT NULL,
			scope_directory TEXT NOT NULL DEFAULT '',
			scope_package   TEXT NOT NULL DEFAULT '',
			value_a         TEXT NOT NULL,
			frequency_a     REAL NOT NULL,
			value_b         TEXT NOT NULL,
			frequency_b     REAL NOT NULL,
			detected_at     TEXT NOT NULL,
			resolved_at     TEXT,
			PRIMARY KEY (detector_id, conv_key, scope_directory, scope_package, value_a, value_b)
		)`,

		`CREATE TABLE convention_feedback (
			id          TEXT PRIMARY KEY,
			detector_id TEXT NOT NULL,
			conv_key    TEXT NOT NULL,
			value       TEXT NOT NULL,
			event       TEXT NOT NULL,
			reason      TEXT NOT NULL DEFAULT '',
			recorded_at TEXT NOT NULL
		)`,

		`CREATE TABLE contracts (
			id              TEXT PRIMARY KEY,
			paradigm        TEXT NOT NULL,
			service         TEXT NOT NULL DEFAULT '',
			status          TEXT NOT NULL,
			confidence      REAL NOT NULL DEFAULT 0,
			last_verified   TEXT,
			never_verified  INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE INDEX idx_contracts_paradigm ON contracts(paradigm)`,

		`CREATE TABLE contract_operations (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			contract_id     TEXT NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
			name            TEXT NOT NULL,
			operation_json  TEXT NOT NULL,
			auth_required   INTEGER NOT NULL DEFAULT 0,
			deprecated      INTEGER NOT NULL DEFAULT 0,
			source_file     INTEGER NOT NULL DEFAULT 0,
			source_line     INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX idx_contract_operations_contract ON contract_operations(contract_id)`,

		`CREATE TABLE contract_types (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			contract_id   TEXT NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
			name          TEXT NOT NULL,
			type_json     TEXT NOT NULL
		)`,
		`CREATE INDEX idx_contract_types_contract ON contract_types(contract_id)`,

		`CREATE TABLE contract_consumers (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			contract_id   TEXT NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
			name          TEXT NOT NULL,
			source_file   INTEGER NOT NULL DEFAULT 0,
			source_line   INTEGER NOT NULL DEFAULT 0,
			last_seen     TEXT,
			verified      INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX idx_contract_consumers_contract ON contract_consumers(contract_id)`,

		`CREATE TABLE contract_mismatches (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			contract_id     TEXT NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
			field_path      TEXT NOT NULL,
			mismatch_type   TEXT NOT NULL,
			severity        TEXT NOT NULL,
			description     TEXT NOT NULL DEFAULT '',
			provider_value  TEXT NOT NULL DEFAULT '',
			consumer_value  TEXT NOT NULL DEFAULT '',
			detected_at     TEXT NOT NULL
		)`,
		`CREATE INDEX idx_contract_mismatches_contract ON contract_mismatches(contract_id)`,

		`CREATE TABLE contract_breaking_changes (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			contract_id     TEXT NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
			change_type     TEXT NOT NULL,
			severity        TEXT NOT NULL,
			operation       TEXT NOT NULL DEFAULT '',
			field_path      TEXT NOT NULL DEFAULT '',
			description     TEXT NOT NULL DEFAULT '',
			migration_hint  TEXT NOT NULL DEFAULT '',
			detected_at     TEXT NOT NULL
		)`,
		`CREATE INDEX idx_contract_breaking_contract ON contract_breaking_changes(contract_id)`,

		`CREATE TABLE contract_snapshots (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			contract_id TEXT NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
			scan_id     INTEGER NOT NULL,
			snapshot    TEXT NOT NULL,
			taken_at    TEXT NOT NULL
		)`,
		`CREATE INDEX idx_contract_snapshots_contract ON contract_snapshots(contract_id)`,

		`CREATE TABLE crypto_findings (
			id               TEXT PRIMARY KEY,
			file_id          INTEGER NOT NULL REFERENCES files(file_id) ON DELETE CASCADE,
			category         TEXT NOT NULL,
			severity         TEXT NOT NULL,
			confidence       REAL NOT NULL,
			weakness         INTEGER NOT NULL DEFAULT 0,
			additional_weak  TEXT NOT NULL DEFAULT '[]',
			start_line       INTEGER NOT NULL,
			start_column     INTEGER NOT NULL,
			end_line         INTEGER NOT NULL,
			end_column       INTEGER NOT NULL,
			evidence         TEXT NOT NULL DEFAULT '',
			algorithm        TEXT NOT NULL DEFAULT '',
			remediation      TEXT NOT NULL DEFAULT '',
			remediation_code TEXT NOT NULL DEFAULT '',
			language         TEXT NOT NULL DEFAULT '',
			library          TEXT NOT NULL DEFAULT '',
			pattern_id       TEXT NOT NULL DEFAULT '',
			content_hash     TEXT NOT NULL,
			scan_id          INTEGER NOT NULL
		)`,
		`CREATE INDEX idx_crypto_findings_file ON crypto_findings(file_id)`,
		`CREATE INDEX idx_crypto_findings_content_hash ON crypto_findings(content_hash)`,

		`CREATE TABLE detector_health (
			detector_id      TEXT PRIMARY KEY,
			panic_count      INTEGER NOT NULL DEFAULT 0,
			disabled         INTEGER NOT NULL DEFAULT 0,
			disabled_scan_id INTEGER,
			last_panic_at    TEXT,
			last_error       TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE violation_actions (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			violation_id  TEXT NOT NULL,
			action        TEXT NOT NULL,
			before_state  TEXT NOT NULL DEFAULT '',
			after_state   TEXT NOT NULL DEFAULT '',
			reason        TEXT NOT NULL DEFAULT '',
			recorded_at   TEXT NOT NULL
		)`,
		`CREATE INDEX idx_violation_actions_violation ON violation_actions(violation_id)`,

		`CREATE TABLE parse_cache (
			path         TEXT NOT NULL,
			content_hash TEXT NOT NULL,
			result_json  TEXT NOT NULL,
			cached_at    TEXT NOT NULL,
			PRIMARY KEY (path, content_hash)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

// migrateV1 adds the explicit v2 score_tier write path's supporting index,
// split from migrateV0 because it depends on a column that migration
// already created — duplicate-column errors from a re-run are tolerated,
// matching the teacher pack's additive-migration idiom.
func migrateV1(tx *sql.Tx) error {
	_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_convention_state_tier_v2 ON convention_state(score_tier_v2)`)
	return err
}

// migrateV2 adds the violations table: enforcement's output (spec §4.3
// Enforcement), distinct from detections/crypto_findings since a violation
// compares an observation against a learned convention rather than
// matching a fixed pattern.
func migrateV2(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS violations (
			id                    TEXT PRIMARY KEY,
			file_id               INTEGER NOT NULL REFERENCES files(file_id) ON DELETE CASCADE,
			pattern_id            TEXT NOT NULL,
			detector_id           TEXT NOT NULL,
			severity              TEXT NOT NULL,
			start_line            INTEGER NOT NULL,
			start_column          INTEGER NOT NULL,
			end_line              INTEGER NOT NULL,
			end_column            INTEGER NOT NULL,
			message               TEXT NOT NULL DEFAULT '',
			expected              TEXT NOT NULL DEFAULT '',
			actual                TEXT NOT NULL DEFAULT '',
			explanation           TEXT NOT NULL DEFAULT '',
			convention_category   TEXT NOT NULL DEFAULT '',
			convention_confidence REAL NOT NULL DEFAULT 0,
			convention_trend      TEXT NOT NULL DEFAULT '',
			ai_flags              TEXT NOT NULL DEFAULT '[]',
			scan_id               INTEGER NOT NULL
		)`)
	if err != nil {
		return err
	}
	_, err = tx.Exec(`CREATE INDEX IF NOT EXISTS idx_violations_file ON violations(file_id)`)
	return err
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
