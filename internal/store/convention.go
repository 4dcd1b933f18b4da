package store

import (
	"database/sql"
	"time"

	"github.com/standardbeagle/chorus/internal/confidence"
	"github.com/standardbeagle/chorus/internal/convention"
)

// SaveConvention upserts one LearnedConvention by its natural key
// (detector, key, value, scope) and appends a scan-history row, per spec
// §4.8 "convention rows upsert by natural key". scoreTierV2 is the
// authoritative tier string written explicitly; score_tier_v1 is a
// generated column computed from alpha/beta at read time.
func (s *Store) SaveConvention(lc convention.LearnedConvention, scanID int64, scoreTierV2 confidence.Tier) error {
	return s.batch("store.SaveConvention", func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO convention_state (
				detector_id, conv_key, value, scope_directory, scope_package,
				alpha, beta, file_count, total_files, occurrences,
				category, trend, staleness, first_seen, last_updated, score_tier_v2
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(detector_id, conv_key, value, scope_directory, scope_package) DO UPDATE SET
				alpha = excluded.alpha, beta = excluded.beta,
				file_count = excluded.file_count, total_files = excluded.total_files,
				occurrences = excluded.occurrences, category = excluded.category,
				trend = excluded.trend, staleness = excluded.staleness,
				last_updated = excluded.last_updated, score_tier_v2 = excluded.score_tier_v2
		`,
			lc.DetectorID, lc.ConvKey, lc.Value, lc.Scope.Directory, lc.Scope.Package,
			lc.Alpha, lc.Beta, lc.FileCount, lc.TotalFiles, lc.Occurrences,
			string(lc.Category), string(lc.Trend), string(lc.Staleness),
			lc.FirstSeen.UTC().Format(time.RFC3339Nano), lc.LastUpdated.UTC().Format(time.RFC3339Nano), string(scoreTierV2),
		)
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			INSERT OR REPLACE INTO convention_scan_history (
				detector_id, conv_key, value, scope_directory, scope_package, scan_id, frequency, recorded_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, lc.DetectorID, lc.ConvKey, lc.Value, lc.Scope.Directory, lc.Scope.Package, scanID, lc.Frequency(), nowString())
		return err
	})
}

// PruneConventionHistory deletes scan-history rows for a (detector, key,
// value, scope) older than the 90-day/100-entry retention window (spec
// §4.3 Retention), keeping only the newest keepEntries rows no older than
// cutoff.
func (s *Store) PruneConventionHistory(detectorID, convKey, value string, cutoff time.Time, keepEntries int) error {
	return s.batch("store.PruneConventionHistory", func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			DELETE FROM convention_scan_history
			WHERE detector_id = ? AND conv_key = ? AND value = ?
			  AND (recorded_at < ? OR scan_id NOT IN (
				SELECT scan_id FROM convention_scan_history
				WHERE detector_id = ? AND conv_key = ? AND value = ?
				ORDER BY scan_id DESC LIMIT ?
			  ))
		`, detectorID, convKey, value, cutoff.UTC().Format(time.RFC3339Nano),
			detectorID, convKey, value, keepEntries)
		return err
	})
}

// DeleteExpiredConventions removes convention_state rows whose staleness
// has reached Expired — the "expiry_days+30 deletion bound" from spec
// §4.3.
func (s *Store) DeleteExpiredConventions() error {
	return s.batch("store.DeleteExpiredConventions", func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM convention_state WHERE staleness = 'Expired'`)
		return err
	})
}

// SaveContestedPair records a newly detected contested pair, ignoring
// duplicates of an already-open (unresolved) pair with the same natural
// key.
func (s *Store) SaveContestedPair(pair convention.ContestedPair) error {
	return s.batch("store.SaveContestedPair", func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT OR IGNORE INTO contested_pairs (
				detector_id, conv_key, scope_directory, scope_package,
				value_a, frequency_a, value_b, frequency_b, detected_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, pair.DetectorID, pair.Key, pair.Scope.Directory, pair.Scope.Package,
			pair.ValueA, pair.FrequencyA, pair.ValueB, pair.FrequencyB, nowString())
		return err
	})
}

// ResolveContestedPair marks a contested pair resolved — Open Question
// (b): resolution is explicit, never auto-expired.
func (s *Store) ResolveContestedPair(detectorID, convKey, scopeDir, scopePkg, valueA, valueB string) error {
	return s.batch("store.ResolveContestedPair", func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			UPDATE contested_pairs SET resolved_at = ?
			WHERE detector_id = ? AND conv_key = ? AND scope_directory = ? AND scope_package = ?
			  AND value_a = ? AND value_b = ? AND resolved_at IS NULL
		`, nowString(), detectorID, convKey, scopeDir, scopePkg, valueA, valueB)
		return err
	})
}

// RecordConventionFeedback appends one convention_feedback row —
// record_feedback targeting a convention rather than a pattern posterior.
func (s *Store) RecordConventionFeedback(id, detectorID, convKey, value, event, reason string) error {
	return s.batch("store.RecordConventionFeedback", func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO convention_feedback (id, detector_id, conv_key, value, event, reason, recorded_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, detectorID, convKey, value, event, reason, nowString())
		return err
	})
}

// QueryConventions returns convention_state rows matching filter,
// keyset-paginated by (detector_id, conv_key, value).
func (s *Store) QueryConventions(filter Filter) ([]convention.LearnedConvention, string, error) {
	rows, err := s.reader.Query(`
		SELECT detector_id, conv_key, value, scope_directory, scope_package,
		       alpha, beta, file_count, total_files, occurrences,
		       category, trend, staleness, first_seen, last_updated
		FROM convention_state
		WHERE detector_id > ?
		ORDER BY detector_id, conv_key, value
		LIMIT ?
	`, filter.Cursor, filter.limit())
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var out []convention.LearnedConvention
	for rows.Next() {
		var lc convention.LearnedConvention
		var firstSeen, lastUpdated string
		if err := rows.Scan(
			&lc.DetectorID, &lc.ConvKey, &lc.Value, &lc.Scope.Directory, &lc.Scope.Package,
			&lc.Alpha, &lc.Beta, &lc.FileCount, &lc.TotalFiles, &lc.Occurrences,
			&lc.Category, &lc.Trend, &lc.Staleness, &firstSeen, &lastUpdated,
		); err != nil {
			return nil, "", err
		}
		lc.FirstSeen, _ = time.Parse(time.RFC3339Nano, firstSeen)
		lc.LastUpdated, _ = time.Parse(time.RFC3339Nano, lastUpdated)
		out = append(out, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	next := ""
	if len(out) == filter.limit() {
		next = out[len(out)-1].DetectorID
	}
	return out, next, nil
}
