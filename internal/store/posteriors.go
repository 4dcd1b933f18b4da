package store

import (
	"database/sql"

	"github.com/standardbeagle/chorus/internal/confidence"
)

// UpdatePosterior applies a cumulative Beta update for (patternID, scope)
// inside its own exclusive transaction, per spec §5 "Posterior updates
// require an exclusive transaction per pattern to avoid lost updates".
func (s *Store) UpdatePosterior(patternID, scope string, successes, trials int, scanID int64) error {
	return s.batch("store.UpdatePosterior", func(tx *sql.Tx) error {
		var alpha, beta float64
		row := tx.QueryRow(`SELECT alpha, beta FROM pattern_posteriors WHERE pattern_id = ? AND scope = ?`, patternID, scope)
		switch err := row.Scan(&alpha, &beta); err {
		case nil:
		case sql.ErrNoRows:
			alpha, beta = 1.0, 1.0 // uniform prior, matches config.Confidence default
		default:
			return err
		}

		alpha += float64(successes)
		beta += float64(trials - successes)

		_, err := tx.Exec(`
			INSERT INTO pattern_posteriors (pattern_id, scope, alpha, beta, last_scan_id, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(pattern_id, scope) DO UPDATE SET
				alpha = excluded.alpha, beta = excluded.beta,
				last_scan_id = excluded.last_scan_id, updated_at = excluded.updated_at
		`, patternID, scope, alpha, beta, scanID, nowString())
		return err
	})
}

// Posterior returns the current Beta state for (patternID, scope), or the
// uniform prior if no evidence has been recorded yet.
func (s *Store) Posterior(patternID, scope string) (confidence.Posterior, error) {
	var p confidence.Posterior
	row := s.reader.QueryRow(`SELECT alpha, beta FROM pattern_posteriors WHERE pattern_id = ? AND scope = ?`, patternID, scope)
	switch err := row.Scan(&p.Alpha, &p.Beta); err {
	case nil:
		return p, nil
	case sql.ErrNoRows:
		return confidence.Posterior{Alpha: 1.0, Beta: 1.0}, nil
	default:
		return confidence.Posterior{}, err
	}
}

// ApplyFeedback nudges (patternID, scope)'s posterior by event, persisting
// the result — record_feedback's posterior-update side (spec §6).
func (s *Store) ApplyFeedback(patternID, scope string, event confidence.FeedbackEvent, scanID int64) error {
	return s.batch("store.ApplyFeedback", func(tx *sql.Tx) error {
		var alpha, beta float64
		row := tx.QueryRow(`SELECT alpha, beta FROM pattern_posteriors WHERE pattern_id = ? AND scope = ?`, patternID, scope)
		switch err := row.Scan(&alpha, &beta); err {
		case nil:
		case sql.ErrNoRows:
			alpha, beta = 1.0, 1.0
		default:
			return err
		}

		next, err := confidence.ApplyFeedback(confidence.Posterior{Alpha: alpha, Beta: beta}, event)
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			INSERT INTO pattern_posteriors (pattern_id, scope, alpha, beta, last_scan_id, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(pattern_id, scope) DO UPDATE SET
				alpha = excluded.alpha, beta = excluded.beta,
				last_scan_id = excluded.last_scan_id, updated_at = excluded.updated_at
		`, patternID, scope, next.Alpha, next.Beta, scanID, nowString())
		return err
	})
}
