package store

import (
	"database/sql"
	"encoding/hex"

	"github.com/standardbeagle/chorus/internal/types"
)

// FileRecord mirrors spec §3's File entity: path, language, and the two
// hashes the incremental policy keys off.
type FileRecord struct {
	FileID      types.FileID
	Path        string
	Language    string
	ContentHash [32]byte
	FastHash    uint64
	Size        int64
}

// UpsertFile records or refreshes one file's metadata, keyed by path — the
// natural key spec §4.8 calls for on file metadata upserts.
func (s *Store) UpsertFile(f FileRecord) error {
	return s.batch("store.UpsertFile", func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO files (file_id, path, language, content_hash, fast_hash, size, last_scanned)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(path) DO UPDATE SET
				file_id = excluded.file_id,
				language = excluded.language,
				content_hash = excluded.content_hash,
				fast_hash = excluded.fast_hash,
				size = excluded.size,
				last_scanned = excluded.last_scanned
		`, f.FileID, f.Path, f.Language, hex.EncodeToString(f.ContentHash[:]), f.FastHash, f.Size, nowString())
		return err
	})
}

// FileByPath returns the stored metadata for path, if present.
func (s *Store) FileByPath(path string) (*FileRecord, error) {
	row := s.reader.QueryRow(`SELECT file_id, path, language, content_hash, fast_hash, size FROM files WHERE path = ?`, path)
	var rec FileRecord
	var hashHex string
	if err := row.Scan(&rec.FileID, &rec.Path, &rec.Language, &hashHex, &rec.FastHash, &rec.Size); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	decoded, err := hex.DecodeString(hashHex)
	if err == nil && len(decoded) == 32 {
		copy(rec.ContentHash[:], decoded)
	}
	return &rec, nil
}

// DeleteFile removes a file's metadata and, via ON DELETE CASCADE, every
// detection/crypto finding anchored to it — used by analyze_changed when a
// path disappears between scans.
func (s *Store) DeleteFile(path string) error {
	return s.batch("store.DeleteFile", func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM files WHERE path = ?`, path)
		return err
	})
}
