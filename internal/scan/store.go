package scan

import (
	"crypto/sha256"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/chorus/internal/types"
)

// Content holds one file's bytes plus the two hashes the pipeline uses for
// change detection: a cheap xxhash for the common "nothing changed" path,
// and a SHA256 for the cases that need a collision-proof key (the persistent
// store's primary lookup).
type Content struct {
	FileID      types.FileID
	Path        string
	Bytes       []byte
	FastHash    uint64
	ContentHash [32]byte
}

// snapshot is an immutable view of the store's contents. Readers load the
// current snapshot atomically and never block on the writer.
type snapshot struct {
	files    sync.Map // map[types.FileID]*Content
	pathToID sync.Map // map[string]types.FileID
}

// Store is a lock-free, content-addressed cache of file bytes shared across
// an analysis revision. A single writer goroutine serializes updates through
// Load/LoadBatch/Invalidate; any number of reader goroutines call Get and
// GetByPath concurrently without blocking the writer or each other.
type Store struct {
	cur atomic.Value // *snapshot

	mu     sync.Mutex // serializes writers; readers never take it
	nextID atomic.Uint32
}

// NewStore returns an empty Store.
func NewStore() *Store {
	s := &Store{}
	s.cur.Store(&snapshot{})
	return s
}

// Load records path's content, assigning it a stable FileID. If path was
// already loaded with identical bytes (same FastHash), the existing FileID
// is returned and no new snapshot is published. Returns the FileID and
// whether the content actually changed.
func (s *Store) Load(path string, content []byte) (types.FileID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fastHash := xxhash.Sum64(content)
	old := s.cur.Load().(*snapshot)

	if idVal, ok := old.pathToID.Load(path); ok {
		id := idVal.(types.FileID)
		if cVal, ok := old.files.Load(id); ok {
			if cVal.(*Content).FastHash == fastHash {
				return id, false
			}
		}
	}

	var fileID types.FileID
	if idVal, ok := old.pathToID.Load(path); ok {
		fileID = idVal.(types.FileID)
	} else {
		fileID = types.FileID(s.nextID.Add(1))
	}

	c := &Content{
		FileID:      fileID,
		Path:        path,
		Bytes:       content,
		FastHash:    fastHash,
		ContentHash: sha256.Sum256(content),
	}

	next := cloneSnapshot(old)
	next.files.Store(fileID, c)
	next.pathToID.Store(path, fileID)
	s.cur.Store(next)

	return fileID, true
}

// Get returns the content for fileID, if present in the current snapshot.
func (s *Store) Get(fileID types.FileID) (*Content, bool) {
	snap := s.cur.Load().(*snapshot)
	v, ok := snap.files.Load(fileID)
	if !ok {
		return nil, false
	}
	return v.(*Content), true
}

// GetByPath returns the content stored for path, if any.
func (s *Store) GetByPath(path string) (*Content, bool) {
	snap := s.cur.Load().(*snapshot)
	idVal, ok := snap.pathToID.Load(path)
	if !ok {
		return nil, false
	}
	return s.Get(idVal.(types.FileID))
}

// Invalidate removes path from the store, freeing its FileID for reuse by a
// future Load of the same or a different path is not guaranteed; FileIDs
// are never recycled within a Store's lifetime.
func (s *Store) Invalidate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.cur.Load().(*snapshot)
	idVal, ok := old.pathToID.Load(path)
	if !ok {
		return
	}

	next := cloneSnapshot(old)
	next.pathToID.Delete(path)
	next.files.Delete(idVal.(types.FileID))
	s.cur.Store(next)
}

// Len returns the number of files currently held.
func (s *Store) Len() int {
	snap := s.cur.Load().(*snapshot)
	n := 0
	snap.files.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// cloneSnapshot shallow-copies a snapshot's two maps so the writer can
// publish a new version without readers of the old one observing partial
// updates.
func cloneSnapshot(old *snapshot) *snapshot {
	next := &snapshot{}
	old.files.Range(func(k, v any) bool {
		next.files.Store(k, v)
		return true
	})
	old.pathToID.Range(func(k, v any) bool {
		next.pathToID.Store(k, v)
		return true
	})
	return next
}
