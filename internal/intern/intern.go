// Package intern provides a content-hash-keyed string table shared across an
// analysis run. Detectors see strings as small integer handles; the table
// owns the only copy of the backing bytes, so two files with identical
// identifiers or literals collapse to one allocation.
//
// A single goroutine owns the writer half during the scan/pipeline phases.
// Once a revision is sealed, Freeze returns a Reader that is safe for
// concurrent lookups from every detector goroutine without further locking.
package intern

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Handle is a stable reference to an interned string within one revision.
type Handle uint32

// InvalidHandle is returned for lookups that miss.
const InvalidHandle Handle = 0

// Writer accumulates strings during a single analysis revision. It is not
// safe for concurrent use; the scanner/pipeline feeds it from one goroutine
// per file and merges results through the orchestrator.
type Writer struct {
	mu      sync.Mutex
	byHash  map[uint64][]Handle
	entries []string
}

// NewWriter returns an empty Writer. Handle 0 is reserved as InvalidHandle,
// so the first real string is assigned Handle 1.
func NewWriter() *Writer {
	return &Writer{
		byHash:  make(map[uint64][]Handle),
		entries: make([]string, 1, 256), // index 0 unused
	}
}

// Intern returns the Handle for s, allocating a new entry only if s has
// never been seen in this revision.
func (w *Writer) Intern(s string) Handle {
	h := xxhash.Sum64String(s)

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, candidate := range w.byHash[h] {
		if w.entries[candidate] == s {
			return candidate
		}
	}

	handle := Handle(len(w.entries))
	w.entries = append(w.entries, s)
	w.byHash[h] = append(w.byHash[h], handle)
	return handle
}

// Len returns the number of distinct strings interned so far.
func (w *Writer) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries) - 1
}

// String resolves handle back to its string without requiring a Freeze —
// used by in-scan passes (e.g. the crypto detector's import-confirmation
// check) that need a handle decoded before the revision seals.
func (w *Writer) String(h Handle) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if int(h) <= 0 || int(h) >= len(w.entries) {
		return ""
	}
	return w.entries[h]
}

// Freeze snapshots the writer into an immutable Reader. The writer remains
// usable afterward (e.g. for a subsequent incremental revision), but the
// returned Reader never observes strings interned after this call.
func (w *Writer) Freeze() *Reader {
	w.mu.Lock()
	defer w.mu.Unlock()

	entries := make([]string, len(w.entries))
	copy(entries, w.entries)
	return &Reader{entries: entries}
}

// Reader resolves handles back to strings. It holds no locks and is safe
// for concurrent use by every detector goroutine in a revision.
type Reader struct {
	entries []string
}

// String returns the string for handle, or "" if the handle is invalid or
// was not present when the Reader was frozen.
func (r *Reader) String(h Handle) string {
	if int(h) <= 0 || int(h) >= len(r.entries) {
		return ""
	}
	return r.entries[h]
}

// Len returns the number of distinct strings available through this Reader.
func (r *Reader) Len() int {
	if len(r.entries) == 0 {
		return 0
	}
	return len(r.entries) - 1
}
