package intern

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_InternDeduplicates(t *testing.T) {
	w := NewWriter()

	h1 := w.Intern("net/http")
	h2 := w.Intern("net/http")
	h3 := w.Intern("encoding/json")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Equal(t, 2, w.Len())
}

func TestWriter_InternEmptyString(t *testing.T) {
	w := NewWriter()
	h := w.Intern("")
	assert.NotEqual(t, InvalidHandle, h)
	assert.Equal(t, 1, w.Len())
}

func TestWriter_HashCollisionFallsBackToEquality(t *testing.T) {
	w := NewWriter()
	// Different strings that might share a truncated hash bucket in a weaker
	// implementation must still resolve to distinct handles.
	h1 := w.Intern("alpha")
	h2 := w.Intern("beta")
	h3 := w.Intern("alpha")

	assert.NotEqual(t, h1, h2)
	assert.Equal(t, h1, h3)
}

func TestReader_ResolvesFrozenHandles(t *testing.T) {
	w := NewWriter()
	h := w.Intern("gamma")

	r := w.Freeze()
	require.Equal(t, "gamma", r.String(h))
	assert.Equal(t, 1, r.Len())
}

func TestReader_InvalidHandleReturnsEmpty(t *testing.T) {
	w := NewWriter()
	w.Intern("delta")
	r := w.Freeze()

	assert.Equal(t, "", r.String(InvalidHandle))
	assert.Equal(t, "", r.String(Handle(9999)))
}

func TestReader_IsolatedFromLaterWrites(t *testing.T) {
	w := NewWriter()
	w.Intern("epsilon")
	r := w.Freeze()

	w.Intern("zeta")
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 2, w.Len())
}

func TestWriter_ConcurrentInternIsSafe(t *testing.T) {
	w := NewWriter()
	var wg sync.WaitGroup
	words := []string{"one", "two", "three", "four", "five"}

	for i := 0; i < 50; i++ {
		wg.Add(1)
		word := words[i%len(words)]
		go func(s string) {
			defer wg.Done()
			w.Intern(s)
		}(word)
	}
	wg.Wait()

	assert.Equal(t, len(words), w.Len())
}
