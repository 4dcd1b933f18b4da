package symbollinker

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/standardbeagle/chorus/internal/types"
)

// fileService centralizes filesystem access for the import resolvers so that
// repeated resolution passes over the same project don't re-stat or re-read
// files they've already seen. It is deliberately scoped to what the
// per-language resolvers need: existence/dir checks, Go-file listing, and a
// small content cache keyed by FileID.
type fileService struct {
	mu       sync.RWMutex
	nextID   types.FileID
	pathToID map[string]types.FileID
	content  map[types.FileID]string
}

// newFileService returns a resolver-local file service.
func newFileService() *fileService {
	return &fileService{
		pathToID: make(map[string]types.FileID),
		content:  make(map[types.FileID]string),
	}
}

// Exists reports whether path exists on disk.
func (fs *fileService) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func (fs *fileService) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// LoadFile reads path and assigns it a stable FileID, returning the same
// FileID on repeated calls for the same path.
func (fs *fileService) LoadFile(path string) (types.FileID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if id, ok := fs.pathToID[path]; ok {
		fs.content[id] = string(data)
		return id, nil
	}

	fs.nextID++
	id := fs.nextID
	fs.pathToID[path] = id
	fs.content[id] = string(data)
	return id, nil
}

// GetFileIDForPath returns the FileID previously assigned to path, or 0 if
// path has not been loaded.
func (fs *fileService) GetFileIDForPath(path string) types.FileID {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.pathToID[path]
}

// GetFileContent returns the cached content for fileID, if any.
func (fs *fileService) GetFileContent(fileID types.FileID) (string, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	content, ok := fs.content[fileID]
	return content, ok
}

// ListGoFiles returns the .go files directly inside dir (non-recursive),
// mirroring the resolver's need to scan a single package directory.
func (fs *fileService) ListGoFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) == ".go" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}
