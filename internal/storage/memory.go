package storage

import (
	"context"
	"sync"
)

// MemoryBucket is an in-process Bucket for local runs and tests. URLs are
// built from BaseURL like a public bucket.
type MemoryBucket struct {
	BaseURL string
	Name    string

	mu      sync.Mutex
	folders map[string][]Object
	errs    map[string]error
	calls   []string
}

func NewMemoryBucket(baseURL, name string) *MemoryBucket {
	return &MemoryBucket{
		BaseURL: baseURL,
		Name:    name,
		folders: make(map[string][]Object),
		errs:    make(map[string]error),
	}
}

// Put adds files to folder.
func (m *MemoryBucket) Put(folder string, names ...string) *MemoryBucket {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range names {
		m.folders[folder] = append(m.folders[folder], Object{Name: n, ID: folder + "/" + n})
	}
	return m
}

// PutFolder adds a sub-folder entry to folder.
func (m *MemoryBucket) PutFolder(folder, sub string) *MemoryBucket {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.folders[folder] = append(m.folders[folder], Object{Name: sub})
	return m
}

// Fail makes every List of folder return err.
func (m *MemoryBucket) Fail(folder string, err error) *MemoryBucket {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[folder] = err
	return m
}

// Calls returns the folders listed so far.
func (m *MemoryBucket) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MemoryBucket) List(ctx context.Context, folder string, limit int) ([]Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, folder)

	if err := m.errs[folder]; err != nil {
		return nil, err
	}
	objects := m.folders[folder]
	if limit > 0 && len(objects) > limit {
		objects = objects[:limit]
	}
	return append([]Object(nil), objects...), nil
}

func (m *MemoryBucket) PublicURL(_ context.Context, path string) (string, error) {
	return PublicObjectURL(m.BaseURL, m.Name, path), nil
}
