package catalog

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Snapshot is one complete catalog load.
type Snapshot struct {
	Records  []Record
	LoadedAt time.Time
	// Loaded is false until the first load completes; lookups return no
	// result meanwhile.
	Loaded bool
}

// Source produces a fresh catalog. *Loader implements it.
type Source interface {
	Load(ctx context.Context) ([]Record, error)
}

// Store keeps the latest snapshot in memory and republishes it on every
// reload. It is safe for concurrent use.
type Store struct {
	source Source
	rnd    Rand
	now    func() time.Time

	mu          sync.RWMutex
	snap        Snapshot
	subscribers []func(Snapshot)
}

// NewStore returns an empty store. A non-nil rnd is serialised, so a seeded
// *rand.Rand may be shared by concurrent lookups.
func NewStore(source Source, rnd Rand) *Store {
	if rnd != nil {
		rnd = &lockedRand{r: rnd}
	}
	return &Store{source: source, rnd: orDefault(rnd), now: time.Now}
}

type lockedRand struct {
	mu sync.Mutex
	r  Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// OnReload registers fn to be called with every new snapshot.
func (s *Store) OnReload(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Reload runs one load and replaces the snapshot. When reloads overlap the
// last one to finish wins.
func (s *Store) Reload(ctx context.Context) (Snapshot, error) {
	records, err := s.source.Load(ctx)
	if err != nil {
		return s.Snapshot(), err
	}

	snap := Snapshot{Records: records, LoadedAt: s.now(), Loaded: true}

	s.mu.Lock()
	s.snap = snap
	subscribers := slices.Clone(s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(snap)
	}
	return snap, nil
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *Store) Loading() bool {
	return !s.Snapshot().Loaded
}

// Image resolves one image of category from the current snapshot.
func (s *Store) Image(category, filename string) (string, bool) {
	snap := s.Snapshot()
	if !snap.Loaded {
		return "", false
	}
	return Resolve(snap.Records, category, filename, s.rnd)
}

// Gallery composes layout from the current snapshot. While loading, every
// slot gets its fallback.
func (s *Store) Gallery(layout []Slot) []GalleryItem {
	return Compose(s.Snapshot().Records, layout, s.rnd)
}

// Category lists the usable records of category's folder.
func (s *Store) Category(category string) []Record {
	return Filter(s.Snapshot().Records, FolderFor(category))
}
