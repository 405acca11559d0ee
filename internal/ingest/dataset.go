package ingest

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/agenthands/cograph/internal/core/model"
	"github.com/agenthands/cograph/internal/logger"
)

// Snapshot is one immutable load of the records file.
type Snapshot struct {
	Records  []model.Record
	Stats    LoadStats
	Version  string
	LoadedAt time.Time
	Path     string
}

// HasWindow reports whether the records declare a citation window.
func (s *Snapshot) HasWindow(w string) bool {
	for _, have := range s.Stats.Windows {
		if have == w {
			return true
		}
	}
	return false
}

// Dataset holds the current Snapshot. Readers never block: a reload builds a
// new Snapshot and swaps it in. Loads run one at a time, so the stored
// snapshot always reflects the most recent read of the file.
type Dataset struct {
	path    string
	loadMu  sync.Mutex
	current atomic.Pointer[Snapshot]
}

func NewDataset(path string) *Dataset {
	return &Dataset{path: path}
}

// NewStaticDataset wraps records that did not come from a file.
func NewStaticDataset(records []model.Record, windows []string) *Dataset {
	d := &Dataset{}
	d.current.Store(&Snapshot{
		Records:  records,
		Stats:    LoadStats{Rows: len(records), Windows: windows},
		Version:  uuid.NewString(),
		LoadedAt: time.Now().UTC(),
	})
	return d
}

func (d *Dataset) Path() string {
	return d.path
}

// Current returns the latest snapshot, or nil before the first load.
func (d *Dataset) Current() *Snapshot {
	return d.current.Load()
}

// Load reads the records file and swaps in the result. On failure the
// previous snapshot stays current.
func (d *Dataset) Load() (*Snapshot, error) {
	d.loadMu.Lock()
	defer d.loadMu.Unlock()

	log := logger.Named("ingest")
	start := time.Now()

	records, stats, err := LoadRecords(d.path)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Records:  records,
		Stats:    stats,
		Version:  uuid.NewString(),
		LoadedAt: time.Now().UTC(),
		Path:     d.path,
	}
	d.current.Store(snap)

	log.Infow("Records loaded",
		logger.FieldFile, d.path,
		logger.FieldCount, stats.Rows,
		"windows", stats.Windows,
		logger.FieldVersion, snap.Version,
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	if stats.MalformedCells > 0 {
		log.Warnw("Malformed cells replaced by defaults",
			"cells", stats.MalformedCells,
			"rows", stats.MalformedRows)
	}
	return snap, nil
}
