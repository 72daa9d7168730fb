package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
)

// TickRecord is one row of per-tick simulation telemetry.
type TickRecord struct {
	Tick           int64  `csv:"tick"`
	Grants         int    `csv:"grants"`
	MonsterActions int    `csv:"monster_actions"`
	ErraticMoves   int    `csv:"erratic_moves"`
	Monsters       int    `csv:"monsters"`
	PlayerHP       int    `csv:"player_hp"`
	PlayerGold     int    `csv:"player_gold"`
	Spawned        string `csv:"spawned"`
}

// Recorder buffers tick records and appends them to a per-run CSV file.
// Returns a nil Recorder when dir is empty (telemetry disabled); a nil
// Recorder is safe to call.
type Recorder struct {
	mu   sync.Mutex
	file *os.File
	buf  []TickRecord

	headerWritten bool

	// RunID names the output file; one fresh ID per process.
	RunID string
}

// NewRecorder creates the output directory and opens ticks-<run-id>.csv.
func NewRecorder(dir string) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating telemetry directory: %w", err)
	}
	runID := uuid.New().String()
	path := filepath.Join(dir, "ticks-"+runID+".csv")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &Recorder{file: f, RunID: runID}, nil
}

// Record buffers one tick record. Rows hit disk on the next Flush.
func (r *Recorder) Record(rec TickRecord) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf = append(r.buf, rec)
}

// Flush appends buffered rows to the CSV file.
func (r *Recorder) Flush() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.buf) == 0 {
		return nil
	}

	var err error
	if !r.headerWritten {
		err = gocsv.Marshal(r.buf, r.file)
		r.headerWritten = true
	} else {
		err = gocsv.MarshalWithoutHeaders(r.buf, r.file)
	}
	if err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	r.buf = r.buf[:0]
	return nil
}

// Close flushes remaining rows and closes the file.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	if err := r.Flush(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}
