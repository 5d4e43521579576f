package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oshokin/engine-supervisor/internal/config"
	domain "github.com/oshokin/engine-supervisor/internal/domain/alert"
)

// Snapshot is the persisted record of the last accepted alert.
// Level and code are stored as their stable string names so the file stays
// readable without this binary.
type Snapshot struct {
	// Level is the severity name of the alert.
	Level string `json:"level"`
	// Code is the fault code name of the alert.
	Code string `json:"code"`
	// RaisedAt is when the supervisor accepted the alert.
	RaisedAt time.Time `json:"raised_at"`
}

// NewSnapshot builds a snapshot of the given alert state taken at the
// provided time.
func NewSnapshot(s domain.State, at time.Time) *Snapshot {
	return &Snapshot{
		Level:    s.Level.String(),
		Code:     s.Code.String(),
		RaisedAt: at,
	}
}

// Repository defines persistence operations for the alert snapshot.
type Repository interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snapshot *Snapshot) error
}

// FileRepository persists the alert snapshot to a JSON file on disk.
type FileRepository struct {
	// path is the filesystem location of the JSON snapshot file.
	path string
	// mu protects concurrent access to the snapshot file.
	mu sync.Mutex
}

// ErrNotFound is returned when the snapshot file does not exist yet.
var ErrNotFound = errors.New("snapshot not found")

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the snapshot from disk.
func (r *FileRepository) Load(_ context.Context) (*Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	var snapshot Snapshot
	if err = json.Unmarshal(contents, &snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot file: %w", err)
	}

	return &snapshot, nil
}

// Save writes the snapshot to disk.
func (r *FileRepository) Save(_ context.Context, snapshot *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}

	return nil
}
