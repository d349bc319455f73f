package cart

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Eloy96/impresiones-prueba/internal/domain"
)

// FileStore persists the cart as a JSON-encoded item sequence in a local
// file, reloaded at session start. This is the only durable artifact the
// storefront core owns.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore creates a file-backed cart persister
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{path: path, logger: logger}
}

// Load reads the persisted snapshot. A missing file means an empty cart.
func (f *FileStore) Load() ([]domain.CartItem, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cart snapshot: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		// A corrupt snapshot must not brick the session; start empty
		f.logger.Warn("Discarding unreadable cart snapshot", zap.String("path", f.path), zap.Error(err))
		return nil, nil
	}
	return items, nil
}

// Save writes the snapshot, replacing the previous one atomically
func (f *FileStore) Save(items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cart snapshot directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart snapshot: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace cart snapshot: %w", err)
	}
	return nil
}
