package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Eloy96/impresiones-prueba/internal/domain"
	"github.com/Eloy96/impresiones-prueba/pkg/errors"
)

// Persister stores the cart snapshot durably between sessions
type Persister interface {
	Save(items []domain.CartItem) error
	Load() ([]domain.CartItem, error)
}

// Store holds the ordered sequence of confirmed line items. All mutation
// goes through the store's own operations and is serialized by its
// mutex; insertion order is significant only for display. At most one
// item may be the active edit target at any time.
type Store struct {
	mu        sync.Mutex
	items     []domain.CartItem
	editingID uuid.UUID // uuid.Nil when no edit is active
	persister Persister
	logger    *zap.Logger
}

// NewStore creates a cart store, reloading any persisted snapshot
func NewStore(persister Persister, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		persister: persister,
		logger:    logger,
	}
	if persister != nil {
		items, err := persister.Load()
		if err != nil {
			return nil, err
		}
		s.items = items
		if len(items) > 0 {
			logger.Info("Restored cart from snapshot", zap.Int("item_count", len(items)))
		}
	}
	return s, nil
}

// Add freezes the configuration into a new cart item with a fresh
// identifier. The configuration must carry an upload handle and a
// positive quantity.
func (s *Store) Add(cfg domain.ProductConfiguration) (domain.CartItem, error) {
	if !cfg.HasFile() {
		return domain.CartItem{}, &errors.ErrNotReady{Message: "no uploaded file to add"}
	}
	if cfg.Quantity < 1 {
		return domain.CartItem{}, &errors.ErrNotReady{Message: "quantity must be at least 1"}
	}

	item := snapshotItem(cfg)
	item.ID = uuid.New()
	item.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	s.persist()

	s.logger.Info("Item added to cart",
		zap.String("item_id", item.ID.String()),
		zap.String("file_name", item.FileName),
		zap.Float64("total", item.Total),
	)
	return item, nil
}

// SeedForEdit marks the item as the active edit target and returns a
// draft-compatible copy. The raw file payload is not recoverable from
// the snapshot; the copy carries only the remote handle.
func (s *Store) SeedForEdit(id uuid.UUID) (domain.ProductConfiguration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.ProductConfiguration{}, &errors.ErrNotFound{Resource: "cart item", ID: id.String()}
	}
	s.editingID = id
	return s.items[idx].Configuration(), nil
}

// CommitEdit replaces the item in place, preserving its identifier. The
// id must be the active edit target and the item must still be present.
// A draft without its own upload inherits the previous handle and name.
func (s *Store) CommitEdit(id uuid.UUID, cfg domain.ProductConfiguration) (domain.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.editingID != id {
		return domain.CartItem{}, &errors.ErrNotFound{Resource: "edit target", ID: id.String()}
	}
	idx := s.indexOf(id)
	if idx < 0 {
		s.editingID = uuid.Nil
		return domain.CartItem{}, &errors.ErrNotFound{Resource: "cart item", ID: id.String()}
	}

	prev := s.items[idx]
	item := snapshotItem(cfg)
	item.ID = prev.ID
	item.CreatedAt = prev.CreatedAt
	if item.FileID == "" {
		item.FileID = prev.FileID
	}
	if item.FileName == "" {
		item.FileName = prev.FileName
	}

	s.items[idx] = item
	s.editingID = uuid.Nil
	s.persist()

	s.logger.Info("Cart item updated", zap.String("item_id", item.ID.String()))
	return item, nil
}

// CancelEdit clears the active edit target, if any
func (s *Store) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingID = uuid.Nil
}

// EditingID returns the active edit target, if any
func (s *Store) EditingID() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID, s.editingID != uuid.Nil
}

// Remove deletes the item and reports whether the cart is now empty so
// the caller can navigate away from checkout. Removing the active edit
// target clears the edit target as well.
func (s *Store) Remove(id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return len(s.items) == 0, &errors.ErrNotFound{Resource: "cart item", ID: id.String()}
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	if s.editingID == id {
		s.editingID = uuid.Nil
	}
	s.persist()

	s.logger.Info("Item removed from cart", zap.String("item_id", id.String()), zap.Int("remaining", len(s.items)))
	return len(s.items) == 0, nil
}

// Clear empties the cart. Called only on the terminal success path.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.editingID = uuid.Nil
	s.persist()
}

// Items returns a copy of the current sequence in insertion order
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns a single item by identifier
func (s *Store) Get(id uuid.UUID) (domain.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.CartItem{}, &errors.ErrNotFound{Resource: "cart item", ID: id.String()}
	}
	return s.items[idx], nil
}

// Len returns the number of items
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Subtotal sums the item totals
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum float64
	for _, item := range s.items {
		sum += item.Total
	}
	return sum
}

// indexOf must be called with the mutex held
func (s *Store) indexOf(id uuid.UUID) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with the mutex held. A snapshot failure is
// logged but never fails the mutation itself.
func (s *Store) persist() {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(s.items); err != nil {
		s.logger.Warn("Failed to persist cart snapshot", zap.Error(err))
	}
}

func snapshotItem(cfg domain.ProductConfiguration) domain.CartItem {
	return domain.CartItem{
		FileName:  cfg.FileName,
		FileID:    cfg.FileID,
		Quantity:  cfg.Quantity,
		PageCount: cfg.PageCount,
		PagePrice: cfg.PagePrice,
		Color:     cfg.Color,
		Paper:     cfg.Paper,
		Size:      cfg.Size,
		Sides:     cfg.Sides,
		PageRange: cfg.PageRange,
		Subtotal:  cfg.SubtotalPerCopy(),
		Total:     cfg.Total,
	}
}
