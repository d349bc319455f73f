package service

import (
	"context"
	"regexp"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/Eloy96/impresiones-prueba/internal/collaborator"
	"github.com/Eloy96/impresiones-prueba/internal/domain"
	"github.com/Eloy96/impresiones-prueba/pkg/errors"
)

var pageRangePattern = regexp.MustCompile(`[^0-9,\-\s]`)

// ConfigurationService owns the single in-progress product configuration
// and keeps its computed price consistent with the latest field values.
//
// Price recomputes are coalesced: at most one getPrice exchange is in
// flight at any time. Edits arriving during a flight are recorded as
// pending and exactly one follow-up is issued from the then-current
// draft, repeating until no further edits arrived during the last
// flight. Every outgoing request carries the draft sequence it was
// computed from; a response whose sequence no longer matches the draft
// is discarded, so a stale result never overwrites newer input.
type ConfigurationService struct {
	mu           sync.Mutex
	draft        domain.ProductConfiguration
	seq          uint64 // bumped on every price-relevant edit
	quotedSeq    uint64 // seq the current price fields correspond to
	priceStale   bool
	lastPriceErr error
	inFlight     bool
	pending      bool
	idle         chan struct{} // closed while no recompute is in flight

	maxFileSize int64
	pricing     PriceQuoter
	uploads     FileUploader
	logger      *zap.Logger
}

// NewConfigurationService creates a configuration service with a fresh
// default draft
func NewConfigurationService(pricing PriceQuoter, uploads FileUploader, maxFileSize int64, logger *zap.Logger) *ConfigurationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	idle := make(chan struct{})
	close(idle)
	return &ConfigurationService{
		draft:       domain.DefaultConfiguration(),
		idle:        idle,
		maxFileSize: maxFileSize,
		pricing:     pricing,
		uploads:     uploads,
		logger:      logger,
	}
}

// SetOption validates and normalizes one field edit, writes it into the
// draft and schedules a price recompute. Numeric fields clamp to >= 1;
// the page range is restricted to digits, commas, hyphens and
// whitespace; enum fields reject unknown values. Does not block.
func (s *ConfigurationService) SetOption(field, value string) error {
	s.mu.Lock()

	switch field {
	case "cantidad":
		s.draft.Quantity = clampPositive(value)
	case "pages", "pageCount":
		s.draft.PageCount = clampPositive(value)
	case "rango":
		s.draft.PageRange = pageRangePattern.ReplaceAllString(value, "")
	case "color":
		mode := domain.ColorMode(value)
		if !mode.IsValid() {
			s.mu.Unlock()
			return &errors.ErrValidation{Message: "unknown color mode", Fields: map[string]string{"color": value}}
		}
		s.draft.Color = mode
	case "paper":
		paper := domain.PaperType(value)
		if !paper.IsValid() {
			s.mu.Unlock()
			return &errors.ErrValidation{Message: "unknown paper type", Fields: map[string]string{"paper": value}}
		}
		s.draft.Paper = paper
	case "size":
		size := domain.PageSize(value)
		if !size.IsValid() {
			s.mu.Unlock()
			return &errors.ErrValidation{Message: "unknown page size", Fields: map[string]string{"size": value}}
		}
		s.draft.Size = size
	case "sides":
		sides := domain.PrintSides(value)
		if !sides.IsValid() {
			s.mu.Unlock()
			return &errors.ErrValidation{Message: "unknown sides mode", Fields: map[string]string{"sides": value}}
		}
		s.draft.Sides = sides
	default:
		s.mu.Unlock()
		return &errors.ErrValidation{Message: "unknown configuration field", Fields: map[string]string{"field": field}}
	}

	s.seq++
	s.logger.Debug("Configuration updated", zap.String("field", field), zap.String("value", value))
	s.scheduleRecomputeLocked()
	s.mu.Unlock()
	return nil
}

// Seed replaces the draft with an edit copy of an existing cart item.
// The copy carries the inherited upload handle but no file payload.
func (s *ConfigurationService) Seed(cfg domain.ProductConfiguration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = cfg
	s.seq++
	s.quotedSeq = s.seq // seeded price came from a committed item
	s.priceStale = false
	s.lastPriceErr = nil
}

// Reset discards the draft, replacing it with a fresh default
// configuration in the initial step
func (s *ConfigurationService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = domain.DefaultConfiguration()
	s.seq++ // any in-flight result is now superseded and will be discarded
	s.quotedSeq = s.seq
	s.priceStale = false
	s.lastPriceErr = nil
	s.pending = false
}

// UploadFile sends the document to remote storage and stores the
// returned handle in the draft. Payloads over the configured maximum
// fail immediately without consuming a network attempt. On upload
// failure the draft's file fields are rolled back to "no file"; the
// caller may retry by re-invoking UploadFile.
func (s *ConfigurationService) UploadFile(ctx context.Context, file domain.FileUpload) (domain.FileHandle, error) {
	if s.maxFileSize > 0 && int64(len(file.Data)) > s.maxFileSize {
		return domain.FileHandle{}, &errors.ErrFileTooLarge{Size: int64(len(file.Data)), Max: s.maxFileSize}
	}

	handle, err := s.uploads.Upload(ctx, file)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.draft.File = nil
		s.draft.FileName = ""
		s.draft.FileID = ""
		s.logger.Error("File upload failed", zap.String("file_name", file.Name), zap.Error(err))
		return domain.FileHandle{}, err
	}

	s.draft.File = file.Data
	s.draft.FileID = handle.FileID
	s.draft.FileName = handle.FileName
	s.seq++
	s.logger.Info("File uploaded", zap.String("file_id", handle.FileID), zap.String("file_name", handle.FileName))
	s.scheduleRecomputeLocked()
	return handle, nil
}

// RequestRecompute schedules a price recompute for the current draft.
// Any further edit re-triggers pricing after a failed round, so a
// manual retry goes through here as well.
func (s *ConfigurationService) RequestRecompute() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduleRecomputeLocked()
}

// scheduleRecomputeLocked must be called with the mutex held
func (s *ConfigurationService) scheduleRecomputeLocked() {
	if s.inFlight {
		s.pending = true
		return
	}
	s.inFlight = true
	s.idle = make(chan struct{})
	go s.recomputeLoop()
}

// recomputeLoop issues pricing rounds until no edit arrived during the
// last one. It runs on the session's own lifetime, not a request's: a
// superseded round is allowed to complete and its result discarded.
func (s *ConfigurationService) recomputeLoop() {
	ctx := context.Background()
	for {
		s.mu.Lock()
		opts := collaborator.PriceOptions{
			Color:     s.draft.Color,
			Paper:     s.draft.Paper,
			Size:      s.draft.Size,
			Sides:     s.draft.Sides,
			PageCount: s.draft.PageCount,
			Quantity:  s.draft.Quantity,
			PageRange: s.draft.PageRange,
		}
		snapSeq := s.seq
		s.pending = false
		s.mu.Unlock()

		quote, err := s.pricing.GetPrice(ctx, opts)

		s.mu.Lock()
		switch {
		case err != nil:
			// Last known price is retained, only flagged stale
			s.priceStale = true
			s.lastPriceErr = err
			s.logger.Warn("Price calculation failed", zap.Error(err))
		case snapSeq == s.seq:
			s.draft.PagePrice = quote.PagePrice
			s.draft.Total = quote.Total
			s.draft.Subtotal = s.draft.SubtotalPerCopy()
			s.quotedSeq = snapSeq
			s.priceStale = false
			s.lastPriceErr = nil
			s.logger.Debug("Price updated", zap.Float64("total", quote.Total), zap.Float64("page_price", quote.PagePrice))
		default:
			// Result corresponds to an older draft than the pending edit
			s.logger.Debug("Discarding superseded price result")
		}

		if !s.pending {
			s.inFlight = false
			close(s.idle)
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
	}
}

// WaitIdle blocks until no recompute is in flight. Intended for callers
// that need a settled price, such as the checkout projection.
func (s *ConfigurationService) WaitIdle(ctx context.Context) error {
	for {
		s.mu.Lock()
		if !s.inFlight {
			s.mu.Unlock()
			return nil
		}
		ch := s.idle
		s.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Draft returns a copy of the current draft
func (s *ConfigurationService) Draft() domain.ProductConfiguration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// PriceStatus reports whether the displayed price is stale and the last
// pricing failure, if any
func (s *ConfigurationService) PriceStatus() (stale bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.priceStale, s.lastPriceErr
}

// CartDraft returns the draft for committing to the cart. A new item
// requires an upload handle; an edit may proceed without one, inheriting
// the original handle at commit. Quantity must be positive either way.
func (s *ConfigurationService) CartDraft(editing bool) (domain.ProductConfiguration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.draft.HasFile() && !editing {
		return domain.ProductConfiguration{}, &errors.ErrNotReady{Message: "no uploaded file to add"}
	}
	if s.draft.Quantity < 1 {
		return domain.ProductConfiguration{}, &errors.ErrNotReady{Message: "quantity must be at least 1"}
	}
	return s.draft, nil
}

// clampPositive parses a numeric field, clamping unparsable values and
// values below 1 to 1
func clampPositive(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
