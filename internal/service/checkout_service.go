package service

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Eloy96/impresiones-prueba/internal/cart"
	"github.com/Eloy96/impresiones-prueba/internal/domain"
	"github.com/Eloy96/impresiones-prueba/pkg/errors"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var nonDigitPattern = regexp.MustCompile(`\D`)

// CheckoutService collects customer and delivery data, validates
// readiness and drives the final order submission. State machine:
// IDLE -> VALIDATING -> SUBMITTING -> SUCCEEDED | FAILED, with FAILED
// actionable (cart and form preserved, user may retry or edit).
type CheckoutService struct {
	mu      sync.Mutex
	state   domain.CheckoutState
	form    domain.CustomerInfo
	folio   domain.Folio
	lastErr error

	cart   *cart.Store
	orders OrderSubmitter
	logger *zap.Logger
}

// NewCheckoutService creates a checkout service over the cart store
func NewCheckoutService(store *cart.Store, orders OrderSubmitter, logger *zap.Logger) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		state:  domain.CheckoutIdle,
		cart:   store,
		orders: orders,
		logger: logger,
	}
}

// SetForm stores the checkout form. The form survives submission
// failures so the user can correct and retry.
func (s *CheckoutService) SetForm(form domain.CustomerInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = form
}

// Form returns the current checkout form
func (s *CheckoutService) Form() domain.CustomerInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// State returns the current checkout state
func (s *CheckoutService) State() domain.CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Folio returns the confirmation identifier after a successful submission
func (s *CheckoutService) Folio() (domain.Folio, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.folio, s.state == domain.CheckoutSucceeded
}

// LastError returns the failure reason of the last submission attempt
func (s *CheckoutService) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Render projects the cart into a display model. An empty cart reports
// Empty true with zero totals, distinct from a populated one.
func (s *CheckoutService) Render() CheckoutView {
	items := s.cart.Items()
	view := CheckoutView{
		Items: make([]CheckoutItemView, 0, len(items)),
		Empty: len(items) == 0,
	}
	for _, item := range items {
		view.Subtotal += item.Total
		view.Items = append(view.Items, CheckoutItemView{
			ID:        item.ID.String(),
			FileName:  item.FileName,
			Quantity:  item.Quantity,
			PageCount: item.PageCount,
			Color:     item.Color,
			Paper:     item.Paper,
			Size:      item.Size,
			Sides:     item.Sides,
			PageRange: item.PageRange,
			Total:     item.Total,
		})
	}
	view.Total = view.Subtotal
	return view
}

// IsReadyToSubmit reports whether a submission may proceed: non-empty
// cart with a positive total, well-formed contact fields, the
// delivery-method-specific field present, and terms accepted.
func (s *CheckoutService) IsReadyToSubmit() bool {
	s.mu.Lock()
	form := s.form
	s.mu.Unlock()
	return s.cart.Len() > 0 && s.cart.Subtotal() > 0 && validateForm(form) == nil
}

// ValidateForm checks a prospective form without storing it, so the UI
// can report field problems as the user types
func (s *CheckoutService) ValidateForm(form domain.CustomerInfo) error {
	return validateForm(form)
}

// Submit builds an order from the current cart and form and sends it.
// Fails fast with ErrNotReady when the readiness predicate does not
// hold. At most one submission is in flight; a second call while
// SUBMITTING is a no-op. On success the cart is cleared and the folio
// returned; on failure cart and form are fully preserved.
func (s *CheckoutService) Submit(ctx context.Context) (domain.Folio, error) {
	s.mu.Lock()
	if s.state == domain.CheckoutSubmitting {
		s.mu.Unlock()
		s.logger.Warn("Submission already in progress, ignoring")
		return "", &errors.ErrNotReady{Message: "submission already in progress"}
	}
	if !s.state.CanTransitionTo(domain.CheckoutValidating) {
		from := s.state
		s.mu.Unlock()
		return "", &errors.ErrInvalidStateTransition{From: string(from), To: string(domain.CheckoutValidating)}
	}
	s.state = domain.CheckoutValidating
	form := s.form
	s.mu.Unlock()

	items := s.cart.Items()
	if len(items) == 0 || s.cart.Subtotal() <= 0 {
		s.failValidation()
		return "", &errors.ErrNotReady{Message: "cart is empty"}
	}
	if err := validateForm(form); err != nil {
		s.failValidation()
		return "", &errors.ErrNotReady{Message: err.Error()}
	}

	form.Phone = NormalizePhone(form.Phone)
	form.Total = s.cart.Subtotal()
	order := domain.OrderRequest{
		Customer: form,
		Items:    items,
	}

	s.mu.Lock()
	s.state = domain.CheckoutSubmitting
	s.mu.Unlock()

	s.logger.Info("Submitting order",
		zap.Int("item_count", len(order.Items)),
		zap.Float64("total", order.Customer.Total),
		zap.String("delivery_method", string(order.Customer.DeliveryMethod)),
	)

	folio, err := s.orders.Submit(ctx, order)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = domain.CheckoutFailed
		s.lastErr = err
		s.logger.Error("Order submission failed", zap.Error(err))
		return "", err
	}

	s.state = domain.CheckoutSucceeded
	s.folio = folio
	s.lastErr = nil
	s.cart.Clear()
	s.logger.Info("Order submitted", zap.String("folio", string(folio)))
	return folio, nil
}

// failValidation returns the session to IDLE so the form stays editable
func (s *CheckoutService) failValidation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.CheckoutIdle
}

// Reset starts a new checkout session after the confirmation view
func (s *CheckoutService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.CheckoutIdle
	s.form = domain.CustomerInfo{}
	s.folio = ""
	s.lastErr = nil
}

// validateForm checks the contact and delivery fields
func validateForm(form domain.CustomerInfo) error {
	fields := map[string]string{}
	if strings.TrimSpace(form.Name) == "" {
		fields["nombre"] = "required"
	}
	if !emailPattern.MatchString(strings.TrimSpace(form.Email)) {
		fields["email"] = "invalid"
	}
	if len(NormalizePhone(form.Phone)) != 10 {
		fields["telefono"] = "must be 10 digits"
	}
	if !form.DeliveryMethod.IsValid() {
		fields["metodoEntrega"] = "invalid"
	} else {
		switch form.DeliveryMethod {
		case domain.DeliveryPickup:
			if strings.TrimSpace(form.Branch) == "" {
				fields["sucursal"] = "required"
			}
		case domain.DeliveryHome:
			if strings.TrimSpace(form.Address) == "" {
				fields["direccion"] = "required"
			}
		}
	}
	if !form.TermsAccepted {
		fields["terms"] = "must be accepted"
	}
	if len(fields) > 0 {
		return &errors.ErrValidation{Message: "checkout form incomplete", Fields: fields}
	}
	return nil
}

// NormalizePhone strips every non-digit character
func NormalizePhone(phone string) string {
	return nonDigitPattern.ReplaceAllString(phone, "")
}
