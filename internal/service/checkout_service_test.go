package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eloy96/impresiones-prueba/internal/cart"
	"github.com/Eloy96/impresiones-prueba/internal/domain"
	pkgerrors "github.com/Eloy96/impresiones-prueba/pkg/errors"
)

type stubSubmitter struct {
	mu      sync.Mutex
	calls   int
	fail    bool
	folio   domain.Folio
	started chan struct{}
	release chan struct{}
	last    domain.OrderRequest
}

func (s *stubSubmitter) Submit(ctx context.Context, order domain.OrderRequest) (domain.Folio, error) {
	s.mu.Lock()
	s.calls++
	s.last = order
	fail := s.fail
	s.mu.Unlock()
	if s.started != nil {
		s.started <- struct{}{}
		<-s.release
	}
	if fail {
		return "", &pkgerrors.ErrOrderSubmission{Err: fmt.Errorf("collaborator down")}
	}
	return s.folio, nil
}

func (s *stubSubmitter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func validForm() domain.CustomerInfo {
	return domain.CustomerInfo{
		Name:           "Ana Torres",
		Email:          "ana@example.com",
		Phone:          "555-123-4567",
		Branch:         "centro",
		DeliveryMethod: domain.DeliveryPickup,
		TermsAccepted:  true,
	}
}

func cartWithItem(t *testing.T) *cart.Store {
	t.Helper()
	store, err := cart.NewStore(nil, nil)
	require.NoError(t, err)
	cfg := domain.DefaultConfiguration()
	cfg.FileID = "drive-abc"
	cfg.FileName = "tarea.pdf"
	cfg.Total = 1.30
	_, err = store.Add(cfg)
	require.NoError(t, err)
	return store
}

func TestPhoneNormalization(t *testing.T) {
	assert.Equal(t, "5551234567", NormalizePhone("555-123-4567"))
	assert.Equal(t, "5551234567", NormalizePhone("(555) 123 4567"))
	assert.Equal(t, "12345", NormalizePhone("12345"))
}

func TestIsReadyToSubmit(t *testing.T) {
	store := cartWithItem(t)
	checkout := NewCheckoutService(store, &stubSubmitter{folio: "F-1"}, nil)

	assert.False(t, checkout.IsReadyToSubmit(), "empty form is never ready")

	checkout.SetForm(validForm())
	assert.True(t, checkout.IsReadyToSubmit())

	form := validForm()
	form.Phone = "12345"
	checkout.SetForm(form)
	assert.False(t, checkout.IsReadyToSubmit(), "phone must normalize to exactly 10 digits")

	form = validForm()
	form.Email = "not-an-email"
	checkout.SetForm(form)
	assert.False(t, checkout.IsReadyToSubmit())

	form = validForm()
	form.TermsAccepted = false
	checkout.SetForm(form)
	assert.False(t, checkout.IsReadyToSubmit())

	form = validForm()
	form.DeliveryMethod = domain.DeliveryHome
	form.Branch = ""
	checkout.SetForm(form)
	assert.False(t, checkout.IsReadyToSubmit(), "home delivery requires an address")
	form.Address = "Av. Juárez 12"
	checkout.SetForm(form)
	assert.True(t, checkout.IsReadyToSubmit())
}

func TestEmptyCartNeverReady(t *testing.T) {
	store, err := cart.NewStore(nil, nil)
	require.NoError(t, err)
	checkout := NewCheckoutService(store, &stubSubmitter{folio: "F-1"}, nil)
	checkout.SetForm(validForm())

	assert.False(t, checkout.IsReadyToSubmit())

	_, err = checkout.Submit(context.Background())
	var notReady *pkgerrors.ErrNotReady
	require.ErrorAs(t, err, &notReady)
	assert.Equal(t, domain.CheckoutIdle, checkout.State())
}

func TestZeroTotalCartNeverReady(t *testing.T) {
	store, err := cart.NewStore(nil, nil)
	require.NoError(t, err)
	cfg := domain.DefaultConfiguration()
	cfg.FileID = "drive-abc"
	cfg.Total = 0
	_, err = store.Add(cfg)
	require.NoError(t, err)

	checkout := NewCheckoutService(store, &stubSubmitter{folio: "F-1"}, nil)
	checkout.SetForm(validForm())
	assert.False(t, checkout.IsReadyToSubmit())
}

func TestSubmitSuccessClearsCartAndReturnsFolio(t *testing.T) {
	store := cartWithItem(t)
	sub := &stubSubmitter{folio: "F-0042"}
	checkout := NewCheckoutService(store, sub, nil)
	checkout.SetForm(validForm())

	folio, err := checkout.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Folio("F-0042"), folio)
	assert.Equal(t, domain.CheckoutSucceeded, checkout.State())
	assert.Equal(t, 0, store.Len(), "terminal success is the only path that clears the cart")

	got, ok := checkout.Folio()
	require.True(t, ok)
	assert.Equal(t, folio, got)

	// The submitted order carried the normalized phone and cart total
	assert.Equal(t, "5551234567", sub.last.Customer.Phone)
	assert.InDelta(t, 1.30, sub.last.Customer.Total, 1e-9)
	require.Len(t, sub.last.Items, 1)
}

func TestSubmitFailurePreservesCartAndForm(t *testing.T) {
	store := cartWithItem(t)
	sub := &stubSubmitter{fail: true}
	checkout := NewCheckoutService(store, sub, nil)
	checkout.SetForm(validForm())

	_, err := checkout.Submit(context.Background())
	var subErr *pkgerrors.ErrOrderSubmission
	require.ErrorAs(t, err, &subErr)

	assert.Equal(t, domain.CheckoutFailed, checkout.State())
	assert.Equal(t, 1, store.Len(), "no error silently clears the cart")
	assert.Equal(t, "Ana Torres", checkout.Form().Name, "form survives the failure")
	require.Error(t, checkout.LastError())

	// The user may retry from the failure state
	sub.mu.Lock()
	sub.fail = false
	sub.folio = "F-0099"
	sub.mu.Unlock()
	folio, err := checkout.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Folio("F-0099"), folio)
	assert.Equal(t, 0, store.Len())
}

func TestSecondSubmitWhileInFlightIsNoOp(t *testing.T) {
	store := cartWithItem(t)
	sub := &stubSubmitter{
		folio:   "F-1",
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	checkout := NewCheckoutService(store, sub, nil)
	checkout.SetForm(validForm())

	done := make(chan error, 1)
	go func() {
		_, err := checkout.Submit(context.Background())
		done <- err
	}()

	select {
	case <-sub.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first submission never reached the collaborator")
	}

	_, err := checkout.Submit(context.Background())
	var notReady *pkgerrors.ErrNotReady
	require.ErrorAs(t, err, &notReady)

	close(sub.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, sub.callCount(), "overlapping submit must not reach the collaborator")
}

func TestSubmitAfterSuccessRequiresNewSession(t *testing.T) {
	store := cartWithItem(t)
	checkout := NewCheckoutService(store, &stubSubmitter{folio: "F-1"}, nil)
	checkout.SetForm(validForm())

	_, err := checkout.Submit(context.Background())
	require.NoError(t, err)

	_, err = checkout.Submit(context.Background())
	var transition *pkgerrors.ErrInvalidStateTransition
	require.ErrorAs(t, err, &transition, "SUCCEEDED is terminal until a new session starts")

	checkout.Reset()
	assert.Equal(t, domain.CheckoutIdle, checkout.State())
	_, ok := checkout.Folio()
	assert.False(t, ok)
}

func TestRenderDistinguishesEmptyCart(t *testing.T) {
	store, err := cart.NewStore(nil, nil)
	require.NoError(t, err)
	checkout := NewCheckoutService(store, &stubSubmitter{}, nil)

	view := checkout.Render()
	assert.True(t, view.Empty)
	assert.Zero(t, view.Total)
	assert.Empty(t, view.Items)

	cfg := domain.DefaultConfiguration()
	cfg.FileID = "drive-abc"
	cfg.FileName = "tarea.pdf"
	cfg.Total = 2.60
	_, err = store.Add(cfg)
	require.NoError(t, err)

	view = checkout.Render()
	assert.False(t, view.Empty)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "tarea.pdf", view.Items[0].FileName)
	assert.InDelta(t, 2.60, view.Subtotal, 1e-9)
	assert.InDelta(t, 2.60, view.Total, 1e-9)
}
