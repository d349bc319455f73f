package service

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Eloy96/impresiones-prueba/internal/domain"
	"github.com/Eloy96/impresiones-prueba/pkg/errors"
)

// NavigationController is the finite-state machine gating which view and
// configuration step are reachable. Forward motion to step k requires
// steps 1..k-1 visited at least once in the current configuration
// session; the confirmation view is reachable only by recording a
// successful submission.
type NavigationController struct {
	mu        sync.Mutex
	view      domain.View
	step      domain.ConfigStep
	visited   map[domain.ConfigStep]bool
	confirmed bool
	logger    *zap.Logger
}

// NewNavigationController starts at the home view
func NewNavigationController(logger *zap.Logger) *NavigationController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NavigationController{
		view:    domain.ViewHome,
		step:    domain.StepUpload,
		visited: map[domain.ConfigStep]bool{domain.StepUpload: true},
		logger:  logger,
	}
}

// CurrentView returns the active view
func (n *NavigationController) CurrentView() domain.View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.view
}

// CurrentStep returns the active configuration step
func (n *NavigationController) CurrentStep() domain.ConfigStep {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.step
}

// NavigateTo moves between top-level views. The confirmation view is
// never a direct target; from confirmation only a new session leads
// back out.
func (n *NavigationController) NavigateTo(view domain.View) error {
	if !view.IsValid() {
		return &errors.ErrValidation{Message: "unknown view", Fields: map[string]string{"view": string(view)}}
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if view == domain.ViewConfirmation {
		if !n.confirmed {
			return &errors.ErrInvalidStateTransition{From: string(n.view), To: string(view)}
		}
		n.view = view
		return nil
	}
	if n.view == domain.ViewConfirmation {
		// Only a new session leaves the confirmation view
		if view != domain.ViewHome {
			return &errors.ErrInvalidStateTransition{From: string(n.view), To: string(view)}
		}
		n.resetLocked()
		n.view = view
		return nil
	}

	n.view = view
	n.logger.Debug("Navigated", zap.String("view", string(view)))
	return nil
}

// EnterStep moves to a configuration step. Forward motion requires all
// previous steps visited in the current session.
func (n *NavigationController) EnterStep(step domain.ConfigStep) error {
	if !step.IsValid() {
		return &errors.ErrValidation{Message: "unknown configuration step"}
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	for prev := domain.StepUpload; prev < step; prev++ {
		if !n.visited[prev] {
			return &errors.ErrInvalidStateTransition{From: string(n.view), To: "step not yet reachable"}
		}
	}
	n.step = step
	n.visited[step] = true
	return nil
}

// BeginEdit enters the configuration view at the options step directly,
// bypassing upload, for editing an existing cart item
func (n *NavigationController) BeginEdit() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.view = domain.ViewConfig
	n.step = domain.StepOptions
	n.visited[domain.StepUpload] = true
	n.visited[domain.StepPreview] = true
	n.visited[domain.StepOptions] = true
}

// RecordSubmissionSuccess unlocks and enters the confirmation view
func (n *NavigationController) RecordSubmissionSuccess() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed = true
	n.view = domain.ViewConfirmation
}

// StartNewSession returns to home with a fresh step history
func (n *NavigationController) StartNewSession() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resetLocked()
	n.view = domain.ViewHome
}

// ResetSteps clears the step history for a new configuration session
func (n *NavigationController) ResetSteps() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.step = domain.StepUpload
	n.visited = map[domain.ConfigStep]bool{domain.StepUpload: true}
}

// resetLocked must be called with the mutex held
func (n *NavigationController) resetLocked() {
	n.confirmed = false
	n.step = domain.StepUpload
	n.visited = map[domain.ConfigStep]bool{domain.StepUpload: true}
}
