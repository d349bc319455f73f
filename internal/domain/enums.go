package domain

// ColorMode selects full color or black and white printing
type ColorMode string

const (
	ColorFull ColorMode = "color"
	ColorBW   ColorMode = "bn"
)

// IsValid checks if the color mode is valid
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorFull, ColorBW:
		return true
	default:
		return false
	}
}

// PaperType selects the paper stock
type PaperType string

const (
	PaperBond    PaperType = "bond"
	PaperCouche  PaperType = "couche"
	PaperOpalina PaperType = "opalina"
)

// IsValid checks if the paper type is valid
func (p PaperType) IsValid() bool {
	switch p {
	case PaperBond, PaperCouche, PaperOpalina:
		return true
	default:
		return false
	}
}

// PageSize selects the sheet size
type PageSize string

const (
	SizeCarta      PageSize = "carta"
	SizeOficio     PageSize = "oficio"
	SizeDobleCarta PageSize = "doble carta"
)

// IsValid checks if the page size is valid
func (s PageSize) IsValid() bool {
	switch s {
	case SizeCarta, SizeOficio, SizeDobleCarta:
		return true
	default:
		return false
	}
}

// PrintSides selects single or double sided printing
type PrintSides string

const (
	SidesSingle PrintSides = "una cara"
	SidesDouble PrintSides = "doble cara"
)

// IsValid checks if the sides selection is valid
func (s PrintSides) IsValid() bool {
	switch s {
	case SidesSingle, SidesDouble:
		return true
	default:
		return false
	}
}

// DeliveryMethod selects store pickup or home delivery. Pickup requires
// a branch id, delivery requires an address.
type DeliveryMethod string

const (
	DeliveryPickup DeliveryMethod = "sucursal"
	DeliveryHome   DeliveryMethod = "domicilio"
)

// IsValid checks if the delivery method is valid
func (m DeliveryMethod) IsValid() bool {
	switch m {
	case DeliveryPickup, DeliveryHome:
		return true
	default:
		return false
	}
}

// View represents a top-level storefront view
type View string

const (
	ViewHome         View = "view-home"
	ViewCategory     View = "view-category"
	ViewProduct      View = "view-product-detail"
	ViewConfig       View = "view-config"
	ViewCheckout     View = "view-checkout"
	ViewConfirmation View = "view-thanks"
)

// IsValid checks if the view is valid
func (v View) IsValid() bool {
	switch v {
	case ViewHome, ViewCategory, ViewProduct, ViewConfig, ViewCheckout, ViewConfirmation:
		return true
	default:
		return false
	}
}

// ConfigStep is one of the ordered configuration steps
type ConfigStep int

const (
	StepUpload  ConfigStep = 1
	StepPreview ConfigStep = 2
	StepOptions ConfigStep = 3
)

// IsValid checks if the step is valid
func (s ConfigStep) IsValid() bool {
	return s >= StepUpload && s <= StepOptions
}

// CheckoutState represents the state of the checkout session
type CheckoutState string

const (
	// IDLE - no submission attempted yet, or a previous attempt was reset
	CheckoutIdle CheckoutState = "IDLE"
	// VALIDATING - readiness checks running before submission
	CheckoutValidating CheckoutState = "VALIDATING"
	// SUBMITTING - an order exchange is in flight; at most one at a time
	CheckoutSubmitting CheckoutState = "SUBMITTING"
	// SUCCEEDED - terminal; cart has been cleared and a folio issued
	CheckoutSucceeded CheckoutState = "SUCCEEDED"
	// FAILED - actionable; cart and form preserved, user may retry
	CheckoutFailed CheckoutState = "FAILED"
)

// IsValid checks if the checkout state is valid
func (s CheckoutState) IsValid() bool {
	switch s {
	case CheckoutIdle, CheckoutValidating, CheckoutSubmitting, CheckoutSucceeded, CheckoutFailed:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a checkout state transition is valid
func (s CheckoutState) CanTransitionTo(next CheckoutState) bool {
	switch s {
	case CheckoutIdle:
		return next == CheckoutValidating || next == CheckoutSubmitting
	case CheckoutValidating:
		return next == CheckoutSubmitting || next == CheckoutIdle || next == CheckoutFailed
	case CheckoutSubmitting:
		return next == CheckoutSucceeded || next == CheckoutFailed
	case CheckoutFailed:
		// Failure is actionable: the user may edit and retry
		return next == CheckoutValidating || next == CheckoutSubmitting || next == CheckoutIdle
	case CheckoutSucceeded:
		return false // Terminal state
	default:
		return false
	}
}
