package service

import (
	"github.com/Eloy96/impresiones-prueba/internal/domain"
)

// CheckoutView is the display projection of the cart for the checkout view
type CheckoutView struct {
	Items    []CheckoutItemView `json:"items"`
	Subtotal float64            `json:"subtotal"`
	Total    float64            `json:"total"`
	Empty    bool               `json:"empty"`
}

// CheckoutItemView is one cart line as shown on the checkout view
type CheckoutItemView struct {
	ID        string            `json:"id"`
	FileName  string            `json:"fileName"`
	Quantity  int               `json:"cantidad"`
	PageCount int               `json:"pageCount"`
	Color     domain.ColorMode  `json:"color"`
	Paper     domain.PaperType  `json:"paper"`
	Size      domain.PageSize   `json:"size"`
	Sides     domain.PrintSides `json:"sides"`
	PageRange string            `json:"rango,omitempty"`
	Total     float64           `json:"total"`
}

// DraftView is the display projection of the in-progress configuration
type DraftView struct {
	FileName        string            `json:"fileName"`
	HasFile         bool              `json:"hasFile"`
	Quantity        int               `json:"cantidad"`
	PageCount       int               `json:"pageCount"`
	PagePrice       float64           `json:"pagePrice"`
	Color           domain.ColorMode  `json:"color"`
	Paper           domain.PaperType  `json:"paper"`
	Size            domain.PageSize   `json:"size"`
	Sides           domain.PrintSides `json:"sides"`
	PageRange       string            `json:"rango"`
	SubtotalPerCopy float64           `json:"subtotal"`
	Total           float64           `json:"total"`
	PriceStale      bool              `json:"priceStale"`
	PriceError      string            `json:"priceError,omitempty"`
}

// NewDraftView builds the draft projection from the session's current state
func NewDraftView(cfg domain.ProductConfiguration, stale bool, priceErr error) DraftView {
	view := DraftView{
		FileName:        cfg.FileName,
		HasFile:         cfg.HasFile(),
		Quantity:        cfg.Quantity,
		PageCount:       cfg.PageCount,
		PagePrice:       cfg.PagePrice,
		Color:           cfg.Color,
		Paper:           cfg.Paper,
		Size:            cfg.Size,
		Sides:           cfg.Sides,
		PageRange:       cfg.PageRange,
		SubtotalPerCopy: cfg.SubtotalPerCopy(),
		Total:           cfg.Total,
		PriceStale:      stale,
	}
	if priceErr != nil {
		view.PriceError = priceErr.Error()
	}
	return view
}
