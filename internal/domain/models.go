package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProductConfiguration is the single in-progress draft owned by the
// configuration session. Quantity and PageCount are clamped to >= 1 on
// every edit; Total and PagePrice are only trustworthy immediately after
// a pricing round-trip that has not been superseded by a later edit.
type ProductConfiguration struct {
	File      []byte     `json:"-"`
	FileName  string     `json:"fileName"`
	FileID    string     `json:"fileId"`
	Quantity  int        `json:"cantidad"`
	PageCount int        `json:"pageCount"`
	PagePrice float64    `json:"pagePrice"`
	Color     ColorMode  `json:"color"`
	Paper     PaperType  `json:"paper"`
	Size      PageSize   `json:"size"`
	Sides     PrintSides `json:"sides"`
	PageRange string     `json:"rango"`
	Subtotal  float64    `json:"subtotal"`
	Total     float64    `json:"total"`
}

// DefaultConfiguration returns a fresh draft in its initial state
func DefaultConfiguration() ProductConfiguration {
	return ProductConfiguration{
		FileName:  "",
		FileID:    "",
		Quantity:  1,
		PageCount: 1,
		Color:     ColorFull,
		Paper:     PaperBond,
		Size:      SizeCarta,
		Sides:     SidesSingle,
	}
}

// HasFile reports whether a durable upload handle is present
func (c ProductConfiguration) HasFile() bool {
	return c.FileID != ""
}

// SubtotalPerCopy derives the per-copy subtotal from the last quoted
// total. Quantity is never below 1, so the division is safe.
func (c ProductConfiguration) SubtotalPerCopy() float64 {
	if c.Quantity < 1 {
		return 0
	}
	return c.Total / float64(c.Quantity)
}

// CartItem is a frozen snapshot of a configuration committed to the
// order. The ID never changes for the life of the item, even across
// edits. The raw file payload is not part of the snapshot; only the
// remote handle survives.
type CartItem struct {
	ID        uuid.UUID  `json:"id"`
	FileName  string     `json:"fileName"`
	FileID    string     `json:"fileId"`
	Quantity  int        `json:"cantidad"`
	PageCount int        `json:"pageCount"`
	PagePrice float64    `json:"pagePrice"`
	Color     ColorMode  `json:"color"`
	Paper     PaperType  `json:"paper"`
	Size      PageSize   `json:"size"`
	Sides     PrintSides `json:"sides"`
	PageRange string     `json:"rango"`
	Subtotal  float64    `json:"subtotal"`
	Total     float64    `json:"total"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Configuration converts the item back into a draft-compatible copy for
// editing. The file payload is not recoverable from the snapshot, so an
// edit proceeds on the inherited handle unless a new file is uploaded.
func (i CartItem) Configuration() ProductConfiguration {
	return ProductConfiguration{
		File:      nil,
		FileName:  i.FileName,
		FileID:    i.FileID,
		Quantity:  i.Quantity,
		PageCount: i.PageCount,
		PagePrice: i.PagePrice,
		Color:     i.Color,
		Paper:     i.Paper,
		Size:      i.Size,
		Sides:     i.Sides,
		PageRange: i.PageRange,
		Subtotal:  i.Subtotal,
		Total:     i.Total,
	}
}

// PriceQuote is the result of one pricing exchange
type PriceQuote struct {
	PagePrice float64 `json:"pagePrice"`
	Total     float64 `json:"total"`
}

// CustomerInfo is the checkout form data collected before submission
type CustomerInfo struct {
	Name           string         `json:"nombre"`
	Email          string         `json:"email"`
	Phone          string         `json:"telefono"`
	Branch         string         `json:"sucursal,omitempty"`
	Address        string         `json:"direccion,omitempty"`
	DeliveryMethod DeliveryMethod `json:"metodoEntrega"`
	Total          float64        `json:"total"`
	TermsAccepted  bool           `json:"-"`
}

// OrderRequest is constructed once per submission attempt from the cart
// and the checkout form. It is discarded on success and retained for
// resubmission on failure.
type OrderRequest struct {
	Customer CustomerInfo `json:"cliente"`
	Items    []CartItem   `json:"items"`
}

// Folio is the opaque order confirmation identifier returned by the
// order collaborator on success
type Folio string

// FileUpload is a user-selected document pending upload to remote storage
type FileUpload struct {
	Name string
	Type string
	Data []byte
}

// FileHandle is the durable remote reference returned by a successful upload
type FileHandle struct {
	FileID   string
	FileName string
}

// Product is a catalog entry shown on the category view
type Product struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
