package collaborator

import (
	"context"

	"github.com/Eloy96/impresiones-prueba/internal/domain"
	"github.com/Eloy96/impresiones-prueba/pkg/errors"
)

// PricingClient wraps the getPrice exchange
type PricingClient struct {
	client *Client
}

// NewPricingClient creates a pricing client over a shared collaborator client
func NewPricingClient(client *Client) *PricingClient {
	return &PricingClient{client: client}
}

// PriceOptions are the configuration fields the collaborator prices
type PriceOptions struct {
	Color     domain.ColorMode  `json:"color"`
	Paper     domain.PaperType  `json:"paper"`
	Size      domain.PageSize   `json:"size"`
	Sides     domain.PrintSides `json:"sides"`
	PageCount int               `json:"pageCount"`
	Quantity  int               `json:"cantidad"`
	PageRange string            `json:"rango"`
}

type priceRequest struct {
	Action  string       `json:"action"`
	Options PriceOptions `json:"options"`
}

type priceResponse struct {
	PagePrice float64 `json:"pagePrice"`
	Total     float64 `json:"total"`
}

// GetPrice requests a quote for the given options. Failures after retry
// exhaustion are surfaced as ErrPricing.
func (p *PricingClient) GetPrice(ctx context.Context, opts PriceOptions) (domain.PriceQuote, error) {
	req := priceRequest{
		Action:  "getPrice",
		Options: opts,
	}

	var resp priceResponse
	if err := p.client.doAction(ctx, "getPrice", req, &resp); err != nil {
		return domain.PriceQuote{}, &errors.ErrPricing{Err: err}
	}

	return domain.PriceQuote{
		PagePrice: resp.PagePrice,
		Total:     resp.Total,
	}, nil
}
