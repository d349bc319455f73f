package collaborator

import (
	"context"
	"fmt"

	"github.com/Eloy96/impresiones-prueba/internal/domain"
	"github.com/Eloy96/impresiones-prueba/pkg/errors"
)

// OrderClient wraps the submitOrder exchange
type OrderClient struct {
	client *Client
}

// NewOrderClient creates an order client over a shared collaborator client
func NewOrderClient(client *Client) *OrderClient {
	return &OrderClient{client: client}
}

type orderRequest struct {
	Action   string              `json:"action"`
	Customer domain.CustomerInfo `json:"cliente"`
	Items    []domain.CartItem   `json:"items"`
}

type orderResponse struct {
	Folio string `json:"folio"`
}

// Submit sends the order and returns the confirmation folio. Failures
// after retry exhaustion are surfaced as ErrOrderSubmission.
func (o *OrderClient) Submit(ctx context.Context, order domain.OrderRequest) (domain.Folio, error) {
	req := orderRequest{
		Action:   "submitOrder",
		Customer: order.Customer,
		Items:    order.Items,
	}

	var resp orderResponse
	if err := o.client.doAction(ctx, "submitOrder", req, &resp); err != nil {
		return "", &errors.ErrOrderSubmission{Err: err}
	}

	if resp.Folio == "" {
		return "", &errors.ErrOrderSubmission{Err: fmt.Errorf("collaborator accepted order without a folio")}
	}

	return domain.Folio(resp.Folio), nil
}
