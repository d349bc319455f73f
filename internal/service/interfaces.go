package service

import (
	"context"

	"github.com/Eloy96/impresiones-prueba/internal/collaborator"
	"github.com/Eloy96/impresiones-prueba/internal/domain"
)

// PriceQuoter requests a quote from the pricing collaborator
type PriceQuoter interface {
	GetPrice(ctx context.Context, opts collaborator.PriceOptions) (domain.PriceQuote, error)
}

// FileUploader sends a document to remote storage
type FileUploader interface {
	Upload(ctx context.Context, file domain.FileUpload) (domain.FileHandle, error)
}

// OrderSubmitter sends the final order to the order collaborator
type OrderSubmitter interface {
	Submit(ctx context.Context, order domain.OrderRequest) (domain.Folio, error)
}
