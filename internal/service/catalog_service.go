package service

import (
	"github.com/Eloy96/impresiones-prueba/internal/domain"
	"github.com/Eloy96/impresiones-prueba/pkg/errors"
)

// CatalogService serves the static print-product catalog shown on the
// category and product views
type CatalogService struct {
	byCategory map[string][]domain.Product
}

// NewCatalogService loads the built-in catalog
func NewCatalogService() *CatalogService {
	products := []domain.Product{
		{ID: "prod-bn-carta", Category: "impresion_bn", Title: "Impresión B/N Carta", Description: "Impresión en blanco y negro de alta calidad en papel bond tamaño carta. Ideal para documentos, reportes y material de oficina."},
		{ID: "prod-bn-oficio", Category: "impresion_bn", Title: "Impresión B/N Oficio", Description: "Formato oficio, papel bond."},
		{ID: "prod-color-laser", Category: "impresion_color", Title: "Impresión Color Láser", Description: "Impresión a color con tecnología láser para resultados profesionales. Perfecta para presentaciones, folletos y material promocional."},
		{ID: "prod-color-inkjet", Category: "impresion_color", Title: "Impresión Color Inkjet", Description: "Calidad fotográfica."},
		{ID: "prod-planos-bn", Category: "planos", Title: "Impresión Planos B/N", Description: "Impresión de planos técnicos y arquitectónicos en formato grande. Calidad profesional para proyectos de ingeniería y arquitectura."},
		{ID: "prod-ploteo-bond", Category: "planos", Title: "Ploteo Bond", Description: "Ploteo a color en papel bond para pósters, banners y material publicitario de gran formato."},
		{ID: "prod-pvc", Category: "especiales", Title: "Tarjetas PVC", Description: "Impresión en tarjetas PVC de alta durabilidad. Ideal para credenciales, tarjetas de membresía e identificaciones."},
		{ID: "prod-copia-bn", Category: "impresion_bn", Title: "Copias B/N", Description: "Servicio de copiado en blanco y negro con excelente relación calidad-precio."},
	}

	byCategory := make(map[string][]domain.Product)
	for _, p := range products {
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}
	return &CatalogService{byCategory: byCategory}
}

// ListByCategory returns the products of a category. Unknown categories
// fall back to the black-and-white printing lineup, as the storefront
// category view does.
func (c *CatalogService) ListByCategory(category string) []domain.Product {
	if items, ok := c.byCategory[category]; ok {
		return items
	}
	return c.byCategory["impresion_bn"]
}

// Get returns a single product by id
func (c *CatalogService) Get(id string) (domain.Product, error) {
	for _, items := range c.byCategory {
		for _, p := range items {
			if p.ID == id {
				return p, nil
			}
		}
	}
	return domain.Product{}, &errors.ErrNotFound{Resource: "product", ID: id}
}
