package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Eloy96/impresiones-prueba/internal/service"
)

func HandleListCategory(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := c.Param("category")
		products := catalog.ListByCategory(category)
		c.JSON(http.StatusOK, gin.H{
			"category": category,
			"products": products,
		})
	}
}

func HandleGetProduct(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.Get(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
