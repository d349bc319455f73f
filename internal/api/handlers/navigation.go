package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Eloy96/impresiones-prueba/internal/domain"
	"github.com/Eloy96/impresiones-prueba/internal/service"
)

// NavigateRequest is a top-level view change
type NavigateRequest struct {
	View string `json:"view" binding:"required"`
}

// EnterStepRequest is a configuration step change
type EnterStepRequest struct {
	Step int `json:"step" binding:"required"`
}

func HandleGetNavigation(nav *service.NavigationController) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"view": nav.CurrentView(),
			"step": nav.CurrentStep(),
		})
	}
}

func HandleNavigate(nav *service.NavigationController, checkout *service.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NavigateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		view := domain.View(req.View)
		if err := nav.NavigateTo(view); err != nil {
			respondError(c, err)
			return
		}

		resp := gin.H{"view": nav.CurrentView()}
		if view == domain.ViewCheckout {
			// The checkout view is never cached; re-project the cart
			resp["checkout"] = checkout.Render()
		}
		c.JSON(http.StatusOK, resp)
	}
}

func HandleEnterStep(nav *service.NavigationController) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EnterStepRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := nav.EnterStep(domain.ConfigStep(req.Step)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"step": nav.CurrentStep()})
	}
}
