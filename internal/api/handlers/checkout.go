package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Eloy96/impresiones-prueba/internal/domain"
	"github.com/Eloy96/impresiones-prueba/internal/service"
)

// CheckoutFormRequest is the customer/delivery form
type CheckoutFormRequest struct {
	Name           string `json:"nombre" binding:"required"`
	Email          string `json:"email" binding:"required"`
	Phone          string `json:"telefono" binding:"required"`
	Branch         string `json:"sucursal"`
	Address        string `json:"direccion"`
	DeliveryMethod string `json:"metodoEntrega" binding:"required"`
	TermsAccepted  bool   `json:"termsAccepted"`
}

// HandleGetCheckout enters the checkout view, always re-rendered from
// the cart store
func HandleGetCheckout(checkout *service.CheckoutService, nav *service.NavigationController) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := nav.NavigateTo(domain.ViewCheckout); err != nil {
			respondError(c, err)
			return
		}
		view := checkout.Render()
		c.JSON(http.StatusOK, gin.H{
			"checkout": view,
			"state":    checkout.State(),
			"ready":    checkout.IsReadyToSubmit(),
		})
	}
}

func HandleSetCheckoutForm(checkout *service.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutFormRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		form := domain.CustomerInfo{
			Name:           req.Name,
			Email:          req.Email,
			Phone:          req.Phone,
			Branch:         req.Branch,
			Address:        req.Address,
			DeliveryMethod: domain.DeliveryMethod(req.DeliveryMethod),
			TermsAccepted:  req.TermsAccepted,
		}
		checkout.SetForm(form)

		// Report field problems without blocking the save; the form is
		// validated again at submit
		resp := gin.H{"ready": checkout.IsReadyToSubmit()}
		if err := checkout.ValidateForm(form); err != nil {
			resp["validation"] = err.Error()
		}
		c.JSON(http.StatusOK, resp)
	}
}

func HandleSubmitOrder(checkout *service.CheckoutService, nav *service.NavigationController, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		folio, err := checkout.Submit(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		nav.RecordSubmissionSuccess()
		logger.Info("Order confirmed", zap.String("folio", string(folio)))
		c.JSON(http.StatusOK, gin.H{
			"folio": folio,
			"view":  nav.CurrentView(),
		})
	}
}
