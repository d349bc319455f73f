package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Eloy96/impresiones-prueba/internal/cart"
	"github.com/Eloy96/impresiones-prueba/internal/domain"
	"github.com/Eloy96/impresiones-prueba/internal/service"
)

func HandleListCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := store.Items()
		c.JSON(http.StatusOK, gin.H{
			"items":    items,
			"count":    len(items),
			"subtotal": store.Subtotal(),
		})
	}
}

// HandleAddToCart commits the current draft: as a new item, or as an
// edit replacement when an edit target is active. Either way the
// session is reset for the next configuration afterwards.
func HandleAddToCart(cfgSvc *service.ConfigurationService, store *cart.Store, nav *service.NavigationController, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		editID, editing := store.EditingID()

		draft, err := cfgSvc.CartDraft(editing)
		if err != nil {
			respondError(c, err)
			return
		}

		var item domain.CartItem
		if editing {
			item, err = store.CommitEdit(editID, draft)
		} else {
			item, err = store.Add(draft)
		}
		if err != nil {
			respondError(c, err)
			return
		}

		cfgSvc.Reset()
		nav.ResetSteps()
		if editing {
			// An edit commit returns the user to the cart
			if navErr := nav.NavigateTo(domain.ViewCheckout); navErr != nil {
				logger.Warn("Could not navigate back to checkout", zap.Error(navErr))
			}
		}

		logger.Info("Cart updated",
			zap.String("item_id", item.ID.String()),
			zap.Bool("edit", editing),
			zap.Int("cart_size", store.Len()),
		)
		c.JSON(http.StatusOK, gin.H{
			"item":  item,
			"count": store.Len(),
		})
	}
}

// HandleEditCartItem seeds the configuration session from an existing
// item and enters the options step directly, bypassing upload
func HandleEditCartItem(cfgSvc *service.ConfigurationService, store *cart.Store, nav *service.NavigationController, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid item id"})
			return
		}

		seed, err := store.SeedForEdit(id)
		if err != nil {
			respondError(c, err)
			return
		}

		cfgSvc.Seed(seed)
		nav.BeginEdit()

		logger.Info("Editing cart item", zap.String("item_id", id.String()))
		c.JSON(http.StatusOK, service.NewDraftView(seed, false, nil))
	}
}

func HandleRemoveCartItem(store *cart.Store, nav *service.NavigationController, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid item id"})
			return
		}

		emptied, err := store.Remove(id)
		if err != nil {
			respondError(c, err)
			return
		}

		if emptied {
			// An emptied cart leaves the checkout view
			if navErr := nav.NavigateTo(domain.ViewHome); navErr != nil {
				logger.Warn("Could not navigate home after emptying cart", zap.Error(navErr))
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"count":   store.Len(),
			"emptied": emptied,
		})
	}
}
