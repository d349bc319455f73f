package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Eloy96/impresiones-prueba/internal/domain"
	"github.com/Eloy96/impresiones-prueba/internal/service"
)

// SetOptionRequest is one field edit on the draft configuration
type SetOptionRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// UploadFileRequest carries a document as the collaborator expects it
type UploadFileRequest struct {
	FileName   string `json:"fileName" binding:"required"`
	FileType   string `json:"fileType"`
	FileBase64 string `json:"fileBase64" binding:"required"`
}

func HandleGetDraft(cfgSvc *service.ConfigurationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stale, priceErr := cfgSvc.PriceStatus()
		c.JSON(http.StatusOK, service.NewDraftView(cfgSvc.Draft(), stale, priceErr))
	}
}

func HandleSetOption(cfgSvc *service.ConfigurationService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetOptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := cfgSvc.SetOption(req.Field, req.Value); err != nil {
			respondError(c, err)
			return
		}

		// The recompute is scheduled, not awaited; the draft view marks
		// the price stale until the coalesced rounds converge
		stale, priceErr := cfgSvc.PriceStatus()
		c.JSON(http.StatusOK, service.NewDraftView(cfgSvc.Draft(), stale, priceErr))
	}
}

func HandleUploadFile(cfgSvc *service.ConfigurationService, nav *service.NavigationController, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UploadFileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		data, err := base64.StdEncoding.DecodeString(req.FileBase64)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": "fileBase64 is not valid base64",
			})
			return
		}

		handle, err := cfgSvc.UploadFile(c.Request.Context(), domain.FileUpload{
			Name: req.FileName,
			Type: req.FileType,
			Data: data,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		// A stored document unlocks the preview step
		if err := nav.EnterStep(domain.StepPreview); err != nil {
			logger.Warn("Could not advance to preview step", zap.Error(err))
		}

		c.JSON(http.StatusOK, gin.H{
			"fileId":   handle.FileID,
			"fileName": handle.FileName,
		})
	}
}

func HandleResetConfiguration(cfgSvc *service.ConfigurationService, nav *service.NavigationController) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfgSvc.Reset()
		nav.ResetSteps()
		c.JSON(http.StatusOK, service.NewDraftView(cfgSvc.Draft(), false, nil))
	}
}

// HandleNewSession leaves the confirmation view and starts over
func HandleNewSession(cfgSvc *service.ConfigurationService, checkout *service.CheckoutService, nav *service.NavigationController) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfgSvc.Reset()
		checkout.Reset()
		nav.StartNewSession()
		c.JSON(http.StatusOK, gin.H{"view": nav.CurrentView()})
	}
}
