package http

import (
	"errors"
	"net/http"

	"github.com/dishcart/backend/internal/domain"
	"github.com/dishcart/backend/internal/usecase"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	resolutions *usecase.ResolutionService
	carts       *usecase.CartService
	logger      *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(resolutions *usecase.ResolutionService, carts *usecase.CartService, logger *zap.Logger) *Handler {
	return &Handler{
		resolutions: resolutions,
		carts:       carts,
		logger:      logger,
	}
}

// errorBody is the serialized error shape: {status, message, detail?}
type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "dishcart-backend",
		"version": "1.0.0",
	})
}

// CartOptions resolves a recipe's ingredients into selectable retailer
// products for the requester. POST /api/grocery/cart-options
func (h *Handler) CartOptions(c *gin.Context) {
	recipeID := c.Query("recipe_id")
	requesterID := c.Query("requester_id")
	if recipeID == "" || requesterID == "" {
		c.JSON(http.StatusBadRequest, errorBody{
			Status:  "invalid_request",
			Message: "recipe_id and requester_id are required",
		})
		return
	}

	record, err := h.resolutions.Resolve(c.Request.Context(), recipeID, requesterID)
	if err != nil {
		h.renderResolutionError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// renderResolutionError maps pipeline errors to HTTP responses. The
// no-products sentinel is a 200 with a status body: the pipeline ran and
// found nothing, which is not a failure.
func (h *Handler) renderResolutionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNoProductsFound):
		c.JSON(http.StatusOK, gin.H{
			"status":  "no_products_found",
			"message": "no purchasable products were found for this recipe",
		})
	case errors.Is(err, domain.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, errorBody{
			Status:  "not_found",
			Message: "recipe not found",
		})
	case errors.Is(err, domain.ErrRetailerUnavailable):
		// Generic message only; nothing about credentials leaves the process
		c.JSON(http.StatusBadGateway, errorBody{
			Status:  "retailer_unavailable",
			Message: "product search is temporarily unavailable",
		})
	case errors.Is(err, domain.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, errorBody{
			Status:  "storage_unavailable",
			Message: "storage is temporarily unavailable",
		})
	default:
		h.logger.Error("resolution failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody{
			Status:  "internal_error",
			Message: "internal server error",
		})
	}
}

// customCartRequest is the POST /api/grocery/custom-cart body
type customCartRequest struct {
	RequesterID string                   `json:"requester_id" binding:"required"`
	RecipeID    string                   `json:"recipe_id" binding:"required"`
	Products    []domain.SelectedProduct `json:"products"`
}

// CustomCart composes an affiliate deep-link cart from the caller's product
// selection. POST /api/grocery/custom-cart
func (h *Handler) CustomCart(c *gin.Context) {
	var req customCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{
			Status:  "invalid_request",
			Message: "request body is invalid",
			Detail:  err.Error(),
		})
		return
	}

	selection := domain.CartSelection{
		RecipeID:    req.RecipeID,
		RequesterID: req.RequesterID,
		Products:    req.Products,
	}

	link, err := h.carts.Compose(c.Request.Context(), selection)
	if err != nil {
		h.renderCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}

// renderCartError maps composition errors to HTTP responses
func (h *Handler) renderCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidSelection):
		c.JSON(http.StatusBadRequest, errorBody{
			Status:  "invalid_selection",
			Message: "selection failed validation",
			Detail:  err.Error(),
		})
	case errors.Is(err, domain.ErrPriceOverflow):
		c.JSON(http.StatusBadRequest, errorBody{
			Status:  "price_overflow",
			Message: "cart total exceeds the allowed maximum",
		})
	case errors.Is(err, domain.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, errorBody{
			Status:  "storage_unavailable",
			Message: "storage is temporarily unavailable",
		})
	default:
		h.logger.Error("cart composition failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody{
			Status:  "internal_error",
			Message: "internal server error",
		})
	}
}
