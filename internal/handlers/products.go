package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"inventory_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response messages to avoid magic strings and typos.
const (
	errSignIn       = "failed to sign in"
	errSignOut      = "failed to sign out"
	errListProducts = "failed to load products"
	errGetProduct   = "failed to load product"
	errAddProduct   = "failed to add product"
	errEditProduct  = "failed to update product"
	errDropProduct  = "failed to delete product"
	errGetStats     = "failed to load statistics"

	errInvalidID = "invalid product id"
)

// ProductRequest is the exported payload model for Swagger docs.
// Price and quantity are strings so an unparseable value surfaces as a
// field violation instead of a JSON type error.
type ProductRequest struct {
	// Product name, required, surrounding whitespace ignored
	ProductName string `json:"product_name" example:"Aspirin"`
	// Category, required
	Category string `json:"category" example:"Pharmacy"`
	// Price, non-negative decimal
	Price string `json:"price" example:"4.50"`
	// Quantity, non-negative integer
	Quantity string `json:"quantity" example:"5"`
}

// Centralized error logging and response. Raw error text is logged,
// never echoed to clients.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondServiceError maps the service error taxonomy onto HTTP codes.
func (h *Handler) respondServiceError(c *gin.Context, err error, storageMsg, logKey string, kv ...interface{}) {
	if ve, ok := service.IsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": ve.Violations})
		return
	}
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, storageMsg, logKey, err, kv...)
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return 0, false
	}
	return id, true
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      List products
// @Description  All products, newest first, each flagged when quantity is below the low-stock threshold.
// @Tags         products
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, threshold, products"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/products [get]
// @Security     BearerAuth
func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.services.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListProducts, "products_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(products),
		"threshold": h.services.Threshold(),
		"products":  products,
	})
}

// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "Product ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/products/{id} [get]
// @Security     BearerAuth
func (h *Handler) getProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	p, err := h.services.Get(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, err, errGetProduct, "product_get_failed", "id", id)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Add product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  ProductRequest  true  "Product payload"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}  "errors: all violated rules"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/products [post]
// @Security     BearerAuth
func (h *Handler) addProduct(c *gin.Context) {
	var input service.ProductInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	p, err := h.services.Add(c.Request.Context(), input)
	if err != nil {
		h.respondServiceError(c, err, errAddProduct, "product_add_failed")
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary      Update product
// @Description  Replaces all mutable fields of the product.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  int             true  "Product ID"
// @Param        body  body  ProductRequest  true  "Product payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/products/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input service.ProductInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	p, err := h.services.Update(c.Request.Context(), id, input)
	if err != nil {
		h.respondServiceError(c, err, errEditProduct, "product_update_failed", "id", id)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Delete product
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "Product ID"
// @Success      200  {object}  map[string]string  "status, product_name"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/products/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	name, err := h.services.Delete(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, err, errDropProduct, "product_delete_failed", "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "product_name": name})
}

// @Summary      Inventory statistics
// @Description  Totals over all products: count, summed stock, low-stock count.
// @Tags         stats
// @Produce      json
// @Success      200  {object}  map[string]int
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/stats [get]
// @Security     BearerAuth
func (h *Handler) getStats(c *gin.Context) {
	stats, err := h.services.Stats(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetStats, "stats_failed", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
