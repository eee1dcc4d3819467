package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"pho-paradise-api/cache"
	"pho-paradise-api/models"
	"pho-paradise-api/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MenuHandler struct {
	menu   store.MenuStore
	cache  *cache.MenuCache // nil when Redis is not configured
	logger *slog.Logger
}

func NewMenuHandler(menu store.MenuStore, menuCache *cache.MenuCache, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{menu: menu, cache: menuCache, logger: logger.With("component", "menu_handler")}
}

// ListMenu returns the catalog, optionally filtered by category. The
// unfiltered list is served from the cache when one is wired.
func (h *MenuHandler) ListMenu(c *gin.Context) {
	category := c.Query("category")

	if category == "" && h.cache != nil {
		if items, ok := h.cache.Get(c.Request.Context()); ok {
			c.JSON(http.StatusOK, gin.H{"count": len(items), "menu": items})
			return
		}
	}

	items, err := h.menu.Find(c.Request.Context(), category)
	if err != nil {
		h.logger.Error("failed to list menu", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu items"})
		return
	}
	if category == "" && h.cache != nil {
		h.cache.Set(c.Request.Context(), items)
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "menu": items})
}

type CreateMenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required,min=0"`
	Category    string  `json:"category" binding:"required"`
	Image       string  `json:"image" binding:"required"`
	Rating      float64 `json:"rating" binding:"omitempty,min=0,max=5"`
	PrepTime    string  `json:"prep_time"`
}

// CreateMenuItem adds a catalog entry (admin only).
func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatBindingError(err)})
		return
	}
	if req.Rating == 0 {
		req.Rating = 4.5
	}

	item := models.MenuItem{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Rating:      req.Rating,
		PrepTime:    req.PrepTime,
	}
	if err := h.menu.Create(c.Request.Context(), &item); err != nil {
		h.logger.Error("failed to create menu item", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context())
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item created", "item": item})
}

// DeleteMenuItem removes a catalog entry (admin only).
func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	id := c.Param("id")
	if err := h.menu.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		h.logger.Error("failed to delete menu item", "item_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted", "item_id": id})
}
