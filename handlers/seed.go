package handlers

import (
	"log/slog"
	"net/http"

	"pho-paradise-api/cache"
	"pho-paradise-api/models"
	"pho-paradise-api/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// seedMenu is the starter catalog loaded into an empty database.
var seedMenu = []models.MenuItem{
	{Name: "Gỏi Cuốn", Description: "Fresh spring rolls with shrimp, pork, vermicelli, and herbs", Price: 6.99, Category: "Appetizers", Image: "🥢", Rating: 4.8, PrepTime: "5-10 min"},
	{Name: "Chả Giò", Description: "Crispy egg rolls filled with pork, shrimp, and vegetables", Price: 7.99, Category: "Appetizers", Image: "🥟", Rating: 4.7, PrepTime: "10-12 min"},
	{Name: "Cánh Gà Chiên", Description: "Vietnamese-style crispy chicken wings with fish sauce", Price: 8.99, Category: "Appetizers", Image: "🍗", Rating: 4.6, PrepTime: "12-15 min"},
	{Name: "Phở Tái", Description: "Rare beef pho with rice noodles in aromatic beef broth", Price: 12.99, Category: "Pho", Image: "🍜", Rating: 4.9, PrepTime: "15-20 min"},
	{Name: "Phở Gà", Description: "Chicken pho with tender chicken breast and rice noodles", Price: 11.99, Category: "Pho", Image: "🍲", Rating: 4.8, PrepTime: "15-20 min"},
	{Name: "Phở Đặc Biệt", Description: "Special combo pho with rare beef, brisket, tendon, and tripe", Price: 14.99, Category: "Pho", Image: "🥘", Rating: 4.9, PrepTime: "15-20 min"},
	{Name: "Bún Thịt Nướng", Description: "Grilled pork over vermicelli with fresh herbs and fish sauce", Price: 12.99, Category: "Bun", Image: "🍝", Rating: 4.7, PrepTime: "15-18 min"},
	{Name: "Bún Chả Giò", Description: "Vermicelli bowl with crispy egg rolls and vegetables", Price: 11.99, Category: "Bun", Image: "🥗", Rating: 4.6, PrepTime: "12-15 min"},
	{Name: "Cơm Tấm", Description: "Broken rice with grilled pork chop, egg, and pickled vegetables", Price: 13.99, Category: "Rice", Image: "🍚", Rating: 4.7, PrepTime: "15-18 min"},
	{Name: "Bánh Mì Thịt", Description: "Vietnamese baguette with grilled pork, pâté, and pickled daikon", Price: 9.99, Category: "Banh Mi", Image: "🥖", Rating: 4.8, PrepTime: "8-10 min"},
	{Name: "Cà Phê Sữa Đá", Description: "Vietnamese iced coffee with sweetened condensed milk", Price: 4.99, Category: "Drinks", Image: "☕", Rating: 4.9, PrepTime: "3-5 min"},
	{Name: "Chè Ba Màu", Description: "Three-color dessert with beans, jelly, and coconut milk", Price: 5.99, Category: "Desserts", Image: "🍧", Rating: 4.5, PrepTime: "5 min"},
}

type SeedHandler struct {
	menu   store.MenuStore
	cache  *cache.MenuCache // nil when Redis is not configured
	logger *slog.Logger
}

func NewSeedHandler(menu store.MenuStore, menuCache *cache.MenuCache, logger *slog.Logger) *SeedHandler {
	return &SeedHandler{menu: menu, cache: menuCache, logger: logger.With("component", "seed_handler")}
}

// Seed loads the starter menu (admin only). A non-empty catalog is left
// untouched so the endpoint is safe to call repeatedly.
func (h *SeedHandler) Seed(c *gin.Context) {
	count, err := h.menu.Count(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to count menu items", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed menu"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Menu already seeded", "count": count})
		return
	}

	for _, item := range seedMenu {
		item.ID = uuid.NewString()
		if err := h.menu.Create(c.Request.Context(), &item); err != nil {
			h.logger.Error("failed to seed menu item", "name", item.Name, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed menu"})
			return
		}
	}
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context())
	}
	h.logger.Info("menu seeded", "count", len(seedMenu))
	c.JSON(http.StatusCreated, gin.H{"message": "Menu seeded", "seeded": len(seedMenu)})
}
