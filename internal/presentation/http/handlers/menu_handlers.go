package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/AtRiskMedia/monster-widget/internal/application/services"
	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/content"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// MenuHandlers contains all menu-related HTTP handlers
type MenuHandlers struct {
	menuService *services.MenuService
	logger      *logging.ChanneledLogger
}

// NewMenuHandlers creates menu handlers with injected dependencies
func NewMenuHandlers(menuService *services.MenuService, logger *logging.ChanneledLogger) *MenuHandlers {
	return &MenuHandlers{
		menuService: menuService,
		logger:      logger,
	}
}

// GetAllMenus returns every menu with its links.
func (h *MenuHandlers) GetAllMenus(c *gin.Context) {
	start := time.Now()
	h.logger.Menus().Debug("Received get all menus request", "method", c.Request.Method, "path", c.Request.URL.Path)

	menus, err := h.menuService.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Menus().Info("Get all menus request completed", "count", len(menus), "duration", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"menus": menus,
		"count": len(menus),
	})
}

// GetMenuByID returns a specific menu by ID.
func (h *MenuHandlers) GetMenuByID(c *gin.Context) {
	menu, err := h.menuService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(menuErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, menu)
}

// CreateMenu creates a menu with optional initial links.
func (h *MenuHandlers) CreateMenu(c *gin.Context) {
	start := time.Now()

	var req services.CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	menu, err := h.menuService.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(menuErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	h.logger.Menus().Info("Create menu request completed", "id", menu.ID, "links", len(menu.Links), "duration", time.Since(start))
	c.JSON(http.StatusCreated, menu)
}

// AddLink appends a link to a menu.
func (h *MenuHandlers) AddLink(c *gin.Context) {
	var req services.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	link, err := h.menuService.AddLink(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(menuErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, link)
}

// DeleteMenu removes a menu and its links.
func (h *MenuHandlers) DeleteMenu(c *gin.Context) {
	id := c.Param("id")
	if err := h.menuService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(menuErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func menuErrorStatus(err error) int {
	switch {
	case errors.Is(err, content.ErrMenuNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
