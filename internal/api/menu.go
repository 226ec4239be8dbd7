package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/menucraft/backend/internal/middleware"
	"github.com/menucraft/backend/internal/service"
	"github.com/menucraft/backend/internal/types"
)

// MenuHandler is the HTTP boundary over the menu service. Menus are
// addressed by name, scoped to the authenticated owner.
type MenuHandler struct {
	menuService *service.MenuService
	authService *service.AuthService
	logoStorage service.LogoStorage
	saveLimiter *middleware.RateLimiter
}

func NewMenuHandler(menuService *service.MenuService, authService *service.AuthService, logoStorage service.LogoStorage, saveLimiter *middleware.RateLimiter) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
		authService: authService,
		logoStorage: logoStorage,
		saveLimiter: saveLimiter,
	}
}

func (h *MenuHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/public/menus/:name", h.GetPublicMenu)

	menus := router.Group("/menus")
	menus.Use(middleware.AuthMiddleware(h.authService))
	{
		menus.GET("", h.ListMenus)
		menus.GET("/:name", h.GetMenu)
		menus.POST("", h.saveLimiter.Middleware(), h.CreateMenu)
		menus.PUT("/:name", h.saveLimiter.Middleware(), h.UpdateMenu)
		menus.DELETE("/:name", h.DeleteMenu)
		menus.POST("/:name/duplicate", h.DuplicateMenu)
		menus.POST("/:name/logo", h.UploadLogo)
	}
}

func (h *MenuHandler) ListMenus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summaries, err := h.menuService.ListMenus(c.Request.Context(), userID)
	if err != nil {
		log.WithError(err).Error("Failed to list menus")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menus"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"menus": summaries})
}

func (h *MenuHandler) GetMenu(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	doc, err := h.menuService.GetMenu(c.Request.Context(), userID, c.Param("name"))
	if err != nil {
		h.renderMenuError(c, err, "Failed to fetch menu")
		return
	}

	c.JSON(http.StatusOK, doc)
}

// GetPublicMenu serves the published view of a menu without authentication.
func (h *MenuHandler) GetPublicMenu(c *gin.Context) {
	doc, err := h.menuService.GetMenuByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.renderMenuError(c, err, "Failed to fetch menu")
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *MenuHandler) CreateMenu(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	doc, err := h.menuService.CreateMenu(c.Request.Context(), userID, &req)
	if err != nil {
		h.renderMenuError(c, err, "Failed to create menu")
		return
	}

	c.JSON(http.StatusCreated, doc)
}

func (h *MenuHandler) UpdateMenu(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	doc, err := h.menuService.UpdateMenu(c.Request.Context(), userID, c.Param("name"), &req)
	if err != nil {
		h.renderMenuError(c, err, "Failed to update menu")
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *MenuHandler) DeleteMenu(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	name := c.Param("name")
	if err := h.menuService.DeleteMenu(c.Request.Context(), userID, name); err != nil {
		h.renderMenuError(c, err, "Failed to delete menu")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Menu deleted successfully", "name": name})
}

func (h *MenuHandler) DuplicateMenu(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.DuplicateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	doc, err := h.menuService.DuplicateMenu(c.Request.Context(), userID, c.Param("name"), req.NewName)
	if err != nil {
		h.renderMenuError(c, err, "Failed to duplicate menu")
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// UploadLogo stores an uploaded logo and points the menu's logo_path at it.
func (h *MenuHandler) UploadLogo(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if h.logoStorage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "logo storage not configured"})
		return
	}

	// Resolve ownership before touching storage, so a stranger probing
	// another user's menu name never lands a file.
	name := c.Param("name")
	if _, err := h.menuService.GetMenu(c.Request.Context(), userID, name); err != nil {
		h.renderMenuError(c, err, "Failed to fetch menu")
		return
	}

	file, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing logo file"})
		return
	}

	src, err := file.Open()
	if err != nil {
		log.WithError(err).Error("Failed to open uploaded logo")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store logo"})
		return
	}
	defer src.Close()

	path, err := h.logoStorage.Store(c.Request.Context(), name, file.Filename, src)
	if err != nil {
		log.WithError(err).Error("Failed to store logo")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store logo"})
		return
	}

	doc, err := h.menuService.UpdateMenu(c.Request.Context(), userID, name, &types.UpdateMenuRequest{LogoPath: &path})
	if err != nil {
		h.renderMenuError(c, err, "Failed to update menu")
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo_path": doc.LogoPath})
}

// renderMenuError maps service errors onto status codes. Ownership
// mismatches surface as 404, indistinguishable from a missing menu.
func (h *MenuHandler) renderMenuError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrMenuNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
	case errors.Is(err, service.ErrMenuExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Menu name already in use"})
	default:
		log.WithError(err).Error(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	return id, true
}
