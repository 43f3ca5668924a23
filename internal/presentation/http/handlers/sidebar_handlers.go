package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/AtRiskMedia/monster-widget/internal/application/services"
	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/content"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/monster-widget/internal/presentation/templates"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// SidebarHandlers renders sidebars as preview pages, fragments and live
// websocket streams.
type SidebarHandlers struct {
	sidebarService *services.SidebarService
	hub            *messaging.PreviewHub
	upgrader       websocket.Upgrader
	logger         *logging.ChanneledLogger
}

// NewSidebarHandlers builds the handlers. Websocket upgrades are accepted from
// the request's own host and from allowedOrigins.
func NewSidebarHandlers(sidebarService *services.SidebarService, hub *messaging.PreviewHub, allowedOrigins []string, logger *logging.ChanneledLogger) *SidebarHandlers {
	h := &SidebarHandlers{
		sidebarService: sidebarService,
		hub:            hub,
		logger:         logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			if u, err := url.Parse(origin); err == nil && u.Host == r.Host {
				return true
			}
			return slices.Contains(allowedOrigins, origin)
		},
	}
	return h
}

// Index redirects to the first registered sidebar.
func (h *SidebarHandlers) Index(c *gin.Context) {
	list := h.sidebarService.List()
	if len(list) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no sidebars registered"})
		return
	}
	c.Redirect(http.StatusFound, "/sidebars/"+url.PathEscape(list[0].ID))
}

// ListSidebars returns the registered sidebars.
func (h *SidebarHandlers) ListSidebars(c *gin.Context) {
	list := h.sidebarService.List()
	c.JSON(http.StatusOK, gin.H{"sidebars": list, "count": len(list)})
}

// Page renders the full preview page for a sidebar.
func (h *SidebarHandlers) Page(c *gin.Context) {
	start := time.Now()
	id := c.Param("id")

	fragment, err := h.sidebarService.RenderSidebarHTML(c.Request.Context(), id)
	status := http.StatusOK
	data := templates.PageData{
		SidebarID: id,
		Fragment:  template.HTML(fragment),
		Live:      err == nil,
	}
	if err != nil {
		status = sidebarErrorStatus(err)
		data.Error = err.Error()
	}

	for _, sb := range h.sidebarService.List() {
		data.Sidebars = append(data.Sidebars, templates.SidebarLink{ID: sb.ID, Name: sb.Name, Active: sb.ID == id})
	}

	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := templates.RenderPage(c.Writer, data); err != nil {
		h.logger.HTTP().Error("Failed to render preview page", "sidebarId", id, "error", err)
		return
	}
	h.logger.Render().Info("Preview page rendered", "sidebarId", id, "status", status, "duration", time.Since(start))
}

// Fragment returns the bare sidebar HTML.
func (h *SidebarHandlers) Fragment(c *gin.Context) {
	id := c.Param("id")

	fragment, err := h.sidebarService.RenderSidebarHTML(c.Request.Context(), id)
	if err != nil {
		c.JSON(sidebarErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fragment))
}

// Live upgrades to a websocket that receives the sidebar's HTML every time
// it is re-rendered.
func (h *SidebarHandlers) Live(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.findSidebar(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "sidebar not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.HTTP().Warn("Websocket upgrade failed", "sidebarId", id, "error", err)
		return
	}
	h.hub.Serve(c.Request.Context(), conn, id)
}

func (h *SidebarHandlers) findSidebar(id string) (*content.Sidebar, bool) {
	for _, sb := range h.sidebarService.List() {
		if sb.ID == id {
			return sb, true
		}
	}
	return nil, false
}

func sidebarErrorStatus(err error) int {
	if errors.Is(err, content.ErrSidebarNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
