// Package services provides application-level services that orchestrate
// business logic and coordinate between repositories and domain entities.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/content"
	"github.com/AtRiskMedia/monster-widget/internal/domain/repositories"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/logging"
)

// ErrValidation marks a request rejected before reaching storage.
var ErrValidation = errors.New("validation failed")

// CreateMenuRequest defines the structure for creating a new menu.
type CreateMenuRequest struct {
	Title string              `json:"title" binding:"required"`
	Slug  string              `json:"slug"`
	Links []CreateLinkRequest `json:"links"`
}

// CreateLinkRequest defines one link to append to a menu.
type CreateLinkRequest struct {
	Name        string `json:"name" binding:"required"`
	URL         string `json:"url" binding:"required"`
	Description string `json:"description"`
	Weight      *int   `json:"weight"`
}

// MenuService orchestrates menu operations and notifies listeners on change.
type MenuService struct {
	menuRepo repositories.MenuRepository
	logger   *logging.ChanneledLogger

	mu        sync.RWMutex
	listeners []func()
}

// NewMenuService creates a new menu application service
func NewMenuService(menuRepo repositories.MenuRepository, logger *logging.ChanneledLogger) *MenuService {
	return &MenuService{
		menuRepo: menuRepo,
		logger:   logger,
	}
}

// OnChange registers fn to run after every successful write.
func (s *MenuService) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// NavMenus lists menus with link counts, ordered by title.
func (s *MenuService) NavMenus(ctx context.Context) ([]content.NavMenuSummary, error) {
	summaries, err := s.menuRepo.Summaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list nav menus: %w", err)
	}
	return summaries, nil
}

// GetAll returns every menu with its links.
func (s *MenuService) GetAll(ctx context.Context) ([]*content.MenuNode, error) {
	menus, err := s.menuRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all menus: %w", err)
	}
	return menus, nil
}

// GetByID returns a menu by ID.
func (s *MenuService) GetByID(ctx context.Context, id string) (*content.MenuNode, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: menu ID cannot be empty", ErrValidation)
	}

	menu, err := s.menuRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu %s: %w", id, err)
	}
	return menu, nil
}

// Create validates and stores a new menu.
func (s *MenuService) Create(ctx context.Context, req CreateMenuRequest) (*content.MenuNode, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: menu title is required", ErrValidation)
	}
	slug := Slugify(req.Slug)
	if slug == "" {
		slug = Slugify(title)
	}

	menu := &content.MenuNode{Title: title, Slug: slug, Created: time.Now().UTC()}
	for i, lr := range req.Links {
		link, err := buildLink(lr, i)
		if err != nil {
			return nil, err
		}
		menu.Links = append(menu.Links, link)
	}

	if err := s.menuRepo.Store(ctx, menu); err != nil {
		return nil, fmt.Errorf("failed to create menu: %w", err)
	}

	s.logger.Menus().Info("Menu created", "id", menu.ID, "slug", menu.Slug, "links", len(menu.Links))
	s.notify()
	return menu, nil
}

// AddLink appends a link to an existing menu. Without an explicit weight the
// link goes after the existing ones.
func (s *MenuService) AddLink(ctx context.Context, menuID string, req CreateLinkRequest) (*content.MenuLink, error) {
	menu, err := s.GetByID(ctx, menuID)
	if err != nil {
		return nil, err
	}

	link, err := buildLink(req, len(menu.Links))
	if err != nil {
		return nil, err
	}
	link.MenuID = menu.ID

	if err := s.menuRepo.AddLink(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to add link to menu %s: %w", menuID, err)
	}

	s.logger.Menus().Info("Menu link added", "menuId", menuID, "id", link.ID)
	s.notify()
	return link, nil
}

// Delete removes a menu and its links.
func (s *MenuService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: menu ID cannot be empty", ErrValidation)
	}
	if err := s.menuRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete menu %s: %w", id, err)
	}

	s.logger.Menus().Info("Menu deleted", "id", id)
	s.notify()
	return nil
}

func (s *MenuService) notify() {
	s.mu.RLock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}

func buildLink(req CreateLinkRequest, defaultWeight int) (*content.MenuLink, error) {
	name := strings.TrimSpace(req.Name)
	url := strings.TrimSpace(req.URL)
	if name == "" || url == "" {
		return nil, fmt.Errorf("%w: link name and url are required", ErrValidation)
	}

	weight := defaultWeight
	if req.Weight != nil {
		weight = *req.Weight
	}
	return &content.MenuLink{
		Name:        name,
		URL:         url,
		Description: strings.TrimSpace(req.Description),
		Weight:      weight,
	}, nil
}

// Slugify lowercases s and joins its alphanumeric runs with hyphens.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
