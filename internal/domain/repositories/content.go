// Package repositories defines the repository interfaces for content entities.
// These repositories abstract the data persistence details, ensuring the core
// application is clean and decoupled from the database.
package repositories

import (
	"context"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/content"
)

type MenuRepository interface {
	FindByID(ctx context.Context, id string) (*content.MenuNode, error)
	FindAll(ctx context.Context) ([]*content.MenuNode, error)
	Summaries(ctx context.Context) ([]content.NavMenuSummary, error)
	Store(ctx context.Context, menu *content.MenuNode) error
	AddLink(ctx context.Context, link *content.MenuLink) error
	Delete(ctx context.Context, id string) error
}
