// Package content provides the menu repository.
package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/content"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/caching"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/persistence/database"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/security"
)

const summariesKey = "nav-menus"

// MenuRepository stores menus and their links. Menu summaries are cached and
// the cache is dropped on every write.
type MenuRepository struct {
	db        *sql.DB
	summaries *caching.Store[[]content.NavMenuSummary]
	logger    *logging.ChanneledLogger
}

func NewMenuRepository(db *sql.DB, cacheTTL time.Duration, logger *logging.ChanneledLogger) *MenuRepository {
	return &MenuRepository{
		db:        db,
		summaries: caching.NewStore[[]content.NavMenuSummary](cacheTTL),
		logger:    logger,
	}
}

func (r *MenuRepository) FindByID(ctx context.Context, id string) (*content.MenuNode, error) {
	query := `SELECT id, title, slug, created FROM menus WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Loading menu from database", "id", id)

	var menu content.MenuNode
	err := r.db.QueryRowContext(ctx, query, id).Scan(&menu.ID, &menu.Title, &menu.Slug, &menu.Created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("menu %s: %w", id, content.ErrMenuNotFound)
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan menu", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan menu: %w", err)
	}

	links, err := r.loadLinks(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	menu.Links = links[id]

	r.track(query, start)
	return &menu, nil
}

// FindAll returns every menu with its links, ordered by title.
func (r *MenuRepository) FindAll(ctx context.Context) ([]*content.MenuNode, error) {
	query := `SELECT id, title, slug, created FROM menus ORDER BY title, id`

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Database().Error("Failed to query menus", "error", err.Error())
		return nil, fmt.Errorf("failed to query menus: %w", err)
	}
	defer rows.Close()

	var menus []*content.MenuNode
	var ids []string
	for rows.Next() {
		var menu content.MenuNode
		if err := rows.Scan(&menu.ID, &menu.Title, &menu.Slug, &menu.Created); err != nil {
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		menus = append(menus, &menu)
		ids = append(ids, menu.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menus: %w", err)
	}

	links, err := r.loadLinks(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, menu := range menus {
		menu.Links = links[menu.ID]
	}

	r.track(query, start)
	return menus, nil
}

// Summaries lists every menu with its link count, ordered by title then id.
func (r *MenuRepository) Summaries(ctx context.Context) ([]content.NavMenuSummary, error) {
	if cached, ok := r.summaries.Get(summariesKey); ok {
		return cached, nil
	}

	query := `SELECT m.id, m.title, COUNT(l.id) FROM menus m LEFT JOIN menu_links l ON l.menu_id = m.id GROUP BY m.id, m.title ORDER BY m.title, m.id`

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Database().Error("Failed to query menu summaries", "error", err.Error())
		return nil, fmt.Errorf("failed to query menu summaries: %w", err)
	}
	defer rows.Close()

	summaries := []content.NavMenuSummary{}
	for rows.Next() {
		var s content.NavMenuSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.LinkCount); err != nil {
			return nil, fmt.Errorf("failed to scan menu summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menu summaries: %w", err)
	}

	r.track(query, start)
	r.summaries.Set(summariesKey, summaries)
	return summaries, nil
}

// SummaryCache exposes the nav-menu summary cache for the cleanup worker.
func (r *MenuRepository) SummaryCache() *caching.Store[[]content.NavMenuSummary] {
	return r.summaries
}

// Store inserts a menu and its links. Empty ids are generated.
func (r *MenuRepository) Store(ctx context.Context, menu *content.MenuNode) error {
	if menu.ID == "" {
		menu.ID = security.GenerateULID()
	}
	if menu.Created.IsZero() {
		menu.Created = time.Now().UTC()
	}

	query := `INSERT INTO menus (id, title, slug, created) VALUES (?, ?, ?, ?)`
	start := time.Now()
	r.logger.Database().Debug("Executing menu insert", "id", menu.ID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, query, menu.ID, menu.Title, menu.Slug, menu.Created); err != nil {
		r.logger.Database().Error("Menu insert failed", "error", err.Error(), "id", menu.ID)
		return fmt.Errorf("failed to insert menu: %w", err)
	}
	for _, link := range menu.Links {
		link.MenuID = menu.ID
		if err := insertLink(ctx, tx, link); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit menu insert: %w", err)
	}

	r.logger.Database().Info("Menu insert completed", "id", menu.ID, "links", len(menu.Links), "duration", time.Since(start))
	r.track(query, start)
	r.summaries.Flush()
	return nil
}

// AddLink appends a link to an existing menu.
func (r *MenuRepository) AddLink(ctx context.Context, link *content.MenuLink) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM menus WHERE id = ?)`, link.MenuID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check menu: %w", err)
	}
	if !exists {
		return fmt.Errorf("menu %s: %w", link.MenuID, content.ErrMenuNotFound)
	}

	start := time.Now()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertLink(ctx, tx, link); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit link insert: %w", err)
	}

	r.logger.Database().Info("Menu link added", "menuId", link.MenuID, "id", link.ID, "duration", time.Since(start))
	r.summaries.Flush()
	return nil
}

// Delete removes a menu and its links.
func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	start := time.Now()
	r.logger.Database().Debug("Executing menu delete", "id", id)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM menu_links WHERE menu_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete menu links: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM menus WHERE id = ?`, id)
	if err != nil {
		r.logger.Database().Error("Menu delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete menu: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("menu %s: %w", id, content.ErrMenuNotFound)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit menu delete: %w", err)
	}

	r.logger.Database().Info("Menu delete completed", "id", id, "duration", time.Since(start))
	r.summaries.Flush()
	return nil
}

func insertLink(ctx context.Context, tx *sql.Tx, link *content.MenuLink) error {
	if link.ID == "" {
		link.ID = security.GenerateULID()
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO menu_links (id, menu_id, name, url, description, weight) VALUES (?, ?, ?, ?, ?, ?)`,
		link.ID, link.MenuID, link.Name, link.URL, link.Description, link.Weight)
	if err != nil {
		return fmt.Errorf("failed to insert menu link: %w", err)
	}
	return nil
}

func (r *MenuRepository) loadLinks(ctx context.Context, menuIDs []string) (map[string][]*content.MenuLink, error) {
	links := make(map[string][]*content.MenuLink)
	if len(menuIDs) == 0 {
		return links, nil
	}

	placeholders := make([]string, len(menuIDs))
	args := make([]any, len(menuIDs))
	for i, id := range menuIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	query := `SELECT id, menu_id, name, url, description, weight
              FROM menu_links WHERE menu_id IN (` + strings.Join(placeholders, ",") + `)
              ORDER BY weight, name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Database().Error("Failed to query menu links", "error", err.Error(), "count", len(menuIDs))
		return nil, fmt.Errorf("failed to query menu links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var link content.MenuLink
		if err := rows.Scan(&link.ID, &link.MenuID, &link.Name, &link.URL, &link.Description, &link.Weight); err != nil {
			return nil, fmt.Errorf("failed to scan menu link: %w", err)
		}
		links[link.MenuID] = append(links[link.MenuID], &link)
	}
	return links, rows.Err()
}

func (r *MenuRepository) track(query string, start time.Time) {
	database.CheckAndLogSlowQuery(r.logger, query, time.Since(start))
}
