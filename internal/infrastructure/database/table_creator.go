// Package database creates the menu schema and seeds sample menus.
package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/security"
)

// TableCreator builds and seeds the content schema.
type TableCreator struct{}

func NewTableCreator() *TableCreator {
	return &TableCreator{}
}

// CreateSchema creates every table and index. It is safe to run repeatedly.
func (tc *TableCreator) CreateSchema(db *sql.DB) error {
	for _, tableSQL := range tables {
		if _, err := db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index for query [%s]: %w", indexSQL, err)
		}
	}
	return nil
}

type seedLink struct {
	name, url, description string
}

var seedMenus = []struct {
	title, slug string
	links       []seedLink
}{
	{"Primary", "primary", []seedLink{
		{"Home", "/", "Front page"},
		{"About", "/about/", ""},
		{"Blog", "/blog/", "Latest posts"},
		{"Level 1", "/level-1/", ""},
		{"Contact", "/contact/", ""},
	}},
	{"Footer", "footer", []seedLink{
		{"Privacy", "/privacy/", ""},
		{"Feed", "/feed/", "Entries feed"},
	}},
	{"Empty Menu", "empty-menu", nil},
}

// SeedInitialContent inserts the sample menus unless a menu with the same
// slug already exists.
func (tc *TableCreator) SeedInitialContent(db *sql.DB) error {
	for _, menu := range seedMenus {
		var exists bool
		err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM menus WHERE slug = ?)", menu.slug).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check for menu %s: %w", menu.slug, err)
		}
		if exists {
			continue
		}

		menuID := security.GenerateULID()
		_, err = db.Exec(`INSERT INTO menus (id, title, slug, created) VALUES (?, ?, ?, ?)`,
			menuID, menu.title, menu.slug, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to insert menu %s: %w", menu.slug, err)
		}

		for weight, link := range menu.links {
			_, err = db.Exec(`INSERT INTO menu_links (id, menu_id, name, url, description, weight) VALUES (?, ?, ?, ?, ?, ?)`,
				security.GenerateULID(), menuID, link.name, link.url, link.description, weight)
			if err != nil {
				return fmt.Errorf("failed to insert link %s: %w", link.name, err)
			}
		}
	}
	return nil
}

var tables = []string{
	`CREATE TABLE IF NOT EXISTS menus (id TEXT PRIMARY KEY, title TEXT NOT NULL, slug TEXT NOT NULL UNIQUE, created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS menu_links (id TEXT PRIMARY KEY, menu_id TEXT NOT NULL REFERENCES menus(id) ON DELETE CASCADE, name TEXT NOT NULL, url TEXT NOT NULL, description TEXT NOT NULL DEFAULT '', weight INTEGER NOT NULL DEFAULT 0)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_menus_title ON menus(title)`,
	`CREATE INDEX IF NOT EXISTS idx_menu_links_menu_id ON menu_links(menu_id)`,
	`CREATE INDEX IF NOT EXISTS idx_menu_links_weight ON menu_links(menu_id, weight)`,
}
