// Package content defines the host-side content entities the widgets read:
// navigation menus, sidebars and the sample posts used by built-in widgets.
package content

import (
	"errors"
	"time"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
)

var (
	ErrMenuNotFound    = errors.New("menu not found")
	ErrSidebarNotFound = errors.New("sidebar not found")
)

type MenuNode struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Slug    string      `json:"slug"`
	Created time.Time   `json:"created"`
	Links   []*MenuLink `json:"links"`
}

type MenuLink struct {
	ID          string `json:"id"`
	MenuID      string `json:"menuId"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Weight      int    `json:"weight"`
}

// NavMenuSummary is the menu id plus how many links it holds.
type NavMenuSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	LinkCount int    `json:"linkCount"`
}

// Sidebar is a named placement region and the widgets placed in it.
type Sidebar struct {
	ID           string      `yaml:"id" json:"id"`
	Name         string      `yaml:"name" json:"name"`
	Description  string      `yaml:"description" json:"description,omitempty"`
	Class        string      `yaml:"class" json:"class,omitempty"`
	BeforeWidget string      `yaml:"before_widget" json:"beforeWidget"`
	AfterWidget  string      `yaml:"after_widget" json:"afterWidget"`
	BeforeTitle  string      `yaml:"before_title" json:"beforeTitle"`
	AfterTitle   string      `yaml:"after_title" json:"afterTitle"`
	Widgets      []Placement `yaml:"widgets" json:"widgets"`
}

// Placement is one widget instance placed in a sidebar.
type Placement struct {
	Type     widgets.TypeID   `yaml:"type" json:"type"`
	Settings widgets.Settings `yaml:"settings,omitempty" json:"settings,omitempty"`
}

// DisplayArgs returns the sidebar's unformatted wrapper templates.
func (s *Sidebar) DisplayArgs() widgets.DisplayArgs {
	return widgets.DisplayArgs{
		SidebarID:    s.ID,
		Name:         s.Name,
		BeforeWidget: s.BeforeWidget,
		AfterWidget:  s.AfterWidget,
		BeforeTitle:  s.BeforeTitle,
		AfterTitle:   s.AfterTitle,
	}
}

type Post struct {
	ID        int
	Title     string
	Slug      string
	Category  string
	Tags      []string
	Published time.Time
}

type Page struct {
	ID        int
	Title     string
	Slug      string
	MenuOrder int
	ParentID  int
}

type Comment struct {
	Author string
	PostID int
}

type Category struct {
	Name     string
	Slug     string
	ParentID int
	ID       int
}
