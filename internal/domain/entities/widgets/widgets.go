// Package widgets defines the domain types shared by the widget registry,
// the sidebar renderer and the Monster composite widget.
package widgets

import (
	"context"
	"io"
)

// TypeID identifies a registered widget type.
type TypeID string

const (
	TypeArchives       TypeID = "archives"
	TypeCalendar       TypeID = "calendar"
	TypeCategories     TypeID = "categories"
	TypePages          TypeID = "pages"
	TypeMeta           TypeID = "meta"
	TypeRecentComments TypeID = "recent-comments"
	TypeRecentPosts    TypeID = "recent-posts"
	TypeRSS            TypeID = "rss"
	TypeSearch         TypeID = "search"
	TypeText           TypeID = "text"
	TypeTagCloud       TypeID = "tag_cloud"
	TypeNavMenu        TypeID = "nav_menu"
	TypeLinks          TypeID = "links"
	TypeMonster        TypeID = "Monster"
)

// CacheBustPrefix marks a WidgetID that exists only to miss output caches.
// Widgets must not store output under such an id.
const CacheBustPrefix = "monster-widget-recent-posts-cache-"

// Settings is one widget instance's configuration.
type Settings map[string]any

// String returns the setting as a string, or def when absent or not a string.
func (s Settings) String(key, def string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	return def
}

// Int returns the setting as an int. Numeric strings and bools are accepted
// because instance settings arrive from YAML and JSON as well as Go literals.
func (s Settings) Int(key string, def int) int {
	switch v := s[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case bool:
		if v {
			return 1
		}
		return 0
	}
	return def
}

// Bool reports whether the setting is truthy (true, or a non-zero number).
func (s Settings) Bool(key string) bool {
	switch v := s[key].(type) {
	case bool:
		return v
	case int, int64, float64:
		return s.Int(key, 0) != 0
	case string:
		return v != "" && v != "0" && v != "false"
	}
	return false
}

// Spec is one configured sub-widget. Settings may be nil.
type Spec struct {
	Type     TypeID   `json:"type" yaml:"type"`
	Settings Settings `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// ConfigList is the ordered list of sub-widgets the Monster widget renders.
type ConfigList []Spec

// DisplayArgs is the per-sidebar rendering context handed to a widget.
type DisplayArgs struct {
	SidebarID    string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	BeforeWidget string `json:"beforeWidget" yaml:"before_widget"`
	AfterWidget  string `json:"afterWidget" yaml:"after_widget"`
	BeforeTitle  string `json:"beforeTitle" yaml:"before_title"`
	AfterTitle   string `json:"afterTitle" yaml:"after_title"`
	WidgetID     string `json:"widgetId,omitempty" yaml:"widget_id,omitempty"`
	WidgetName   string `json:"widgetName,omitempty" yaml:"widget_name,omitempty"`
}

// Options is the static metadata a widget type declares at construction.
type Options struct {
	ID          TypeID `json:"id"`
	Name        string `json:"name"`
	ClassName   string `json:"className,omitempty"`
	Description string `json:"description,omitempty"`
}

// Widget is a renderable widget type.
type Widget interface {
	Options() Options
	Render(ctx context.Context, w io.Writer, args DisplayArgs, settings Settings) error
}
