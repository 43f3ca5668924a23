// Package monster implements the Monster composite widget: a single widget
// that renders a fixed, filterable list of built-in widgets one after another
// so a theme can be checked against all of them at once.
package monster

import (
	"context"
	"io"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/content"
	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
	"github.com/AtRiskMedia/monster-widget/internal/domain/hooks"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/logging"
)

const (
	// TextDomain scopes every label the widget translates.
	TextDomain = "monster-widget"

	// ConfigFilterName is the extension point the widget list passes through.
	ConfigFilterName = "monster-widget-config"

	// TextFilterName is the extension point the breaker text passes through.
	TextFilterName = "monster-widget-get-text"

	PlaceholderPrefix      = "monster-widget-placeholder-"
	RecentPostsCachePrefix = widgets.CacheBustPrefix
	DefaultBreakerImageURL = "http://wpthemetestdata.files.wordpress.com/2008/09/test-image-landscape-900.jpg"
	RSSFeedURL             = "http://themeshaper.com/feed"
	pipeRunLength          = 210
	breakerImageHeight     = 598
	breakerImageWidth      = 900
)

// WidgetRegistry is the host's widget-type registry.
type WidgetRegistry interface {
	Lookup(id widgets.TypeID) (widgets.Widget, bool)
	Has(id widgets.TypeID) bool
	RenderWidget(ctx context.Context, w io.Writer, id widgets.TypeID, settings widgets.Settings, args widgets.DisplayArgs) error
}

// Registrar accepts widget registrations.
type Registrar interface {
	Register(w widgets.Widget)
}

// SidebarLookup resolves a sidebar id to its raw wrapper templates.
type SidebarLookup interface {
	Lookup(id string) (widgets.DisplayArgs, bool)
}

// NavMenuSource lists the host's navigation menus with their link counts.
type NavMenuSource interface {
	NavMenus(ctx context.Context) ([]content.NavMenuSummary, error)
}

type Translator interface {
	Translate(msg, domain string) string
}

// Observer is told about each sub-widget render.
type Observer interface {
	SubWidgetRendered(id widgets.TypeID, err error)
}

// Config wires the widget to its host collaborators. Widgets is required;
// everything else has a usable default.
type Config struct {
	Widgets    WidgetRegistry
	Sidebars   SidebarLookup
	Menus      NavMenuSource
	Translator Translator
	Smilies    func(string) string
	Counter    *Counter
	Observer   Observer
	Logger     *logging.ChanneledLogger

	// BreakerImageURL replaces the large test image in the breaker text.
	BreakerImageURL string

	ConfigFilters *hooks.Chain[widgets.ConfigList]
	TextFilters   *hooks.Chain[string]
}

// Widget is the Monster composite widget.
type Widget struct {
	widgets       WidgetRegistry
	sidebars      SidebarLookup
	menus         NavMenuSource
	translator    Translator
	smilies       func(string) string
	counter       *Counter
	observer      Observer
	logger        *logging.ChanneledLogger
	imageURL      string
	configFilters *hooks.Chain[widgets.ConfigList]
	textFilters   *hooks.Chain[string]
	options       widgets.Options
}

type identityTranslator struct{}

func (identityTranslator) Translate(msg, _ string) string { return msg }

func New(cfg Config) *Widget {
	m := &Widget{
		widgets:       cfg.Widgets,
		sidebars:      cfg.Sidebars,
		menus:         cfg.Menus,
		translator:    cfg.Translator,
		smilies:       cfg.Smilies,
		counter:       cfg.Counter,
		observer:      cfg.Observer,
		logger:        cfg.Logger,
		imageURL:      cfg.BreakerImageURL,
		configFilters: cfg.ConfigFilters,
		textFilters:   cfg.TextFilters,
	}

	if m.translator == nil {
		m.translator = identityTranslator{}
	}
	if m.smilies == nil {
		m.smilies = func(s string) string { return s }
	}
	if m.counter == nil {
		m.counter = NewCounter()
	}
	if m.logger == nil {
		m.logger = logging.NewDiscardLogger()
	}
	if m.imageURL == "" {
		m.imageURL = DefaultBreakerImageURL
	}
	if m.configFilters == nil {
		m.configFilters = hooks.NewChain[widgets.ConfigList](ConfigFilterName)
	}
	if m.textFilters == nil {
		m.textFilters = hooks.NewChain[string](TextFilterName)
	}

	m.options = widgets.Options{
		ID:          widgets.TypeMonster,
		Name:        m.t("Monster"),
		ClassName:   "monster",
		Description: m.t("Test multiple widgets at the same time."),
	}
	return m
}

// Register constructs the widget and registers it with the host. It is the
// single entry point the host calls while widget types are being set up.
func Register(r Registrar, cfg Config) *Widget {
	if cfg.Widgets == nil {
		if wr, ok := r.(WidgetRegistry); ok {
			cfg.Widgets = wr
		}
	}
	m := New(cfg)
	r.Register(m)
	m.logger.Widgets().Info("Monster widget registered", "widgetType", m.options.ID)
	return m
}

func (m *Widget) Options() widgets.Options {
	return m.options
}

// ConfigFilters exposes the monster-widget-config extension point.
func (m *Widget) ConfigFilters() *hooks.Chain[widgets.ConfigList] {
	return m.configFilters
}

// TextFilters exposes the monster-widget-get-text extension point.
func (m *Widget) TextFilters() *hooks.Chain[string] {
	return m.textFilters
}

// Counter returns the render counter shared by this widget.
func (m *Widget) Counter() *Counter {
	return m.counter
}

func (m *Widget) t(msg string) string {
	return m.translator.Translate(msg, TextDomain)
}
