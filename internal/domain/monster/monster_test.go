package monster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/content"
	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWidget struct {
	opts widgets.Options
	err  error

	mu    sync.Mutex
	calls []widgets.DisplayArgs
}

func (s *stubWidget) Options() widgets.Options { return s.opts }

func (s *stubWidget) Render(_ context.Context, w io.Writer, args widgets.DisplayArgs, settings widgets.Settings) error {
	s.mu.Lock()
	s.calls = append(s.calls, args)
	s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	_, err := fmt.Fprintf(w, "%s%s%s", args.BeforeWidget, settings.String("title", ""), args.AfterWidget)
	return err
}

type stubRegistry struct {
	widgets map[widgets.TypeID]widgets.Widget
}

func newStubRegistry(ws ...*stubWidget) *stubRegistry {
	r := &stubRegistry{widgets: make(map[widgets.TypeID]widgets.Widget)}
	for _, w := range ws {
		r.widgets[w.opts.ID] = w
	}
	return r
}

func (r *stubRegistry) Register(w widgets.Widget) { r.widgets[w.Options().ID] = w }

func (r *stubRegistry) Lookup(id widgets.TypeID) (widgets.Widget, bool) {
	w, ok := r.widgets[id]
	return w, ok
}

func (r *stubRegistry) Has(id widgets.TypeID) bool {
	_, ok := r.widgets[id]
	return ok
}

func (r *stubRegistry) RenderWidget(ctx context.Context, w io.Writer, id widgets.TypeID, settings widgets.Settings, args widgets.DisplayArgs) error {
	widget, ok := r.widgets[id]
	if !ok {
		return nil
	}
	return widget.Render(ctx, w, args, settings)
}

type stubSidebars map[string]widgets.DisplayArgs

func (s stubSidebars) Lookup(id string) (widgets.DisplayArgs, bool) {
	args, ok := s[id]
	return args, ok
}

type stubMenus struct {
	menus []content.NavMenuSummary
	err   error
}

func (s stubMenus) NavMenus(context.Context) ([]content.NavMenuSummary, error) {
	return s.menus, s.err
}

type recordingObserver struct {
	types  []widgets.TypeID
	failed int
}

func (o *recordingObserver) SubWidgetRendered(id widgets.TypeID, err error) {
	o.types = append(o.types, id)
	if err != nil {
		o.failed++
	}
}

type upperTranslator struct{}

func (upperTranslator) Translate(msg, domain string) string {
	if domain != TextDomain {
		return msg
	}
	return strings.ToUpper(msg)
}

func stub(id widgets.TypeID, class string) *stubWidget {
	return &stubWidget{opts: widgets.Options{ID: id, Name: string(id), ClassName: class}}
}

func types(list widgets.ConfigList) []widgets.TypeID {
	out := make([]widgets.TypeID, len(list))
	for i, spec := range list {
		out[i] = spec.Type
	}
	return out
}

var fixedTypes = []widgets.TypeID{
	widgets.TypeArchives,
	widgets.TypeArchives,
	widgets.TypeCalendar,
	widgets.TypeCategories,
	widgets.TypeCategories,
	widgets.TypePages,
	widgets.TypeMeta,
	widgets.TypeRecentComments,
	widgets.TypeRecentPosts,
	widgets.TypeRSS,
	widgets.TypeSearch,
	widgets.TypeText,
	widgets.TypeTagCloud,
}

func TestCounterStartsAtOne(t *testing.T) {
	c := NewCounter()
	assert.Equal(t, int64(1), c.Current())
	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())
	assert.Equal(t, int64(3), c.Current())
}

func TestCounterConcurrentNextIsUnique(t *testing.T) {
	c := NewCounter()
	seen := make(chan int64, 100)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- c.Next()
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[int64]bool)
	for n := range seen {
		unique[n] = true
	}
	assert.Len(t, unique, 100)
	assert.Equal(t, int64(101), c.Current())
}

func TestOptions(t *testing.T) {
	m := New(Config{Widgets: newStubRegistry(), Translator: upperTranslator{}})

	opts := m.Options()
	assert.Equal(t, widgets.TypeMonster, opts.ID)
	assert.Equal(t, "MONSTER", opts.Name)
	assert.Equal(t, "monster", opts.ClassName)
	assert.Equal(t, "TEST MULTIPLE WIDGETS AT THE SAME TIME.", opts.Description)
}

func TestRegister(t *testing.T) {
	reg := newStubRegistry()
	m := Register(reg, Config{})

	w, ok := reg.Lookup(widgets.TypeMonster)
	require.True(t, ok)
	assert.Same(t, m, w)
	assert.Len(t, m.WidgetConfig(context.Background()), 13)
}

func TestWidgetConfigFixedEntries(t *testing.T) {
	m := New(Config{Widgets: newStubRegistry()})

	list := m.WidgetConfig(context.Background())
	require.Len(t, list, 13)
	assert.Equal(t, fixedTypes, types(list))

	titles := make([]string, len(list))
	for i, spec := range list {
		titles[i] = spec.Settings.String("title", "")
	}
	assert.Equal(t, []string{
		"Archives List", "Archives Dropdown", "Calendar", "Categories List",
		"Categories Dropdown", "Pages", "Meta", "Recent Comments", "Recent Posts",
		"RSS", "Search", "Text", "Tag Cloud",
	}, titles)

	assert.Equal(t, 0, list[0].Settings.Int("dropdown", -1))
	assert.Equal(t, 1, list[1].Settings.Int("dropdown", -1))
	assert.Equal(t, 1, list[3].Settings.Int("hierarchical", 0))
	assert.Equal(t, "menu_order", list[5].Settings.String("sortby", ""))
	assert.Equal(t, 7, list[7].Settings.Int("number", 0))
	assert.Equal(t, 1, list[8].Settings.Int("number", 0))
	assert.Equal(t, RSSFeedURL, list[9].Settings.String("url", ""))
	assert.Equal(t, 10, list[9].Settings.Int("items", 0))
	assert.True(t, list[9].Settings.Bool("show_summary"))
	assert.Equal(t, m.BreakerText(), list[11].Settings.String("text", ""))
	assert.True(t, list[11].Settings.Bool("filter"))
	assert.Equal(t, "post_tag", list[12].Settings.String("taxonomy", ""))
}

func TestWidgetConfigTranslatesTitles(t *testing.T) {
	m := New(Config{Widgets: newStubRegistry(), Translator: upperTranslator{}})

	list := m.WidgetConfig(context.Background())
	assert.Equal(t, "ARCHIVES LIST", list[0].Settings.String("title", ""))
	assert.Equal(t, "TAG CLOUD", list[12].Settings.String("title", ""))
}

func TestWidgetConfigOptionalEntries(t *testing.T) {
	menus := stubMenus{menus: []content.NavMenuSummary{{ID: "m1", LinkCount: 2}}}

	t.Run("nav menu only", func(t *testing.T) {
		m := New(Config{Widgets: newStubRegistry(), Menus: menus})
		list := m.WidgetConfig(context.Background())
		require.Len(t, list, 14)
		assert.Equal(t, widgets.TypeNavMenu, list[13].Type)
		assert.Equal(t, "Nav Menu", list[13].Settings.String("title", ""))
		assert.Equal(t, "m1", list[13].Settings.String("nav_menu", ""))
	})

	t.Run("links only", func(t *testing.T) {
		m := New(Config{Widgets: newStubRegistry(stub(widgets.TypeLinks, "widget_links"))})
		list := m.WidgetConfig(context.Background())
		require.Len(t, list, 14)
		assert.Equal(t, widgets.TypeLinks, list[13].Type)
		for _, key := range []string{"description", "name", "rating", "images"} {
			assert.Equal(t, 1, list[13].Settings.Int(key, 0), key)
		}
	})

	t.Run("nav menu before links", func(t *testing.T) {
		m := New(Config{Widgets: newStubRegistry(stub(widgets.TypeLinks, "")), Menus: menus})
		list := m.WidgetConfig(context.Background())
		require.Len(t, list, 15)
		assert.Equal(t, []widgets.TypeID{widgets.TypeNavMenu, widgets.TypeLinks}, types(list[13:]))
	})
}

func TestWidgetConfigFilter(t *testing.T) {
	m := New(Config{Widgets: newStubRegistry()})
	m.ConfigFilters().Add(func(list widgets.ConfigList) widgets.ConfigList {
		return list[:2]
	})
	m.ConfigFilters().Add(func(list widgets.ConfigList) widgets.ConfigList {
		return append(list, widgets.Spec{Type: "custom"})
	})

	list := m.WidgetConfig(context.Background())
	assert.Equal(t, []widgets.TypeID{widgets.TypeArchives, widgets.TypeArchives, "custom"}, types(list))
}

func TestBestNavMenu(t *testing.T) {
	tests := []struct {
		name   string
		source stubMenus
		want   string
	}{
		{"no menus", stubMenus{}, ""},
		{"lookup error", stubMenus{err: errors.New("db down"), menus: []content.NavMenuSummary{{ID: "a", LinkCount: 4}}}, ""},
		{"all empty", stubMenus{menus: []content.NavMenuSummary{{ID: "a"}, {ID: "b"}}}, ""},
		{"highest count", stubMenus{menus: []content.NavMenuSummary{{ID: "a", LinkCount: 3}, {ID: "b", LinkCount: 9}}}, "b"},
		{"highest first", stubMenus{menus: []content.NavMenuSummary{{ID: "a", LinkCount: 9}, {ID: "b", LinkCount: 3}}}, "a"},
		{"tie goes to last", stubMenus{menus: []content.NavMenuSummary{{ID: "a", LinkCount: 5}, {ID: "b", LinkCount: 5}, {ID: "c", LinkCount: 1}}}, "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(Config{Widgets: newStubRegistry(), Menus: tt.source})
			got := m.BestNavMenu(context.Background())
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestBestNavMenuWithoutSource(t *testing.T) {
	m := New(Config{Widgets: newStubRegistry()})
	assert.Nil(t, m.BestNavMenu(context.Background()))
}

func TestWidgetClass(t *testing.T) {
	m := New(Config{Widgets: newStubRegistry(
		stub(widgets.TypeCalendar, "widget_calendar"),
		stub(widgets.TypeSearch, ""),
	)})

	assert.Equal(t, "widget_calendar", m.WidgetClass(widgets.TypeCalendar))
	assert.Equal(t, "", m.WidgetClass(widgets.TypeSearch))
	assert.Equal(t, "", m.WidgetClass(widgets.TypeRSS))
}

func TestBreakerText(t *testing.T) {
	var converted []string
	m := New(Config{
		Widgets: newStubRegistry(),
		Smilies: func(s string) string {
			converted = append(converted, s)
			return "[" + s + "]"
		},
	})

	text := m.BreakerText()
	lines := strings.Split(text, "\n")
	require.Len(t, lines, 10)

	labels := []string{"Large image: Hand Coded", "Large image: linked in a caption", "Meat!", "Pipe Test", "Smile!"}
	for i, label := range labels {
		assert.Equal(t, "<strong>"+label+"</strong>", lines[i*2])
	}

	assert.Contains(t, lines[1], DefaultBreakerImageURL)
	assert.Contains(t, lines[3], `height="598" width="900"`)
	assert.Contains(t, lines[3], "This image is 900 by 598 pixels.")
	assert.True(t, strings.HasPrefix(lines[5], "Hamburger fatback"))
	assert.Equal(t, strings.Repeat("|", 210), lines[7])
	assert.NotContains(t, lines[7], " ")
	assert.Equal(t, "[;)] [:)] [:-D]", lines[9])
	assert.Equal(t, []string{";)", ":)", ":-D"}, converted)
}

func TestBreakerTextImageOverride(t *testing.T) {
	m := New(Config{Widgets: newStubRegistry(), BreakerImageURL: "/media/test.jpg"})
	text := m.BreakerText()
	assert.Equal(t, 2, strings.Count(text, `src="/media/test.jpg"`))
	assert.NotContains(t, text, DefaultBreakerImageURL)
}

func TestBreakerTextFilter(t *testing.T) {
	m := New(Config{Widgets: newStubRegistry()})
	m.TextFilters().Add(func(string) string { return "replaced" })

	assert.Equal(t, "replaced", m.BreakerText())
	list := m.WidgetConfig(context.Background())
	assert.Equal(t, "replaced", list[11].Settings.String("text", ""))
}

func TestRenderTwoEntries(t *testing.T) {
	calendar := stub(widgets.TypeCalendar, "widget_calendar")
	posts := stub(widgets.TypeRecentPosts, "widget_recent_entries")
	sidebarArgs := widgets.DisplayArgs{
		SidebarID:    "sidebar-1",
		BeforeWidget: `<li id="%1$s" class="widget %2$s">`,
		AfterWidget:  "</li>",
	}

	m := New(Config{
		Widgets:  newStubRegistry(calendar, posts),
		Sidebars: stubSidebars{"sidebar-1": sidebarArgs},
	})
	m.ConfigFilters().Add(func(widgets.ConfigList) widgets.ConfigList {
		return widgets.ConfigList{
			{Type: widgets.TypeRecentPosts, Settings: widgets.Settings{"title": "Posts"}},
			{Type: widgets.TypeCalendar, Settings: widgets.Settings{"title": "Cal"}},
		}
	})

	var buf bytes.Buffer
	err := m.Render(context.Background(), &buf, widgets.DisplayArgs{SidebarID: "sidebar-1", BeforeWidget: "ignored"}, nil)
	require.NoError(t, err)

	assert.Equal(t,
		`<li id="monster-widget-placeholder-1" class="widget widget_recent_entries">Posts</li>`+
			`<li id="monster-widget-placeholder-2" class="widget widget_calendar">Cal</li>`,
		buf.String())
	assert.Equal(t, int64(3), m.Counter().Current())

	require.Len(t, posts.calls, 1)
	assert.Equal(t, "monster-widget-recent-posts-cache-1", posts.calls[0].WidgetID)
	require.Len(t, calendar.calls, 1)
	assert.Empty(t, calendar.calls[0].WidgetID)
	assert.Equal(t, "</li>", calendar.calls[0].AfterWidget)
}

func TestRenderCounterSpansRenders(t *testing.T) {
	search := stub(widgets.TypeSearch, "widget_search")
	counter := NewCounter()
	m := New(Config{Widgets: newStubRegistry(search), Counter: counter})
	m.ConfigFilters().Add(func(widgets.ConfigList) widgets.ConfigList {
		return widgets.ConfigList{{Type: widgets.TypeSearch}}
	})

	args := widgets.DisplayArgs{BeforeWidget: `<div id="%s" class="%s">`}
	var buf bytes.Buffer
	require.NoError(t, m.Render(context.Background(), &buf, args, nil))
	require.NoError(t, m.Render(context.Background(), &buf, args, nil))

	assert.Contains(t, buf.String(), `id="monster-widget-placeholder-1"`)
	assert.Contains(t, buf.String(), `id="monster-widget-placeholder-2"`)
	assert.Equal(t, int64(3), counter.Current())
}

func TestRenderSkipsUnregisteredAndFailingWidgets(t *testing.T) {
	failing := stub(widgets.TypeMeta, "widget_meta")
	failing.err = errors.New("boom")
	search := stub(widgets.TypeSearch, "widget_search")
	observer := &recordingObserver{}

	m := New(Config{Widgets: newStubRegistry(failing, search), Observer: observer})
	m.ConfigFilters().Add(func(widgets.ConfigList) widgets.ConfigList {
		return widgets.ConfigList{
			{Type: "missing"},
			{Type: widgets.TypeMeta},
			{Type: widgets.TypeSearch, Settings: widgets.Settings{"title": "Find"}},
		}
	})

	var buf bytes.Buffer
	err := m.Render(context.Background(), &buf, widgets.DisplayArgs{BeforeWidget: `<div id="%1$s">`, AfterWidget: "</div>"}, nil)
	require.NoError(t, err)

	assert.Equal(t, `<div id="monster-widget-placeholder-3">Find</div>`, buf.String())
	assert.Equal(t, int64(4), m.Counter().Current())
	assert.Equal(t, []widgets.TypeID{"missing", widgets.TypeMeta, widgets.TypeSearch}, observer.types)
	assert.Equal(t, 1, observer.failed)
}

func TestRenderFullListUsesUniquePlaceholders(t *testing.T) {
	reg := newStubRegistry()
	for _, id := range fixedTypes {
		reg.widgets[id] = stub(id, "widget_"+string(id))
	}
	m := New(Config{Widgets: reg})

	var buf bytes.Buffer
	require.NoError(t, m.Render(context.Background(), &buf, widgets.DisplayArgs{BeforeWidget: `<section id="%1$s" class="%2$s">`}, nil))

	for i := 1; i <= 13; i++ {
		assert.Equal(t, 1, strings.Count(buf.String(), fmt.Sprintf(`id="monster-widget-placeholder-%d"`, i)))
	}
	assert.Equal(t, int64(14), m.Counter().Current())
}

func TestRenderWithoutRegistryWritesNothing(t *testing.T) {
	m := New(Config{})

	var buf bytes.Buffer
	require.NotPanics(t, func() {
		require.NoError(t, m.Render(context.Background(), &buf, widgets.DisplayArgs{SidebarID: "sidebar-1"}, nil))
	})
	assert.Empty(t, buf.String())
	assert.Equal(t, int64(1), m.Counter().Current())
}
