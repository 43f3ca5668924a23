package widgets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoWidget struct {
	id    widgets.TypeID
	class string
	got   widgets.Settings
}

func (e *echoWidget) Options() widgets.Options {
	return widgets.Options{ID: e.id, Name: string(e.id), ClassName: e.class}
}

func (e *echoWidget) Render(_ context.Context, w io.Writer, args widgets.DisplayArgs, s widgets.Settings) error {
	e.got = s
	_, err := fmt.Fprintf(w, "%s%stitle%s%s", args.BeforeWidget, args.BeforeTitle, args.AfterTitle, args.AfterWidget)
	return err
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry(logging.NewDiscardLogger())
	r.Register(&echoWidget{id: "a", class: "widget_a"})
	r.Register(&echoWidget{id: "b"})
	r.Register(&echoWidget{id: "a", class: "widget_a2"})

	assert.Equal(t, []widgets.TypeID{"a", "b"}, r.Keys())
	w, ok := r.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "widget_a2", w.Options().ClassName)
	assert.True(t, r.Has("b"))
	assert.False(t, r.Has("c"))
	assert.Len(t, r.All(), 2)

	r.Unregister("a")
	assert.Equal(t, []widgets.TypeID{"b"}, r.Keys())
	r.Unregister("missing")
}

func TestRenderWidgetDefaults(t *testing.T) {
	r := NewRegistry(logging.NewDiscardLogger())
	e := &echoWidget{id: "cal", class: "widget_calendar"}
	r.Register(e)

	var buf bytes.Buffer
	require.NoError(t, r.RenderWidget(context.Background(), &buf, "cal", nil, widgets.DisplayArgs{}))
	assert.Equal(t, `<div class="widget widget_calendar"><h2 class="widgettitle">title</h2></div>`, buf.String())
	assert.NotNil(t, e.got)

	buf.Reset()
	args := widgets.DisplayArgs{BeforeWidget: "<li>", AfterWidget: "</li>", BeforeTitle: "<b>", AfterTitle: "</b>"}
	require.NoError(t, r.RenderWidget(context.Background(), &buf, "cal", widgets.Settings{"k": 1}, args))
	assert.Equal(t, "<li><b>title</b></li>", buf.String())
	assert.Equal(t, 1, e.got.Int("k", 0))
}

func TestRenderWidgetUnknownTypeIsSilent(t *testing.T) {
	r := NewRegistry(logging.NewDiscardLogger())
	var buf bytes.Buffer
	assert.NoError(t, r.RenderWidget(context.Background(), &buf, "nope", nil, widgets.DisplayArgs{}))
	assert.Empty(t, buf.String())
}
