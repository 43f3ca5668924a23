package builtin

import (
	"context"
	"io"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/formatting"
)

// Text outputs arbitrary HTML. With the filter setting on, line breaks are
// turned into paragraphs.
type Text struct {
	base
}

func NewText() *Text {
	return &Text{base: base{opts: widgets.Options{
		ID:          widgets.TypeText,
		Name:        "Text",
		ClassName:   "widget_text",
		Description: "Arbitrary text or HTML.",
	}}}
}

func (t *Text) Render(_ context.Context, w io.Writer, args widgets.DisplayArgs, s widgets.Settings) error {
	body := s.String("text", "")
	if s.Bool("filter") {
		body = formatting.Autop(body)
	}
	return writeWidget(w, args, title(s, ""), `<div class="textwidget">`+body+`</div>`)
}
