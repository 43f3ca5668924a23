package builtin

import (
	"context"
	"io"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
)

const searchForm = `<form role="search" method="get" class="search-form" action="/">` +
	`<label><span class="screen-reader-text">Search for:</span>` +
	`<input type="search" class="search-field" placeholder="Search &hellip;" value="" name="s"></label>` +
	`<input type="submit" class="search-submit" value="Search">` +
	`</form>`

type Search struct {
	base
}

func NewSearch() *Search {
	return &Search{base: base{opts: widgets.Options{
		ID:          widgets.TypeSearch,
		Name:        "Search",
		ClassName:   "widget_search",
		Description: "A search form for your site.",
	}}}
}

func (s *Search) Render(_ context.Context, w io.Writer, args widgets.DisplayArgs, settings widgets.Settings) error {
	return writeWidget(w, args, title(settings, ""), searchForm)
}
