package builtin

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
)

var calendarTmpl = template.Must(template.New("calendar").Parse(
	`<div id="calendar_wrap" class="calendar_wrap"><table id="wp-calendar" class="wp-calendar-table">` +
		`<caption>{{.Caption}}</caption>` +
		`<thead><tr>{{range .Weekdays}}<th scope="col" title="{{.}}">{{slice . 0 1}}</th>{{end}}</tr></thead>` +
		`<tbody>{{range .Weeks}}<tr>{{range .}}{{if .Day}}<td>{{if .Link}}<a href="{{.Link}}" aria-label="Posts published on {{.Label}}">{{.Day}}</a>{{else}}{{.Day}}{{end}}</td>{{else}}<td class="pad">&nbsp;</td>{{end}}{{end}}</tr>{{end}}</tbody>` +
		`</table></div>`))

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type calendarCell struct {
	Day   int
	Link  string
	Label string
}

type calendarData struct {
	Caption  string
	Weekdays []string
	Weeks    [][]calendarCell
}

// Calendar renders a month grid for the month of the newest post, with days
// that have posts linked.
type Calendar struct {
	base
	lib *Library
}

func NewCalendar(lib *Library) *Calendar {
	return &Calendar{
		base: base{opts: widgets.Options{
			ID:          widgets.TypeCalendar,
			Name:        "Calendar",
			ClassName:   "widget_calendar",
			Description: "A calendar of your site's Posts.",
		}},
		lib: lib,
	}
}

func (c *Calendar) Render(_ context.Context, w io.Writer, args widgets.DisplayArgs, s widgets.Settings) error {
	month := time.Now().UTC()
	if recent := c.lib.RecentPosts(1); len(recent) > 0 {
		month = recent[0].Published
	}

	var buf bytes.Buffer
	if err := calendarTmpl.Execute(&buf, c.monthData(month.Year(), month.Month())); err != nil {
		return fmt.Errorf("failed to render calendar: %w", err)
	}
	return writeWidget(w, args, title(s, ""), buf.String())
}

func (c *Calendar) monthData(year int, month time.Month) calendarData {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	offset := (int(first.Weekday()) + 6) % 7

	posted := make(map[int]bool)
	for _, p := range c.lib.Posts {
		if p.Published.Year() == year && p.Published.Month() == month {
			posted[p.Published.Day()] = true
		}
	}

	cells := make([]calendarCell, offset, offset+daysInMonth+7)
	for day := 1; day <= daysInMonth; day++ {
		cell := calendarCell{Day: day}
		if posted[day] {
			cell.Link = fmt.Sprintf("/%d/%02d/%02d/", year, int(month), day)
			cell.Label = fmt.Sprintf("%s %d, %d", month, day, year)
		}
		cells = append(cells, cell)
	}
	for len(cells)%7 != 0 {
		cells = append(cells, calendarCell{})
	}

	data := calendarData{
		Caption:  fmt.Sprintf("%s %d", month, year),
		Weekdays: weekdays,
	}
	for i := 0; i < len(cells); i += 7 {
		data.Weeks = append(data.Weeks, cells[i:i+7])
	}
	return data
}
