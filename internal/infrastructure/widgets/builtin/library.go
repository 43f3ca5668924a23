package builtin

import (
	"sort"
	"strings"
	"time"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/content"
)

// Library is the sample site content the built-in widgets list.
type Library struct {
	Posts      []content.Post
	Pages      []content.Page
	Comments   []content.Comment
	Categories []content.Category
}

// MonthCount is one archive month and how many posts it holds.
type MonthCount struct {
	Year  int
	Month time.Month
	Count int
}

// TagCount is one tag and how many posts carry it.
type TagCount struct {
	Name  string
	Slug  string
	Count int
}

// SampleLibrary returns the theme-unit-test style content shipped with the
// preview server.
func SampleLibrary() *Library {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
	}
	return &Library{
		Categories: []content.Category{
			{ID: 1, Name: "Uncategorized", Slug: "uncategorized"},
			{ID: 2, Name: "Markup", Slug: "markup"},
			{ID: 3, Name: "Media", Slug: "media"},
			{ID: 4, Name: "Images", Slug: "images", ParentID: 3},
			{ID: 5, Name: "Video", Slug: "video", ParentID: 3},
			{ID: 6, Name: "Edge Case", Slug: "edge-case"},
		},
		Posts: []content.Post{
			{ID: 1, Title: "Hello world!", Slug: "hello-world", Category: "uncategorized", Tags: []string{"welcome"}, Published: day(2024, time.January, 8)},
			{ID: 2, Title: "Markup: HTML Tags and Formatting", Slug: "markup-html-tags-and-formatting", Category: "markup", Tags: []string{"html", "markup", "formatting"}, Published: day(2024, time.January, 22)},
			{ID: 3, Title: "Markup: Image Alignment", Slug: "markup-image-alignment", Category: "markup", Tags: []string{"alignment", "markup", "images"}, Published: day(2024, time.February, 5)},
			{ID: 4, Title: "Image: Caption", Slug: "image-caption", Category: "images", Tags: []string{"captions", "images"}, Published: day(2024, time.February, 19)},
			{ID: 5, Title: "Video: YouTube", Slug: "video-youtube", Category: "video", Tags: []string{"embeds", "video"}, Published: day(2024, time.March, 4)},
			{ID: 6, Title: "Edge Case: Many Tags", Slug: "edge-case-many-tags", Category: "edge-case", Tags: []string{"markup", "formatting", "html", "images", "alignment", "captions", "edge case"}, Published: day(2024, time.March, 12)},
			{ID: 7, Title: "Edge Case: Very Long Title That Keeps Going Well Past The Width Of Any Reasonable Sidebar", Slug: "edge-case-long-title", Category: "edge-case", Tags: []string{"edge case", "title"}, Published: day(2024, time.March, 26)},
		},
		Pages: []content.Page{
			{ID: 10, Title: "About", Slug: "about", MenuOrder: 1},
			{ID: 11, Title: "Page Image Alignment", Slug: "page-image-alignment", MenuOrder: 3, ParentID: 10},
			{ID: 12, Title: "Page Markup And Formatting", Slug: "page-markup-and-formatting", MenuOrder: 2, ParentID: 10},
			{ID: 13, Title: "Clearing Floats", Slug: "clearing-floats", MenuOrder: 4},
			{ID: 14, Title: "Level 1", Slug: "level-1", MenuOrder: 5},
			{ID: 15, Title: "Level 2", Slug: "level-2", MenuOrder: 1, ParentID: 14},
			{ID: 16, Title: "Level 3", Slug: "level-3", MenuOrder: 1, ParentID: 15},
		},
		Comments: []content.Comment{
			{Author: "Mr WordPress", PostID: 1},
			{Author: "John Doe", PostID: 2},
			{Author: "Jane Doe", PostID: 2},
			{Author: "Anonymous", PostID: 4},
			{Author: "A Very Long Commenter Name For Testing Wrapping", PostID: 7},
			{Author: "Jane Doe", PostID: 6},
			{Author: "John Doe", PostID: 5},
			{Author: "Mr WordPress", PostID: 3},
		},
	}
}

// RecentPosts returns up to n posts, newest first.
func (l *Library) RecentPosts(n int) []content.Post {
	posts := make([]content.Post, len(l.Posts))
	copy(posts, l.Posts)
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Published.After(posts[j].Published)
	})
	if n >= 0 && n < len(posts) {
		posts = posts[:n]
	}
	return posts
}

// RecentComments returns up to n comments, newest first.
func (l *Library) RecentComments(n int) []content.Comment {
	out := make([]content.Comment, 0, len(l.Comments))
	for i := len(l.Comments) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.Comments[i])
	}
	return out
}

func (l *Library) Post(id int) (content.Post, bool) {
	for _, p := range l.Posts {
		if p.ID == id {
			return p, true
		}
	}
	return content.Post{}, false
}

// Months returns archive months newest first.
func (l *Library) Months() []MonthCount {
	counts := make(map[[2]int]int)
	for _, p := range l.Posts {
		counts[[2]int{p.Published.Year(), int(p.Published.Month())}]++
	}

	months := make([]MonthCount, 0, len(counts))
	for key, count := range counts {
		months = append(months, MonthCount{Year: key[0], Month: time.Month(key[1]), Count: count})
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year > months[j].Year
		}
		return months[i].Month > months[j].Month
	})
	return months
}

// CategoryCounts returns the number of posts per category slug.
func (l *Library) CategoryCounts() map[string]int {
	counts := make(map[string]int)
	for _, p := range l.Posts {
		counts[p.Category]++
	}
	return counts
}

// Tags returns every tag in use, sorted by name.
func (l *Library) Tags() []TagCount {
	counts := make(map[string]int)
	for _, p := range l.Posts {
		for _, tag := range p.Tags {
			counts[tag]++
		}
	}

	tags := make([]TagCount, 0, len(counts))
	for name, count := range counts {
		tags = append(tags, TagCount{Name: name, Slug: slugify(name), Count: count})
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags
}

func slugify(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
