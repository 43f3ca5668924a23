package formatting

import "strings"

var blockTags = []string{"<div", "<p", "<ul", "<ol", "<table", "<figure", "<blockquote", "<h1", "<h2", "<h3", "<h4", "<h5", "<h6", "<pre"}

// Autop wraps blank-line separated blocks of text in paragraphs and turns the
// remaining single newlines into line breaks. Blocks that already start with
// a block-level tag are left unwrapped.
func Autop(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var blocks []string
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if isBlock(block) && !strings.Contains(block, "\n") {
			blocks = append(blocks, block)
			continue
		}
		block = strings.ReplaceAll(block, "\n", "<br />\n")
		blocks = append(blocks, "<p>"+block+"</p>")
	}
	return strings.Join(blocks, "\n")
}

func isBlock(s string) bool {
	lower := strings.ToLower(s)
	for _, tag := range blockTags {
		if strings.HasPrefix(lower, tag+">") || strings.HasPrefix(lower, tag+" ") {
			return true
		}
	}
	return false
}
