// Package templates renders the preview page that hosts a sidebar.
package templates

import (
	"html/template"
	"io"
	"time"

	"github.com/Masterminds/sprig/v3"
)

// SidebarLink is one entry in the page's sidebar switcher.
type SidebarLink struct {
	ID     string
	Name   string
	Active bool
}

// PageData is everything the preview page shows.
type PageData struct {
	Title     string
	SidebarID string
	Sidebars  []SidebarLink
	Fragment  template.HTML
	Error     string
	Generated time.Time
	Live      bool
}

var pageTemplate = template.Must(template.New("page").Funcs(sprig.FuncMap()).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{ .Title | default "Monster Widget" }} · {{ .SidebarID }}</title>
<style>
body{font-family:system-ui,sans-serif;margin:0;display:flex;min-height:100vh}
main{flex:1;padding:2rem;max-width:48rem}
#sidebar{width:20rem;padding:1rem;border-left:1px solid #ddd;background:#fafafa;overflow-wrap:break-word}
#sidebar img{max-width:100%;height:auto}
nav a{margin-right:.75rem}
nav a.active{font-weight:bold}
.error{color:#b00}
</style>
</head>
<body>
<main>
<h1>{{ .Title | default "Monster Widget" }}</h1>
<nav>{{ range .Sidebars }}<a href="/sidebars/{{ .ID }}"{{ if .Active }} class="active"{{ end }}>{{ .Name | default .ID }}</a>{{ end }}</nav>
<p>Sidebar <code>{{ .SidebarID }}</code> rendered {{ dateInZone "2006-01-02 15:04:05 MST" .Generated "UTC" }}.</p>
{{- if .Error }}
<p class="error">{{ .Error }}</p>
{{- end }}
</main>
<div id="sidebar" data-sidebar="{{ .SidebarID }}">
{{ .Fragment }}
</div>
{{- if .Live }}
<script>
(function(){
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/sidebars/{{ .SidebarID | urlquery }}/live");
  ws.onmessage = function(ev){
    var msg = JSON.parse(ev.data);
    if (msg.type === "render") { document.getElementById("sidebar").innerHTML = msg.html; }
  };
})();
</script>
{{- end }}
</body>
</html>
`))

// RenderPage writes the preview page for data.
func RenderPage(w io.Writer, data PageData) error {
	if data.Generated.IsZero() {
		data.Generated = time.Now()
	}
	return pageTemplate.Execute(w, data)
}
