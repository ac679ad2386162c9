package httpapi

import (
	"html/template"
	"net/http"
)

// The UI is a single page rendered client-side; the server only hands out
// this shell, or the same shell with an error banner for unknown routes.
var pageTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="zh">
<head>
<meta charset="utf-8">
<title>ANSAPRA - 个性化论文解读</title>
</head>
<body>
{{if .Error}}<div class="error">{{.Error}}</div>{{end}}
<div id="app"></div>
</body>
</html>
`))

type pageData struct {
	Error string
}

func renderPage(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	pageTmpl.Execute(w, data)
}

func (s *HTTPServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		renderPage(w, http.StatusNotFound, pageData{Error: "页面不存在"})
		return
	}
	renderPage(w, http.StatusOK, pageData{})
}
