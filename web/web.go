// Package web 内嵌的 HTML 页面模板。
package web

import (
	"embed"
	"html/template"
)

// 页面模板名
const (
	PageIndex     = "index.html"
	PageLogin     = "admin_login.html"
	PageDashboard = "admin.html"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates 解析全部内嵌模板（html/template 自动转义）
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}
