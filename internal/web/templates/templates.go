// Package templates holds the embedded server-rendered pages.
package templates

import (
	"embed"
	"html/template"
	"io"
	"strconv"
	"strings"
)

//go:embed *.html
var files embed.FS

var funcs = template.FuncMap{
	// inr renders a price without trailing decimal noise.
	"inr": func(v float64) string {
		return "₹" + strconv.FormatFloat(v, 'f', -1, 64)
	},
	"join": strings.Join,
}

var pages = template.Must(template.New("").Funcs(funcs).ParseFS(files, "*.html"))

// Render executes the named page template.
func Render(w io.Writer, name string, data interface{}) error {
	return pages.ExecuteTemplate(w, name, data)
}
