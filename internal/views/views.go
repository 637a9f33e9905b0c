// Package views holds the embedded HTML templates and the fiber view engine.
package views

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

// Layout wraps every page
const Layout = "layouts/main"

//go:embed templates
var templates embed.FS

// New returns a view engine over the embedded templates. Template names are
// paths below templates/ without the extension, e.g. "projects" or "partials/sidebar".
func New() *html.Engine {
	root, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(root), ".html")
	engine.AddFunc("inc", func(i int) int { return i + 1 })
	return engine
}
