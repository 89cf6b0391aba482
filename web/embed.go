package web

import (
	"embed"
	"io/fs"
)

// The registration flow serves four fixed documents: the signup form, the
// email-sent acknowledgment, the login form, and the success page.
//
//go:embed all:static
var staticFS embed.FS

// FS returns the embedded filesystem containing the static pages, rooted at
// the static directory.
func FS() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}
