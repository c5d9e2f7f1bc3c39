// Package web embeds the page, its fragment templates and static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static index.html
var content embed.FS

// TemplatesRoot is the directory fragments are loaded from inside FS.
const TemplatesRoot = "templates"

func FS() fs.FS {
	return content
}

// Static returns the static asset tree rooted at its own directory.
func Static() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
