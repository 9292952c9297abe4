// Package web holds the browser front end served at "/".
package web

import (
	"embed"
	"io/fs"
)

//go:embed public
var content embed.FS

func IndexHTML() ([]byte, error) {
	return content.ReadFile("public/index.html")
}

func Assets() (fs.FS, error) {
	return fs.Sub(content, "public/assets")
}
