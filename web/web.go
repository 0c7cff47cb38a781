// Package web embeds the console's HTML templates.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
