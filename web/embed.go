// Package web holds the embedded HTML templates served by the portal.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
