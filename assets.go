// Package prodmon provides the embedded dashboard page.
package prodmon

import "embed"

// StaticFS holds the page served at / and /static/ when HTTP_STATIC_DIR is
// not set. With HTTP_STATIC_DIR the same paths are served from disk instead.
//
//go:embed all:web/static
var StaticFS embed.FS
