// Package static embeds the web service's static assets.
package static

import "embed"

//go:embed styles.css
var FS embed.FS
