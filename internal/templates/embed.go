package templates

import "embed"

// TemplateFS holds the embedded experiment templates.
//
//go:embed minimal standard sweep
var TemplateFS embed.FS
