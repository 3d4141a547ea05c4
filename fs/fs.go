// Package appfs embeds the static assets shipped with the binaries.
package appfs

import "embed"

// FS holds the database migrations and the e-mail templates.
//
//go:embed migrations templates
var FS embed.FS
