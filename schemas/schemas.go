// Package schemas хранит JSON-схемы событий и тел запросов.
package schemas

import "embed"

//go:embed events requests
var SchemasFS embed.FS
