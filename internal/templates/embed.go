// Package templates renders checklist pages with pongo2 and ships the default
// page template and the web manifest schema inside the binary.
package templates

import (
	"embed"
	"io/fs"
)

const (
	DefaultTemplateName = "template.html"
	ManifestSchemaName  = "manifest.schema.json"
)

//go:embed files
var embedded embed.FS

// Files exposes the embedded assets rooted at their directory.
func Files() fs.FS {
	sub, err := fs.Sub(embedded, "files")
	if err != nil {
		panic(err)
	}
	return sub
}

// DefaultTemplate returns the embedded page template source.
func DefaultTemplate() string {
	data, err := fs.ReadFile(Files(), DefaultTemplateName)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// ManifestSchema returns the JSON schema web manifests are validated against.
func ManifestSchema() []byte {
	data, err := fs.ReadFile(Files(), ManifestSchemaName)
	if err != nil {
		panic(err)
	}
	return data
}
