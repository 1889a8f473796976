package generator

import (
	"errors"
	"path"
	"path/filepath"
	"strings"
)

var errOutputEscapes = errors.New("output name must stay inside the output directory")

const (
	pageExtension     = ".html"
	manifestExtension = ".webmanifest"
)

// pageFileName returns the configured output name, or "<slug>.html".
func pageFileName(configured, key string) (string, error) {
	configured = strings.TrimSpace(filepath.ToSlash(configured))
	if configured == "" {
		return key + pageExtension, nil
	}
	clean := path.Clean(configured)
	if path.IsAbs(clean) || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", errOutputEscapes
	}
	return clean, nil
}

func manifestFileName(pageName string) string {
	return strings.TrimSuffix(pageName, path.Ext(pageName)) + manifestExtension
}

func joinOutputPath(base string, rel string) string {
	if strings.TrimSpace(base) == "" {
		return filepath.FromSlash(rel)
	}
	return filepath.Join(base, filepath.FromSlash(rel))
}
