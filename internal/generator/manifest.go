package generator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-checklist/internal/identity"
	"github.com/goliatone/go-checklist/internal/markdown"
	"github.com/goliatone/go-checklist/internal/templates"
)

// ErrManifestInvalid wraps schema violations of a generated web manifest.
var ErrManifestInvalid = errors.New("generator: web manifest failed schema validation")

const shortNameLimit = 45

// WebManifest is the installable app manifest written beside each page.
// Field order is fixed so repeated builds produce identical bytes.
type WebManifest struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description,omitempty"`
	StartURL        string         `json:"start_url"`
	Scope           string         `json:"scope"`
	Display         string         `json:"display"`
	ThemeColor      string         `json:"theme_color,omitempty"`
	BackgroundColor string         `json:"background_color,omitempty"`
	Icons           []ManifestIcon `json:"icons"`
}

// ManifestIcon references an image copied into the output directory.
type ManifestIcon struct {
	Src   string `json:"src"`
	Type  string `json:"type"`
	Sizes string `json:"sizes,omitempty"`
}

func buildWebManifest(job variantJob, fm markdown.FrontMatter, cfg ManifestConfig, logo *logoAsset) WebManifest {
	display := strings.TrimSpace(cfg.Display)
	if display == "" {
		display = "standalone"
	}

	manifest := WebManifest{
		ID:              identity.ChecklistUUID(job.key).String(),
		Name:            fm.Title,
		ShortName:       truncateRunes(fm.Title, shortNameLimit),
		Description:     fm.Description,
		StartURL:        "./" + path.Base(job.pageName),
		Scope:           "./",
		Display:         display,
		ThemeColor:      strings.TrimSpace(cfg.ThemeColor),
		BackgroundColor: strings.TrimSpace(cfg.BackgroundColor),
		Icons:           []ManifestIcon{},
	}
	if logo != nil {
		depth := strings.Count(job.pageName, "/")
		manifest.Icons = append(manifest.Icons, ManifestIcon{
			Src:   strings.Repeat("../", depth) + logo.Name,
			Type:  logo.MIME,
			Sizes: "any",
		})
	}
	return manifest
}

// encodeWebManifest marshals the manifest and validates it against the
// embedded schema.
func encodeWebManifest(manifest WebManifest) ([]byte, error) {
	payload, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	payload = append(payload, '\n')
	if err := validateWebManifest(payload); err != nil {
		return nil, err
	}
	return payload, nil
}

var (
	manifestSchemaOnce sync.Once
	manifestSchema     *jsonschema.Schema
	manifestSchemaErr  error
)

func compiledManifestSchema() (*jsonschema.Schema, error) {
	manifestSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(templates.ManifestSchemaName, bytes.NewReader(templates.ManifestSchema())); err != nil {
			manifestSchemaErr = err
			return
		}
		manifestSchema, manifestSchemaErr = compiler.Compile(templates.ManifestSchemaName)
	})
	return manifestSchema, manifestSchemaErr
}

func validateWebManifest(payload []byte) error {
	schema, err := compiledManifestSchema()
	if err != nil {
		return fmt.Errorf("compile manifest schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("decode manifest: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("%w: %s", ErrManifestInvalid, strings.Join(collectSchemaIssues(validationErr), "; "))
		}
		return fmt.Errorf("%w: %v", ErrManifestInvalid, err)
	}
	return nil
}

func collectSchemaIssues(err *jsonschema.ValidationError) []string {
	var issues []string
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			location := strings.TrimSpace(node.InstanceLocation)
			if location == "" {
				location = "/"
			}
			issues = append(issues, location+": "+strings.TrimSpace(node.Message))
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}

func truncateRunes(value string, limit int) string {
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	runes := []rune(value)
	return strings.TrimSpace(string(runes[:limit]))
}
