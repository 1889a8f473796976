package buildcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-checklist/internal/generator"
)

const (
	buildChecklistsMessageType = "checklist.build"
	cleanOutputMessageType     = "checklist.clean"
)

// ResultCallback receives build results produced by generator operations. It
// is optional and invoked synchronously once a BuildResult is available.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of a build command.
type ResultEnvelope struct {
	Result   *generator.BuildResult
	Metadata map[string]any
}

// BuildChecklistsCommand renders the configured checklist pages.
type BuildChecklistsCommand struct {
	Variants       []string       `json:"variants,omitempty"`
	DryRun         bool           `json:"dry_run,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildChecklistsCommand) Type() string { return buildChecklistsMessageType }

// Validate rejects blank variant names.
func (m BuildChecklistsCommand) Validate() error {
	errs := validation.Errors{}
	for _, variant := range m.Variants {
		if strings.TrimSpace(variant) == "" {
			errs["variants"] = validation.NewError("checklist.build.variant_invalid", "variants must not contain empty values")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CleanOutputCommand removes generated checklist artifacts.
type CleanOutputCommand struct{}

// Type implements command.Message.
func (CleanOutputCommand) Type() string { return cleanOutputMessageType }

// Validate satisfies command.Message; the command carries no input.
func (CleanOutputCommand) Validate() error { return nil }
