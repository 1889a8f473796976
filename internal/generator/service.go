package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-checklist/internal/logging"
	"github.com/goliatone/go-checklist/internal/markdown"
	"github.com/goliatone/go-checklist/internal/templates"
	"github.com/goliatone/go-checklist/pkg/interfaces"
)

var (
	// ErrNoVariants indicates the generator was configured without checklists.
	ErrNoVariants = errors.New("generator: no checklist variants configured")
	// ErrUnknownVariant is returned when BuildOptions names a variant that is not configured.
	ErrUnknownVariant = errors.New("generator: unknown checklist variant")
)

// Service describes the checklist builder contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// Variant is one checklist page produced from a Markdown source.
type Variant struct {
	Name string
	// Source is the Markdown file path.
	Source string
	// Output is the page file name inside the output directory. Empty derives
	// it from the variant name.
	Output       string
	DefaultTitle string
}

// ManifestConfig controls the web app manifest written next to every page.
type ManifestConfig struct {
	Enabled         bool
	Display         string
	ThemeColor      string
	BackgroundColor string
}

// Config captures the builder inputs and output location.
type Config struct {
	OutputDir    string
	TemplatePath string
	LogoPath     string
	Variants     []Variant
	Manifest     ManifestConfig
}

// BuildOptions narrows the scope of a build run.
type BuildOptions struct {
	Variants []string
	DryRun   bool
}

// BuildResult reports what a build produced.
type BuildResult struct {
	PagesBuilt     int
	ManifestsBuilt int
	AssetsBuilt    int
	Variants       []string
	Rendered       []RenderedPage
	Written        []string
	Warnings       []string
	Duration       time.Duration
	DryRun         bool
}

// Dependencies lists the collaborators of the builder. Nil members fall back
// to the pongo2 renderer, the goldmark inline renderer, the filesystem writer
// and a no-op logger.
type Dependencies struct {
	Renderer interfaces.TemplateRenderer
	Inline   interfaces.InlineRenderer
	Writer   ArtifactWriter
	Logger   interfaces.Logger
}

// NewService wires a builder with the provided configuration and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	return &service{
		cfg:    cfg,
		deps:   deps,
		logger: logging.Ensure(deps.Logger),
		now:    time.Now,
	}
}

type service struct {
	cfg    Config
	deps   Dependencies
	logger interfaces.Logger
	now    func() time.Time
}

type variantJob struct {
	variant  Variant
	pageName string
	manifest string
	key      string
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := s.now()
	jobs, err := s.selectVariants(opts.Variants)
	if err != nil {
		return nil, err
	}
	if err := s.checkSources(jobs); err != nil {
		return nil, err
	}

	renderer, templateName := s.templateRenderer()
	result := &BuildResult{DryRun: opts.DryRun}

	logo, err := loadLogo(s.cfg.LogoPath)
	if err != nil {
		if !errors.Is(err, errLogoMissing) {
			return nil, err
		}
		warning := fmt.Sprintf("logo %s not found, pages are built without it", s.cfg.LogoPath)
		result.Warnings = append(result.Warnings, warning)
		s.logger.Warn("checklist.build.logo_missing", "path", s.cfg.LogoPath)
	}

	var (
		artifacts []WriteRequest
		loader    = markdown.NewLoader(nil)
	)
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, files, err := s.buildVariant(ctx, loader, renderer, templateName, job, logo)
		if err != nil {
			return nil, err
		}
		result.Variants = append(result.Variants, job.variant.Name)
		result.Rendered = append(result.Rendered, page)
		result.PagesBuilt++
		if page.Manifest != "" {
			result.ManifestsBuilt++
		}
		artifacts = append(artifacts, files...)
	}

	if logo != nil && s.cfg.Manifest.Enabled {
		artifacts = append(artifacts, logo.request())
		result.AssetsBuilt++
	}

	if opts.DryRun {
		result.Duration = s.now().Sub(start)
		s.logger.Info("checklist.build.dry_run", "pages", result.PagesBuilt, "manifests", result.ManifestsBuilt)
		return result, nil
	}

	writer := s.writer()
	if err := writer.EnsureDir(ctx, ""); err != nil {
		return result, fmt.Errorf("generator: create output dir %s: %w", s.cfg.OutputDir, err)
	}
	for _, artifact := range artifacts {
		if err := writer.WriteFile(ctx, artifact); err != nil {
			return result, fmt.Errorf("generator: write %s: %w", artifact.Path, err)
		}
		result.Written = append(result.Written, artifact.Path)
	}

	result.Duration = s.now().Sub(start)
	s.logger.Info("checklist.build.completed",
		"pages", result.PagesBuilt,
		"manifests", result.ManifestsBuilt,
		"assets", result.AssetsBuilt,
		"output_dir", s.cfg.OutputDir,
	)
	return result, nil
}

func (s *service) buildVariant(
	ctx context.Context,
	loader *markdown.Loader,
	renderer interfaces.TemplateRenderer,
	templateName string,
	job variantJob,
	logo *logoAsset,
) (RenderedPage, []WriteRequest, error) {
	started := s.now()
	logger := logging.WithVariantContext(s.logger, job.variant.Name, job.variant.Source, job.pageName)

	doc, err := loader.LoadFile(ctx, job.variant.Source, markdown.LoadOptions{
		Variant:      job.variant.Name,
		DefaultTitle: job.variant.DefaultTitle,
		Inline:       s.deps.Inline,
	})
	if err != nil {
		return RenderedPage{}, nil, err
	}
	logger.Debug("checklist.build.parsed", "items", len(doc.Items), "front_matter", doc.FrontMatter.Keys())

	var files []WriteRequest
	manifestName := ""
	if s.cfg.Manifest.Enabled {
		manifest := buildWebManifest(job, doc.FrontMatter, s.cfg.Manifest, logo)
		payload, err := encodeWebManifest(manifest)
		if err != nil {
			return RenderedPage{}, nil, fmt.Errorf("generator: %s manifest: %w", job.variant.Name, err)
		}
		manifestName = job.manifest
		files = append(files, newWriteRequest(manifestName, categoryManifest, "application/manifest+json", payload))
	}

	markup := renderChecklistMarkup(doc.Items)
	data := map[string]any{
		"title":        doc.FrontMatter.Title,
		"subtitle":     doc.FrontMatter.Subtitle,
		"description":  doc.FrontMatter.Description,
		"content":      templates.Safe(markup),
		"LogoBase64":   "",
		"logo_mime":    "",
		"manifest":     manifestLink(manifestName),
		"storage_key":  job.key,
		"item_count":   len(doc.Items),
		"variant":      job.variant.Name,
		"front_matter": doc.FrontMatter.Raw,
	}
	if logo != nil {
		data["LogoBase64"] = logo.Base64
		data["logo_mime"] = logo.MIME
	}

	html, err := renderer.Render(templateName, data)
	if err != nil {
		return RenderedPage{}, nil, fmt.Errorf("generator: render %s: %w", job.variant.Name, err)
	}
	if err := verifyChecklistMarkup(html, len(doc.Items)); err != nil {
		return RenderedPage{}, nil, fmt.Errorf("generator: %s: %w", job.pageName, err)
	}

	files = append([]WriteRequest{newWriteRequest(job.pageName, categoryPage, "text/html; charset=utf-8", []byte(html))}, files...)

	page := RenderedPage{
		Variant:   job.variant.Name,
		Source:    job.variant.Source,
		Output:    job.pageName,
		Manifest:  manifestName,
		HTML:      html,
		ItemCount: len(doc.Items),
		Checksum:  computeHashFromString(html),
		Duration:  s.now().Sub(started),
	}
	logger.Info("checklist.build.rendered", "items", page.ItemCount, "checksum", page.Checksum)
	return page, files, nil
}

func (s *service) selectVariants(names []string) ([]variantJob, error) {
	if len(s.cfg.Variants) == 0 {
		return nil, ErrNoVariants
	}

	wanted := map[string]bool{}
	for _, name := range names {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			wanted[name] = false
		}
	}

	jobs := make([]variantJob, 0, len(s.cfg.Variants))
	for _, variant := range s.cfg.Variants {
		key := strings.ToLower(strings.TrimSpace(variant.Name))
		if len(wanted) > 0 {
			if _, ok := wanted[key]; !ok {
				continue
			}
			wanted[key] = true
		}
		job, err := newVariantJob(variant)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	for name, found := range wanted {
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrUnknownVariant, name)
		}
	}
	return jobs, nil
}

func newVariantJob(variant Variant) (variantJob, error) {
	key, err := slug.Normalize(variant.Name)
	if err != nil || key == "" {
		return variantJob{}, fmt.Errorf("generator: variant %q: cannot derive slug: %w", variant.Name, errOrEmpty(err))
	}
	pageName, err := pageFileName(variant.Output, key)
	if err != nil {
		return variantJob{}, fmt.Errorf("generator: variant %q: %w", variant.Name, err)
	}
	return variantJob{
		variant:  variant,
		pageName: pageName,
		manifest: manifestFileName(pageName),
		key:      key,
	}, nil
}

// checkSources verifies every input exists before anything is parsed or
// written, so a missing file never leaves a half-built output directory.
func (s *service) checkSources(jobs []variantJob) error {
	var missing []string
	for _, job := range jobs {
		if !fileExists(job.variant.Source) {
			missing = append(missing, job.variant.Source)
		}
	}
	if path := strings.TrimSpace(s.cfg.TemplatePath); path != "" && !fileExists(path) {
		missing = append(missing, path)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", markdown.ErrSourceMissing, strings.Join(missing, ", "))
	}
	return nil
}

func (s *service) templateRenderer() (interfaces.TemplateRenderer, string) {
	name := templates.DefaultTemplateName
	path := strings.TrimSpace(s.cfg.TemplatePath)
	if path != "" {
		name = filepath.Base(path)
	}
	if s.deps.Renderer != nil {
		return s.deps.Renderer, name
	}
	if path != "" {
		return templates.NewRenderer(os.DirFS(filepath.Dir(path))), name
	}
	return templates.NewRenderer(nil), name
}

func (s *service) writer() ArtifactWriter {
	if s.deps.Writer != nil {
		return s.deps.Writer
	}
	return NewFileSystemWriter(s.cfg.OutputDir)
}

// Clean removes the files a full build writes and leaves anything else in
// the output directory untouched.
func (s *service) Clean(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	jobs, err := s.selectVariants(nil)
	if err != nil {
		return err
	}

	targets := make([]string, 0, len(jobs)*2+1)
	for _, job := range jobs {
		targets = append(targets, job.pageName, job.manifest)
	}
	if logo := strings.TrimSpace(s.cfg.LogoPath); logo != "" && s.cfg.Manifest.Enabled {
		targets = append(targets, filepath.Base(logo))
	}

	writer := s.writer()
	removed := 0
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		ok, err := writer.Remove(ctx, target)
		if err != nil {
			return fmt.Errorf("generator: remove %s: %w", target, err)
		}
		if ok {
			removed++
			s.logger.Debug("checklist.clean.removed", "path", target)
		}
	}
	s.logger.Info("checklist.clean.completed", "removed", removed, "output_dir", s.cfg.OutputDir)
	return nil
}

func manifestLink(name string) string {
	if name == "" {
		return ""
	}
	return filepath.ToSlash(filepath.Base(name))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func errOrEmpty(err error) error {
	if err != nil {
		return err
	}
	return errors.New("empty slug")
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func computeHashFromString(content string) string {
	return computeHash([]byte(content))
}
