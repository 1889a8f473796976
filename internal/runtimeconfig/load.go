package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName = "checklists"
	envPrefix  = "CHECKLISTS"
)

// Load reads configuration from path, or from checklists.{yaml,json,toml} in
// the working directory or ./config when path is empty. A missing implicit
// config file is not an error. Environment variables prefixed with
// CHECKLISTS_ override file values (CHECKLISTS_BUILD_OUTPUT_DIR, ...).
func Load(path string) (Config, error) {
	return load(viper.New(), path)
}

func load(v *viper.Viper, path string) (Config, error) {
	defaults := DefaultConfig()
	setDefaults(v, defaults)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("checklist config: read %s: %w", displayPath(path), err)
		}
	}

	cfg := Config{
		Build: BuildConfig{
			RootDir:      v.GetString("build.root_dir"),
			OutputDir:    v.GetString("build.output_dir"),
			TemplatePath: v.GetString("build.template_path"),
			LogoPath:     v.GetString("build.logo_path"),
			Variants:     defaults.Build.Variants,
		},
		Manifest: ManifestConfig{
			Enabled:         v.GetBool("manifest.enabled"),
			Display:         v.GetString("manifest.display"),
			ThemeColor:      v.GetString("manifest.theme_color"),
			BackgroundColor: v.GetString("manifest.background_color"),
		},
		Watch: WatchConfig{
			Paths:    v.GetStringSlice("watch.paths"),
			Command:  v.GetStringSlice("watch.command"),
			Debounce: v.GetDuration("watch.debounce"),
		},
		Dispatch: DispatchConfig{
			Scheme:        v.GetString("dispatch.scheme"),
			LogFile:       v.GetString("dispatch.log_file"),
			HelperProcess: v.GetString("dispatch.helper_process"),
			HelperBundle:  v.GetString("dispatch.helper_bundle"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}

	// Variants have no default registered with viper so Get only reports
	// values coming from a config file.
	if v.Get("build.variants") != nil {
		var variants []VariantConfig
		if err := v.UnmarshalKey("build.variants", &variants); err != nil {
			return Config{}, fmt.Errorf("checklist config: decode build.variants: %w", err)
		}
		cfg.Build.Variants = variants
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("build.root_dir", cfg.Build.RootDir)
	v.SetDefault("build.output_dir", cfg.Build.OutputDir)
	v.SetDefault("build.template_path", cfg.Build.TemplatePath)
	v.SetDefault("build.logo_path", cfg.Build.LogoPath)
	v.SetDefault("manifest.enabled", cfg.Manifest.Enabled)
	v.SetDefault("manifest.display", cfg.Manifest.Display)
	v.SetDefault("manifest.theme_color", cfg.Manifest.ThemeColor)
	v.SetDefault("manifest.background_color", cfg.Manifest.BackgroundColor)
	v.SetDefault("watch.paths", cfg.Watch.Paths)
	v.SetDefault("watch.command", cfg.Watch.Command)
	v.SetDefault("watch.debounce", cfg.Watch.Debounce)
	v.SetDefault("dispatch.scheme", cfg.Dispatch.Scheme)
	v.SetDefault("dispatch.log_file", cfg.Dispatch.LogFile)
	v.SetDefault("dispatch.helper_process", cfg.Dispatch.HelperProcess)
	v.SetDefault("dispatch.helper_bundle", cfg.Dispatch.HelperBundle)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
}

// ExpandHome replaces a leading "~/" with the current user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("checklist config: resolve home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Resolve joins a relative path onto the build root directory.
func (c BuildConfig) Resolve(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	root := strings.TrimSpace(c.RootDir)
	if root == "" {
		root = "."
	}
	return filepath.Join(root, path)
}

func displayPath(path string) string {
	if path == "" {
		return configName
	}
	return path
}
