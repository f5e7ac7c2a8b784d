package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	env "github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/veeq-ai/docs-gen/pkg/errors"
)

const (
	// DefaultBaseURL is the production API the generated artifacts point to
	DefaultBaseURL = "https://api.veeq.ai"
	// DevBaseURL is the local backend listed as the development server
	DevBaseURL = "http://localhost:5000"
	// EnvPrefix prefixes every environment override
	EnvPrefix = "VEEQ_DOCS_"
)

// Target types
const (
	TypeSDK     = "sdk"
	TypePostman = "postman"
	TypeOpenAPI = "openapi"
)

// Config represents the complete configuration for artifact generation
type Config struct {
	// Catalog is an optional catalog file; the built-in catalog is used when empty
	Catalog string   `yaml:"catalog"`
	BaseURL string   `yaml:"baseURL"`
	Title   string   `yaml:"title"`
	Version string   `yaml:"version"`
	Targets []Target `yaml:"targets"`
}

// Target represents configuration for a single generated artifact set
type Target struct {
	Type   string `yaml:"type"`
	Name   string `yaml:"name"`
	OutDir string `yaml:"outDir"`

	// Language selects the SDK flavour (javascript, python, php, curl, go, ruby)
	Language string `yaml:"language"`
	// ClientName is the generated SDK class/struct name
	ClientName string `yaml:"clientName"`

	// Categories selects catalog categories exactly; empty or "all" selects everything
	Categories  []string `yaml:"categories"`
	IncludeTags []string `yaml:"includeTags"`
	ExcludeTags []string `yaml:"excludeTags"`

	IncludeAuth     *bool `yaml:"includeAuth"`
	IncludeExamples *bool `yaml:"includeExamples"`
	IncludeSchemas  *bool `yaml:"includeSchemas"`

	// OpenAPIVersion is 3.0.3 or 3.1.0
	OpenAPIVersion string `yaml:"openapiVersion"`
	// Format is json or yaml
	Format string `yaml:"format"`

	// ExcludeFiles is a list of file paths (relative to outDir) that should not be written
	ExcludeFiles []string `yaml:"exclude"`
	// PreCommand runs in outDir before generation, e.g. ["rm", "-f", "veeq-ai-sdk.go"]
	PreCommand []string `yaml:"preCommand"`
	// PostCommand runs in outDir after generation, e.g. ["gofmt", "-w", "."]
	PostCommand []string `yaml:"postCommand"`
}

// Overrides are environment variables that take precedence over the config file
type Overrides struct {
	Catalog string `env:"CATALOG"`
	BaseURL string `env:"BASE_URL"`
	OutDir  string `env:"OUT_DIR"`
}

// ServerConfig configures the docs server
type ServerConfig struct {
	Address       string        `env:"SERVER_ADDRESS" envDefault:":8080"`
	BaseURL       string        `env:"BASE_URL" envDefault:"https://api.veeq.ai"`
	Catalog       string        `env:"CATALOG" envDefault:""`
	ExplorerDelay time.Duration `env:"EXPLORER_DELAY" envDefault:"1500ms"`
	// LogLevel and LogFormat override LOG_LEVEL / LOG_FORMAT for serve
	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`
}

// AuthEnabled reports whether bearer auth blocks are emitted (default true)
func (t *Target) AuthEnabled() bool { return boolOr(t.IncludeAuth, true) }

// ExamplesEnabled reports whether request/response examples are emitted (default true)
func (t *Target) ExamplesEnabled() bool { return boolOr(t.IncludeExamples, true) }

// SchemasEnabled reports whether component schemas are emitted (default true)
func (t *Target) SchemasEnabled() bool { return boolOr(t.IncludeSchemas, true) }

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// Bool returns a pointer to b, for building targets in code
func Bool(b bool) *bool { return &b }

// GetPreCommand returns the pre-generation command to execute.
func (t *Target) GetPreCommand() []string {
	return t.PreCommand
}

// GetPostCommand returns the post-generation command to execute.
func (t *Target) GetPostCommand() []string {
	return t.PostCommand
}

// Label names the target in logs and error messages.
func (t *Target) Label() string {
	if t.Name != "" {
		return t.Name
	}
	if t.Type == TypeSDK && t.Language != "" {
		return t.Type + ":" + t.Language
	}
	return t.Type
}

// ShouldExcludeFile checks if a file path should be excluded based on the ExcludeFiles list.
// targetPath should be an absolute path, and the comparison is done relative to OutDir.
func (t *Target) ShouldExcludeFile(targetPath string) bool {
	if len(t.ExcludeFiles) == 0 {
		return false
	}

	relPath, err := filepath.Rel(t.OutDir, targetPath)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)
	if relPath == "." {
		relPath = ""
	}

	for _, excludePattern := range t.ExcludeFiles {
		normalizedExclude := strings.TrimSuffix(filepath.ToSlash(excludePattern), "/")
		if relPath == normalizedExclude {
			return true
		}
		if normalizedExclude != "" && strings.HasPrefix(relPath, normalizedExclude+"/") {
			return true
		}
	}
	return false
}

// Load loads configuration from a YAML file and applies environment overrides
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.NewConfigError(path, "invalid YAML", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overlays VEEQ_DOCS_* environment variables onto the config
func (c *Config) ApplyEnv() error {
	var o Overrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix}); err != nil {
		return errors.NewConfigError("environment", "parse "+EnvPrefix+"* variables", err)
	}
	if o.Catalog != "" {
		c.Catalog = o.Catalog
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.OutDir != "" {
		for i := range c.Targets {
			c.Targets[i].OutDir = o.OutDir
		}
	}
	return nil
}

// Normalize fills defaults, validates targets and absolutizes paths
func (c *Config) Normalize() error {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Title == "" {
		c.Title = "Veeq AI API"
	}
	if c.Version == "" {
		c.Version = "1.0.0"
	}
	if len(c.Targets) == 0 {
		return errors.NewConfigError("targets", "must not be empty", nil)
	}
	for i := range c.Targets {
		t := &c.Targets[i]
		if t.Type == "" || t.OutDir == "" {
			return errors.NewConfigError(targetField(i), "missing required fields (type, outDir)", nil)
		}
		switch t.Type {
		case TypeSDK:
			if t.Language == "" {
				return errors.NewConfigError(targetField(i), "type sdk requires language", nil)
			}
		case TypePostman, TypeOpenAPI:
		default:
			return errors.NewConfigError(targetField(i), fmt.Sprintf("unknown type %q", t.Type), nil)
		}
		if !filepath.IsAbs(t.OutDir) {
			abs, _ := filepath.Abs(t.OutDir)
			t.OutDir = abs
		}
	}
	if c.Catalog != "" && !filepath.IsAbs(c.Catalog) {
		abs, _ := filepath.Abs(c.Catalog)
		c.Catalog = abs
	}
	return nil
}

func targetField(i int) string { return fmt.Sprintf("targets[%d]", i) }

// NewServerConfig reads the docs server configuration from the environment
func NewServerConfig() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.NewConfigError("environment", "parse "+EnvPrefix+"* variables", err)
	}
	return &cfg, nil
}
