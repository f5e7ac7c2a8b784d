package generator

import (
	"context"
	"path/filepath"

	"github.com/veeq-ai/docs-gen/pkg/catalog"
	"github.com/veeq-ai/docs-gen/pkg/config"
	"github.com/veeq-ai/docs-gen/pkg/ir"
	"github.com/veeq-ai/docs-gen/pkg/openapi"
)

// GenerateArtifacts is a convenience function for generating with minimal configuration
func GenerateArtifacts(ctx context.Context, opts GenerateArtifactsOptions) error {
	service := NewService()

	genOpts := GenerateOptions{
		ConfigPath:   opts.ConfigPath,
		SingleTarget: opts.SingleTarget,
		Fallback: FallbackOptions{
			Catalog:        opts.Catalog,
			BaseURL:        opts.BaseURL,
			Type:           opts.Type,
			Language:       opts.Language,
			OutDir:         opts.OutDir,
			Categories:     opts.Categories,
			IncludeTags:    opts.IncludeTags,
			ExcludeTags:    opts.ExcludeTags,
			OpenAPIVersion: opts.OpenAPIVersion,
			Format:         opts.Format,
		},
	}

	return service.Generate(ctx, genOpts)
}

// GenerateArtifactsOptions contains options for the convenience GenerateArtifacts function
type GenerateArtifactsOptions struct {
	// ConfigPath is the path to the configuration file (optional)
	ConfigPath string

	// SingleTarget generates only the named target from config (optional)
	SingleTarget string

	// Fallback options when no config file is provided
	Catalog        string   // Catalog file; built-in catalog when empty
	BaseURL        string   // API base URL
	Type           string   // Target type (sdk, postman, openapi)
	Language       string   // SDK language
	OutDir         string   // Output directory
	Categories     []string // Category selection
	IncludeTags    []string // Regex patterns for tags to include
	ExcludeTags    []string // Regex patterns for tags to exclude
	OpenAPIVersion string   // 3.0.3 or 3.1.0
	Format         string   // json or yaml
}

// GenerateSDK writes the SDK for one language into outDir
func GenerateSDK(ctx context.Context, language, outDir string) error {
	// Ensure absolute path for outDir
	absOutDir, err := filepath.Abs(outDir)
	if err != nil {
		return err
	}

	return GenerateArtifacts(ctx, GenerateArtifactsOptions{
		Type:     config.TypeSDK,
		Language: language,
		OutDir:   absOutDir,
	})
}

// GenerateFromConfig is a convenience function for generating from a config file
func GenerateFromConfig(ctx context.Context, configPath string, singleTarget ...string) error {
	service := NewService()
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	onlyTarget := ""
	if len(singleTarget) > 0 {
		onlyTarget = singleTarget[0]
	}

	return service.GenerateFromConfig(ctx, cfg, onlyTarget)
}

// RenderDefault renders target against the built-in catalog and default metadata
func RenderDefault(target config.Target) ([]ir.Artifact, error) {
	return NewService().Render(target, BuildIR(catalog.Default(), DefaultInput()))
}

// ValidateSpec validates an OpenAPI document file
func ValidateSpec(ctx context.Context, specPath string) error {
	return openapi.ValidateDocument(ctx, specPath)
}
