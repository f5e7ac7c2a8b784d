// Package docsgen generates client SDKs, Postman collections and OpenAPI
// documents for the Veeq AI API from its endpoint catalog.
//
// Quick Start:
//
//	import docsgen "github.com/veeq-ai/docs-gen"
//
//	// Write the Python SDK
//	err := docsgen.GenerateSDK(ctx, "python", "./sdk")
//
// For more advanced usage, see the generator package.
package docsgen

import (
	"context"

	"github.com/veeq-ai/docs-gen/pkg/catalog"
	"github.com/veeq-ai/docs-gen/pkg/generator"
)

// GenerateSDK writes the SDK for one language into outDir.
//
// Supported languages are javascript, python, php, curl, go and ruby.
//
// Example:
//
//	err := docsgen.GenerateSDK(ctx, "go", "./veeq-go")
func GenerateSDK(ctx context.Context, language, outDir string) error {
	return generator.GenerateSDK(ctx, language, outDir)
}

// Generate writes artifacts with full configuration options.
//
// Example:
//
//	err := docsgen.Generate(ctx, docsgen.GenerateOptions{
//		Type:           "openapi",
//		OutDir:         "./openapi",
//		OpenAPIVersion: "3.1.0",
//		Format:         "yaml",
//		Categories:     []string{"music", "speech"},
//	})
func Generate(ctx context.Context, opts GenerateOptions) error {
	return generator.GenerateArtifacts(ctx, generator.GenerateArtifactsOptions{
		ConfigPath:     opts.ConfigPath,
		SingleTarget:   opts.SingleTarget,
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
	})
}

// GenerateFromConfig generates every target of a YAML configuration file.
// Optionally, you can name a single target (by name or type:language).
//
// Example:
//
//	// All targets
//	err := docsgen.GenerateFromConfig(ctx, "./docsgen.yaml")
//
//	// Only the Postman collection
//	err := docsgen.GenerateFromConfig(ctx, "./docsgen.yaml", "postman")
func GenerateFromConfig(ctx context.Context, configPath string, singleTarget ...string) error {
	return generator.GenerateFromConfig(ctx, configPath, singleTarget...)
}

// ValidateSpec validates an OpenAPI document file or URL.
func ValidateSpec(ctx context.Context, specPath string) error {
	return generator.ValidateSpec(ctx, specPath)
}

// Endpoints returns the built-in endpoint catalog
func Endpoints() []catalog.Endpoint {
	return catalog.Default()
}

// GenerateOptions contains options for artifact generation
type GenerateOptions struct {
	// ConfigPath is the path to the configuration file (optional)
	ConfigPath string

	// SingleTarget generates only the named target from config (optional)
	SingleTarget string

	// Fallback options when no config file is provided
	Catalog        string   // Catalog file; built-in catalog when empty
	BaseURL        string   // API base URL
	Type           string   // sdk, postman or openapi
	Language       string   // SDK language
	OutDir         string   // Output directory
	Categories     []string // Categories to include
	IncludeTags    []string // Regex patterns for tags to include
	ExcludeTags    []string // Regex patterns for tags to exclude
	OpenAPIVersion string   // 3.0.3 or 3.1.0
	Format         string   // json or yaml
}
