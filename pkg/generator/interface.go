package generator

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/veeq-ai/docs-gen/pkg/catalog"
	"github.com/veeq-ai/docs-gen/pkg/config"
	"github.com/veeq-ai/docs-gen/pkg/errors"
	"github.com/veeq-ai/docs-gen/pkg/generator/openapi"
	"github.com/veeq-ai/docs-gen/pkg/generator/postman"
	"github.com/veeq-ai/docs-gen/pkg/generator/sdk"
	"github.com/veeq-ai/docs-gen/pkg/ir"
	"github.com/veeq-ai/docs-gen/pkg/logging"
)

// Generator defines the interface for artifact generators
type Generator interface {
	// Generate renders the artifacts for one target from the given IR
	Generate(target config.Target, in ir.IR) ([]ir.Artifact, error)
	// GetType returns the target type this generator serves (e.g., "postman")
	GetType() string
}

// Registry manages available generators
type Registry struct {
	generators map[string]Generator
}

// NewRegistry creates a new generator registry
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]Generator),
	}
}

// Register adds a generator to the registry
func (r *Registry) Register(gen Generator) {
	r.generators[gen.GetType()] = gen
}

// Get retrieves a generator by type
func (r *Registry) Get(genType string) (Generator, bool) {
	gen, exists := r.generators[genType]
	return gen, exists
}

// GetAvailableTypes returns all registered generator types, sorted
func (r *Registry) GetAvailableTypes() []string {
	types := make([]string, 0, len(r.generators))
	for t := range r.generators {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// GenerateOptions contains options for artifact generation
type GenerateOptions struct {
	ConfigPath   string
	SingleTarget string
	Fallback     FallbackOptions
}

// FallbackOptions describe a single target when no config file is provided
type FallbackOptions struct {
	Catalog        string
	BaseURL        string
	Type           string
	Language       string
	OutDir         string
	Categories     []string
	IncludeTags    []string
	ExcludeTags    []string
	OpenAPIVersion string
	Format         string
}

// Service provides high-level generation functionality
type Service struct {
	registry *Registry
	logger   zerolog.Logger
}

// Option customizes a Service
type Option func(*Service)

// WithLogger sets the service logger
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a new generator service with default generators
func NewService(opts ...Option) *Service {
	registry := NewRegistry()
	registry.Register(sdk.NewGenerator())
	registry.Register(postman.NewGenerator())
	registry.Register(openapi.NewGenerator())
	return NewServiceWithRegistry(registry, opts...)
}

// NewServiceWithRegistry creates a new generator service with a custom registry
func NewServiceWithRegistry(registry *Registry, opts ...Option) *Service {
	s := &Service{
		registry: registry,
		logger:   *logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate generates artifacts based on the provided options
func (s *Service) Generate(ctx context.Context, opts GenerateOptions) error {
	var cfg *config.Config
	var err error

	if opts.ConfigPath == "" {
		if opts.Fallback.Type == "" || opts.Fallback.OutDir == "" {
			return fmt.Errorf("either config path or fallback type and out dir must be provided")
		}
		cfg = &config.Config{
			Catalog: opts.Fallback.Catalog,
			BaseURL: opts.Fallback.BaseURL,
			Targets: []config.Target{
				{
					Type:           opts.Fallback.Type,
					Language:       opts.Fallback.Language,
					OutDir:         opts.Fallback.OutDir,
					Categories:     opts.Fallback.Categories,
					IncludeTags:    opts.Fallback.IncludeTags,
					ExcludeTags:    opts.Fallback.ExcludeTags,
					OpenAPIVersion: opts.Fallback.OpenAPIVersion,
					Format:         opts.Fallback.Format,
				},
			},
		}
		if err := cfg.ApplyEnv(); err != nil {
			return err
		}
		if err := cfg.Normalize(); err != nil {
			return err
		}
	} else {
		cfg, err = config.Load(opts.ConfigPath)
		if err != nil {
			return err
		}
	}

	return s.GenerateFromConfig(ctx, cfg, opts.SingleTarget)
}

// GenerateFromConfig renders every configured target and writes its files
func (s *Service) GenerateFromConfig(ctx context.Context, cfg *config.Config, onlyTarget string) error {
	endpoints, err := LoadCatalog(cfg.Catalog)
	if err != nil {
		return err
	}

	fullIR := BuildIR(endpoints, InputFromConfig(cfg))

	matched := false
	for _, target := range cfg.Targets {
		if onlyTarget != "" && target.Label() != onlyTarget && target.Name != onlyTarget {
			continue
		}
		matched = true
		if err := ctx.Err(); err != nil {
			return err
		}

		log := s.logger.With().Str("target", target.Label()).Str("out_dir", target.OutDir).Logger()

		// Ensure output directory exists before pre-commands
		if err := os.MkdirAll(target.OutDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory for target %s: %w", target.Label(), err)
		}

		if err := s.executePreCommands(ctx, target); err != nil {
			return fmt.Errorf("pre-generation commands failed for target %s: %w", target.Label(), err)
		}

		artifacts, err := s.Render(target, fullIR)
		if err != nil {
			return err
		}

		for _, a := range artifacts {
			path := filepath.Join(target.OutDir, a.Name)
			if target.ShouldExcludeFile(path) {
				log.Debug().Str("file", a.Name).Msg("skipping excluded file")
				continue
			}
			if err := os.WriteFile(path, a.Content, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			log.Info().Str("file", a.Name).Int("bytes", len(a.Content)).Msg("wrote artifact")
		}

		if err := s.executePostGenCommands(ctx, target); err != nil {
			return fmt.Errorf("post-generation commands failed for target %s: %w", target.Label(), err)
		}
	}

	if onlyTarget != "" && !matched {
		return errors.NewNotFoundError("target", onlyTarget)
	}
	return nil
}

// Render filters the IR for target and renders its artifacts without touching disk
func (s *Service) Render(target config.Target, fullIR ir.IR) ([]ir.Artifact, error) {
	generator, exists := s.registry.Get(target.Type)
	if !exists {
		return nil, errors.NewUnsupportedError("target type", target.Type, s.registry.GetAvailableTypes()...)
	}

	filteredIR, err := FilterIR(fullIR, target)
	if err != nil {
		return nil, err
	}

	artifacts, err := generator.Generate(target, filteredIR)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", target.Label(), err)
	}
	return artifacts, nil
}

// GetRegistry returns the generator registry
func (s *Service) GetRegistry() *Registry {
	return s.registry
}

// executePreCommands executes the pre-generation command for a target
func (s *Service) executePreCommands(ctx context.Context, target config.Target) error {
	command := target.GetPreCommand()
	if len(command) == 0 {
		return nil
	}

	return s.executeCommand(ctx, command, target.OutDir, "pre-command")
}

// executePostGenCommands executes the post-generation command for a target
func (s *Service) executePostGenCommands(ctx context.Context, target config.Target) error {
	command := target.GetPostCommand()
	if len(command) == 0 {
		return nil
	}

	return s.executeCommand(ctx, command, target.OutDir, "post-command")
}

// executeCommand executes a single command in Docker Compose array format
func (s *Service) executeCommand(ctx context.Context, command []string, workDir, commandLabel string) error {
	if len(command) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = workDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	cmdDescription := strings.Join(command, " ")
	s.logger.Debug().Str("command", cmdDescription).Str("dir", workDir).Msg(commandLabel)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s (%s) failed: %w", commandLabel, cmdDescription, err)
	}

	return nil
}

// LoadCatalog reads the catalog file at path, or returns the built-in catalog when path is empty
func LoadCatalog(path string) ([]catalog.Endpoint, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	endpoints, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return endpoints, nil
}
