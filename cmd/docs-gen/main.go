package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	cli "github.com/veeq-ai/docs-gen/internal/cli"
	"github.com/veeq-ai/docs-gen/pkg/config"
	"github.com/veeq-ai/docs-gen/pkg/explorer"
	"github.com/veeq-ai/docs-gen/pkg/generator"
	"github.com/veeq-ai/docs-gen/pkg/logging"
)

var (
	logLevel  string
	logFormat string
	envFiles  []string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := &cobra.Command{
		Use:               "docs-gen",
		Short:             "Generate SDKs, Postman collections and OpenAPI documents for the Veeq AI API",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to $LOG_LEVEL or info")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (auto, json, console); defaults to $LOG_FORMAT or auto")
	root.PersistentFlags().StringArrayVar(&envFiles, "env-file", []string{".env"}, "Environment files to load before reading VEEQ_DOCS_* variables")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newCatalogCmd())
	root.AddCommand(newExploreCmd())
	root.AddCommand(newServeCmd())

	if err := root.ExecuteContext(ctx); err != nil {
		logging.Default().Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// setup loads .env files and configures the default logger
func setup(_ *cobra.Command, _ []string) error {
	for _, f := range envFiles {
		// Missing files are fine; variables already set are kept
		_ = godotenv.Load(f)
	}

	cfg := logging.DefaultConfig()
	if logLevel != "" {
		cfg.Level = logLevel
	}
	if logFormat != "" {
		cfg.Format = logFormat
	}
	logging.Configure(cfg)
	return nil
}

func newGenerateCmd() *cobra.Command {
	var configPath string
	var target string
	var fb generator.FallbackOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate SDKs, Postman and OpenAPI artifacts",
		Example: `  docs-gen generate --config docsgen.yaml
  docs-gen generate --config docsgen.yaml --target sdk:python
  docs-gen generate --type sdk --language go --out ./sdk
  docs-gen generate --type openapi --format yaml --openapi-version 3.1.0 --out ./openapi`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunGenerate(cmd.Context(), *logging.Default(), cli.RunGenerateParams{
				ConfigPath:   configPath,
				SingleTarget: target,
				Fallback:     fb,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to docsgen.yaml config")
	cmd.Flags().StringVar(&target, "target", "", "Generate only the named target from config (name or type:language)")
	// Fallback single-target flags
	cmd.Flags().StringVar(&fb.Catalog, "catalog", "", "Endpoint catalog file (yaml/json); the built-in catalog when empty")
	cmd.Flags().StringVar(&fb.BaseURL, "base-url", "", "API base URL written into the artifacts")
	cmd.Flags().StringVar(&fb.Type, "type", "", "Target type (sdk, postman, openapi)")
	cmd.Flags().StringVar(&fb.Language, "language", "", "SDK language (javascript, python, php, curl, go, ruby)")
	cmd.Flags().StringVar(&fb.OutDir, "out", "", "Output directory")
	cmd.Flags().StringSliceVar(&fb.Categories, "category", nil, "Categories to include; all when empty")
	cmd.Flags().StringArrayVar(&fb.IncludeTags, "include-tags", nil, "Regex patterns for tags to include")
	cmd.Flags().StringArrayVar(&fb.ExcludeTags, "exclude-tags", nil, "Regex patterns for tags to exclude")
	cmd.Flags().StringVar(&fb.OpenAPIVersion, "openapi-version", "", "OpenAPI version (3.0.3, 3.1.0)")
	cmd.Flags().StringVar(&fb.Format, "format", "", "OpenAPI format (json, yaml)")

	return cmd
}

func newValidateCmd() *cobra.Command {
	var input string
	var catalogPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an OpenAPI document or an endpoint catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case catalogPath != "":
				return cli.RunValidateCatalog(cmd.OutOrStdout(), catalogPath)
			case input != "":
				return cli.RunValidateSpec(cmd.Context(), cmd.OutOrStdout(), input)
			}
			return fmt.Errorf("one of --input or --catalog is required")
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "OpenAPI document (yaml/json file or URL)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Endpoint catalog file (yaml/json)")
	cmd.MarkFlagsMutuallyExclusive("input", "catalog")
	return cmd
}

func newCatalogCmd() *cobra.Command {
	var p cli.RunCatalogParams
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List catalog endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunCatalog(cmd.OutOrStdout(), p)
		},
	}
	cmd.Flags().StringVar(&p.Catalog, "catalog", "", "Endpoint catalog file; the built-in catalog when empty")
	cmd.Flags().StringVar(&p.Category, "category", "", "Category to list; all when empty")
	cmd.Flags().StringVarP(&p.Query, "search", "s", "", "Search title, description and path")
	cmd.Flags().StringVarP(&p.Output, "output", "o", cli.OutputTable, "Output format (table, json, yaml)")
	return cmd
}

func newExploreCmd() *cobra.Command {
	var p cli.RunExploreParams
	cmd := &cobra.Command{
		Use:   "explore <endpoint-id>",
		Short: "Print a request snippet for an endpoint and optionally run it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.ID = args[0]
			if p.Token == "" {
				p.Token = os.Getenv(config.EnvPrefix + "TOKEN")
			}
			return cli.RunExplore(cmd.Context(), cmd.OutOrStdout(), p)
		},
	}
	cmd.Flags().StringVar(&p.Catalog, "catalog", "", "Endpoint catalog file; the built-in catalog when empty")
	cmd.Flags().StringVarP(&p.Language, "language", "l", "curl", "Snippet language (curl, javascript, python)")
	cmd.Flags().StringVar(&p.Token, "token", "", "Bearer token; defaults to $VEEQ_DOCS_TOKEN")
	cmd.Flags().StringVar(&p.BaseURL, "base-url", "", "API base URL")
	cmd.Flags().BoolVarP(&p.Execute, "execute", "x", false, "Run the request")
	cmd.Flags().BoolVar(&p.Live, "live", false, "Send the request to --base-url instead of answering canned responses")
	cmd.Flags().DurationVar(&p.Delay, "delay", explorer.DefaultDelay, "Simulated latency of canned responses")
	return cmd
}

func newServeCmd() *cobra.Command {
	var address string
	var delay time.Duration
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog, downloads, API explorer and Swagger UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewServerConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("address") {
				cfg.Address = address
			}
			if cmd.Flags().Changed("delay") {
				cfg.ExplorerDelay = delay
			}
			logging.Configure(cli.ServeLogConfig(cfg, logLevel, logFormat))
			return cli.RunServe(cmd.Context(), *logging.Default(), cfg)
		},
	}
	cmd.Flags().StringVar(&address, "address", ":8080", "Listen address; defaults to $VEEQ_DOCS_SERVER_ADDRESS")
	cmd.Flags().DurationVar(&delay, "delay", explorer.DefaultDelay, "Explorer latency; defaults to $VEEQ_DOCS_EXPLORER_DELAY")
	return cmd
}
