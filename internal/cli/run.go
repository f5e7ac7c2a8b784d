// Package cli implements the docs-gen commands. The cobra wiring lives in
// cmd/docs-gen; every command here takes its parameters as a struct and
// writes its output to an io.Writer.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/veeq-ai/docs-gen/internal/server"
	"github.com/veeq-ai/docs-gen/pkg/catalog"
	"github.com/veeq-ai/docs-gen/pkg/config"
	"github.com/veeq-ai/docs-gen/pkg/explorer"
	"github.com/veeq-ai/docs-gen/pkg/generator"
	"github.com/veeq-ai/docs-gen/pkg/logging"
	"github.com/veeq-ai/docs-gen/pkg/openapi"
)

// RunGenerateParams are the generate command's inputs
type RunGenerateParams struct {
	ConfigPath   string
	SingleTarget string
	Fallback     generator.FallbackOptions
}

// RunGenerate writes artifacts for a config file, or for the single target
// described by the fallback flags.
func RunGenerate(ctx context.Context, logger zerolog.Logger, p RunGenerateParams) error {
	if p.ConfigPath == "" && (p.Fallback.Type == "" || p.Fallback.OutDir == "") {
		return errors.New("either --config or both --type and --out must be provided")
	}
	service := generator.NewService(generator.WithLogger(logger))
	return service.Generate(ctx, generator.GenerateOptions{
		ConfigPath:   p.ConfigPath,
		SingleTarget: p.SingleTarget,
		Fallback:     p.Fallback,
	})
}

// RunValidateSpec validates an OpenAPI document and prints its summary
func RunValidateSpec(ctx context.Context, w io.Writer, input string) error {
	doc, err := openapi.LoadDocument(ctx, input)
	if err != nil {
		return err
	}
	if err := doc.Validate(ctx); err != nil {
		return fmt.Errorf("%s is invalid: %w", input, err)
	}
	printSummary(w, openapi.Summarize(doc))
	return nil
}

// RunValidateCatalog validates a catalog file and prints its warnings
func RunValidateCatalog(w io.Writer, path string) error {
	endpoints, err := catalog.Load(path)
	if err != nil {
		return err
	}
	report := catalog.Validate(endpoints)
	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	fmt.Fprintf(w, "%s: %d endpoints in %d categories\n", path, len(endpoints), len(catalog.Categories(endpoints)))
	return nil
}

// RunCatalogParams are the catalog command's inputs
type RunCatalogParams struct {
	Catalog  string
	Category string
	Query    string
	// Output is table, json or yaml
	Output string
}

// RunCatalog lists the endpoints matching the category and search filters
func RunCatalog(w io.Writer, p RunCatalogParams) error {
	endpoints, err := generator.LoadCatalog(p.Catalog)
	if err != nil {
		return err
	}
	return printEndpoints(w, catalog.Filter(endpoints, p.Category, p.Query), p.Output)
}

// RunExploreParams are the explore command's inputs
type RunExploreParams struct {
	Catalog  string
	ID       string
	Language string
	Token    string
	BaseURL  string
	// Execute runs the request after printing the snippet
	Execute bool
	// Live sends the request to BaseURL instead of the mock executor
	Live  bool
	Delay time.Duration
}

// RunExplore prints the request snippet for an endpoint and optionally runs it
func RunExplore(ctx context.Context, w io.Writer, p RunExploreParams) error {
	endpoints, err := generator.LoadCatalog(p.Catalog)
	if err != nil {
		return err
	}
	e, err := catalog.Find(endpoints, p.ID)
	if err != nil {
		return err
	}

	lang := p.Language
	if lang == "" {
		lang = "curl"
	}
	snippet, err := explorer.Snippet(e, lang, explorer.SnippetOptions{BaseURL: p.BaseURL, Token: p.Token})
	if err != nil {
		return err
	}
	fmt.Fprintln(w, strings.TrimRight(snippet, "\n"))

	if !p.Execute {
		return nil
	}

	var executor explorer.Executor
	if p.Live {
		base := p.BaseURL
		if base == "" {
			base = config.DevBaseURL
		}
		executor = explorer.NewHTTPExecutor(base, nil)
	} else {
		executor = explorer.NewMockExecutor(explorer.WithDelay(p.Delay))
	}

	resp, err := executor.Execute(ctx, explorer.NewRequest(e, p.Token))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		fmt.Fprintln(w)
		return printJSON(w, explorer.ErrorBody(err))
	}
	fmt.Fprintf(w, "\n%d %s (%s)\n", resp.Status, http.StatusText(resp.Status), resp.Duration.Round(time.Millisecond))
	return printJSON(w, resp.Body)
}

// ServeLogConfig layers the server's VEEQ_DOCS_LOG_* settings over the
// LOG_* defaults. Non-empty level and format, from flags, win over both.
func ServeLogConfig(cfg *config.ServerConfig, level, format string) *logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = firstNonEmpty(level, cfg.LogLevel, lc.Level)
	lc.Format = firstNonEmpty(format, cfg.LogFormat, lc.Format)
	return lc
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// RunServe serves the documentation center until ctx is done
func RunServe(ctx context.Context, logger zerolog.Logger, cfg *config.ServerConfig) error {
	s, err := server.New(cfg, server.WithLogger(logger))
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info().Msg("shutting down docs server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}
