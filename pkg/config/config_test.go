package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veeq-ai/docs-gen/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docsgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
baseURL: https://staging.veeq.ai/
targets:
  - type: sdk
    language: python
    outDir: ./out/sdk
  - type: postman
    outDir: /tmp/postman
    categories: [music]
    includeAuth: false
  - type: openapi
    outDir: /tmp/openapi
    format: yaml
    openapiVersion: 3.1.0
    exclude: [veeq-ai-openapi.json]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://staging.veeq.ai", cfg.BaseURL)
	assert.Equal(t, "Veeq AI API", cfg.Title)
	assert.Equal(t, "1.0.0", cfg.Version)
	require.Len(t, cfg.Targets, 3)

	assert.True(t, filepath.IsAbs(cfg.Targets[0].OutDir))
	assert.Equal(t, "sdk:python", cfg.Targets[0].Label())

	pm := cfg.Targets[1]
	assert.False(t, pm.AuthEnabled())
	assert.True(t, pm.ExamplesEnabled())
	assert.Equal(t, []string{"music"}, pm.Categories)

	oa := cfg.Targets[2]
	assert.Equal(t, "3.1.0", oa.OpenAPIVersion)
	assert.True(t, oa.SchemasEnabled())
	assert.True(t, oa.ShouldExcludeFile("/tmp/openapi/veeq-ai-openapi.json"))
	assert.False(t, oa.ShouldExcludeFile("/tmp/openapi/veeq-ai-openapi.yaml"))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VEEQ_DOCS_BASE_URL", "http://localhost:5000")
	t.Setenv("VEEQ_DOCS_OUT_DIR", "/tmp/env-out")

	path := writeConfig(t, `
targets:
  - type: openapi
    outDir: ./ignored
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.BaseURL)
	assert.Equal(t, "/tmp/env-out", cfg.Targets[0].OutDir)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"no targets":       "baseURL: https://api.veeq.ai\n",
		"missing out dir":  "targets:\n  - type: postman\n",
		"sdk w/o language": "targets:\n  - type: sdk\n    outDir: out\n",
		"unknown type":     "targets:\n  - type: graphql\n    outDir: out\n",
		"bad yaml":         "targets: [\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
			assert.True(t, errors.IsConfigError(err), err.Error())
		})
	}

	_, err := Load("/no/such/docsgen.yaml")
	assert.Error(t, err)
}

func TestShouldExcludeFile_Directory(t *testing.T) {
	target := Target{OutDir: "/out", ExcludeFiles: []string{"examples/"}}
	assert.True(t, target.ShouldExcludeFile("/out/examples/run.sh"))
	assert.False(t, target.ShouldExcludeFile("/out/veeq-ai-sdk.js"))
	assert.False(t, target.ShouldExcludeFile("/elsewhere/examples/run.sh"))
}

func TestNewServerConfig(t *testing.T) {
	cfg, err := NewServerConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, 1500*time.Millisecond, cfg.ExplorerDelay)

	t.Setenv("VEEQ_DOCS_EXPLORER_DELAY", "10ms")
	t.Setenv("VEEQ_DOCS_SERVER_ADDRESS", ":9999")
	cfg, err = NewServerConfig()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, cfg.ExplorerDelay)
	assert.Equal(t, ":9999", cfg.Address)
}
