package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veeq-ai/docs-gen/pkg/config"
	"github.com/veeq-ai/docs-gen/pkg/errors"
	"github.com/veeq-ai/docs-gen/pkg/logging"
)

func testService(buf *bytes.Buffer) *Service {
	return NewService(WithLogger(logging.New(buf)))
}

func TestRegistry(t *testing.T) {
	s := NewService()
	assert.Equal(t, []string{"openapi", "postman", "sdk"}, s.GetRegistry().GetAvailableTypes())

	gen, ok := s.GetRegistry().Get("postman")
	require.True(t, ok)
	assert.Equal(t, "postman", gen.GetType())
}

func TestRender_UnknownType(t *testing.T) {
	_, err := RenderDefault(config.Target{Type: "grpc"})
	require.Error(t, err)
	assert.True(t, errors.IsUnsupported(err))
	assert.Contains(t, err.Error(), "grpc")
}

func TestRender_UnsupportedLanguage(t *testing.T) {
	_, err := RenderDefault(config.Target{Type: config.TypeSDK, Language: "cobol"})
	assert.True(t, errors.IsUnsupported(err))
}

func TestGenerateFromConfig_WritesFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Targets: []config.Target{
			{Type: config.TypeSDK, Language: "python", OutDir: filepath.Join(dir, "sdk")},
			{
				Type:         config.TypePostman,
				OutDir:       filepath.Join(dir, "postman"),
				Categories:   []string{"music"},
				ExcludeFiles: []string{"veeq-ai-environment.json"},
			},
			{Type: config.TypeOpenAPI, OutDir: filepath.Join(dir, "openapi"), Format: "yaml"},
		},
	}
	require.NoError(t, cfg.Normalize())

	var logs bytes.Buffer
	require.NoError(t, testService(&logs).GenerateFromConfig(context.Background(), cfg, ""))

	assert.FileExists(t, filepath.Join(dir, "sdk", "veeq-ai-sdk.py"))
	assert.FileExists(t, filepath.Join(dir, "postman", "veeq-ai-postman-collection.json"))
	assert.NoFileExists(t, filepath.Join(dir, "postman", "veeq-ai-environment.json"))
	assert.FileExists(t, filepath.Join(dir, "openapi", "veeq-ai-openapi.yaml"))

	data, err := os.ReadFile(filepath.Join(dir, "postman", "veeq-ai-postman-collection.json"))
	require.NoError(t, err)
	var collection struct {
		Item []struct {
			Name string `json:"name"`
		} `json:"item"`
	}
	require.NoError(t, json.Unmarshal(data, &collection))
	require.Len(t, collection.Item, 1)
	assert.Equal(t, "Music", collection.Item[0].Name)

	assert.Contains(t, logs.String(), "wrote artifact")
	assert.Contains(t, logs.String(), "sdk:python")
}

func TestGenerateFromConfig_SingleTarget(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Targets: []config.Target{
			{Type: config.TypeSDK, Language: "go", OutDir: filepath.Join(dir, "go")},
			{Type: config.TypeSDK, Language: "ruby", Name: "ruby-sdk", OutDir: filepath.Join(dir, "ruby")},
		},
	}
	require.NoError(t, cfg.Normalize())
	s := testService(&bytes.Buffer{})

	require.NoError(t, s.GenerateFromConfig(context.Background(), cfg, "ruby-sdk"))
	assert.FileExists(t, filepath.Join(dir, "ruby", "veeq-ai-sdk.rb"))
	assert.NoDirExists(t, filepath.Join(dir, "go"))

	require.NoError(t, s.GenerateFromConfig(context.Background(), cfg, "sdk:go"))
	assert.FileExists(t, filepath.Join(dir, "go", "veeq-ai-sdk.go"))

	err := s.GenerateFromConfig(context.Background(), cfg, "sdk:php")
	assert.True(t, errors.IsNotFound(err))
}

func TestGenerateFromConfig_Canceled(t *testing.T) {
	cfg := &config.Config{
		Targets: []config.Target{{Type: config.TypePostman, OutDir: t.TempDir()}},
	}
	require.NoError(t, cfg.Normalize())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := testService(&bytes.Buffer{}).GenerateFromConfig(ctx, cfg, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerate_Fallback(t *testing.T) {
	dir := t.TempDir()
	err := GenerateArtifacts(context.Background(), GenerateArtifactsOptions{
		Type:   config.TypeOpenAPI,
		OutDir: dir,
	})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "veeq-ai-openapi.json"))

	require.NoError(t, ValidateSpec(context.Background(), filepath.Join(dir, "veeq-ai-openapi.json")))

	err = GenerateArtifacts(context.Background(), GenerateArtifactsOptions{Type: config.TypeOpenAPI})
	assert.Error(t, err, "out dir is required without a config file")
}

func TestLoadCatalog_Missing(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "load catalog")
}
