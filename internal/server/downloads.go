package server

import (
	"fmt"
	"sort"

	"github.com/veeq-ai/docs-gen/pkg/catalog"
	"github.com/veeq-ai/docs-gen/pkg/config"
	"github.com/veeq-ai/docs-gen/pkg/errors"
	"github.com/veeq-ai/docs-gen/pkg/generator"
	"github.com/veeq-ai/docs-gen/pkg/generator/openapi"
	"github.com/veeq-ai/docs-gen/pkg/generator/sdk"
	"github.com/veeq-ai/docs-gen/pkg/ir"
)

// Downloads holds every artifact the documentation center offers
type Downloads struct {
	files map[string]ir.Artifact
	names []string
}

// downloadTargets are the buttons of the downloads page
func downloadTargets() []config.Target {
	var targets []config.Target
	for _, lang := range sdk.Languages() {
		targets = append(targets, config.Target{Type: config.TypeSDK, Language: lang})
	}
	return append(targets,
		config.Target{Type: config.TypePostman},
		config.Target{Type: config.TypeOpenAPI, Format: openapi.FormatJSON},
		config.Target{Type: config.TypeOpenAPI, Format: openapi.FormatYAML},
	)
}

// BuildDownloads renders all download targets for endpoints
func BuildDownloads(endpoints []catalog.Endpoint, input generator.IRInput) (*Downloads, error) {
	fullIR := generator.BuildIR(endpoints, input)
	service := generator.NewService()

	d := &Downloads{files: map[string]ir.Artifact{}}
	for _, target := range downloadTargets() {
		artifacts, err := service.Render(target, fullIR)
		if err != nil {
			return nil, fmt.Errorf("render download %s: %w", target.Label(), err)
		}
		for _, a := range artifacts {
			d.files[a.Name] = a
			d.names = append(d.names, a.Name)
		}
	}
	sort.Strings(d.names)
	return d, nil
}

// Get returns the artifact called name
func (d *Downloads) Get(name string) (ir.Artifact, error) {
	a, ok := d.files[name]
	if !ok {
		return ir.Artifact{}, errors.NewNotFoundError("download", name)
	}
	return a, nil
}

// List returns the artifacts sorted by name
func (d *Downloads) List() []ir.Artifact {
	out := make([]ir.Artifact, 0, len(d.names))
	for _, n := range d.names {
		out = append(out, d.files[n])
	}
	return out
}
