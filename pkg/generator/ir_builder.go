package generator

import (
	"fmt"
	"regexp"

	"github.com/veeq-ai/docs-gen/pkg/catalog"
	"github.com/veeq-ai/docs-gen/pkg/config"
	"github.com/veeq-ai/docs-gen/pkg/ir"
	"github.com/veeq-ai/docs-gen/pkg/utils"
)

// DefaultClientName is the SDK class name used when a target does not set one
const DefaultClientName = "VeeqAI"

// InputFromConfig derives document metadata from cfg
func InputFromConfig(cfg *config.Config) IRInput {
	return IRInput{
		BaseURL: cfg.BaseURL,
		Info: ir.IRInfo{
			Title:       cfg.Title,
			Version:     cfg.Version,
			Description: "Veeq AI music and speech generation API",
			ClientName:  DefaultClientName,
			Contact: ir.IRContact{
				Name:  "Veeq AI",
				Email: "support@veeq.ai",
				URL:   "https://veeq.ai",
			},
		},
	}
}

// IRInput carries the document-level values that do not come from the catalog
type IRInput struct {
	BaseURL string
	Info    ir.IRInfo
}

// DefaultInput is the metadata used when no config file is involved
func DefaultInput() IRInput {
	cfg := &config.Config{BaseURL: config.DefaultBaseURL, Title: "Veeq AI API", Version: "1.0.0"}
	return InputFromConfig(cfg)
}

// BuildIR groups catalog endpoints into services, one per category in catalog order
func BuildIR(endpoints []catalog.Endpoint, in IRInput) ir.IR {
	servicesMap := map[string]*ir.IRService{}
	order := catalog.Categories(endpoints)
	for _, c := range order {
		servicesMap[c] = &ir.IRService{Tag: c, Title: utils.Title(c)}
	}

	for _, e := range endpoints {
		servicesMap[e.Category].Operations = append(servicesMap[e.Category].Operations, buildOperation(e))
	}

	result := ir.IR{Info: in.Info, BaseURL: in.BaseURL}
	for _, c := range order {
		result.Services = append(result.Services, *servicesMap[c])
	}
	return result
}

func buildOperation(e catalog.Endpoint) ir.IROperation {
	// Original tags are the category followed by free-text tags, so tag filters see both
	originalTags := make([]string, 0, len(e.Tags)+1)
	originalTags = append(originalTags, e.Category)
	originalTags = append(originalTags, e.Tags...)

	op := ir.IROperation{
		OperationID:  e.ID,
		MethodName:   e.MethodName(),
		Method:       e.Method,
		Path:         e.Path,
		Tag:          e.Category,
		Summary:      e.Title,
		Description:  e.Description,
		OriginalTags: originalTags,
		Auth:         e.Authentication,
		PathParams:   convertParams(e.ParamsIn(catalog.LocationPath)),
		QueryParams:  convertParams(e.ParamsIn(catalog.LocationQuery)),
		HeaderParams: convertParams(e.ParamsIn(catalog.LocationHeader)),
		BodyParams:   convertParams(e.ParamsIn(catalog.LocationBody)),
		Credits:      e.Credits,
		RateLimit:    e.RateLimit,
	}

	// Placeholders without a declared parameter still become path params
	declared := map[string]bool{}
	for _, p := range op.PathParams {
		declared[p.Name] = true
	}
	for _, name := range e.PathParamNames() {
		if !declared[name] {
			op.PathParams = append(op.PathParams, ir.IRParam{Name: name, Type: "string", Required: true})
		}
	}

	if rb := e.RequestBody; rb != nil {
		contentType := rb.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
		op.RequestBody = &ir.IRRequestBody{
			ContentType: contentType,
			Required:    rb.Required,
			SchemaName:  rb.Schema,
			Example:     rb.Example,
		}
	}

	for _, r := range e.Responses {
		op.Responses = append(op.Responses, ir.IRResponse{
			Status:      r.Status,
			Description: r.Description,
			Example:     r.Example,
		})
	}
	return op
}

func convertParams(params []catalog.Parameter) []ir.IRParam {
	if len(params) == 0 {
		return nil
	}
	out := make([]ir.IRParam, 0, len(params))
	for _, p := range params {
		out = append(out, ir.IRParam{
			Name:        p.Name,
			Type:        p.ValueType(),
			Required:    p.Required,
			Description: p.Description,
			Example:     p.Example,
			Enum:        p.Enum,
			Default:     p.Default,
		})
	}
	return out
}

// FilterIR filters the IR based on target configuration: the category
// selection first, then the include/exclude tag patterns.
func FilterIR(fullIR ir.IR, target config.Target) (ir.IR, error) {
	include, exclude, err := compileTagFilters(target.IncludeTags, target.ExcludeTags)
	if err != nil {
		return ir.IR{}, err
	}
	categories := categorySet(target.Categories)

	filteredServices := make([]ir.IRService, 0, len(fullIR.Services))
	for _, service := range fullIR.Services {
		if categories != nil && !categories[service.Tag] {
			continue
		}
		filteredOps := make([]ir.IROperation, 0, len(service.Operations))
		for _, op := range service.Operations {
			if shouldIncludeOperation(op.OriginalTags, include, exclude) {
				filteredOps = append(filteredOps, op)
			}
		}
		// Only include the service if it has at least one operation after filtering
		if len(filteredOps) > 0 {
			filteredService := service
			filteredService.Operations = filteredOps
			filteredServices = append(filteredServices, filteredService)
		}
	}

	info := fullIR.Info
	if target.ClientName != "" {
		info.ClientName = target.ClientName
	}
	return ir.IR{Info: info, BaseURL: fullIR.BaseURL, Services: filteredServices}, nil
}

// categorySet returns nil when every category is selected
func categorySet(categories []string) map[string]bool {
	if len(categories) == 0 {
		return nil
	}
	set := map[string]bool{}
	for _, c := range categories {
		if c == catalog.All {
			return nil
		}
		set[c] = true
	}
	return set
}

// compileTagFilters compiles regex patterns for tag filtering
func compileTagFilters(include, exclude []string) ([]*regexp.Regexp, []*regexp.Regexp, error) {
	inc := make([]*regexp.Regexp, 0, len(include))
	for _, p := range include {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid includeTags pattern %q: %w", p, err)
		}
		inc = append(inc, r)
	}
	exc := make([]*regexp.Regexp, 0, len(exclude))
	for _, p := range exclude {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid excludeTags pattern %q: %w", p, err)
		}
		exc = append(exc, r)
	}
	return inc, exc, nil
}

// shouldIncludeOperation determines if an operation should be included based on its original tags
func shouldIncludeOperation(originalTags []string, include, exclude []*regexp.Regexp) bool {
	// If no include patterns, assume all tags are initially included
	included := len(include) == 0

	// Operation is included if ANY of its tags match ANY include pattern
	for _, tag := range originalTags {
		if included {
			break
		}
		for _, r := range include {
			if r.MatchString(tag) {
				included = true
				break
			}
		}
	}

	if !included {
		return false
	}

	// Operation is excluded if ANY of its tags match ANY exclude pattern
	for _, tag := range originalTags {
		for _, r := range exclude {
			if r.MatchString(tag) {
				return false
			}
		}
	}

	return true
}
