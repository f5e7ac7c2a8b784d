package catalog

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"slices"
	"strings"

	"github.com/veeq-ai/docs-gen/pkg/errors"
)

// Report collects the problems found in a catalog. Errors make the catalog
// unusable for generation; Warnings are reported but tolerated.
type Report struct {
	Errors   []error
	Warnings []string
}

// Err joins the report's errors, or returns nil when there are none.
func (r Report) Err() error {
	return stderrors.Join(r.Errors...)
}

// Validate checks the invariants generators rely on: known methods, absolute
// paths, unique ids and parsable example JSON. Duplicate method+path pairs are
// only warnings.
func Validate(endpoints []Endpoint) Report {
	var r Report
	ids := map[string]bool{}
	routes := map[string]string{}

	for i, e := range endpoints {
		field := func(name string) string { return fmt.Sprintf("endpoints[%d].%s", i, name) }

		if e.ID == "" {
			r.Errors = append(r.Errors, errors.NewValidationError(field("id"), e.ID, "id is required"))
		} else if ids[e.ID] {
			r.Errors = append(r.Errors, errors.NewValidationError(field("id"), e.ID, "duplicate id"))
		}
		ids[e.ID] = true

		if !slices.Contains(Methods, strings.ToUpper(e.Method)) {
			r.Errors = append(r.Errors, errors.NewValidationError(field("method"), e.Method, "unsupported HTTP method"))
		}
		if !strings.HasPrefix(e.Path, "/") {
			r.Errors = append(r.Errors, errors.NewValidationError(field("path"), e.Path, "path must start with /"))
		}

		route := strings.ToUpper(e.Method) + " " + e.Path
		if prev, ok := routes[route]; ok {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s and %s share route %s", prev, e.ID, route))
		} else {
			routes[route] = e.ID
		}

		for _, name := range e.PathParamNames() {
			if !slices.ContainsFunc(e.Parameters, func(p Parameter) bool { return p.Name == name }) {
				r.Warnings = append(r.Warnings, fmt.Sprintf("%s: path placeholder %q has no parameter", e.ID, name))
			}
		}
		for j, p := range e.Parameters {
			if p.In == LocationPath && !slices.Contains(e.PathParamNames(), p.Name) {
				r.Errors = append(r.Errors, errors.NewValidationError(field(fmt.Sprintf("parameters[%d].in", j)), p.In, "path parameter missing from path template"))
			}
		}

		if e.RequestBody != nil {
			if err := checkJSON(e.RequestBody.Example); err != nil {
				r.Errors = append(r.Errors, &errors.ValidationError{Field: field("requestBody.example"), Message: "invalid JSON", Err: err})
			}
		}
		for j, resp := range e.Responses {
			if err := checkJSON(resp.Example); err != nil {
				r.Errors = append(r.Errors, &errors.ValidationError{Field: field(fmt.Sprintf("responses[%d].example", j)), Message: "invalid JSON", Err: err})
			}
		}
	}
	return r
}

func checkJSON(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var v any
	return json.Unmarshal([]byte(s), &v)
}
