// Package sdk renders client libraries for the Veeq AI API. One template per
// language is driven by the endpoint catalog, so every catalog change reaches
// all six SDKs.
package sdk

import (
	"bytes"
	"embed"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/veeq-ai/docs-gen/pkg/config"
	"github.com/veeq-ai/docs-gen/pkg/ir"
	"github.com/veeq-ai/docs-gen/pkg/utils"
)

//go:embed templates/*.gotmpl
var templatesFS embed.FS

// Generator implements the SDK target
type Generator struct{}

// NewGenerator creates a new SDK generator
func NewGenerator() *Generator {
	return &Generator{}
}

// GetType returns the generator type
func (g *Generator) GetType() string {
	return config.TypeSDK
}

// Generate renders the SDK for target.Language
func (g *Generator) Generate(target config.Target, in ir.IR) ([]ir.Artifact, error) {
	lang, err := Lookup(target.Language)
	if err != nil {
		return nil, err
	}
	a, err := Render(lang, in)
	if err != nil {
		return nil, err
	}
	return []ir.Artifact{a}, nil
}

// RenderAll renders every supported language, in Languages() order
func RenderAll(in ir.IR) ([]ir.Artifact, error) {
	var out []ir.Artifact
	for _, id := range Languages() {
		lang, _ := Lookup(id)
		a, err := Render(lang, in)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Render renders the SDK source for one language
func Render(lang Language, in ir.IR) (ir.Artifact, error) {
	tmpl, err := template.New(lang.Template).
		Funcs(sprig.TxtFuncMap()).
		Funcs(template.FuncMap{
			"str": lang.Quote,
		}).
		ParseFS(templatesFS, "templates/"+lang.Template)
	if err != nil {
		return ir.Artifact{}, fmt.Errorf("parse %s template: %w", lang.Name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, buildTemplateData(lang, in)); err != nil {
		return ir.Artifact{}, fmt.Errorf("render %s SDK: %w", lang.Name, err)
	}
	return ir.Artifact{
		Name:        lang.FileName,
		ContentType: lang.ContentType,
		Content:     buf.Bytes(),
	}, nil
}

type templateData struct {
	Title       string
	Version     string
	Description string
	BaseURL     string
	Client      string
	Operations  []operation
	Examples    []operation
}

type operation struct {
	Name        string
	Method      string
	Path        string
	Summary     string
	Description string
	Auth        bool
	Credits     string
	RateLimit   string

	Signature string
	PathExpr  string
	PathArgs  []pathArg
	Params    []param
	HasParams bool
	// QueryKeys lists parameters a body-carrying call still sends in the query string
	QueryKeys string
	SendsBody bool

	Var        string
	Example    string
	HasExample bool
	BodyJSON   string
}

type pathArg struct {
	Name    string
	Example string
}

type param struct {
	Name        string
	Type        string
	Required    bool
	Description string
	Enum        []string
	Default     string
}

func buildTemplateData(lang Language, in ir.IR) templateData {
	data := templateData{
		Title:       in.Info.Title,
		Version:     in.Info.Version,
		Description: oneLine(in.Info.Description),
		BaseURL:     in.BaseURL,
		Client:      in.Info.ClientName,
	}
	if data.BaseURL == "" {
		data.BaseURL = config.DefaultBaseURL
	}
	if data.Client == "" {
		data.Client = "VeeqAI"
	}
	if data.Title == "" {
		data.Title = "Veeq AI API"
	}

	for _, op := range in.Operations() {
		data.Operations = append(data.Operations, buildOperation(lang, op))
	}
	data.Examples = pickExamples(data.Operations)
	return data
}

func buildOperation(lang Language, op ir.IROperation) operation {
	o := operation{
		Name:        lang.MethodCase(op.MethodName),
		Method:      strings.ToUpper(op.Method),
		Path:        op.Path,
		Summary:     oneLine(op.Summary),
		Description: oneLine(op.Description),
		Auth:        op.Auth,
		Credits:     op.Credits,
		RateLimit:   op.RateLimit,
	}

	argNames := make([]string, 0, len(op.PathParams))
	for _, p := range op.PathParams {
		name := lang.ArgCase(p.Name)
		argNames = append(argNames, name)
		example := p.Example
		if example == "" {
			example = p.Name
		}
		o.PathArgs = append(o.PathArgs, pathArg{Name: name, Example: shellSafe(example)})
	}

	for _, p := range append(append([]ir.IRParam{}, op.QueryParams...), op.BodyParams...) {
		o.Params = append(o.Params, param{
			Name:        p.Name,
			Type:        lang.TypeOf(p.Type),
			Required:    p.Required,
			Description: sentence(p.Description),
			Enum:        p.Enum,
			Default:     p.Default,
		})
	}
	o.HasParams = len(o.Params) > 0 || op.RequestBody != nil
	sendsBody := o.Method != "GET" && o.Method != "DELETE"
	o.SendsBody = sendsBody && op.HasBody()

	if sendsBody && len(op.QueryParams) > 0 {
		keys := make([]any, 0, len(op.QueryParams))
		quoted := make([]string, 0, len(op.QueryParams))
		for _, p := range op.QueryParams {
			keys = append(keys, p.Name)
			quoted = append(quoted, strconv.Quote(p.Name))
		}
		if lang.ID == "go" {
			o.QueryKeys = strings.Join(quoted, ", ")
		} else {
			o.QueryKeys = lang.Literal(keys)
		}
	}

	o.Signature = lang.signature(append([]string(nil), argNames...), o.HasParams)

	segs := splitPath(op.Path, func(name string) string { return lang.ArgCase(name) })
	if lang.ID == "curl" {
		if qs := queryString(op); qs != "" {
			segs = append(segs, segment{Literal: qs})
		}
	}
	o.PathExpr = lang.pathExpr(segs)

	if v, ok := exampleParams(op); ok {
		o.Example = lang.Literal(v)
		o.HasExample = true
		o.BodyJSON = utils.ShellQuote(compactJSON(v))
	} else {
		o.BodyJSON = utils.ShellQuote("{}")
	}
	return o
}

var placeholder = regexp.MustCompile(`\{([^}]+)\}|:([A-Za-z_][A-Za-z0-9_]*)`)

// splitPath breaks a path template into literal and argument segments
func splitPath(path string, argName func(string) string) []segment {
	var segs []segment
	last := 0
	for _, m := range placeholder.FindAllStringSubmatchIndex(path, -1) {
		if m[0] > last {
			segs = append(segs, segment{Literal: path[last:m[0]]})
		}
		name := ""
		if m[2] >= 0 {
			name = path[m[2]:m[3]]
		} else {
			name = path[m[4]:m[5]]
		}
		segs = append(segs, segment{Arg: argName(name)})
		last = m[1]
	}
	if last < len(path) {
		segs = append(segs, segment{Literal: path[last:]})
	}
	return segs
}

// exampleParams builds the example argument of a call: the request body
// example when present, otherwise the parameters that carry examples.
func exampleParams(op ir.IROperation) (any, bool) {
	if op.RequestBody != nil && strings.TrimSpace(op.RequestBody.Example) != "" {
		if v, err := decodeOrdered(op.RequestBody.Example); err == nil {
			if _, isObj := v.(object); isObj {
				return v, true
			}
		}
	}
	obj := object{}
	for _, p := range append(append([]ir.IRParam{}, op.QueryParams...), op.BodyParams...) {
		if p.Example == "" {
			continue
		}
		obj = append(obj, field{Key: p.Name, Value: exampleValue(p.Type, p.Example)})
	}
	if len(obj) == 0 {
		return nil, false
	}
	return obj, true
}

// queryString is the example query of a cURL call, in declaration order
func queryString(op ir.IROperation) string {
	var parts []string
	for _, p := range op.QueryParams {
		if p.Example == "" {
			continue
		}
		parts = append(parts, url.QueryEscape(p.Name)+"="+url.QueryEscape(p.Example))
	}
	if len(parts) == 0 {
		return ""
	}
	return "?" + strings.Join(parts, "&")
}

// pickExamples chooses the calls shown in the usage example: the first
// authenticated call without parameters, then the first credit-consuming call
// with an example payload.
func pickExamples(ops []operation) []operation {
	var out []operation
	for _, op := range ops {
		if op.Auth && !op.HasParams && len(op.PathArgs) == 0 {
			out = append(out, op)
			break
		}
	}
	for _, op := range ops {
		if op.Credits != "" && op.HasExample && len(op.PathArgs) == 0 {
			out = append(out, op)
			break
		}
	}
	if len(out) == 0 {
		for _, op := range ops {
			if len(op.PathArgs) == 0 && (!op.HasParams || op.HasExample) {
				out = append(out, op)
				break
			}
		}
	}

	used := map[string]int{}
	for i := range out {
		v := exampleVar(out[i].Name)
		used[v]++
		if used[v] > 1 {
			v += strconv.Itoa(used[v])
		}
		out[i].Var = v
	}
	return out
}

// exampleVar names the result of a call after the last word of its method name
func exampleVar(method string) string {
	words := utils.Words(method)
	if len(words) == 0 {
		return "result"
	}
	v := strings.ToLower(words[len(words)-1])
	switch v {
	case "list", "new", "class", "def", "end", "func", "var", "type":
		return "result"
	}
	return v
}

func shellSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '$', '`', '}':
			return -1
		}
		return r
	}, s)
}

// oneLine collapses whitespace runs, newlines included, so text fits a line comment
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// sentence is oneLine with a closing period
func sentence(s string) string {
	s = oneLine(s)
	if s == "" || strings.HasSuffix(s, ".") || strings.HasSuffix(s, "?") || strings.HasSuffix(s, "!") {
		return s
	}
	return s + "."
}
