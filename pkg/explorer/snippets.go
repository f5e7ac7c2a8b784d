package explorer

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/veeq-ai/docs-gen/pkg/catalog"
	"github.com/veeq-ai/docs-gen/pkg/config"
	"github.com/veeq-ai/docs-gen/pkg/errors"
	"github.com/veeq-ai/docs-gen/pkg/generator/sdk"
	"github.com/veeq-ai/docs-gen/pkg/utils"
)

// TokenPlaceholder stands in for the bearer token when none was entered
const TokenPlaceholder = "YOUR_API_KEY"

// SnippetLanguages lists the languages the panel shows, in tab order
var SnippetLanguages = []string{"curl", "javascript", "python"}

// SnippetOptions control the rendered request
type SnippetOptions struct {
	BaseURL string
	Token   string
}

type header struct {
	Key, Value string
}

type snippetData struct {
	Method  string
	URL     string
	Headers []header
	Body    string
}

const snippetSource = `
{{- define "curl" -}}
curl -X {{ .Method }} {{ shq .URL }}
{{- range .Headers }} \
  -H {{ shq (printf "%s: %s" .Key .Value) }}
{{- end }}
{{- if .Body }} \
  -d {{ shq .Body }}
{{- end }}
{{ end -}}

{{- define "javascript" -}}
const response = await fetch({{ jsq .URL }}, {
  method: {{ jsq .Method }},
  headers: {
{{- range $i, $h := .Headers }}{{ if $i }},{{ end }}
    {{ jsq $h.Key }}: {{ jsq $h.Value }}
{{- end }}
  }{{ if .Body }},
  body: JSON.stringify({{ .Body }}){{ end }}
});

const data = await response.json();
console.log(data);
{{ end -}}

{{- define "python" -}}
import requests

response = requests.{{ lower .Method }}(
    {{ pyq .URL }},
    headers={
{{- range .Headers }}
        {{ pyq .Key }}: {{ pyq .Value }},
{{- end }}
    },
{{- if .Body }}
    json={{ .Body }},
{{- end }}
)

print(response.json())
{{ end -}}
`

var snippetTemplates = newSnippetTemplates()

func newSnippetTemplates() *template.Template {
	js, _ := sdk.Lookup("javascript")
	py, _ := sdk.Lookup("python")
	funcs := sprig.TxtFuncMap()
	funcs["shq"] = utils.ShellQuote
	funcs["jsq"] = js.Quote
	funcs["pyq"] = py.Quote
	return template.Must(template.New("snippets").Funcs(funcs).Parse(snippetSource))
}

// Snippet renders a ready-to-run request for e in lang
func Snippet(e catalog.Endpoint, lang string, opts SnippetOptions) (string, error) {
	var lit func(string) (string, error)
	switch lang {
	case "curl":
		lit = compact
	case "javascript", "python":
		l, err := sdk.Lookup(lang)
		if err != nil {
			return "", err
		}
		lit = l.LiteralJSON
	default:
		return "", errors.NewUnsupportedError("snippet language", lang, SnippetLanguages...)
	}

	data := snippetData{
		Method: strings.ToUpper(e.Method),
		URL:    requestURL(e, opts.BaseURL),
	}
	if e.Authentication {
		token := opts.Token
		if token == "" {
			token = TokenPlaceholder
		}
		data.Headers = append(data.Headers, header{"Authorization", "Bearer " + token})
	}
	if text := bodyExample(e); text != "" && data.Method != "GET" {
		contentType := "application/json"
		if e.RequestBody != nil && e.RequestBody.ContentType != "" {
			contentType = e.RequestBody.ContentType
		}
		data.Headers = append(data.Headers, header{"Content-Type", contentType})
		body, err := lit(text)
		if err != nil {
			verr := errors.NewValidationError(e.ID+".requestBody.example", text, "example is not valid JSON")
			verr.Err = err
			return "", verr
		}
		data.Body = body
	}

	var buf bytes.Buffer
	if err := snippetTemplates.ExecuteTemplate(&buf, lang, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Snippets renders every panel language for e
func Snippets(e catalog.Endpoint, opts SnippetOptions) (map[string]string, error) {
	out := make(map[string]string, len(SnippetLanguages))
	for _, lang := range SnippetLanguages {
		s, err := Snippet(e, lang, opts)
		if err != nil {
			return nil, err
		}
		out[lang] = s
	}
	return out, nil
}

// requestURL fills path placeholders and query parameters with their examples
func requestURL(e catalog.Endpoint, base string) string {
	if base == "" {
		base = config.DefaultBaseURL
	}
	path := e.Path
	for _, p := range e.ParamsIn(catalog.LocationPath) {
		if p.Example == "" {
			continue
		}
		escaped := url.PathEscape(p.Example)
		path = strings.ReplaceAll(path, "{"+p.Name+"}", escaped)
		path = strings.ReplaceAll(path, ":"+p.Name, escaped)
	}

	var query []string
	for _, p := range e.ParamsIn(catalog.LocationQuery) {
		v := p.Example
		if v == "" {
			v = p.Default
		}
		if v == "" {
			continue
		}
		query = append(query, url.QueryEscape(p.Name)+"="+url.QueryEscape(v))
	}

	u := strings.TrimRight(base, "/") + path
	if len(query) > 0 {
		u += "?" + strings.Join(query, "&")
	}
	return u
}

func compact(text string) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(text)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
