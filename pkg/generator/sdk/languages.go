package sdk

import (
	"sort"
	"strconv"
	"strings"

	"github.com/veeq-ai/docs-gen/pkg/errors"
	"github.com/veeq-ai/docs-gen/pkg/utils"
)

// Language is the syntax profile one SDK flavour is rendered with
type Language struct {
	ID       string
	Name     string
	FileName string
	// Template is the file under templates/ rendering this language
	Template    string
	ContentType string

	// MethodCase turns a lowerCamel base method name into this language's convention
	MethodCase func(string) string
	// ArgCase names path arguments
	ArgCase func(string) string
	// Quote renders a string literal
	Quote func(string) string
	// Types maps catalog value types to this language's type names
	Types map[string]string

	literal   literalSyntax
	signature func(pathArgs []string, hasParams bool) string
	pathExpr  func(segments []segment) string
}

// TypeOf maps a catalog value type, falling back to the string type
func (l Language) TypeOf(valueType string) string {
	if t, ok := l.Types[valueType]; ok {
		return t
	}
	return l.Types["string"]
}

// Literal renders a decoded JSON value in this language's syntax
func (l Language) Literal(v any) string {
	return l.literal.render(v)
}

// LiteralJSON renders JSON text as a literal, keeping key order
func (l Language) LiteralJSON(text string) (string, error) {
	v, err := decodeOrdered(text)
	if err != nil {
		return "", err
	}
	return l.literal.render(v), nil
}

// segment is a piece of a path template: literal text or a named argument
type segment struct {
	Literal string
	Arg     string
}

var languages = map[string]Language{
	"javascript": {
		ID:          "javascript",
		Name:        "JavaScript",
		FileName:    "veeq-ai-sdk.js",
		Template:    "javascript.gotmpl",
		ContentType: "application/javascript",
		MethodCase:  identity,
		ArgCase:     utils.ToCamelCaseAdvanced,
		Quote:       singleQuote,
		Types: map[string]string{
			"string": "string", "integer": "number", "number": "number",
			"boolean": "boolean", "object": "Object", "array": "Array",
		},
		literal: literalSyntax{
			quote: singleQuote,
			key: func(k string) string {
				if isIdentifier(k) {
					return k + ": "
				}
				return singleQuote(k) + ": "
			},
			null: "null", yes: "true", no: "false",
			objOpen: "{ ", objClose: " }", arrOpen: "[", arrClose: "]", emptyObj: "{}",
		},
		signature: func(args []string, hasParams bool) string {
			if hasParams {
				args = append(args, "params = {}")
			}
			return strings.Join(args, ", ")
		},
		pathExpr: func(segs []segment) string {
			return templatePath(segs, "`", "`", func(a string) string {
				return "${encodeURIComponent(" + a + ")}"
			}, singleQuote)
		},
	},
	"python": {
		ID:          "python",
		Name:        "Python",
		FileName:    "veeq-ai-sdk.py",
		Template:    "python.gotmpl",
		ContentType: "text/x-python",
		MethodCase:  utils.ToSnakeCaseAdvanced,
		ArgCase:     utils.ToSnakeCaseAdvanced,
		Quote:       jsonQuote,
		Types: map[string]string{
			"string": "str", "integer": "int", "number": "float",
			"boolean": "bool", "object": "dict", "array": "list",
		},
		literal: literalSyntax{
			quote: jsonQuote,
			key:   func(k string) string { return jsonQuote(k) + ": " },
			null:  "None", yes: "True", no: "False",
			objOpen: "{", objClose: "}", arrOpen: "[", arrClose: "]", emptyObj: "{}",
		},
		signature: func(args []string, hasParams bool) string {
			parts := []string{"self"}
			for _, a := range args {
				parts = append(parts, a+": str")
			}
			if hasParams {
				parts = append(parts, "params: Optional[Dict[str, Any]] = None")
			}
			return strings.Join(parts, ", ")
		},
		pathExpr: func(segs []segment) string {
			return templatePath(segs, `f"`, `"`, func(a string) string {
				return "{quote(str(" + a + "), safe='')}"
			}, jsonQuote)
		},
	},
	"php": {
		ID:          "php",
		Name:        "PHP",
		FileName:    "VeeqAI.php",
		Template:    "php.gotmpl",
		ContentType: "application/x-httpd-php",
		MethodCase:  identity,
		ArgCase:     utils.ToCamelCaseAdvanced,
		Quote:       rubyPHPQuote,
		Types: map[string]string{
			"string": "string", "integer": "int", "number": "float",
			"boolean": "bool", "object": "array", "array": "array",
		},
		literal: literalSyntax{
			quote: rubyPHPQuote,
			key:   func(k string) string { return rubyPHPQuote(k) + " => " },
			null:  "null", yes: "true", no: "false",
			objOpen: "[", objClose: "]", arrOpen: "[", arrClose: "]", emptyObj: "[]",
		},
		signature: func(args []string, hasParams bool) string {
			parts := make([]string, 0, len(args)+1)
			for _, a := range args {
				parts = append(parts, "string $"+a)
			}
			if hasParams {
				parts = append(parts, "array $params = []")
			}
			return strings.Join(parts, ", ")
		},
		pathExpr: func(segs []segment) string {
			var parts []string
			for _, s := range segs {
				if s.Arg != "" {
					parts = append(parts, "rawurlencode($"+s.Arg+")")
				} else {
					parts = append(parts, rubyPHPQuote(s.Literal))
				}
			}
			return strings.Join(parts, " . ")
		},
	},
	"curl": {
		ID:          "curl",
		Name:        "cURL",
		FileName:    "veeq-api-examples.sh",
		Template:    "curl.gotmpl",
		ContentType: "application/x-sh",
		MethodCase:  utils.ToKebabCaseAdvanced,
		ArgCase:     func(s string) string { return strings.ToUpper(utils.ToSnakeCaseAdvanced(s)) },
		Quote:       utils.ShellQuote,
		Types: map[string]string{
			"string": "string", "integer": "integer", "number": "number",
			"boolean": "boolean", "object": "object", "array": "array",
		},
		literal: jsonSyntax,
		signature: func(args []string, hasParams bool) string {
			return ""
		},
		pathExpr: func(segs []segment) string {
			var b strings.Builder
			b.WriteString(`"${BASE_URL}`)
			for _, s := range segs {
				if s.Arg != "" {
					b.WriteString("${" + s.Arg + "}")
				} else {
					b.WriteString(shellDoubleQuoted(s.Literal))
				}
			}
			b.WriteString(`"`)
			return b.String()
		},
	},
	"go": {
		ID:          "go",
		Name:        "Go",
		FileName:    "veeq-ai-sdk.go",
		Template:    "go.gotmpl",
		ContentType: "text/x-go",
		MethodCase:  utils.ToPascalCaseAdvanced,
		ArgCase:     utils.ToCamelCaseAdvanced,
		Quote:       strconv.Quote,
		Types: map[string]string{
			"string": "string", "integer": "int", "number": "float64",
			"boolean": "bool", "object": "map[string]any", "array": "[]any",
		},
		literal: literalSyntax{
			quote: strconv.Quote,
			key:   func(k string) string { return strconv.Quote(k) + ": " },
			null:  "nil", yes: "true", no: "false",
			objOpen: "map[string]any{", objClose: "}", arrOpen: "[]any{", arrClose: "}", emptyObj: "map[string]any{}",
		},
		signature: func(args []string, hasParams bool) string {
			parts := []string{"ctx context.Context"}
			for _, a := range args {
				parts = append(parts, a+" string")
			}
			if hasParams {
				parts = append(parts, "params map[string]any")
			}
			return strings.Join(parts, ", ")
		},
		pathExpr: func(segs []segment) string {
			var parts []string
			for _, s := range segs {
				if s.Arg != "" {
					parts = append(parts, "url.PathEscape("+s.Arg+")")
				} else {
					parts = append(parts, strconv.Quote(s.Literal))
				}
			}
			return strings.Join(parts, " + ")
		},
	},
	"ruby": {
		ID:          "ruby",
		Name:        "Ruby",
		FileName:    "veeq-ai-sdk.rb",
		Template:    "ruby.gotmpl",
		ContentType: "text/x-ruby",
		MethodCase:  utils.ToSnakeCaseAdvanced,
		ArgCase:     utils.ToSnakeCaseAdvanced,
		Quote:       rubyPHPQuote,
		Types: map[string]string{
			"string": "String", "integer": "Integer", "number": "Float",
			"boolean": "Boolean", "object": "Hash", "array": "Array",
		},
		literal: literalSyntax{
			quote: rubyPHPQuote,
			key: func(k string) string {
				if isIdentifier(k) {
					return k + ": "
				}
				return rubyPHPQuote(k) + " => "
			},
			null: "nil", yes: "true", no: "false",
			objOpen: "{ ", objClose: " }", arrOpen: "[", arrClose: "]", emptyObj: "{}",
		},
		signature: func(args []string, hasParams bool) string {
			if hasParams {
				args = append(args, "params = {}")
			}
			return strings.Join(args, ", ")
		},
		pathExpr: func(segs []segment) string {
			return templatePath(segs, `"`, `"`, func(a string) string {
				return "#{URI.encode_www_form_component(" + a + ")}"
			}, rubyPHPQuote)
		},
	},
}

// Languages returns the supported language ids, sorted
func Languages() []string {
	ids := make([]string, 0, len(languages))
	for id := range languages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Lookup returns the profile for a language id
func Lookup(id string) (Language, error) {
	lang, ok := languages[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Language{}, errors.NewUnsupportedError("language", id, Languages()...)
	}
	return lang, nil
}

func identity(s string) string { return s }

// templatePath renders an interpolated string literal, or a plain quoted
// literal when the path has no arguments.
func templatePath(segs []segment, open, close string, interp func(string) string, plain func(string) string) string {
	hasArg := false
	for _, s := range segs {
		if s.Arg != "" {
			hasArg = true
			break
		}
	}
	if !hasArg {
		var b strings.Builder
		for _, s := range segs {
			b.WriteString(s.Literal)
		}
		return plain(b.String())
	}
	var b strings.Builder
	b.WriteString(open)
	for _, s := range segs {
		if s.Arg != "" {
			b.WriteString(interp(s.Arg))
		} else {
			b.WriteString(s.Literal)
		}
	}
	b.WriteString(close)
	return b.String()
}

func shellDoubleQuoted(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")
	return r.Replace(s)
}
