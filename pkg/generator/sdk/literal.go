package sdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// field is one key of a decoded JSON object
type field struct {
	Key   string
	Value any
}

// object is a JSON object that remembers key order
type object []field

// decodeOrdered parses JSON text keeping object key order and number spelling
func decodeOrdered(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := object{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj = append(obj, field{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := []any{}
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	default:
		return tok, nil
	}
}

// literalSyntax spells decoded JSON values as a language literal
type literalSyntax struct {
	quote             func(string) string
	key               func(string) string
	null, yes, no     string
	objOpen, objClose string
	arrOpen, arrClose string
	emptyObj          string
	// sep separates elements; ", " when empty
	sep string
}

func (s literalSyntax) render(v any) string {
	var b bytes.Buffer
	s.write(&b, v)
	return b.String()
}

func (s literalSyntax) write(b *bytes.Buffer, v any) {
	sep := s.sep
	if sep == "" {
		sep = ", "
	}
	switch t := v.(type) {
	case nil:
		b.WriteString(s.null)
	case bool:
		if t {
			b.WriteString(s.yes)
		} else {
			b.WriteString(s.no)
		}
	case json.Number:
		b.WriteString(t.String())
	case string:
		b.WriteString(s.quote(t))
	case object:
		if len(t) == 0 {
			b.WriteString(s.emptyObj)
			return
		}
		b.WriteString(s.objOpen)
		for i, f := range t {
			if i > 0 {
				b.WriteString(sep)
			}
			b.WriteString(s.key(f.Key))
			s.write(b, f.Value)
		}
		b.WriteString(s.objClose)
	case []any:
		b.WriteString(s.arrOpen)
		for i, e := range t {
			if i > 0 {
				b.WriteString(sep)
			}
			s.write(b, e)
		}
		b.WriteString(s.arrClose)
	default:
		b.WriteString(s.quote(fmt.Sprint(t)))
	}
}

// compactJSON renders v as compact JSON preserving key order
func compactJSON(v any) string {
	return jsonSyntax.render(v)
}

var jsonSyntax = literalSyntax{
	quote:    jsonQuote,
	key:      func(k string) string { return jsonQuote(k) + ":" },
	null:     "null",
	yes:      "true",
	no:       "false",
	objOpen:  "{",
	objClose: "}",
	arrOpen:  "[",
	arrClose: "]",
	emptyObj: "{}",
	sep:      ",",
}

func jsonQuote(s string) string {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(b.String(), "\n")
}

// singleQuote escapes backslashes, single quotes and line breaks for single-quoted literals
func singleQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)
	return "'" + r.Replace(s) + "'"
}

// rubyPHPQuote is singleQuote without line-break escapes, which single-quoted
// PHP and Ruby strings would keep literally
func rubyPHPQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(s) + "'"
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// exampleValue coerces a parameter's display example to the JSON type its value type names
func exampleValue(valueType, example string) any {
	switch valueType {
	case "integer", "number":
		if _, err := strconv.ParseFloat(example, 64); err == nil && json.Valid([]byte(example)) {
			return json.Number(example)
		}
	case "boolean":
		if b, err := strconv.ParseBool(example); err == nil {
			return b
		}
	case "object", "array":
		if v, err := decodeOrdered(example); err == nil {
			return v
		}
	}
	return example
}
