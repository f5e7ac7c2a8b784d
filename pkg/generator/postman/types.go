package postman

// SchemaURL identifies the Postman Collection v2.1 format
const SchemaURL = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

// Collection is a Postman Collection v2.1 document
type Collection struct {
	Info     Info       `json:"info"`
	Item     []Folder   `json:"item"`
	Variable []Variable `json:"variable,omitempty"`
}

// Info is the collection header
type Info struct {
	PostmanID   string `json:"_postman_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Schema      string `json:"schema"`
}

// Folder groups the requests of one category
type Folder struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Item        []Item `json:"item"`
}

// Item is one saved request
type Item struct {
	Name     string     `json:"name"`
	Event    []Event    `json:"event,omitempty"`
	Request  Request    `json:"request"`
	Response []Response `json:"response"`
}

// Request describes the HTTP call of an item
type Request struct {
	Method      string   `json:"method"`
	Header      []Header `json:"header"`
	Auth        *Auth    `json:"auth,omitempty"`
	Body        *Body    `json:"body,omitempty"`
	URL         URL      `json:"url"`
	Description string   `json:"description,omitempty"`
}

// Header is a request or response header
type Header struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// Auth is a request auth block
type Auth struct {
	Type   string      `json:"type"`
	Bearer []Parameter `json:"bearer,omitempty"`
}

// Parameter is a typed key/value pair used by auth blocks
type Parameter struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

// Body is a raw request body
type Body struct {
	Mode    string       `json:"mode"`
	Raw     string       `json:"raw"`
	Options *BodyOptions `json:"options,omitempty"`
}

// BodyOptions tells Postman how to highlight the raw body
type BodyOptions struct {
	Raw RawOptions `json:"raw"`
}

// RawOptions names the raw body language
type RawOptions struct {
	Language string `json:"language"`
}

// URL is a request URL split into its parts
type URL struct {
	Raw      string     `json:"raw"`
	Host     []string   `json:"host"`
	Path     []string   `json:"path"`
	Query    []Query    `json:"query,omitempty"`
	Variable []Variable `json:"variable,omitempty"`
}

// Query is one query string parameter
type Query struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// Variable is a collection or path variable
type Variable struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// Response is a saved example response
type Response struct {
	Name            string   `json:"name"`
	OriginalRequest Request  `json:"originalRequest"`
	Status          string   `json:"status"`
	Code            int      `json:"code"`
	PreviewLanguage string   `json:"_postman_previewlanguage"`
	Header          []Header `json:"header"`
	Body            string   `json:"body"`
}

// Event attaches a script to an item
type Event struct {
	Listen string `json:"listen"`
	Script Script `json:"script"`
}

// Script is a Postman sandbox script
type Script struct {
	Type string   `json:"type"`
	Exec []string `json:"exec"`
}

// Environment is a Postman environment document
type Environment struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Values     []EnvironmentValue `json:"values"`
	Scope      string             `json:"_postman_variable_scope"`
	ExportedBy string             `json:"_postman_exported_using"`
}

// EnvironmentValue is one environment variable
type EnvironmentValue struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Type    string `json:"type"`
	Enabled bool   `json:"enabled"`
}

// ItemCount returns the number of requests across all folders
func (c Collection) ItemCount() int {
	n := 0
	for _, f := range c.Item {
		n += len(f.Item)
	}
	return n
}
