package ir

// IROperation represents a single catalog endpoint prepared for rendering
type IROperation struct {
	OperationID string
	// MethodName is the lowerCamel SDK method name; generators re-case it per language
	MethodName  string
	Method      string
	Path        string
	Tag         string
	Summary     string
	Description string
	// OriginalTags are the endpoint's category followed by its free-text tags
	OriginalTags []string
	Auth         bool
	PathParams   []IRParam
	QueryParams  []IRParam
	HeaderParams []IRParam
	BodyParams   []IRParam
	RequestBody  *IRRequestBody
	Responses    []IRResponse
	Credits      string
	RateLimit    string
}

// HasBody reports whether the operation sends a request body
func (op IROperation) HasBody() bool {
	return op.RequestBody != nil || len(op.BodyParams) > 0
}

// SuccessResponse returns the first 2xx response, if any
func (op IROperation) SuccessResponse() (IRResponse, bool) {
	for _, r := range op.Responses {
		if r.Status >= 200 && r.Status < 300 {
			return r, true
		}
	}
	return IRResponse{}, false
}

// IRService represents a group of operations sharing a catalog category
type IRService struct {
	Tag        string
	Title      string
	Operations []IROperation
}

// IR represents the complete intermediate representation of an endpoint catalog
type IR struct {
	Info     IRInfo
	BaseURL  string
	Services []IRService
}

// Operations flattens the services in order
func (in IR) Operations() []IROperation {
	var out []IROperation
	for _, s := range in.Services {
		out = append(out, s.Operations...)
	}
	return out
}

// IRInfo holds document-level metadata
type IRInfo struct {
	Title       string
	Version     string
	Description string
	ClientName  string
	Contact     IRContact
}

// IRContact is the API owner's contact block
type IRContact struct {
	Name  string
	Email string
	URL   string
}

// IRParam represents a parameter with its resolved location
type IRParam struct {
	Name     string
	Type     string
	Required bool
	// Description from the catalog parameter
	Description string
	Example     string
	Enum        []string
	Default     string
}

// IRRequestBody represents a request body
type IRRequestBody struct {
	ContentType string
	Required    bool
	// SchemaName is the catalog's display schema name, possibly a component name
	SchemaName string
	Example    string
}

// IRResponse represents one documented response
type IRResponse struct {
	Status      int
	Description string
	Example     string
}
