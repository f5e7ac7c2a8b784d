package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veeq-ai/docs-gen/pkg/errors"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	eps := Default()
	require.NotEmpty(t, eps)

	report := Validate(eps)
	assert.NoError(t, report.Err())
	assert.Empty(t, report.Warnings)

	music, err := Find(eps, "music-generate")
	require.NoError(t, err)
	assert.Equal(t, "Müzik Üret", music.Title)
	assert.Equal(t, "POST", music.Method)
	assert.True(t, music.Authentication)
}

func TestDefaultReturnsCopy(t *testing.T) {
	a := Default()
	a[0].Title = "mutated"
	assert.NotEqual(t, "mutated", Default()[0].Title)
}

func TestDefaultCoversSDKSurface(t *testing.T) {
	var names []string
	for _, e := range Default() {
		names = append(names, e.MethodName())
	}
	for _, want := range []string{"getCurrentUser", "generateMusic", "generateSpeech", "getAvailableModels", "getAvailableVoices", "getCreditInfo", "calculateCost"} {
		assert.Contains(t, names, want)
	}
}

func TestFind_NotFound(t *testing.T) {
	_, err := Find(Default(), "nope")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestFilter(t *testing.T) {
	eps := Default()

	tests := []struct {
		name     string
		category string
		query    string
		wantIDs  []string
	}{
		{name: "category only", category: "speech", wantIDs: []string{"speech-generate"}},
		{name: "search title case-insensitive", category: All, query: "ÜRET", wantIDs: []string{"music-generate", "speech-generate"}},
		{name: "search path", query: "/api/credits", wantIDs: []string{"credits-info", "credits-calculate"}},
		{name: "search description", query: "landing page", wantIDs: []string{"public-discover"}},
		{name: "category and search", category: "music", query: "history", wantIDs: []string{"music-history"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, e := range Filter(eps, tt.category, tt.query) {
				got = append(got, e.ID)
			}
			assert.Equal(t, tt.wantIDs, got)
		})
	}

	assert.Len(t, Filter(eps, "", ""), len(eps))
	assert.Len(t, Filter(eps, All, "müzik"), 2)
}

func TestFilterByCategories(t *testing.T) {
	eps := Default()

	assert.Len(t, FilterByCategories(eps, nil), len(eps))
	assert.Len(t, FilterByCategories(eps, []string{"music", All}), len(eps))

	got := FilterByCategories(eps, []string{"music", "credits"})
	want := 0
	for _, e := range eps {
		if e.Category == "music" || e.Category == "credits" {
			want++
		}
	}
	assert.Len(t, got, want)
}

func TestCategoriesKeepCatalogOrder(t *testing.T) {
	assert.Equal(t,
		[]string{"authentication", "music", "speech", "models", "voices", "credits", "public"},
		Categories(Default()))
}

func TestLocation(t *testing.T) {
	post := Endpoint{Method: "POST", Path: "/api/music/generate", RequestBody: &RequestBody{ContentType: "application/json"}}
	get := Endpoint{Method: "GET", Path: "/api/tracks/{trackId}"}

	tests := []struct {
		name string
		e    Endpoint
		p    Parameter
		want Location
	}{
		{"body field of POST", post, Parameter{Name: "prompt", Type: "string"}, LocationBody},
		{"explicit query on POST", post, Parameter{Name: "dryRun", Type: "boolean", In: LocationQuery}, LocationQuery},
		{"legacy location-as-type", post, Parameter{Name: "page", Type: "query"}, LocationQuery},
		{"legacy header type", get, Parameter{Name: "X-Request-Id", Type: "header"}, LocationHeader},
		{"path placeholder", get, Parameter{Name: "trackId", Type: "string"}, LocationPath},
		{"GET remainder is query", get, Parameter{Name: "limit", Type: "integer"}, LocationQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.e.Location(tt.p))
		})
	}
}

func TestPathParamNames(t *testing.T) {
	e := Endpoint{Path: "/api/users/{userId}/tracks/:trackId"}
	assert.Equal(t, []string{"userId", "trackId"}, e.PathParamNames())
	assert.Nil(t, Endpoint{Path: "/api/auth/me"}.PathParamNames())
}

func TestMethodName(t *testing.T) {
	assert.Equal(t, "getCurrentUser", Endpoint{ID: "auth-me", SDKMethod: "getCurrentUser"}.MethodName())
	assert.Equal(t, "musicGenerate", Endpoint{ID: "music-generate"}.MethodName())
}

func TestValueType(t *testing.T) {
	assert.Equal(t, "string", Parameter{Type: "query"}.ValueType())
	assert.Equal(t, "integer", Parameter{Type: "int"}.ValueType())
	assert.Equal(t, "number", Parameter{Type: "number"}.ValueType())
	assert.Equal(t, "boolean", Parameter{Type: "bool"}.ValueType())
	assert.Equal(t, "array", Parameter{Type: "array"}.ValueType())
}

func TestValidate(t *testing.T) {
	eps := []Endpoint{
		{ID: "a", Method: "GET", Path: "/x"},
		{ID: "a", Method: "FETCH", Path: "y"},
		{ID: "b", Method: "GET", Path: "/x", Responses: []Response{{Status: 200, Description: "ok", Example: "{broken"}}},
		{ID: "c", Method: "GET", Path: "/z", Parameters: []Parameter{{Name: "id", Type: "string", In: LocationPath}}},
	}
	r := Validate(eps)

	require.Error(t, r.Err())
	assert.Len(t, r.Errors, 5)
	assert.True(t, errors.IsValidationError(r.Errors[0]))
	assert.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], "GET /x")
}

func TestParseJSONAndYAML(t *testing.T) {
	jsonDoc := `{"endpoints":[{"id":"ping","method":"get","path":"/api/ping","title":"Ping","category":"health","authentication":false,
		"responses":[{"status":200,"description":"pong","example":"{\"pong\":true}"}]}]}`
	eps, err := Parse([]byte(jsonDoc), FormatJSON)
	require.NoError(t, err)
	require.Len(t, eps, 1)
	assert.Equal(t, "GET", eps[0].Method)

	yamlDoc := "endpoints:\n  - id: ping\n    method: GET\n    path: /api/ping\n    title: Ping\n    category: health\n"
	eps, err = Parse([]byte(yamlDoc), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "ping", eps[0].ID)
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	tests := map[string]string{
		"missing path":        `{"endpoints":[{"id":"x","method":"GET","title":"X","category":"c"}]}`,
		"unknown field":       `{"endpoints":[{"id":"x","method":"GET","path":"/x","title":"X","category":"c","verb":"GET"}]}`,
		"bad method":          `{"endpoints":[{"id":"x","method":"TRACE","path":"/x","title":"X","category":"c"}]}`,
		"numeric example":     `{"endpoints":[{"id":"x","method":"GET","path":"/x","title":"X","category":"c","parameters":[{"name":"n","type":"number","example":3}]}]}`,
		"status out of range": `{"endpoints":[{"id":"x","method":"GET","path":"/x","title":"X","category":"c","responses":[{"status":700,"description":"?"}]}]}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc), FormatJSON)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yml")
	require.NoError(t, os.WriteFile(path, defaultData, 0o644))

	eps, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), eps)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("x/catalog.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("catalog.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("catalog"))
}

func TestBracePath(t *testing.T) {
	assert.Equal(t, "/api/music/{id}", BracePath("/api/music/:id"))
	assert.Equal(t, "/api/users/{userId}/tracks/{trackId}", BracePath("/api/users/:userId/tracks/{trackId}"))
	assert.Equal(t, "/api/credits", BracePath("/api/credits"))
}
