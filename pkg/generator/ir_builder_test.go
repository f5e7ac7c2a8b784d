package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veeq-ai/docs-gen/pkg/catalog"
	"github.com/veeq-ai/docs-gen/pkg/config"
	"github.com/veeq-ai/docs-gen/pkg/ir"
)

func operationIDs(in ir.IR) []string {
	var ids []string
	for _, op := range in.Operations() {
		ids = append(ids, op.OperationID)
	}
	return ids
}

func TestBuildIR_CatalogOrder(t *testing.T) {
	endpoints := catalog.Default()
	built := BuildIR(endpoints, DefaultInput())

	var tags, titles []string
	for _, s := range built.Services {
		tags = append(tags, s.Tag)
		titles = append(titles, s.Title)
	}
	assert.Equal(t, catalog.Categories(endpoints), tags)
	assert.Equal(t, []string{"Authentication", "Music", "Speech", "Models", "Voices", "Credits", "Public"}, titles)

	var want []string
	for _, e := range endpoints {
		want = append(want, e.ID)
	}
	assert.Equal(t, want, operationIDs(built))
	assert.Equal(t, "https://api.veeq.ai", built.BaseURL)
	assert.Equal(t, DefaultClientName, built.Info.ClientName)
}

func TestBuildIR_Operation(t *testing.T) {
	built := BuildIR(catalog.Default(), DefaultInput())

	var music ir.IROperation
	for _, op := range built.Operations() {
		if op.OperationID == "music-generate" {
			music = op
		}
	}
	require.Equal(t, "music-generate", music.OperationID)
	assert.Equal(t, "generateMusic", music.MethodName)
	assert.Equal(t, []string{"music", "music", "generation", "ai"}, music.OriginalTags)
	assert.True(t, music.Auth)
	assert.Empty(t, music.QueryParams)
	require.Len(t, music.BodyParams, 4)
	assert.Equal(t, "number", music.BodyParams[1].Type)
	require.NotNil(t, music.RequestBody)
	assert.Equal(t, "MusicGenerateRequest", music.RequestBody.SchemaName)
	assert.Equal(t, "10 credits per 30 seconds", music.Credits)
	require.Len(t, music.Responses, 2)
	assert.Equal(t, 402, music.Responses[1].Status)
}

func TestBuildIR_UndeclaredPlaceholder(t *testing.T) {
	endpoints := []catalog.Endpoint{{
		ID: "voice-get", Method: "GET", Path: "/api/voices/{voiceId}", Title: "Get Voice", Category: "voices",
		RequestBody: &catalog.RequestBody{},
	}}
	op := BuildIR(endpoints, DefaultInput()).Operations()[0]
	require.Len(t, op.PathParams, 1)
	assert.Equal(t, ir.IRParam{Name: "voiceId", Type: "string", Required: true}, op.PathParams[0])
	assert.Equal(t, "application/json", op.RequestBody.ContentType)
}

func TestFilterIR(t *testing.T) {
	full := BuildIR(catalog.Default(), DefaultInput())

	tests := []struct {
		name   string
		target config.Target
		want   []string
	}{
		{
			name:   "no filters",
			target: config.Target{},
			want:   operationIDs(full),
		},
		{
			name:   "all category",
			target: config.Target{Categories: []string{catalog.All}},
			want:   operationIDs(full),
		},
		{
			name:   "categories",
			target: config.Target{Categories: []string{"speech", "voices"}},
			want:   []string{"speech-generate", "voices-list"},
		},
		{
			name:   "include tags match category or free-text tag",
			target: config.Target{IncludeTags: []string{"^billing$", "^public$"}},
			want:   []string{"credits-info", "credits-calculate", "public-discover"},
		},
		{
			name:   "exclude after category",
			target: config.Target{Categories: []string{"music"}, ExcludeTags: []string{"history"}},
			want:   []string{"music-generate"},
		},
		{
			name:   "nothing left",
			target: config.Target{Categories: []string{"nope"}},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered, err := FilterIR(full, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, operationIDs(filtered))
			for _, s := range filtered.Services {
				assert.NotEmpty(t, s.Operations, "empty services are dropped")
			}
		})
	}
}

func TestFilterIR_ClientNameAndBadPattern(t *testing.T) {
	full := BuildIR(catalog.Default(), DefaultInput())

	filtered, err := FilterIR(full, config.Target{ClientName: "Veeq"})
	require.NoError(t, err)
	assert.Equal(t, "Veeq", filtered.Info.ClientName)
	assert.Equal(t, DefaultClientName, full.Info.ClientName, "the full IR is not modified")

	_, err = FilterIR(full, config.Target{IncludeTags: []string{"("}})
	assert.ErrorContains(t, err, "invalid includeTags pattern")
}
