package postman_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veeq-ai/docs-gen/pkg/catalog"
	"github.com/veeq-ai/docs-gen/pkg/config"
	"github.com/veeq-ai/docs-gen/pkg/generator"
	"github.com/veeq-ai/docs-gen/pkg/generator/postman"
	"github.com/veeq-ai/docs-gen/pkg/ir"
)

func defaultIR() ir.IR {
	return generator.BuildIR(catalog.Default(), generator.DefaultInput())
}

func findItem(t *testing.T, c postman.Collection, name string) postman.Item {
	t.Helper()
	for _, f := range c.Item {
		for _, it := range f.Item {
			if it.Name == name {
				return it
			}
		}
	}
	t.Fatalf("item %q not found", name)
	return postman.Item{}
}

func TestBuild_MusicSelection(t *testing.T) {
	all := catalog.Default()
	music, err := catalog.Find(all, "music-generate")
	require.NoError(t, err)
	me, err := catalog.Find(all, "auth-me")
	require.NoError(t, err)

	in := generator.BuildIR([]catalog.Endpoint{music, me}, generator.DefaultInput())
	c := postman.Build(in, postman.Options{Categories: []string{"music"}, IncludeAuth: true, IncludeExamples: true})

	require.Len(t, c.Item, 1)
	assert.Equal(t, "Music", c.Item[0].Name)
	require.Len(t, c.Item[0].Item, 1)
	assert.Equal(t, "Müzik Üret", c.Item[0].Item[0].Name)
}

func TestBuild_CategoryFilterCount(t *testing.T) {
	endpoints := catalog.Default()
	in := defaultIR()

	selections := [][]string{nil, {catalog.All}, {"music"}, {"credits", "speech"}, {"public"}, {"nope"}}
	for _, cats := range selections {
		c := postman.Build(in, postman.Options{Categories: cats})
		assert.Equal(t, len(catalog.FilterByCategories(endpoints, cats)), c.ItemCount(), "categories %v", cats)
	}
}

func TestBuild_FoldersInCatalogOrder(t *testing.T) {
	c := postman.Build(defaultIR(), postman.DefaultOptions())

	var names []string
	for _, f := range c.Item {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Authentication", "Music", "Speech", "Models", "Voices", "Credits", "Public"}, names)
	assert.Equal(t, postman.SchemaURL, c.Info.Schema)
	assert.Equal(t, "Veeq AI API", c.Info.Name)
	require.Len(t, c.Variable, 1)
	assert.Equal(t, postman.Variable{Key: "base_url", Value: "https://api.veeq.ai", Type: "string"}, c.Variable[0])
}

func TestBuild_Requests(t *testing.T) {
	c := postman.Build(defaultIR(), postman.DefaultOptions())

	me := findItem(t, c, "Mevcut Kullanıcı")
	assert.Equal(t, "GET", me.Request.Method)
	assert.Equal(t, "{{base_url}}/api/auth/me", me.Request.URL.Raw)
	assert.Equal(t, []string{"{{base_url}}"}, me.Request.URL.Host)
	assert.Equal(t, []string{"api", "auth", "me"}, me.Request.URL.Path)
	require.NotNil(t, me.Request.Auth)
	assert.Equal(t, "bearer", me.Request.Auth.Type)
	assert.Equal(t, "{{jwt_token}}", me.Request.Auth.Bearer[0].Value)
	assert.Nil(t, me.Request.Body)

	login := findItem(t, c, "Giriş Yap")
	assert.Nil(t, login.Request.Auth, "login does not require authentication")

	gen := findItem(t, c, "Müzik Üret")
	assert.Equal(t, "POST", gen.Request.Method)
	require.NotNil(t, gen.Request.Body)
	assert.Equal(t, "raw", gen.Request.Body.Mode)
	assert.JSONEq(t, `{"prompt": "Upbeat electronic track with a catchy melody", "duration": 30, "style": "electronic", "instrumental": false}`, gen.Request.Body.Raw)
	assert.Empty(t, gen.Request.URL.Query, "body fields are not query parameters")
	assert.Contains(t, gen.Request.Description, "Credits: 10 credits per 30 seconds")

	history := findItem(t, c, "Müzik Geçmişi")
	assert.Equal(t, "{{base_url}}/api/music/history?page=1&limit=20", history.Request.URL.Raw)
	require.Len(t, history.Request.URL.Query, 2)
	assert.Equal(t, postman.Query{Key: "page", Value: "1", Description: "Page number"}, history.Request.URL.Query[0])
	require.Len(t, history.Response, 1)
	assert.Equal(t, 200, history.Response[0].Code)
	assert.Equal(t, "OK", history.Response[0].Status)

	for _, f := range c.Item {
		for _, it := range f.Item {
			require.Len(t, it.Event, 1, it.Name)
			assert.Equal(t, "test", it.Event[0].Listen)
			assert.Contains(t, it.Event[0].Script.Exec[0], "Status code")
		}
	}
}

func TestBuild_Toggles(t *testing.T) {
	c := postman.Build(defaultIR(), postman.Options{IncludeAuth: false, IncludeExamples: false})
	for _, f := range c.Item {
		for _, it := range f.Item {
			assert.Nil(t, it.Request.Auth, it.Name)
			assert.Empty(t, it.Response, it.Name)
		}
	}
}

func TestBuild_PathVariables(t *testing.T) {
	in := ir.IR{
		Info: ir.IRInfo{Title: "Veeq AI API"},
		Services: []ir.IRService{{
			Tag: "music", Title: "Music",
			Operations: []ir.IROperation{{
				OperationID: "music-get", Method: "GET", Path: "/api/music/{trackId}", Summary: "Get Track",
				PathParams: []ir.IRParam{{Name: "trackId", Example: "music_abc123", Description: "Track id"}},
			}},
		}},
	}
	c := postman.Build(in, postman.DefaultOptions())
	u := c.Item[0].Item[0].Request.URL
	assert.Equal(t, "{{base_url}}/api/music/:trackId", u.Raw)
	assert.Equal(t, []string{"api", "music", ":trackId"}, u.Path)
	assert.Equal(t, []postman.Variable{{Key: "trackId", Value: "music_abc123", Description: "Track id"}}, u.Variable)
}

func TestBuild_StableID(t *testing.T) {
	a := postman.Build(defaultIR(), postman.DefaultOptions())
	b := postman.Build(defaultIR(), postman.DefaultOptions())
	assert.Equal(t, a.Info.PostmanID, b.Info.PostmanID)
	_, err := uuid.Parse(a.Info.PostmanID)
	assert.NoError(t, err)
}

func TestBuildEnvironment(t *testing.T) {
	env := postman.BuildEnvironment(defaultIR())
	assert.Equal(t, "environment", env.Scope)
	require.Len(t, env.Values, 3)
	assert.Equal(t, "base_url", env.Values[0].Key)
	assert.Equal(t, "https://api.veeq.ai", env.Values[0].Value)
	assert.Equal(t, postman.EnvironmentValue{Key: "jwt_token", Type: "secret", Enabled: true}, env.Values[1])
	assert.Equal(t, "user_id", env.Values[2].Key)
}

func TestGenerate(t *testing.T) {
	target := config.Target{Type: config.TypePostman, Categories: []string{"speech"}, IncludeExamples: config.Bool(false)}
	artifacts, err := postman.NewGenerator().Generate(target, defaultIR())
	require.NoError(t, err)
	require.Len(t, artifacts, 2)
	assert.Equal(t, postman.CollectionFile, artifacts[0].Name)
	assert.Equal(t, postman.EnvironmentFile, artifacts[1].Name)

	var c postman.Collection
	require.NoError(t, json.Unmarshal(artifacts[0].Content, &c))
	assert.Equal(t, 1, c.ItemCount())
	assert.Equal(t, "Ses Üret", c.Item[0].Item[0].Name)
	assert.NotNil(t, c.Item[0].Item[0].Request.Auth)
	assert.Empty(t, c.Item[0].Item[0].Response)

	// Non-ASCII titles are written as-is, not \u escaped
	assert.Contains(t, string(artifacts[0].Content), "Ses Üret")

	var env postman.Environment
	require.NoError(t, json.Unmarshal(artifacts[1].Content, &env))
	assert.Len(t, env.Values, 3)
}
