package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/veeq-ai/docs-gen/pkg/catalog"
	"github.com/veeq-ai/docs-gen/pkg/explorer"
	"github.com/veeq-ai/docs-gen/pkg/utils"
)

// Response is a generic wrapper for Huma responses
type Response[T any] struct {
	Body T
}

// HealthBody is the health check response body
type HealthBody struct {
	Status string `json:"status" example:"ok" doc:"Health status"`
}

// RegisterHealthEndpoint registers the health check
func RegisterHealthEndpoint(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-health",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Health check",
		Tags:        []string{"health"},
	}, func(_ context.Context, _ *struct{}) (*Response[HealthBody], error) {
		return &Response[HealthBody]{Body: HealthBody{Status: "ok"}}, nil
	})
}

// Category is one entry of the documentation sidebar
type Category struct {
	ID    string `json:"id" doc:"Category identifier"`
	Title string `json:"title" doc:"Display title"`
	Count int    `json:"count" doc:"Number of endpoints"`
}

// CategoriesBody lists the catalog categories
type CategoriesBody struct {
	Categories []Category `json:"categories"`
}

// ListCatalogInput holds the sidebar filters
type ListCatalogInput struct {
	Category string `query:"category" doc:"Category to show; empty or all shows every category" required:"false"`
	Query    string `query:"q" doc:"Case-insensitive search over title, description and path" required:"false"`
}

// CatalogBody is a filtered endpoint list
type CatalogBody struct {
	Endpoints []catalog.Endpoint `json:"endpoints"`
	Count     int                `json:"count"`
}

// EndpointInput selects one endpoint
type EndpointInput struct {
	ID string `path:"id" doc:"Endpoint id" example:"music-generate"`
}

// RegisterCatalogEndpoints registers the catalog browsing endpoints
func RegisterCatalogEndpoints(api huma.API, endpoints []catalog.Endpoint) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/api/categories",
		Summary:     "List categories",
		Tags:        []string{"catalog"},
	}, func(_ context.Context, _ *struct{}) (*Response[CategoriesBody], error) {
		body := CategoriesBody{Categories: []Category{}}
		for _, c := range catalog.Categories(endpoints) {
			body.Categories = append(body.Categories, Category{
				ID:    c,
				Title: utils.Title(c),
				Count: len(catalog.Filter(endpoints, c, "")),
			})
		}
		return &Response[CategoriesBody]{Body: body}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-endpoints",
		Method:      http.MethodGet,
		Path:        "/api/catalog",
		Summary:     "List endpoints",
		Description: "Endpoints of the catalog after the category and search filters",
		Tags:        []string{"catalog"},
	}, func(_ context.Context, input *ListCatalogInput) (*Response[CatalogBody], error) {
		matched := catalog.Filter(endpoints, input.Category, input.Query)
		return &Response[CatalogBody]{Body: CatalogBody{Endpoints: matched, Count: len(matched)}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-endpoint",
		Method:      http.MethodGet,
		Path:        "/api/catalog/{id}",
		Summary:     "Get endpoint",
		Tags:        []string{"catalog"},
	}, func(_ context.Context, input *EndpointInput) (*Response[catalog.Endpoint], error) {
		e, err := catalog.Find(endpoints, input.ID)
		if err != nil {
			return nil, httpError(err)
		}
		return &Response[catalog.Endpoint]{Body: e}, nil
	})
}

// DownloadInfo describes one downloadable file
type DownloadInfo struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
	URL         string `json:"url"`
}

// DownloadsBody lists the downloadable files
type DownloadsBody struct {
	Files []DownloadInfo `json:"files"`
}

// DownloadInput selects a file
type DownloadInput struct {
	File string `path:"file" doc:"File name" example:"veeq-ai-sdk.py"`
}

// DownloadOutput is a raw file response
type DownloadOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// RegisterDownloadEndpoints registers the generated file downloads
func RegisterDownloadEndpoints(api huma.API, downloads *Downloads) {
	huma.Register(api, huma.Operation{
		OperationID: "list-downloads",
		Method:      http.MethodGet,
		Path:        "/api/downloads",
		Summary:     "List downloads",
		Tags:        []string{"downloads"},
	}, func(_ context.Context, _ *struct{}) (*Response[DownloadsBody], error) {
		body := DownloadsBody{Files: []DownloadInfo{}}
		for _, a := range downloads.List() {
			body.Files = append(body.Files, DownloadInfo{
				Name:        a.Name,
				ContentType: a.ContentType,
				Size:        len(a.Content),
				URL:         "/api/downloads/" + a.Name,
			})
		}
		return &Response[DownloadsBody]{Body: body}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-download",
		Method:      http.MethodGet,
		Path:        "/api/downloads/{file}",
		Summary:     "Download a generated file",
		Description: "SDKs, the Postman collection and environment, and the OpenAPI document",
		Tags:        []string{"downloads"},
	}, func(_ context.Context, input *DownloadInput) (*DownloadOutput, error) {
		a, err := downloads.Get(input.File)
		if err != nil {
			return nil, httpError(err)
		}
		return &DownloadOutput{
			ContentType:        a.ContentType,
			ContentDisposition: fmt.Sprintf("attachment; filename=%q", a.Name),
			Body:               a.Content,
		}, nil
	})
}

// ExecuteInput is one explorer call
type ExecuteInput struct {
	ID   string `path:"id" doc:"Endpoint id" example:"auth-me"`
	Body struct {
		Token string            `json:"token,omitempty" doc:"Bearer token sent as Authorization header"`
		Query map[string]string `json:"query,omitempty" doc:"Query parameters; the catalog examples when omitted"`
		Body  any               `json:"body,omitempty" doc:"JSON request body; the catalog example when omitted"`
	}
}

// SnippetInput selects an endpoint and a snippet language
type SnippetInput struct {
	ID       string `path:"id" doc:"Endpoint id" example:"music-generate"`
	Language string `path:"lang" doc:"Snippet language" enum:"curl,javascript,python"`
	Token    string `query:"token" doc:"Token written into the snippet" required:"false"`
}

// SnippetBody is a rendered request snippet
type SnippetBody struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// RegisterExplorerEndpoints registers the API explorer
func RegisterExplorerEndpoints(api huma.API, endpoints []catalog.Endpoint, executor explorer.Executor, baseURL string) {
	huma.Register(api, huma.Operation{
		OperationID: "execute-endpoint",
		Method:      http.MethodPost,
		Path:        "/api/explorer/{id}/execute",
		Summary:     "Try an endpoint",
		Description: "Runs the endpoint through the explorer executor. The default executor answers canned responses after a delay.",
		Tags:        []string{"explorer"},
	}, func(ctx context.Context, input *ExecuteInput) (*Response[explorer.Response], error) {
		e, err := catalog.Find(endpoints, input.ID)
		if err != nil {
			return nil, httpError(err)
		}

		req := explorer.NewRequest(e, input.Body.Token)
		if input.Body.Query != nil {
			req.Query = input.Body.Query
		}
		if input.Body.Body != nil {
			data, err := json.Marshal(input.Body.Body)
			if err != nil {
				return nil, huma.Error400BadRequest("body is not JSON", err)
			}
			req.Body = data
		}

		resp, err := executor.Execute(ctx, req)
		if err != nil {
			return nil, httpError(err)
		}
		return &Response[explorer.Response]{Body: *resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-snippet",
		Method:      http.MethodGet,
		Path:        "/api/explorer/{id}/snippets/{lang}",
		Summary:     "Get a request snippet",
		Tags:        []string{"explorer"},
	}, func(_ context.Context, input *SnippetInput) (*Response[SnippetBody], error) {
		e, err := catalog.Find(endpoints, input.ID)
		if err != nil {
			return nil, httpError(err)
		}
		code, err := explorer.Snippet(e, strings.ToLower(input.Language), explorer.SnippetOptions{BaseURL: baseURL, Token: input.Token})
		if err != nil {
			return nil, httpError(err)
		}
		return &Response[SnippetBody]{Body: SnippetBody{Language: input.Language, Code: code}}, nil
	})
}
