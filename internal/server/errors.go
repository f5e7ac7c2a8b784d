package server

import (
	"context"
	stderrors "errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/veeq-ai/docs-gen/pkg/errors"
)

// httpError maps typed errors onto huma status errors
func httpError(err error) error {
	switch {
	case errors.IsAPIKeyRequired(err):
		return huma.Error401Unauthorized(err.Error())
	case errors.IsNotFound(err):
		return huma.Error404NotFound(err.Error())
	case errors.IsUnsupported(err):
		return huma.Error400BadRequest(err.Error())
	case errors.IsValidationError(err):
		return huma.Error422UnprocessableEntity(err.Error())
	case stderrors.Is(err, context.DeadlineExceeded):
		return huma.Error504GatewayTimeout(err.Error())
	default:
		return huma.Error500InternalServerError("internal error", err)
	}
}
