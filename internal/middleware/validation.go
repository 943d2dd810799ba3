package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/benx421/payment-gateway/escrow/internal/api"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

// RequestValidator rejects requests that do not match the OpenAPI document
// before they reach a handler. Routes the document does not describe (docs,
// metrics) pass through untouched.
func RequestValidator(swagger *openapi3.T, logger *slog.Logger) (func(http.Handler) http.Handler, error) {
	// Servers would pin validation to a host; routes are matched on path only.
	swagger.Servers = nil

	router, err := legacy.NewRouter(swagger)
	if err != nil {
		return nil, fmt.Errorf("failed to build validation router: %w", err)
	}

	options := &openapi3filter.Options{
		ExcludeResponseBody: true,
		MultiError:          false,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				if errors.Is(err, routers.ErrMethodNotAllowed) {
					WriteError(w, http.StatusMethodNotAllowed, api.ErrorKindValidationFailed, "method not allowed")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				message := describeValidationError(err)
				logger.Debug("request rejected by schema", "path", r.URL.Path, "reason", message)
				WriteError(w, http.StatusBadRequest, api.ErrorKindValidationFailed, message)
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

// WriteError writes an ErrorResponse body outside the strict handlers
func WriteError(w http.ResponseWriter, status int, kind api.ErrorKind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Nothing useful to do if write fails
	json.NewEncoder(w).Encode(api.ErrorResponse{
		Success: false,
		Kind:    kind,
		Message: message,
	})
}

func describeValidationError(err error) string {
	var reqErr *openapi3filter.RequestError
	if !errors.As(err, &reqErr) {
		return err.Error()
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(reqErr.Err, &schemaErr) {
		field := strings.Join(schemaErr.JSONPointer(), ".")
		if field == "" {
			return schemaErr.Reason
		}
		return field + ": " + schemaErr.Reason
	}

	if reqErr.Parameter != nil {
		reason := reqErr.Reason
		if reason == "" && reqErr.Err != nil {
			reason = reqErr.Err.Error()
		}
		return reqErr.Parameter.Name + ": " + reason
	}

	if reqErr.Reason != "" {
		return reqErr.Reason
	}
	return reqErr.Error()
}
