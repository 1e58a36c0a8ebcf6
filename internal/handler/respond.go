// Package handler implements the JSON HTTP layer: request decoding and
// validation, the uniform response envelope, and the mapping from domain
// errors to HTTP status codes.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asalem/souq/internal/domain"
	"github.com/asalem/souq/internal/middleware"
)

const maxBodyBytes = 1 << 20 // 1 MiB

var validate = validator.New(validator.WithRequiredStructEnabled())

// envelope is the uniform response body every endpoint returns.
type envelope struct {
	Status     string             `json:"status"`
	Message    string             `json:"message,omitempty"`
	Data       any                `json:"data,omitempty"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		middleware.GetLogger(r.Context()).Error("failed to encode response", "error", err)
	}
}

// respondData writes a success envelope with data.
func respondData(w http.ResponseWriter, r *http.Request, status int, data any) {
	respondJSON(w, r, status, envelope{Status: "success", Data: data})
}

// respondMessage writes a success envelope carrying a message and optional data.
func respondMessage(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	respondJSON(w, r, status, envelope{Status: "success", Message: message, Data: data})
}

// respondList writes a success envelope with data and pagination.
func respondList(w http.ResponseWriter, r *http.Request, data any, p *domain.Pagination) {
	respondJSON(w, r, http.StatusOK, envelope{Status: "success", Data: data, Pagination: p})
}

// respondError maps a domain error to an HTTP status and writes the error
// envelope. Unexpected errors are logged and reported as a generic 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)

	if code == domain.EINTERNAL {
		middleware.GetLogger(r.Context()).Error("request failed",
			"error", err,
			"op", domain.ErrorOp(err),
		)
	}

	respondJSON(w, r, errorStatus(code), envelope{Status: "error", Message: message})
}

func errorStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests
	case domain.ETOOLARGE:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes the request body into dst and runs struct validation.
// All failures surface as EINVALID so the client sees a 400.
func decodeJSON(r *http.Request, dst any) error {
	const op = "handler.decodeJSON"

	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return domain.Errorf(domain.ETOOLARGE, op, "request body exceeds %d bytes", maxBodyBytes)
		}
		if errors.Is(err, io.EOF) {
			return domain.Invalid(op, "request body is empty")
		}
		return domain.Invalid(op, "invalid JSON in request body")
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return domain.Invalid(op, validationMessage(verrs[0]))
		}
		return domain.Invalid(op, "invalid request body")
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// pathID extracts and parses the {id} path segment as an ObjectID.
func pathID(r *http.Request) (primitive.ObjectID, error) {
	return pathObjectID(r, "id")
}

func pathObjectID(r *http.Request, name string) (primitive.ObjectID, error) {
	const op = "handler.pathObjectID"

	raw := r.PathValue(name)
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, domain.Errorf(domain.EINVALID, op, "invalid %s: %q", name, raw)
	}
	return id, nil
}

// listQuery parses page, limit, sort, and fields query parameters. An
// unrecognized sort value is rejected rather than silently falling back to
// the default order.
func listQuery(r *http.Request) (domain.ListQuery, error) {
	const op = "handler.listQuery"

	q := domain.ListQuery{}
	values := r.URL.Query()

	if page, err := strconv.ParseUint(values.Get("page"), 10, 32); err == nil {
		q.Page = uint(page)
	}
	if limit, err := strconv.ParseUint(values.Get("limit"), 10, 32); err == nil {
		q.Limit = uint(limit)
	}
	if sort := values.Get("sort"); sort != "" {
		q.SortBy = domain.SortOrder(sort)
		if !q.SortBy.Valid() {
			return q, domain.Errorf(domain.EINVALID, op, "invalid sort: %q", sort)
		}
	}
	if fields := values.Get("fields"); fields != "" {
		for _, f := range strings.Split(fields, ",") {
			if f = strings.TrimSpace(f); f != "" {
				q.Fields = append(q.Fields, f)
			}
		}
	}
	return q, nil
}

// queryFloat parses an optional float query parameter, nil when absent.
func queryFloat(values map[string][]string, name string) *float64 {
	vs, ok := values[name]
	if !ok || len(vs) == 0 {
		return nil
	}
	f, err := strconv.ParseFloat(vs[0], 64)
	if err != nil {
		return nil
	}
	return &f
}
