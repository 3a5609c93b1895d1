package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	pkgerrors "user-balance-service/pkg/errors"
	"user-balance-service/pkg/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ValidationIssue describes one rejected field of a malformed request
type ValidationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationErrorResponse is returned with 422 for malformed requests
type ValidationErrorResponse struct {
	Detail []ValidationIssue `json:"detail"`
}

var registerTagNames sync.Once

// useJSONFieldNames makes validator report json names (from_user_id) instead of Go names
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// writeBindError converts a binding failure into a 422 response
func writeBindError(c *gin.Context, log *zap.Logger, err error) {
	logger.WithContext(c.Request.Context(), log).Warn("invalid request body", zap.Error(err))
	c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{Detail: bindIssues(err)})
}

// writeValidationIssues rejects a request that bound cleanly but still breaks the schema
func writeValidationIssues(c *gin.Context, log *zap.Logger, issues ...ValidationIssue) {
	logger.WithContext(c.Request.Context(), log).Warn("invalid request body", zap.Any("issues", issues))
	c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{Detail: issues})
}

func bindIssues(err error) []ValidationIssue {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		issues := make([]ValidationIssue, 0, len(validationErrors))
		for _, e := range validationErrors {
			issue := ValidationIssue{Loc: []string{"body", e.Field()}}
			switch e.Tag() {
			case "required":
				issue.Msg = "Field required"
				issue.Type = "missing"
			case "email":
				issue.Msg = "value is not a valid email address"
				issue.Type = "value_error"
			default:
				issue.Msg = "Value is invalid"
				issue.Type = "value_error"
			}
			issues = append(issues, issue)
		}
		return issues
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []ValidationIssue{{
			Loc:  []string{"body", typeErr.Field},
			Msg:  "Input should be a valid " + jsonTypeName(typeErr.Type),
			Type: "type_error",
		}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return []ValidationIssue{{Loc: []string{"body"}, Msg: "JSON decode error", Type: "json_invalid"}}
	}

	return []ValidationIssue{{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"}}
}

// jsonTypeName names the expected JSON type rather than the Go type behind it
func jsonTypeName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Ptr:
		return jsonTypeName(t.Elem())
	default:
		return "value"
	}
}

// handleError converts usecase errors to HTTP responses using the status each error carries
func handleError(c *gin.Context, log *zap.Logger, err error) {
	status := pkgerrors.StatusOf(err)
	l := logger.WithContext(c.Request.Context(), log)

	if status >= http.StatusInternalServerError {
		l.Error("request failed", zap.Error(err))
		c.JSON(status, ErrorResponse{Detail: "Internal Server Error"})
		return
	}

	l.Debug("request rejected", zap.Int("status", status), zap.Error(err))
	c.JSON(status, ErrorResponse{Detail: err.Error()})
}
