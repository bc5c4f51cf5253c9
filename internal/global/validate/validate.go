// Package validate wraps gin's binding-tag schemas: it rewrites
// validator output into the API's single field-qualified message list
// and provides the query coercion helpers the list endpoints share.
package validate

import (
	"campus-discover/internal/global/response"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init registers json/form tag names with the binding validator so
// failure messages reference wire field names, not Go field names.
func Init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})
}

// BindJSON parses the request body into obj and translates any failure
// into a 400 with every offending field listed.
func BindJSON(c *gin.Context, obj any) *response.Error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return response.ErrInvalidRequest.WithMessage(Message(err)).WithOrigin(err)
	}
	return nil
}

// BindQuery is BindJSON for query parameters.
func BindQuery(c *gin.Context, obj any) *response.Error {
	if err := c.ShouldBindQuery(obj); err != nil {
		return response.ErrInvalidRequest.WithMessage(Message(err)).WithOrigin(err)
	}
	return nil
}

// Message flattens a binding error into "Validation failed: field: msg, ...".
func Message(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fe.Field()+": "+fieldMessage(fe))
		}
		return "Validation failed: " + strings.Join(parts, ", ")
	}
	return "Invalid request body"
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "hexcolor":
		return "must be a hex color"
	case "oneof":
		return "must be one of " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "is invalid"
	}
}

// QueryInt coerces a query parameter into a positive integer, falling
// back to def when the parameter is absent or unparsable.
func QueryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// ParamID parses a numeric path identifier.
func ParamID(c *gin.Context, name string) (uint, *response.Error) {
	raw := c.Param(name)
	if raw == "" {
		return 0, response.ErrInvalidRequest.WithMessage("Invalid " + name)
	}
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, response.ErrInvalidRequest.WithMessage("Invalid " + name)
	}
	return uint(id), nil
}
