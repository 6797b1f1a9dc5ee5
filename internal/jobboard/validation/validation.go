// Package validation binds and validates the declared parts of an inbound
// request (uri, query, headers, body, form) before a handler runs. All violations
// across all parts are collected and reported together; on any failure the
// request is answered with 400 and the handler never executes.
package validation

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Parts declares the request shapes to validate. Nil parts are skipped.
type Parts struct {
	URI    any
	Query  any
	Header any
	Body   any
	Form   any
}

// Bind validates every declared part of the request. It returns false after
// responding 400 with the full violation list if any part fails; the bound
// structs are only trustworthy when it returns true.
func Bind(c *gin.Context, parts Parts) bool {
	var problems []string

	if parts.URI != nil {
		if err := c.ShouldBindUri(parts.URI); err != nil {
			problems = append(problems, Problems(err)...)
		}
	}
	if parts.Query != nil {
		if err := c.ShouldBindQuery(parts.Query); err != nil {
			problems = append(problems, Problems(err)...)
		}
	}
	if parts.Header != nil {
		if err := c.ShouldBindHeader(parts.Header); err != nil {
			problems = append(problems, Problems(err)...)
		}
	}
	if parts.Body != nil {
		if err := c.ShouldBindJSON(parts.Body); err != nil {
			problems = append(problems, Problems(err)...)
		}
	}
	if parts.Form != nil {
		if err := c.ShouldBind(parts.Form); err != nil {
			problems = append(problems, Problems(err)...)
		}
	}

	if len(problems) > 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"err_msg": "validation error",
			"errors":  problems,
		})
		return false
	}
	return true
}

// Problems flattens a binding error into human-readable messages, one per
// violated field.
func Problems(err error) []string {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		messages := make([]string, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			messages = append(messages, describe(fe))
		}
		return messages
	}
	return []string{"invalid request: " + err.Error()}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "required_without":
		return fmt.Sprintf("%s is required when %s is not given", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters long", fe.Field(), fe.Param())
	case "uuid":
		return fmt.Sprintf("%s must be a valid id", fe.Field())
	case "numeric":
		return fmt.Sprintf("%s must contain only digits", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must be a date formatted as %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed the %s constraint", fe.Field(), fe.Tag())
	}
}
