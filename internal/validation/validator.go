// FeedForge - DP-1 Feed Operator for Signed Playlists and Channels
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedforge

// Package validation provides struct validation using go-playground/validator v10.
// It provides a thread-safe singleton validator instance with the custom rules
// the DP-1 record shapes need, plus the protected-field guard, the dpVersion
// gate, and the slug generator.
//
// Features:
//   - Singleton validator instance (thread-safe, caches struct info)
//   - Custom validators: rfc3339, didkey, ed25519sig, slugid
//   - JSON tag names in error paths (items[0].source, not Items[0].Source)
//   - Error translation into "<path>: <issue>" messages
//
// Example usage:
//
//	if verr := validation.ValidateStruct(&input); verr != nil {
//	    respondError(w, http.StatusBadRequest, "validation_error", verr.Error())
//	    return
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

var (
	didKeyRegex     = regexp.MustCompile(`^did:key:z[1-9A-HJ-NP-Za-km-z]+$`)
	ed25519SigRegex = regexp.MustCompile(`^ed25519:0x[0-9a-f]+$`)
	slugRegex       = regexp.MustCompile(`^[a-z0-9-]+$`)
	rfc3339Regex    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`)
)

// ValidationError represents a single field validation error.
type ValidationError struct {
	path    string
	tag     string
	param   string
	value   interface{}
	message string
}

// Path returns the JSON path of the field that failed validation.
func (e *ValidationError) Path() string {
	return e.path
}

// Tag returns the validation tag that failed.
func (e *ValidationError) Tag() string {
	return e.tag
}

// Param returns the parameter for the validation tag (e.g. "100" for "max=100").
func (e *ValidationError) Param() string {
	return e.param
}

// Value returns the actual value that failed validation.
func (e *ValidationError) Value() interface{} {
	return e.value
}

// Error returns a human-readable "<path>: <issue>" message.
func (e *ValidationError) Error() string {
	return e.message
}

// RequestValidationError is a collection of validation errors for one input.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the individual field errors.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

// Error implements the error interface, joining all field messages.
func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}

	messages := make([]string, len(ve.errors))
	for i, err := range ve.errors {
		messages[i] = err.Error()
	}

	return strings.Join(messages, "; ")
}

// GetValidator returns the singleton validator instance.
// The validator is initialized once with custom validators and options.
// This function is thread-safe.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report JSON field names so error paths match the wire format.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		mustRegister("rfc3339", func(fl validator.FieldLevel) bool {
			return rfc3339Regex.MatchString(fl.Field().String())
		})
		mustRegister("didkey", func(fl validator.FieldLevel) bool {
			return didKeyRegex.MatchString(fl.Field().String())
		})
		mustRegister("ed25519sig", func(fl validator.FieldLevel) bool {
			return ed25519SigRegex.MatchString(fl.Field().String())
		})
		mustRegister("slugid", func(fl validator.FieldLevel) bool {
			return slugRegex.MatchString(fl.Field().String())
		})
	})

	return validate
}

// mustRegister registers a custom validation rule; registration only fails
// on an empty tag, which would be a programming error.
func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil if validation passes, or *RequestValidationError with one
// entry per failed field.
func ValidateStruct(s interface{}) *RequestValidationError {
	v := GetValidator()

	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestValidationError{
			errors: []ValidationError{
				{
					path:    "unknown",
					tag:     "unknown",
					message: err.Error(),
				},
			},
		}
	}

	fieldErrors := make([]ValidationError, len(validationErrs))
	for i, fieldErr := range validationErrs {
		path := jsonPath(fieldErr.Namespace())
		fieldErrors[i] = ValidationError{
			path:    path,
			tag:     fieldErr.Tag(),
			param:   fieldErr.Param(),
			value:   fieldErr.Value(),
			message: fmt.Sprintf("%s: %s", path, translateError(fieldErr)),
		}
	}

	return &RequestValidationError{errors: fieldErrors}
}

// jsonPath strips the root struct name from a validator namespace, leaving
// the JSON path: "PlaylistInput.items[0].source" -> "items[0].source".
func jsonPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// errorMessageTemplates maps validation tags to message templates.
var errorMessageTemplates = map[string]string{
	"required":    "is required",
	"url":         "must be a valid URL",
	"uuid4":       "must be a valid UUIDv4",
	"rfc3339":     "must be a valid RFC 3339 timestamp",
	"didkey":      "must be a did:key identifier",
	"ed25519sig":  "must match ed25519:0x<hex>",
	"slugid":      "must contain only lowercase letters, digits and hyphens",
	"hexadecimal": "must be hexadecimal",
}

// errorMessageWithParam maps validation tags to templates that include the param.
var errorMessageWithParam = map[string]string{
	"oneof": "must be one of: %s",
	"len":   "must be exactly %s characters",
	"gte":   "must be greater than or equal to %s",
	"lte":   "must be less than or equal to %s",
	"gt":    "must be greater than %s",
	"lt":    "must be less than %s",
}

// translateError converts a validator.FieldError to a human-readable issue.
func translateError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return template
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, param)
	}

	return translateMinMax(fe, tag, param)
}

// translateMinMax handles min/max with kind-specific messages.
func translateMinMax(fe validator.FieldError, tag, param string) string {
	kind := fe.Kind()
	isString := kind == reflect.String
	isSlice := kind == reflect.Slice || kind == reflect.Array || kind == reflect.Map

	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", param)
		}
		if isSlice {
			return fmt.Sprintf("must contain at least %s entries", param)
		}
		return fmt.Sprintf("must be at least %s", param)
	case "max":
		if isString {
			return fmt.Sprintf("must be at most %s characters", param)
		}
		if isSlice {
			return fmt.Sprintf("must contain at most %s entries", param)
		}
		return fmt.Sprintf("must be at most %s", param)
	default:
		return fmt.Sprintf("failed %s validation", tag)
	}
}
