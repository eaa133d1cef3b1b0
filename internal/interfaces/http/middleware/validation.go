package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/realtyadmin/backend/internal/interfaces/http/dto"
)

// SetupValidator registers the custom tags on gin's validator and reports
// fields by their json (or form) name
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("clock", validateClock)
	v.RegisterTagNameFunc(fieldName)
}

func fieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		name, _, _ = strings.Cut(fld.Tag.Get("form"), ",")
	}
	return name
}

// FormatValidationErrors turns validator errors into the 400 envelope, one
// detail per rejected field
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details = make([]dto.ValidationDetail, 0, len(verrs))
		for _, e := range verrs {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: getValidationMessage(e),
				Tag:     e.Tag(),
			})
		}
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError writes the validation envelope with status 400
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, c.GetString(RequestIDKey)))
}

var fixedMessages = map[string]string{
	"required": "This field is required",
	"email":    "Invalid email format",
	"uuid":     "Invalid UUID format",
	"url":      "Invalid URL format",
	"numeric":  "Must be numeric",
	"alphanum": "Must be alphanumeric",
	"alpha":    "Must contain only letters",
	"clock":    "Must be a time in HH:MM format",
}

var paramMessages = map[string]string{
	"oneof":    "Must be one of: ",
	"gte":      "Must be greater than or equal to ",
	"lte":      "Must be less than or equal to ",
	"gt":       "Must be greater than ",
	"lt":       "Must be less than ",
	"len":      "Must be exactly %s characters",
	"datetime": "Must be a date in %s format",
	"gtefield": "Must not be before %s",
}

func getValidationMessage(e validator.FieldError) string {
	if msg, ok := fixedMessages[e.Tag()]; ok {
		return msg
	}
	switch e.Tag() {
	case "min", "max":
		word := "least"
		if e.Tag() == "max" {
			word = "most"
		}
		msg := "Must be at " + word + " " + e.Param()
		if e.Kind() == reflect.String {
			msg += " characters"
		}
		return msg
	}
	if msg, ok := paramMessages[e.Tag()]; ok {
		if strings.Contains(msg, "%s") {
			return strings.Replace(msg, "%s", e.Param(), 1)
		}
		return msg + e.Param()
	}
	return "Invalid value"
}

// validateClock accepts 24 hour "HH:MM" values
func validateClock(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", fl.Field().String())
	return err == nil
}
