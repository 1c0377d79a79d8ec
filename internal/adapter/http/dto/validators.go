package dto

import (
	"html"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const maxEventTypeLength = 100

var (
	safeStringRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)
	eventTypeRe  = regexp.MustCompile(`^[a-zA-Z0-9_\-\.:]+$`)
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("safe_id", validateSafeID)
		_ = v.RegisterValidation("event_type", validateEventType)
	}
}

// validateSafeID allows alphanumeric, underscore, dash, and dot.
func validateSafeID(fl validator.FieldLevel) bool {
	return safeStringRe.MatchString(fl.Field().String())
}

// validateEventType accepts dotted names such as "order.created" or "invoice:paid".
func validateEventType(fl validator.FieldLevel) bool {
	return IsEventType(fl.Field().String())
}

// IsEventType reports whether s is a well-formed event type.
func IsEventType(s string) bool {
	return len(s) <= maxEventTypeLength && eventTypeRe.MatchString(s)
}

// SanitizeStruct trims whitespace from every exported string field
// (including *string) of a struct pointer. Fields tagged sanitize:"html"
// are HTML-escaped as well; URLs and event types are left verbatim.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		escape := rt.Field(i).Tag.Get("sanitize") == "html"
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String(), escape))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				elem.SetString(sanitize(elem.String(), escape))
			}
		case reflect.Slice:
			if f.Type().Elem().Kind() != reflect.String {
				continue
			}
			for j := 0; j < f.Len(); j++ {
				f.Index(j).SetString(sanitize(f.Index(j).String(), escape))
			}
		}
	}
}

func sanitize(s string, escape bool) string {
	s = strings.TrimSpace(s)
	if escape {
		return html.EscapeString(s)
	}
	return s
}
