package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// fieldError is one entry of a 400 validation response
type fieldError struct {
	Property string `json:"property"`
	Message  string `json:"message"`
}

// validationError carries every offending field, first failing rule each
type validationError struct {
	Fields []fieldError
}

func (e *validationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// integer accepts a whole number in string form, e.g. a query parameter
	_ = v.RegisterValidation("integer", func(fl validator.FieldLevel) bool {
		_, ok := parseWhole(fl.Field().String())
		return ok
	})
	return v
}

// wholeNumber decodes a JSON number with no fractional part, so 10 and 10.0
// are the same value. Quoted numbers are rejected.
type wholeNumber int64

var errNotWhole = errors.New("not a whole number")

func (n *wholeNumber) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || b[0] == '"' {
		return errNotWhole
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	if i, err := num.Int64(); err == nil {
		*n = wholeNumber(i)
		return nil
	}
	f, err := num.Float64()
	if err != nil {
		return errNotWhole
	}
	i, ok := wholeFloat(f)
	if !ok {
		return errNotWhole
	}
	*n = wholeNumber(i)
	return nil
}

// parseWhole parses s as a number and reports whether it is a whole int64
func parseWhole(s string) (int64, bool) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return wholeFloat(f)
}

func wholeFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return 0, false
	}
	if f < -(1<<63) || f >= 1<<63 {
		return 0, false
	}
	return int64(f), true
}

// decodeAndValidate reads a JSON object into dst and checks its validate tags.
// Each field is decoded on its own so every type mismatch is reported, merged
// with the rule failures of the remaining fields.
func decodeAndValidate(r *http.Request, dst any) error {
	var raw map[string]json.RawMessage
	err := json.NewDecoder(r.Body).Decode(&raw)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		return &validationError{Fields: []fieldError{{Property: "body", Message: "request body must not be empty"}}}
	default:
		return &validationError{Fields: []fieldError{{Property: "body", Message: "request body must be valid JSON"}}}
	}

	fields := decodeFields(raw, dst)
	reported := make(map[string]bool, len(fields))
	for _, f := range fields {
		reported[f.Property] = true
	}
	if verr := validateStruct(dst); verr != nil {
		for _, f := range verr.Fields {
			if !reported[f.Property] {
				fields = append(fields, f)
			}
		}
	}
	if len(fields) > 0 {
		return &validationError{Fields: fields}
	}
	return nil
}

// decodeFields unmarshals each raw value into the dst field with the matching
// json name. Keys match exactly and unknown keys are ignored. A field that
// fails to decode is left at its zero value and reported.
func decodeFields(raw map[string]json.RawMessage, dst any) []fieldError {
	val := reflect.ValueOf(dst).Elem()
	typ := val.Type()

	var fields []fieldError
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" || !sf.IsExported() {
			continue
		}
		msg, ok := raw[name]
		if !ok {
			continue
		}
		fv := val.Field(i)
		if err := json.Unmarshal(msg, fv.Addr().Interface()); err != nil {
			fv.Set(reflect.Zero(fv.Type()))
			fields = append(fields, fieldError{Property: name, Message: typeMessage(name, sf.Type)})
		}
	}
	return fields
}

// validateStruct runs validate tags on v, a pointer to a struct
func validateStruct(v any) *validationError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &validationError{Fields: []fieldError{{Property: "body", Message: err.Error()}}}
	}

	typ := reflect.TypeOf(v)
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	fields := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldError{Property: fe.Field(), Message: ruleMessage(typ, fe)})
	}
	return &validationError{Fields: fields}
}

// ruleMessage prefers a field's msg tag, falling back to a message per rule
func ruleMessage(typ reflect.Type, fe validator.FieldError) string {
	if sf, ok := typ.FieldByName(fe.StructField()); ok {
		if msg := sf.Tag.Get("msg"); msg != "" {
			return msg
		}
	}

	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " should not be empty"
	case "email":
		return field + " must be an email"
	case "oneof":
		return field + " must be one of the following values: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "min":
		return field + " must not be less than " + fe.Param()
	case "max":
		return field + " must not be greater than " + fe.Param()
	case "integer":
		return field + " must be an integer number"
	default:
		return fmt.Sprintf("%s failed the %q rule", field, fe.Tag())
	}
}

func typeMessage(field string, t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return field + " must be an integer number"
	case reflect.Float32, reflect.Float64:
		return field + " must be a number"
	case reflect.String:
		return field + " must be a string"
	default:
		return field + " has the wrong type"
	}
}
