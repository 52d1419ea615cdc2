package south

import (
	"encoding/json"
	"reflect"
	"strings"

	"booknotes/internal/partner"
)

// fields reads typed values out of a record and keeps the first failure.
type fields struct {
	rec partner.Record
	err error
}

func (f *fields) fail(key, reason string) {
	if f.err == nil {
		f.err = &partner.MalformedRecordError{Index: partner.UnknownIndex, Field: key, Reason: reason}
	}
}

func (f *fields) value(key string) (any, bool) {
	v, ok := f.rec[key]
	if !ok || v == nil {
		f.fail(key, "is missing")
		return nil, false
	}
	return v, true
}

func (f *fields) str(key string) string {
	v, ok := f.value(key)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		f.fail(key, "is not a string")
		return ""
	}
	return s
}

// scalar returns a number or string value untouched.
func (f *fields) scalar(key string) any {
	v, ok := f.value(key)
	if !ok {
		return nil
	}
	if _, isString := v.(string); isString {
		return v
	}
	if _, isNumber := number(v); isNumber {
		return v
	}
	f.fail(key, "is not a number or string")
	return nil
}

// flag reads a boolean-like value. The key must be present; null and any
// value outside the truthy set read as false.
func (f *fields) flag(key string) bool {
	v, ok := f.rec[key]
	if !ok {
		f.fail(key, "is missing")
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "1", "t", "true", "y", "yes", "on":
			return true
		}
		return false
	}
	n, isNumber := number(v)
	return isNumber && n != 0
}

// number reports the value of v when it is a json.Number or any Go numeric
// type, which covers records built by json.Unmarshal as well as by hand.
func number(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
