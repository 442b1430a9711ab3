package binder

import (
	"fmt"
	"net/http"
	"reflect"
)

// Path binds route parameters into fields tagged `path:"name"`.
// extractor is router specific, e.g. chi.URLParam.
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrFailedToParsePath)
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a pointer to struct", ErrFailedToParsePath)
		}

		rt := rv.Elem().Type()
		values := make(map[string][]string, rt.NumField())
		for i := range rt.NumField() {
			f := rt.Field(i)
			if _, ok := f.Tag.Lookup("path"); !ok {
				continue
			}
			name, skip := parseFieldTag(f, "path")
			if skip {
				continue
			}
			if val := extractor(r, name); val != "" {
				values[name] = []string{val}
			}
		}

		return bindToStruct(v, "path", values, ErrFailedToParsePath)
	}
}
