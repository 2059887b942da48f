package apiclient

import (
	"fmt"
	"net/url"
	"reflect"
)

// Filters are passed to the backend as query parameters. Keys are not checked here, the
// backend rejects the ones it does not know.
type Filters map[string]any

// Values flattens the filters, dropping nil values and nil pointers.
func (f Filters) Values() url.Values {
	values := url.Values{}
	for key, val := range f {
		v, ok := filterValue(val)
		if !ok {
			continue
		}
		values.Set(key, v)
	}
	return values
}

func filterValue(val any) (string, bool) {
	if val == nil {
		return "", false
	}
	rv := reflect.ValueOf(val)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	return fmt.Sprint(rv.Interface()), true
}

// FiltersFromQuery turns an inbound query string into filters, skipping the given keys.
func FiltersFromQuery(q url.Values, skip ...string) Filters {
	f := Filters{}
	for key, vals := range q {
		if len(vals) == 0 || contains(skip, key) {
			continue
		}
		f[key] = vals[0]
	}
	return f
}

func contains(s []string, e string) bool {
	for _, a := range s {
		if a == e {
			return true
		}
	}
	return false
}
