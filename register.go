// FILE: lixenwraith/kvconf/register.go
package kvconf

import (
	"fmt"
	"net"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// StructSource labels options declared from a Go struct.
const StructSource = "<struct>"

var (
	durationType = reflect.TypeOf(time.Duration(0))
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// DeclareStruct declares one option per leaf field of defaults, in add mode.
// Paths come from the `kvconf` tag (field name when untagged, "-" skips) and
// nested structs contribute dotted prefixes. Each option's location is
// "<struct>:<FieldPath>". Declaration stops at the first failing field.
func (s *Store) DeclareStruct(prefix string, defaults any) error {
	if err := s.alive(); err != nil {
		return err
	}

	v := reflect.ValueOf(defaults)

	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return newError(ErrInvalidParam, "", StructSource, fmt.Errorf("DeclareStruct requires a non-nil struct pointer or value"))
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return newError(ErrInvalidParam, "", StructSource, fmt.Errorf("DeclareStruct requires a struct or struct pointer, got %T", defaults))
	}

	if prefix != "" && !strings.HasSuffix(prefix, ".") {
		prefix += "."
	}
	return s.declareFields(v, prefix, "")
}

// declareFields walks v recursively, writing every leaf field.
func (s *Store) declareFields(v reflect.Value, pathPrefix, fieldPath string) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get(TagName)
		if tag == "-" {
			continue
		}

		key := field.Name
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			key = name
		}
		currentPath := pathPrefix + key
		currentField := fieldPath + field.Name

		if nested, ok := nestedStruct(fieldValue); ok {
			if !nested.IsValid() {
				continue
			}
			if err := s.declareFields(nested, currentPath+".", currentField+"."); err != nil {
				return err
			}
			continue
		}

		location := StructSource + ":" + currentField
		text, err := formatValue(fieldValue)
		if err != nil {
			return s.fail(newError(ErrInvalidParam, currentPath, location, err))
		}
		if _, err := formatLine(currentPath, text); err != nil {
			return s.fail(withLocation(err, location))
		}
		if err := s.Write(ModeAdd, currentPath, text, location); err != nil {
			return s.fail(withLocation(err, location))
		}
	}
	return nil
}

// nestedStruct reports whether v is a struct (or pointer to one) that should
// be descended into. Types with their own text form are leaves. The returned
// value is invalid for a nil pointer.
func nestedStruct(v reflect.Value) (reflect.Value, bool) {
	t := v.Type()
	if t.Kind() == reflect.Ptr {
		if t.Elem().Kind() != reflect.Struct || t.Implements(stringerType) {
			return reflect.Value{}, false
		}
		if v.IsNil() {
			return reflect.Value{}, true
		}
		return v.Elem(), true
	}
	if t.Kind() != reflect.Struct || t.Implements(stringerType) || reflect.PointerTo(t).Implements(stringerType) {
		return reflect.Value{}, false
	}
	return v, true
}

// formatValue renders a leaf field in the text form Scan accepts back.
func formatValue(v reflect.Value) (string, error) {
	if v.Type() == durationType {
		return time.Duration(v.Int()).String(), nil
	}

	switch val := v.Interface().(type) {
	case time.Time:
		return val.Format(time.RFC3339Nano), nil
	case url.URL:
		return val.String(), nil
	case net.IP:
		if val == nil {
			return "", nil
		}
		return val.String(), nil
	case *url.URL:
		if val == nil {
			return "", nil
		}
		return val.String(), nil
	}

	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits()), nil
	case reflect.Slice, reflect.Array:
		parts := make([]string, v.Len())
		for i := range parts {
			part, err := formatValue(v.Index(i))
			if err != nil {
				return "", err
			}
			if strings.Contains(part, ",") {
				return "", fmt.Errorf("slice element %q contains ','", part)
			}
			parts[i] = part
		}
		return strings.Join(parts, ","), nil
	}

	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String(), nil
	}
	return "", fmt.Errorf("unsupported field type %s", v.Type())
}

// KeysWithPrefix returns the sorted option names that start with prefix.
func (s *Store) KeysWithPrefix(prefix string) []string {
	keys := s.Keys()
	result := keys[:0]
	for _, key := range keys {
		if strings.HasPrefix(key, prefix) {
			result = append(result, key)
		}
	}
	return result
}
