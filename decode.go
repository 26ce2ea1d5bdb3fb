// FILE: lixenwraith/kvconf/decode.go
package kvconf

import (
	"fmt"
	"net"
	"net/url"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// TagName is the struct tag Scan uses to map option names to fields.
const TagName = "kvconf"

// Scan decodes the options under basePath into target, which must be a
// non-nil pointer to a struct or map. Dotted option names address nested
// structs ("server.port" fills Server.Port). An empty basePath scans everything.
// String values are converted to the field types; integers follow the Int64 rules.
func (s *Store) Scan(basePath string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return newError(ErrInvalidParam, basePath, "", fmt.Errorf("scan target must be non-nil pointer, got %T", target))
	}

	snap, err := s.snapshot()
	if err != nil {
		return err
	}

	nested := nestValues(snap)

	sectionData := navigateToPath(nested, basePath)
	sectionMap, ok := sectionData.(map[string]any)
	if !ok {
		if sectionData != nil {
			return newError(ErrInvalidParam, basePath, "", fmt.Errorf("path refers to a value, not a section"))
		}
		sectionMap = make(map[string]any)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          TagName,
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
	})
	if err != nil {
		return newError(ErrInternal, basePath, "", err)
	}

	if err := decoder.Decode(sectionMap); err != nil {
		return newError(ErrInvalidParam, basePath, "", err)
	}
	return nil
}

// decodeHook returns the composite decode hook for all type conversions
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		stringToIntHookFunc(),
		stringToNetIPHookFunc(),
		stringToURLHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// stringToIntHookFunc parses strings bound for signed integer fields with parseInt64.
func stringToIntHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		default:
			return data, nil
		}
		// time.Duration is an int64 kind but has its own hook
		if t.PkgPath() == "time" && t.Name() == "Duration" {
			return data, nil
		}

		n, err := parseInt64(data.(string))
		if err != nil {
			return nil, err
		}
		if reflect.Zero(t).OverflowInt(n) {
			return nil, fmt.Errorf("value %d overflows %s", n, t)
		}
		return n, nil
	}
}

// stringToNetIPHookFunc handles net.IP conversion
func stringToNetIPHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(net.IP{}) {
			return data, nil
		}

		str := data.(string)
		if str == "" {
			return net.IP(nil), nil
		}
		ip := net.ParseIP(str)
		if ip == nil {
			return nil, fmt.Errorf("invalid IP address: %s", str)
		}
		return ip, nil
	}
}

// stringToURLHookFunc handles url.URL conversion
func stringToURLHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		targetType := t
		if isPtr {
			targetType = t.Elem()
		}
		if targetType != reflect.TypeOf(url.URL{}) {
			return data, nil
		}

		u, err := url.Parse(data.(string))
		if err != nil {
			return nil, fmt.Errorf("invalid URL: %w", err)
		}
		if isPtr {
			return u, nil
		}
		return *u, nil
	}
}
