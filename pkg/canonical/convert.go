package canonical

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// UnsupportedTypeError reports a Go value that has no representation in
// the payload model. Signing a payload built from such a value must fail
// rather than fall back to fmt-style stringification.
type UnsupportedTypeError struct {
	GoType string
	Reason string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("canonical: cannot represent %s: %s", e.GoType, e.Reason)
	}
	return fmt.Sprintf("canonical: cannot represent %s", e.GoType)
}

// FromGo converts an ordinary Go value into a Value. Supported inputs:
// nil, bool, string, json.Number, the integer and float primitives,
// Value, *Payload, and slices of any supported input.
//
// Plain Go maps are rejected: map iteration order is randomized, and key
// order is part of the signature, so accepting a map would make the
// produced signature nondeterministic. Build a *Payload instead.
func FromGo(in interface{}) (Value, error) {
	switch v := in.(type) {
	case nil:
		return Null(), nil
	case Value:
		return v, nil
	case *Payload:
		return Mapping(v), nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case json.Number:
		return Number(v.String()), nil
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint:
		return Number(strconv.FormatUint(uint64(v), 10)), nil
	case uint8:
		return Number(strconv.FormatUint(uint64(v), 10)), nil
	case uint16:
		return Number(strconv.FormatUint(uint64(v), 10)), nil
	case uint32:
		return Number(strconv.FormatUint(uint64(v), 10)), nil
	case uint64:
		return Number(strconv.FormatUint(v, 10)), nil
	case float32:
		return Number(strconv.FormatFloat(float64(v), 'f', -1, 32)), nil
	case float64:
		return Number(strconv.FormatFloat(v, 'f', -1, 64)), nil
	case []Value:
		return Sequence(v...), nil
	case []interface{}:
		elems := make([]Value, 0, len(v))
		for _, e := range v {
			ev, err := FromGo(e)
			if err != nil {
				return Null(), err
			}
			elems = append(elems, ev)
		}
		return Sequence(elems...), nil
	}

	rt := reflect.TypeOf(in)
	if rt.Kind() == reflect.Map {
		return Null(), &UnsupportedTypeError{
			GoType: rt.String(),
			Reason: "map iteration order is not deterministic, use *canonical.Payload",
		}
	}
	if rt.Kind() == reflect.Slice || rt.Kind() == reflect.Array {
		rv := reflect.ValueOf(in)
		elems := make([]Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev, err := FromGo(rv.Index(i).Interface())
			if err != nil {
				return Null(), err
			}
			elems = append(elems, ev)
		}
		return Sequence(elems...), nil
	}

	return Null(), &UnsupportedTypeError{GoType: rt.String()}
}
