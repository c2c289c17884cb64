package canonical

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// DecodeJSON parses a JSON document into a Value, preserving object key
// order and the original literal of every number. Webhook bodies and
// gateway responses are decoded through this path so that an amount like
// 100.00000000 re-serializes exactly as it arrived.
func DecodeJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Null(), err
	}

	// Anything after the first document is malformed
	if _, err := dec.Token(); err != io.EOF {
		return Null(), fmt.Errorf("canonical: trailing data after JSON document")
	}

	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Null(), err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return Null(), fmt.Errorf("canonical: unexpected delimiter %q", t.String())
		}
	case string:
		return String(t), nil
	case json.Number:
		return Number(t.String()), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return Null(), fmt.Errorf("canonical: unexpected JSON token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	p := NewPayload()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Null(), err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Null(), fmt.Errorf("canonical: non-string object key %v", keyTok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return Null(), err
		}
		p.Set(key, v)
	}
	// Consume the closing brace
	if _, err := dec.Token(); err != nil {
		return Null(), err
	}
	return Mapping(p), nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	var elems []Value
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return Null(), err
		}
		elems = append(elems, v)
	}
	if _, err := dec.Token(); err != nil {
		return Null(), err
	}
	return Sequence(elems...), nil
}

// MarshalJSON emits the payload as a JSON object with keys in insertion
// order, so an outbound envelope marshals deterministically.
func (p *Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valJSON, err := p.values[key].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON emits the value as JSON. Numbers are written as their
// original literal, unquoted.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		if v.boolVal {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case KindNumber:
		if v.numLit == "" {
			return []byte("0"), nil
		}
		return []byte(v.numLit), nil
	case KindString:
		return json.Marshal(v.strVal)
	case KindSequence:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, elem := range v.seq {
			if i > 0 {
				buf.WriteByte(',')
			}
			elemJSON, err := elem.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(elemJSON)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindMapping:
		return v.mapping.MarshalJSON()
	default:
		return nil, fmt.Errorf("canonical: cannot marshal kind %s", v.kind)
	}
}
