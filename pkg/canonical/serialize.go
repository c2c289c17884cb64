package canonical

import (
	"strconv"
	"strings"
)

// Serialize produces the deterministic string form of a payload: one
// "key=value" token per entry in insertion order, joined with ", ".
// Nested mappings are wrapped in {...}, sequences in [...]. Strings are
// emitted raw with no escaping — the output is a one-way digest input
// and is never parsed back, so a string value containing ", " or "="
// simply makes the output ambiguous, which the protocol accepts.
//
// A nil payload serializes to the empty string.
func Serialize(p *Payload) string {
	var sb strings.Builder
	writePayload(&sb, p)
	return sb.String()
}

func writePayload(sb *strings.Builder, p *Payload) {
	if p == nil {
		return
	}
	for i, key := range p.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(key)
		sb.WriteByte('=')
		writeValue(sb, p.values[key])
	}
}

func writeValue(sb *strings.Builder, v Value) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.boolVal))
	case KindNumber:
		sb.WriteString(v.numLit)
	case KindString:
		sb.WriteString(v.strVal)
	case KindSequence:
		sb.WriteByte('[')
		for i, elem := range v.seq {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeValue(sb, elem)
		}
		sb.WriteByte(']')
	case KindMapping:
		sb.WriteByte('{')
		writePayload(sb, v.mapping)
		sb.WriteByte('}')
	}
}
