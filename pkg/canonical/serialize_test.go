package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerializeScalars(t *testing.T) {
	tests := []struct {
		name    string
		payload *Payload
		want    string
	}{
		{
			name:    "empty payload",
			payload: NewPayload(),
			want:    "",
		},
		{
			name:    "nil payload",
			payload: nil,
			want:    "",
		},
		{
			name:    "single string",
			payload: NewPayload().Set("to", String("X")),
			want:    "to=X",
		},
		{
			name:    "integer",
			payload: NewPayload().Set("amount", Int(1)),
			want:    "amount=1",
		},
		{
			name:    "booleans",
			payload: NewPayload().Set("a", Bool(true)).Set("b", Bool(false)),
			want:    "a=true, b=false",
		},
		{
			name:    "null",
			payload: NewPayload().Set("memo", Null()),
			want:    "memo=null",
		},
		{
			name: "mixed entries joined with comma space",
			payload: NewPayload().
				Set("symbol", String("BTC")).
				Set("confirmed", Bool(true)).
				Set("height", Int(812345)),
			want: "symbol=BTC, confirmed=true, height=812345",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Serialize(tt.payload))
		})
	}
}

func TestSerializeNestedMapping(t *testing.T) {
	payload := NewPayload().Set("tx", Mapping(
		NewPayload().
			Set("amount", Int(1)).
			Set("to", String("X")),
	))

	assert.Equal(t, "tx={amount=1, to=X}", Serialize(payload))
}

func TestSerializeSequenceOfMappings(t *testing.T) {
	payload := NewPayload().Set("items", Sequence(
		Mapping(NewPayload().Set("a", Int(1))),
		Mapping(NewPayload().Set("a", Int(2))),
	))

	assert.Equal(t, "items=[{a=1}, {a=2}]", Serialize(payload))
}

func TestSerializeSequenceOfScalars(t *testing.T) {
	payload := NewPayload().Set("chains", Sequence(String("ERC20"), String("TRC20")))

	assert.Equal(t, "chains=[ERC20, TRC20]", Serialize(payload))
}

func TestSerializeOrderSensitivity(t *testing.T) {
	first := NewPayload().Set("a", Int(1)).Set("b", Int(2))
	second := NewPayload().Set("b", Int(2)).Set("a", Int(1))

	assert.Equal(t, "a=1, b=2", Serialize(first))
	assert.Equal(t, "b=2, a=1", Serialize(second))
	assert.NotEqual(t, Serialize(first), Serialize(second),
		"same entries in different insertion order must serialize differently")
}

func TestSerializeDeterminism(t *testing.T) {
	payload := NewPayload().
		Set("orderId", String("ord-1")).
		Set("amount", Number("0.50")).
		Set("meta", Mapping(NewPayload().Set("ref", String("abc"))))

	first := Serialize(payload)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Serialize(payload))
	}
}

func TestSerializeNumericLiteralFidelity(t *testing.T) {
	// Trailing zeros supplied by the caller must survive verbatim
	payload := NewPayload().Set("amount", Number("100.00000000"))

	assert.Equal(t, "amount=100.00000000", Serialize(payload))
}

func TestSerializeNoEscaping(t *testing.T) {
	// Separator characters inside string values are emitted as-is; the
	// output is a digest input, not a reversible encoding
	payload := NewPayload().Set("memo", String("a, b=c}"))

	assert.Equal(t, "memo=a, b=c}", Serialize(payload))
}

func TestSetReplacesInPlace(t *testing.T) {
	payload := NewPayload().
		Set("a", Int(1)).
		Set("b", Int(2)).
		Set("a", Int(3))

	assert.Equal(t, "a=3, b=2", Serialize(payload))
	assert.Equal(t, 2, payload.Len())
}
