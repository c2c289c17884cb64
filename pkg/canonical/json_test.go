package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSONPreservesKeyOrder(t *testing.T) {
	doc, err := DecodeJSON([]byte(`{"b":2,"a":1,"c":3}`))
	require.NoError(t, err)
	require.Equal(t, KindMapping, doc.Kind())

	assert.Equal(t, []string{"b", "a", "c"}, doc.Nested().Keys())
	assert.Equal(t, "b=2, a=1, c=3", Serialize(doc.Nested()))
}

func TestDecodeJSONPreservesNumberLiterals(t *testing.T) {
	doc, err := DecodeJSON([]byte(`{"amount":100.00000000,"fee":0.50}`))
	require.NoError(t, err)

	amount, ok := doc.Nested().Get("amount")
	require.True(t, ok)
	assert.Equal(t, "100.00000000", amount.Literal())

	assert.Equal(t, "amount=100.00000000, fee=0.50", Serialize(doc.Nested()))
}

func TestDecodeJSONNested(t *testing.T) {
	doc, err := DecodeJSON([]byte(`{"data":{"tx":{"amount":1,"to":"X"}},"tags":["a","b"],"ok":true,"gone":null}`))
	require.NoError(t, err)

	assert.Equal(t, "data={tx={amount=1, to=X}}, tags=[a, b], ok=true, gone=null", Serialize(doc.Nested()))
}

func TestDecodeJSONScalarDocument(t *testing.T) {
	doc, err := DecodeJSON([]byte(`42`))
	require.NoError(t, err)
	assert.Equal(t, KindNumber, doc.Kind())
	assert.Nil(t, doc.Nested())
}

func TestDecodeJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"truncated object", `{"a":`},
		{"bare word", `notjson`},
		{"trailing data", `{"a":1}{"b":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestPayloadMarshalJSONKeepsOrder(t *testing.T) {
	payload := NewPayload().
		Set("z", Int(1)).
		Set("a", Number("2.50")).
		Set("nested", Mapping(NewPayload().Set("k", String("v")))).
		Set("list", Sequence(Bool(true), Null()))

	out, err := payload.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":2.50,"nested":{"k":"v"},"list":[true,null]}`, string(out))
}

func TestJSONRoundTripStableSerialization(t *testing.T) {
	payload := NewPayload().
		Set("orderId", String("ord-9")).
		Set("amount", Number("1.500"))

	out, err := payload.MarshalJSON()
	require.NoError(t, err)

	decoded, err := DecodeJSON(out)
	require.NoError(t, err)

	assert.Equal(t, Serialize(payload), Serialize(decoded.Nested()))
}
