package ftx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null"
)

func TestParamsEncode(t *testing.T) {
	t.Parallel()
	p := NewParams()
	p.Set("market", "BTC/USD")
	p.Set("side", "")
	p.Set("start_time", time.Unix(1559881511, 0))
	p.Set("end_time", time.Time{})
	p.Set("minId", null.Int64{})
	p.Set("orderId", null.Int64From(42))
	p.Set("showAvgPrice", true)
	p.Set("size", 0.5)
	p.Set("depth", int64(20))
	assert.Equal(t, "market=BTC%2FUSD&start_time=1559881511&orderId=42&showAvgPrice=true&size=0.5&depth=20", p.Encode())
	assert.Equal(t, 6, p.Len())
}

func TestParamsSetKeepsPosition(t *testing.T) {
	t.Parallel()
	p := NewParams()
	p.Set("a", "1")
	p.Set("b", "2")
	p.Set("a", "3")
	assert.Equal(t, "a=3&b=2", p.Encode())

	p.Set("a", nil)
	assert.Equal(t, "b=2", p.Encode(), "absent value should remove the key")
	_, ok := p.Get("a")
	assert.False(t, ok)

	p.Del("missing")
	assert.Equal(t, 1, p.Len())
}

func TestParamsNil(t *testing.T) {
	t.Parallel()
	var p *Params
	assert.Zero(t, p.Len())
	assert.Empty(t, p.Encode())
	_, ok := p.Get("a")
	assert.False(t, ok)
}

func TestBodyParams(t *testing.T) {
	t.Parallel()
	b := make(bodyParams)
	b.set("market", "BTC-PERP")
	b.set("clientId", null.String{})
	b.set("empty", "")
	b.set("price", null.Float64From(1.5))
	b.set("reduceOnly", false)
	b.set("cancelLimitOnTrigger", null.BoolFrom(true))
	b.set("start", time.Unix(10, int64(500*time.Millisecond)))
	assert.Equal(t, bodyParams{
		"market":               "BTC-PERP",
		"price":                1.5,
		"reduceOnly":           false,
		"cancelLimitOnTrigger": true,
		"start":                10.5,
	}, b)
}
