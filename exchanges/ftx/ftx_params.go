package ftx

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/basis-arb/ftxclient/common/convert"
	"github.com/volatiletech/null"
)

// Params is an ordered set of query parameters. Values are kept in the order
// they were first set and absent values are never encoded. A value is absent
// when it is nil, an empty string, a zero time or an invalid null type.
type Params struct {
	keys   []string
	values map[string]string
}

// NewParams returns an empty parameter set
func NewParams() *Params {
	return &Params{values: make(map[string]string)}
}

// Set stores value under key, replacing any previous value in place. Setting
// an absent value removes the key.
func (p *Params) Set(key string, value interface{}) {
	s, ok := formatValue(value)
	if !ok {
		p.Del(key)
		return
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = s
}

// Del removes key
func (p *Params) Del(key string) {
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	for i := range p.keys {
		if p.keys[i] == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

// Get returns the encoded value for key
func (p *Params) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	v, ok := p.values[key]
	return v, ok
}

// Len returns the number of present parameters
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Encode serialises the parameters in insertion order
func (p *Params) Encode() string {
	if p.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for i, k := range p.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.values[k]))
	}
	return b.String()
}

// formatValue renders a parameter value; false means the value is absent
func formatValue(value interface{}) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case null.String:
		return v.String, v.Valid && v.String != ""
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case null.Int64:
		return strconv.FormatInt(v.Int64, 10), v.Valid
	case float64:
		return convert.FloatToString(v), true
	case null.Float64:
		return convert.FloatToString(v.Float64), v.Valid
	case bool:
		return strconv.FormatBool(v), true
	case null.Bool:
		return strconv.FormatBool(v.Bool), v.Valid
	case time.Time:
		if v.IsZero() {
			return "", false
		}
		return convert.UnixSecondsString(v), true
	case fmt.Stringer:
		s := v.String()
		return s, s != ""
	default:
		return fmt.Sprint(v), true
	}
}

// bodyParams builds a JSON request body from key value pairs, skipping absent
// values with the same rules as Params
type bodyParams map[string]interface{}

func (b bodyParams) set(key string, value interface{}) {
	switch v := value.(type) {
	case nil:
		return
	case string:
		if v == "" {
			return
		}
		b[key] = v
	case null.String:
		if v.Valid && v.String != "" {
			b[key] = v.String
		}
	case null.Int64:
		if v.Valid {
			b[key] = v.Int64
		}
	case null.Float64:
		if v.Valid {
			b[key] = v.Float64
		}
	case null.Bool:
		if v.Valid {
			b[key] = v.Bool
		}
	case time.Time:
		if !v.IsZero() {
			b[key] = float64(v.UnixNano()) / float64(time.Second)
		}
	default:
		b[key] = v
	}
}
