package mock

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var errUnhandledConversion = errors.New("unhandled conversion type")

// MatchURLVals matches url.Value query strings, ignoring the values of the
// supplied delta keys which only need to be present in both
func MatchURLVals(v1, v2 url.Values, deltaKeys ...string) bool {
	if len(v1) != len(v2) {
		return false
	}

	if len(v1) == 0 && len(v2) == 0 {
		return true
	}

	for key, val := range v1 {
		if isDelta(key, deltaKeys) {
			if _, ok := v2[key]; !ok {
				return false
			}
			continue
		}

		if val2, ok := v2[key]; ok {
			if strings.Join(val2, "") == strings.Join(val, "") {
				continue
			}
		}
		return false
	}
	return true
}

func isDelta(key string, deltaKeys []string) bool {
	for i := range deltaKeys {
		if deltaKeys[i] == key {
			return true
		}
	}
	return false
}

// DeriveURLValsFromJSONMap gets url vals from a flat JSON object body
func DeriveURLValsFromJSONMap(payload []byte) (url.Values, error) {
	var vals = url.Values{}
	if len(payload) == 0 {
		return vals, nil
	}
	intermediary := make(map[string]interface{})
	err := json.Unmarshal(payload, &intermediary)
	if err != nil {
		return vals, err
	}

	for k, v := range intermediary {
		switch val := v.(type) {
		case string:
			vals.Add(k, val)
		case bool:
			vals.Add(k, strconv.FormatBool(val))
		case float64:
			vals.Add(k, strconv.FormatFloat(val, 'f', -1, 64))
		case map[string]interface{}, []interface{}, nil:
			vals.Add(k, fmt.Sprintf("%v", val))
		default:
			return vals, fmt.Errorf("%w: %T", errUnhandledConversion, val)
		}
	}

	return vals, nil
}

// Envelope wraps result in the exchange success envelope
func Envelope(result interface{}) []byte {
	b, err := json.Marshal(map[string]interface{}{"success": true, "result": result})
	if err != nil {
		panic(err)
	}
	return b
}

// RawEnvelope wraps an already encoded JSON result in the success envelope
func RawEnvelope(result string) []byte {
	return []byte(`{"success":true,"result":` + result + `}`)
}

// ErrorEnvelope returns the exchange failure envelope with the given message
func ErrorEnvelope(msg string) []byte {
	b, err := json.Marshal(map[string]interface{}{"success": false, "error": msg})
	if err != nil {
		panic(err)
	}
	return b
}
