package http

import (
	"fmt"
	"net/url"
	"sort"

	"github.com/google/go-querystring/query"
)

// EncodeParams turns request parameters into url.Values. It accepts nil,
// url.Values, map[string]string, map[string]interface{} and structs (or
// pointers to structs) tagged for go-querystring. Nil map values are dropped
// and slice values become repeated keys.
func EncodeParams(params interface{}) (url.Values, error) {
	switch typed := params.(type) {
	case nil:
		return url.Values{}, nil
	case url.Values:
		if typed == nil {
			return url.Values{}, nil
		}

		return typed, nil
	case map[string]string:
		values := url.Values{}
		for key, value := range typed {
			values.Set(key, value)
		}

		return values, nil
	case map[string]interface{}:
		return encodeMap(typed), nil
	default:
		values, err := query.Values(params)
		if err != nil {
			return nil, fmt.Errorf("encoding parameters: %w", err)
		}

		return values, nil
	}
}

func encodeMap(params map[string]interface{}) url.Values {
	values := url.Values{}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		switch value := params[key].(type) {
		case nil:
			continue
		case []string:
			for _, item := range value {
				values.Add(key, item)
			}
		case []interface{}:
			for _, item := range value {
				values.Add(key, fmt.Sprint(item))
			}
		default:
			values.Set(key, fmt.Sprint(value))
		}
	}

	return values
}
