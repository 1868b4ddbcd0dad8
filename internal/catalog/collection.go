package catalog

import (
	"bytes"
	"encoding/json"
)

type envelope struct {
	Results *json.RawMessage `json:"results"`
}

// DecodeCollection normalises a list response body. It accepts a bare JSON
// array of products or an object carrying a "results" array; any other
// structure yields a *ShapeError.
func DecodeCollection(body []byte) ([]Product, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, &ShapeError{Reason: "empty body"}
	}

	switch trimmed[0] {
	case '[':
		return decodeList(trimmed)
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, &ShapeError{Reason: err.Error()}
		}
		if env.Results == nil {
			return nil, &ShapeError{Reason: "object without results"}
		}
		raw := bytes.TrimSpace(*env.Results)
		if len(raw) == 0 || raw[0] != '[' {
			return nil, &ShapeError{Reason: "results is not an array"}
		}
		return decodeList(raw)
	default:
		return nil, &ShapeError{Reason: "body is neither array nor object"}
	}
}

func decodeList(raw []byte) ([]Product, error) {
	products := []Product{}
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, &ShapeError{Reason: err.Error()}
	}
	return products, nil
}
