package civi

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

var errMissingErrorFlag = errors.New("response carries no is_error flag")

// adapterV3 implements APIv3's flat parameter convention: params pass
// through with operator suffixes encoded into v3's nested key syntax, and
// responses carry an explicit is_error flag that must be checked before
// trusting values.
type adapterV3 struct{}

func (a *adapterV3) Prepare(action string, params Params) (Params, error) {
	out := params.clone()

	// v3 returns an id-keyed object unless sequential is requested.
	if _, ok := out["sequential"]; !ok {
		out["sequential"] = 1
	}

	for key, value := range out {
		field, op := splitOperator(key)
		if field == key {
			continue
		}

		delete(out, key)

		if op == "=" {
			out[field] = value
		} else {
			out[field] = map[string]any{op: value}
		}
	}

	return out, nil
}

func (a *adapterV3) Parse(entity, action string, raw any) (*Result, error) {
	data, ok := raw.(map[string]any)
	if !ok {
		return nil, &DecodeError{
			Raw: fmt.Sprintf("%v", raw),
			Err: fmt.Errorf("expected object response, got %T", raw),
		}
	}

	// A v3 response without the flag gives no schema guarantee at all, so
	// it is treated as undecodable rather than assumed successful.
	flag, ok := data["is_error"]
	if !ok {
		return nil, &DecodeError{Raw: fmt.Sprintf("%v", data), Err: errMissingErrorFlag}
	}

	message, _ := data["error_message"].(string)
	if isTruthy(flag) || message != "" {
		return nil, &RemoteAPIError{
			Entity:  entity,
			Action:  action,
			Message: message,
			Code:    formatErrorCode(data["error_code"]),
		}
	}

	records, err := v3Records(data["values"])
	if err != nil {
		return nil, &DecodeError{Raw: fmt.Sprintf("%v", data["values"]), Err: err}
	}

	count := len(records)
	if declared, ok := asInt(data["count"]); ok {
		count = declared
	}

	meta := make(map[string]any)

	for key, value := range data {
		switch key {
		case "is_error", "values", "count":
		default:
			meta[key] = value
		}
	}

	return newResult(records, count, meta), nil
}

// v3Records normalizes the values payload, which v3 delivers either as an
// array (sequential=1) or as an id-keyed object.
func v3Records(values any) ([]Record, error) {
	switch v := values.(type) {
	case nil:
		return nil, nil
	case []any:
		records := make([]Record, 0, len(v))

		for _, item := range v {
			fields, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("expected record object, got %T", item)
			}

			records = append(records, Record(fields))
		}

		return records, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}

		sort.Slice(keys, func(i, j int) bool {
			a, errA := strconv.Atoi(keys[i])
			b, errB := strconv.Atoi(keys[j])
			if errA == nil && errB == nil {
				return a < b
			}

			return keys[i] < keys[j]
		})

		records := make([]Record, 0, len(keys))

		for _, key := range keys {
			fields, ok := v[key].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("expected record object for id %s, got %T", key, v[key])
			}

			records = append(records, Record(fields))
		}

		return records, nil
	default:
		return nil, fmt.Errorf("expected values array or object, got %T", values)
	}
}

// isTruthy interprets v3's loosely-typed error flag, which arrives as a
// bool, a number, or a numeric string depending on the endpoint.
func isTruthy(flag any) bool {
	switch v := flag.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != "" && v != "0"
	default:
		return false
	}
}

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}

		return n, true
	default:
		return 0, false
	}
}
