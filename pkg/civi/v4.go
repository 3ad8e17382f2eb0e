package civi

import (
	"fmt"
	"sort"
)

// v4 segment keys that pass through to the wire untouched.
var v4Segments = map[string]bool{
	"select":           true,
	"where":            true,
	"values":           true,
	"limit":            true,
	"offset":           true,
	"orderBy":          true,
	"groupBy":          true,
	"having":           true,
	"join":             true,
	"chain":            true,
	"language":         true,
	"debug":            true,
	"checkPermissions": true,
}

// Actions whose bare parameters are values to set rather than conditions to
// filter by.
var v4WriteActions = map[string]bool{
	"create":  true,
	"update":  true,
	"save":    true,
	"replace": true,
}

// adapterV4 implements APIv4's structured parameter convention. Bare keys
// are restructured into the explicit values/where segments, since v4 draws
// a hard distinction v3 does not.
type adapterV4 struct{}

func (a *adapterV4) Prepare(action string, params Params) (Params, error) {
	out := make(Params, len(params))
	values := make(map[string]any)

	var where []any

	bare := make([]string, 0, len(params))

	for key := range params {
		if v4Segments[key] {
			out[key] = params[key]

			continue
		}

		bare = append(bare, key)
	}

	// Map iteration order is random; sort bare keys so the produced wire
	// request is deterministic.
	sort.Strings(bare)

	for _, key := range bare {
		value := params[key]
		field, op := splitOperator(key)

		if v4WriteActions[action] {
			values[field] = value

			continue
		}

		where = append(where, []any{field, op, value})
	}

	if len(values) > 0 {
		merged, err := mergeValues(out["values"], values)
		if err != nil {
			return nil, err
		}

		out["values"] = merged
	}

	if len(where) > 0 {
		merged, err := mergeWhere(out["where"], where)
		if err != nil {
			return nil, err
		}

		out["where"] = merged
	}

	return out, nil
}

// mergeWhere appends bare-key clauses after the caller's explicit clause
// list. The caller's list is copied, never appended to in place.
func mergeWhere(explicit any, bare []any) ([]any, error) {
	switch clauses := explicit.(type) {
	case nil:
		return bare, nil
	case []any:
		merged := make([]any, 0, len(clauses)+len(bare))
		merged = append(merged, clauses...)

		return append(merged, bare...), nil
	case [][]any:
		merged := make([]any, 0, len(clauses)+len(bare))
		for _, clause := range clauses {
			merged = append(merged, clause)
		}

		return append(merged, bare...), nil
	default:
		return nil, fmt.Errorf("where segment must be a clause list, got %T", explicit)
	}
}

func mergeValues(explicit any, bare map[string]any) (map[string]any, error) {
	if explicit == nil {
		return bare, nil
	}

	fields, ok := explicit.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("values segment must be an object, got %T", explicit)
	}

	merged := make(map[string]any, len(fields)+len(bare))
	for key, value := range fields {
		merged[key] = value
	}

	for key, value := range bare {
		if _, exists := merged[key]; !exists {
			merged[key] = value
		}
	}

	return merged, nil
}

func (a *adapterV4) Parse(entity, action string, raw any) (*Result, error) {
	switch data := raw.(type) {
	case []any:
		// cv api4 emits the bare record array.
		records, err := v4RecordList(data)
		if err != nil {
			return nil, &DecodeError{Raw: fmt.Sprintf("%v", data), Err: err}
		}

		return newResult(records, len(records), nil), nil
	case map[string]any:
		if message, ok := data["error_message"].(string); ok && message != "" {
			return nil, &RemoteAPIError{
				Entity:  entity,
				Action:  action,
				Message: message,
				Code:    formatErrorCode(data["error_code"]),
			}
		}

		values, ok := data["values"].([]any)
		if !ok {
			// v4 has no success flag; a payload without values is the
			// remote side failing to produce a result.
			return nil, &RemoteAPIError{
				Entity:  entity,
				Action:  action,
				Message: fmt.Sprintf("response carries no values: %v", data),
			}
		}

		records, err := v4RecordList(values)
		if err != nil {
			return nil, &DecodeError{Raw: fmt.Sprintf("%v", values), Err: err}
		}

		count := len(records)
		if declared, ok := asInt(data["count"]); ok {
			count = declared
		}

		meta := make(map[string]any)

		for key, value := range data {
			switch key {
			case "values", "count":
			default:
				meta[key] = value
			}
		}

		return newResult(records, count, meta), nil
	default:
		return nil, &RemoteAPIError{
			Entity:  entity,
			Action:  action,
			Message: fmt.Sprintf("malformed response payload: %v", raw),
		}
	}
}

func v4RecordList(values []any) ([]Record, error) {
	records := make([]Record, 0, len(values))

	for _, item := range values {
		fields, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("expected record object, got %T", item)
		}

		records = append(records, Record(fields))
	}

	return records, nil
}
