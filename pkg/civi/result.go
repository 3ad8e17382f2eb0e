package civi

// Record is one result row: a mapping from field name to decoded value.
type Record map[string]any

// Result is the normalized, version-independent view of one successful
// response. It is immutable once constructed.
type Result struct {
	records []Record
	count   int
	meta    map[string]any
}

func newResult(records []Record, count int, meta map[string]any) *Result {
	return &Result{
		records: records,
		count:   count,
		meta:    meta,
	}
}

// Len returns the number of records held by the result.
func (r *Result) Len() int {
	return len(r.records)
}

// Count returns the total count declared by the remote API. For counting
// actions it can exceed Len.
func (r *Result) Count() int {
	return r.count
}

// Record returns the record at index i.
func (r *Result) Record(i int) Record {
	return r.records[i]
}

// Records returns the ordered record sequence.
func (r *Result) Records() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)

	return out
}

// Meta returns version-specific response metadata, e.g. APIv4's
// "countFetched".
func (r *Result) Meta() map[string]any {
	out := make(map[string]any, len(r.meta))
	for k, v := range r.meta {
		out[k] = v
	}

	return out
}

// One returns the single record of the result. It fails with
// UnexpectedResultCountError when the result holds zero or more than one
// record.
func (r *Result) One() (Record, error) {
	if len(r.records) != 1 {
		return nil, &UnexpectedResultCountError{Expected: 1, Actual: len(r.records)}
	}

	return r.records[0], nil
}
