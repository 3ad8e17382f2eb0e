// Package civi provides uniform programmatic access to a CiviCRM
// installation's API, covering both API generations (v3 and v4) over two
// interchangeable transports: the REST/AJAX HTTP endpoints and the local
// `cv` command-line tool run as a subprocess.
//
// # Architecture
//
// The package is organized around a small dispatch and normalization layer:
//
//   - API / Entity / Action: an explicit registry-based object graph that
//     lets a caller address any remote entity and action by name
//   - Version adapters: translate a logical (entity, action, params) call
//     into the wire-level parameter shape each API version expects, and
//     normalize the raw response back into a Result
//   - Transport: the strategy that carries a prepared request to the remote
//     API (HTTP POST or `cv` subprocess) and returns decoded response data
//   - Result: a uniform, read-only view over a successful response
//   - Errors: typed failure conditions distinguishable via errors.As
//
// # Usage
//
// Construct a client with pkg/civiclient and address entities and actions
// dynamically:
//
//	api, err := civiclient.New(&civi.Config{
//		Endpoint: "https://example.org",
//		APIKey:   "your-api-key",
//		Version:  civi.V4,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := api.Entity("Contact").Action("get").Call(ctx, civi.Params{"id": 2})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, record := range result.Records() {
//		fmt.Println(record["display_name"])
//	}
//
// The same call can be made through the direct-call forms, useful for
// programmatic entity names:
//
//	result, err = api.Call(ctx, "Contact", "get", civi.Params{"id": 2})
//	result, err = api.Entity("Contact").Call(ctx, "get", civi.Params{"id": 2})
//
// # Parameter conventions
//
// APIv3 takes a flat parameter mapping; comparison operators are written as
// a key suffix and encoded into v3's nested key syntax:
//
//	civi.Params{"contact_type": "Individual", "age >=": 30}
//
// APIv4 separates values to set from conditions to filter by. Reserved
// segment keys (select, where, values, limit, ...) pass through verbatim;
// bare keys are restructured into the `values` segment for write actions
// and into `where` clauses for everything else.
//
// # Error Handling
//
// Every call either yields a complete Result or fails with one of the typed
// errors: ConnectionError, SubprocessError, DecodeError, RemoteAPIError, or
// UnexpectedResultCountError. Classifier helpers (IsConnectionError, ...)
// allow differentiated handling, e.g. retrying connection failures but not
// remote API rejections.
package civi
