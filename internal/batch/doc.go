// Package batch provides the record type and HTTP client for the batch API.
//
// # Overview
//
// A batch is a course offering with schedule, pricing and progress metadata.
// The upstream API serves one record per identifier:
//
//	GET <base>/<id>  ->  200 application/json
//
// # Files
//
//   - types.go: Record and its display helpers (Progress, HasDiscount)
//   - validate.go: schema validation of upstream payloads
//   - client.go: HTTP client and the Fetcher interface
//   - errors.go: FetchError and the failure taxonomy
//
// # Validation
//
// Payloads are decoded into a pointer-field wire struct first, so a missing
// field is distinguishable from a legitimate zero (total_lectures = 0 is
// valid). Required fields and value ranges are enforced with
// go-playground/validator; any failure is a KindValidation FetchError and no
// partially-populated Record ever leaves the package.
//
// Two upstream oddities are tolerated rather than rejected:
//
//   - completed_lectures > total_lectures
//   - discount_price > price
//
// Progress clamps the first case to [0, 100]; HasDiscount reports false for
// the second.
//
// # Failure Kinds
//
//	KindTransport   network error, cancelled context, unreadable body
//	KindStatus      any non-2xx response
//	KindValidation  malformed JSON or a schema violation
//
// Every FetchError matches its sentinel (ErrTransport, ErrStatus,
// ErrValidation) under errors.Is. The client never retries; retry and
// fallback policy belong to the sync controller.
//
// # Usage
//
//	client, err := batch.NewClient("http://127.0.0.1:8080/api/batch")
//	if err != nil {
//		return err
//	}
//	rec, err := client.FetchRecord(ctx, "6774ebb37aa1a60276d43e7c")
//	if errors.Is(err, batch.ErrStatus) {
//		// upstream answered but not with 2xx
//	}
package batch
