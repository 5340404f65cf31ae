// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package upstream

// Status classifies the terminal result of one logical request. Every
// call path resolves to exactly one of these; the boundary never leaks a
// raw transport error.
type Status int

const (
	// StatusSuccess: HTTP 200 with a parseable JSON body.
	StatusSuccess Status = iota

	// StatusNotFound: HTTP 404. Resource absence is not transient, so
	// it is never retried.
	StatusNotFound

	// StatusServerError: HTTP >= 500 after the retry budget ran out.
	StatusServerError

	// StatusTimeout: the transport timed out on every attempt.
	StatusTimeout

	// StatusConnectionFailure: DNS failure, connection refused or
	// reset, on every attempt.
	StatusConnectionFailure

	// StatusMalformedBody: HTTP 200 whose body is not valid JSON. The
	// content is deterministic garbage; retrying would not help.
	StatusMalformedBody

	// StatusUnexpectedFailure: any other HTTP status or transport
	// fault. Not retried.
	StatusUnexpectedFailure
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNotFound:
		return "not_found"
	case StatusServerError:
		return "server_error"
	case StatusTimeout:
		return "timeout"
	case StatusConnectionFailure:
		return "connection_failure"
	case StatusMalformedBody:
		return "malformed_body"
	case StatusUnexpectedFailure:
		return "unexpected_failure"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of one logical request.
type Outcome struct {
	Status Status

	// Payload holds the validated JSON body. Set only on Success.
	Payload []byte

	// HTTPStatus is the last HTTP status observed, when any response
	// arrived at all.
	HTTPStatus int

	// Attempts counts how many attempts were made.
	Attempts int
}

// OK reports whether the call produced a usable payload.
func (o Outcome) OK() bool { return o.Status == StatusSuccess }
