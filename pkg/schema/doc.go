// Package schema reads and writes the persisted state document.
//
// Decoding is strict and ordered: the version gate runs first, then the
// document is checked against an embedded JSON Schema, and only then is it
// decoded into a domain.State.
//
//	state, err := schema.DecodeState(data)
//	if errors.Is(err, domain.ErrUnsupportedVersion) {
//	    // re-index with this build
//	}
//
// Schema violations are reported as an *AggregateError of *ValidationError
// wrapped in domain.ErrInvalidState; use ValidationErrors to list them.
package schema
