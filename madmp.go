// Package madmp validates machine-actionable Data Management Plan documents
// against the RDA-DMP-Common-Standard and re-serializes validated plans back
// to the canonical {"dmp": ...} JSON envelope.
//
// The package provides:
//
//   - A document facade (Validate/ReadFile/Export) over the versioned entity
//     models in v1_0 and v1_1
//   - A closed schema-version union (V1_0, V1_1) with a process-wide
//     selection compatible with the MADMP_SCHEMA_VERSION environment value,
//     plus per-call isolation through Session
//   - A stable error model via issue.Issues (JSON Pointer, code, message)
//
// Design policy:
//   - Keep only public APIs in the root package; shared decoding machinery
//     lives under internal/.
//   - Identifier-format validation sits in pid/, closed code tables in
//     refdata/, ISO-8601 conversion in codec/, and the CLI under cmd/madmp.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s, err := madmp.NewSession("1.1")
//	doc, err := s.ReadFile(ctx, "plan.json")
//	out, err := s.Export(doc)
package madmp

import (
	"errors"
	"fmt"

	"github.com/reoring/madmp/issue"
)

// Issue and Issues alias the shared error model so facade callers rarely
// need to import the issue package directly.
type (
	Issue  = issue.Issue
	Issues = issue.Issues
)

// AsIssues extracts validation issues from an error.
func AsIssues(err error) (Issues, bool) { return issue.As(err) }

// Sentinel errors of the document facade and version registry. Validation
// failures are reported as Issues instead.
var (
	// ErrParse covers everything that fails before validation is attempted:
	// malformed input bytes and a missing document envelope.
	ErrParse = errors.New("madmp: parse error")

	// ErrMalformedJSON reports input bytes that are not valid JSON.
	ErrMalformedJSON = fmt.Errorf("%w: malformed JSON", ErrParse)

	// ErrMissingEnvelope reports a JSON document without the required
	// top-level "dmp" key.
	ErrMissingEnvelope = fmt.Errorf(`%w: missing top-level "dmp" key`, ErrParse)

	// ErrNotFound reports a document path that does not resolve.
	ErrNotFound = errors.New("madmp: document not found")

	// ErrUnsupportedVersion reports a schema version outside the closed
	// V1_0/V1_1 union.
	ErrUnsupportedVersion = errors.New("madmp: unsupported schema version")
)
