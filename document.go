package madmp

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/reoring/madmp/issue"
)

// Validate parses data, unwraps the required {"dmp": ...} envelope and
// decodes it with the session's schema. Failures before validation surface
// as ErrMalformedJSON or ErrMissingEnvelope (both matching ErrParse);
// validation failures surface as Issues. A non-nil Document satisfies every
// invariant of its schema version.
func (s *Session) Validate(ctx context.Context, data []byte) (Document, error) {
	raw, err := getJSONDriver().DecodeValue(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrMissingEnvelope
	}
	inner, ok := obj["dmp"]
	if !ok {
		return nil, ErrMissingEnvelope
	}
	return s.schema.Decode(ctx, inner)
}

// ReadFile loads and validates the document at path. A path that does not
// resolve fails with ErrNotFound before any parsing is attempted.
func (s *Session) ReadFile(ctx context.Context, path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	return s.Validate(ctx, data)
}

// Export serializes a validated document back into the canonical
// two-space-indented {"dmp": ...} envelope. For any document produced by
// Validate, feeding the output back through Validate yields a structurally
// equal instance.
func (s *Session) Export(doc Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("madmp: nil document")
	}
	return getJSONDriver().EncodeIndent(map[string]any{"dmp": doc}, "", "  ")
}

// Validate runs the document facade on the process-wide version selection.
func Validate(ctx context.Context, data []byte) (Document, error) {
	return registrySession().Validate(ctx, data)
}

// ReadFile runs the document facade on the process-wide version selection.
func ReadFile(ctx context.Context, path string) (Document, error) {
	return registrySession().ReadFile(ctx, path)
}

// Export serializes doc; the envelope is version-independent.
func Export(doc Document) ([]byte, error) {
	return registrySession().Export(doc)
}

func registrySession() *Session { return &Session{schema: Load()} }

// Report renders a human-readable validation outcome: a success line for a
// nil error, an enumerated issue list for validation failures, and the error
// text otherwise.
func Report(err error) string {
	if err == nil {
		return "document is valid"
	}
	iss, ok := issue.As(err)
	if !ok {
		return err.Error()
	}
	sorted := make(issue.Issues, len(iss))
	copy(sorted, iss)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	b := &strings.Builder{}
	fmt.Fprintf(b, "document is invalid (%d issue(s)):\n", len(sorted))
	for _, it := range sorted {
		fmt.Fprintf(b, "  %s  %s: %s\n", it.Path, it.Code, it.Message)
	}
	return b.String()
}
