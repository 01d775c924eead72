// Package pid validates persistent-identifier strings against the format of
// their declared scheme. Validation runs in two steps: an extraction regex
// pulls the canonical identifier out of a possibly decorated input (for
// example a DOI embedded in a https://doi.org/ URL), then an anchored
// conformance regex re-checks the extracted substring in full.
package pid

import (
	"fmt"
	"net/url"
	"regexp"
)

// Kind is the declared identifier scheme.
type Kind string

const (
	DOI    Kind = "doi"
	ORCID  Kind = "orcid"
	ARK    Kind = "ark"
	Handle Kind = "handle"
	URL    Kind = "url"
	Other  Kind = "other"
)

// Sentinel errors for errors.Is checks. Call sites receive wrapped variants
// carrying the kind and offending value.
var (
	ErrNoMatch       = fmt.Errorf("no valid identifier found")
	ErrNonConforming = fmt.Errorf("identifier does not conform to declared type")
	ErrUnsupported   = fmt.Errorf("unsupported identifier type")
)

var (
	// Extraction patterns locate the identifier inside decorated input.
	doiExtract    = regexp.MustCompile(`(?i)10\.\d{4,9}/[-._;()/:a-z0-9]+`)
	orcidExtract  = regexp.MustCompile(`\d{4}-\d{4}-\d{4}-\d{3}[0-9X]`)
	arkExtract    = regexp.MustCompile(`ark:/\d{5,10}/\S+`)
	handleExtract = regexp.MustCompile(`\d{1,5}(\.\d+)*/\S+`)

	// Conformance patterns are anchored; partial matches embedded in a larger
	// string are rejected unless extraction already isolated the substring.
	doiConform    = regexp.MustCompile(`(?i)^10\.\d{4,9}/[-._;()/:a-z0-9]+$`)
	orcidConform  = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{3}[0-9X]$`)
	arkConform    = regexp.MustCompile(`^ark:/\d{5,10}/[^?#\s]+(\?[^#\s]*)?(#\S*)?$`)
	handleConform = regexp.MustCompile(`^\d{1,5}(\.\d+)*/\S+$`)
)

// Extract returns the canonical identifier substring for the given kind, or
// an error when the input contains none. For url and other the input is
// returned as-is after a minimal well-formedness check.
func Extract(kind Kind, raw string) (string, error) {
	switch kind {
	case DOI:
		if m := doiExtract.FindString(raw); m != "" {
			return m, nil
		}
	case ORCID:
		if m := orcidExtract.FindString(raw); m != "" {
			return m, nil
		}
	case ARK:
		if m := arkExtract.FindString(raw); m != "" {
			return m, nil
		}
	case Handle:
		if m := handleExtract.FindString(raw); m != "" {
			return m, nil
		}
	case URL:
		u, err := url.Parse(raw)
		if err != nil || !u.IsAbs() {
			return "", fmt.Errorf("%w for type %q in %q", ErrNoMatch, kind, raw)
		}
		return raw, nil
	case Other:
		if raw != "" {
			return raw, nil
		}
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupported, kind)
	}
	return "", fmt.Errorf("%w for type %q in %q", ErrNoMatch, kind, raw)
}

// Check validates raw against kind: extraction first, then the anchored
// conformance pattern over the extracted substring. Pure function; failures
// are returned, never panicked.
func Check(kind Kind, raw string) error {
	ext, err := Extract(kind, raw)
	if err != nil {
		return err
	}
	var ok bool
	switch kind {
	case DOI:
		ok = doiConform.MatchString(ext)
	case ORCID:
		ok = orcidConform.MatchString(ext)
	case ARK:
		ok = arkConform.MatchString(ext)
	case Handle:
		ok = handleConform.MatchString(ext)
	case URL, Other:
		ok = ext != ""
	}
	if !ok {
		return fmt.Errorf("%w: %q is not a valid %s", ErrNonConforming, ext, kind)
	}
	return nil
}
