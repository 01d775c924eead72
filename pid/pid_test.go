package pid_test

import (
	"errors"
	"testing"

	"github.com/reoring/madmp/pid"
)

func TestCheck_DOI(t *testing.T) {
	cases := []struct {
		name string
		in   string
		ok   bool
	}{
		{"bare", "10.1371/journal.pcbi.1006750", true},
		{"https url", "https://doi.org/10.1371/journal.pcbi.1006750", true},
		{"dx resolver", "http://dx.doi.org/10.1000/182", true},
		{"uppercase prefix", "10.1371/JOURNAL.PCBI.1006750", true},
		{"short registrant", "10.123/abc", false},
		{"not a doi", "not-a-doi", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := pid.Check(pid.DOI, tc.in)
			if tc.ok && err != nil {
				t.Fatalf("Check(doi, %q) = %v, want nil", tc.in, err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("Check(doi, %q) = nil, want error", tc.in)
			}
		})
	}
}

func TestCheck_ORCID(t *testing.T) {
	cases := []struct {
		name string
		in   string
		ok   bool
	}{
		{"bare", "0000-0003-0644-4174", true},
		{"orcid url", "https://orcid.org/0000-0003-0644-4174", true},
		{"X checksum", "0000-0002-1825-009X", true},
		{"too short", "0000-0003-0644", false},
		{"letters", "aaaa-bbbb-cccc-dddd", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := pid.Check(pid.ORCID, tc.in)
			if tc.ok != (err == nil) {
				t.Fatalf("Check(orcid, %q) = %v, want ok=%v", tc.in, err, tc.ok)
			}
		})
	}
}

func TestCheck_ARK(t *testing.T) {
	cases := []struct {
		name string
		in   string
		ok   bool
	}{
		{"bare", "ark:/12025/654xz321", true},
		{"resolver url", "https://n2t.net/ark:/12025/654xz321", true},
		{"with qualifier", "ark:/12025/654xz321?info", true},
		{"naan too short", "ark:/123/abc", false},
		{"missing scheme", "12025/654xz321", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := pid.Check(pid.ARK, tc.in)
			if tc.ok != (err == nil) {
				t.Fatalf("Check(ark, %q) = %v, want ok=%v", tc.in, err, tc.ok)
			}
		})
	}
}

func TestCheck_Handle(t *testing.T) {
	cases := []struct {
		name string
		in   string
		ok   bool
	}{
		{"bare", "2381/12775", true},
		{"dotted prefix", "11858.1/12345-abc", true},
		{"hdl url", "https://hdl.handle.net/2381/12775", true},
		{"no suffix", "2381", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := pid.Check(pid.Handle, tc.in)
			if tc.ok != (err == nil) {
				t.Fatalf("Check(handle, %q) = %v, want ok=%v", tc.in, err, tc.ok)
			}
		})
	}
}

func TestCheck_URLAndOther(t *testing.T) {
	if err := pid.Check(pid.URL, "https://example.org/grant/42"); err != nil {
		t.Fatalf("absolute URL should pass: %v", err)
	}
	if err := pid.Check(pid.URL, "relative/path"); err == nil {
		t.Fatalf("relative URL should fail")
	}
	if err := pid.Check(pid.Other, "anything-goes"); err != nil {
		t.Fatalf("non-empty other should pass: %v", err)
	}
	if err := pid.Check(pid.Other, ""); err == nil {
		t.Fatalf("empty other should fail")
	}
}

func TestCheck_UnsupportedKind(t *testing.T) {
	err := pid.Check(pid.Kind("isbn"), "978-3-16-148410-0")
	if !errors.Is(err, pid.ErrUnsupported) {
		t.Fatalf("want ErrUnsupported, got %v", err)
	}
}

func TestExtract_IsolatesSubstring(t *testing.T) {
	got, err := pid.Extract(pid.DOI, "see https://doi.org/10.1371/journal.pcbi.1006750 for details")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "10.1371/journal.pcbi.1006750" {
		t.Fatalf("Extract = %q", got)
	}
}
