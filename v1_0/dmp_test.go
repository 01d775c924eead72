package v1_0_test

import (
	"context"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/madmp/issue"
	"github.com/reoring/madmp/v1_0"
)

const minimalDMP10 = `{
  "title": "T",
  "contact": {
    "name": "C",
    "contact_id": {"identifier": "https://orcid.org/0000-0003-0644-4174", "type": "orcid"},
    "mbox": "c@example.com"
  },
  "created": "2020-03-01T10:00:00",
  "dmp_id": {"identifier": "https://doi.org/10.1371/journal.pcbi.1006750", "type": "doi"},
  "dataset": [{"title": "D"}]
}`

func mustAny(t *testing.T, src string) any {
	t.Helper()
	var v any
	dec := gojson.NewDecoder(strings.NewReader(src))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("test input: %v", err)
	}
	return v
}

func mutate(t *testing.T, fn func(m map[string]any)) any {
	t.Helper()
	v := mustAny(t, minimalDMP10)
	fn(v.(map[string]any))
	return v
}

func issueAt(t *testing.T, err error, path, code string) {
	t.Helper()
	iss, ok := issue.As(err)
	if !ok {
		t.Fatalf("expected Issues, got %v", err)
	}
	for _, it := range iss {
		if it.Path == path && it.Code == code {
			return
		}
	}
	t.Fatalf("no %s issue at %s in %v", code, path, iss)
}

func TestDecodeDMP_MinimalValid(t *testing.T) {
	d, err := v1_0.DecodeDMP(context.Background(), mustAny(t, minimalDMP10))
	if err != nil {
		t.Fatalf("DecodeDMP: %v", err)
	}
	if d.SchemaVersion() != "1.0" {
		t.Fatalf("SchemaVersion() = %q", d.SchemaVersion())
	}
	// modified is optional under 1.0, unlike 1.1.
	if d.Modified != nil {
		t.Fatalf("modified should be absent: %+v", d.Modified)
	}
}

func TestDecodeDMP_DatasetTitleOnlyIsEnough(t *testing.T) {
	v := mutate(t, func(m map[string]any) {
		m["dataset"] = []any{map[string]any{"title": "only a title"}}
	})
	if _, err := v1_0.DecodeDMP(context.Background(), v); err != nil {
		t.Fatalf("DecodeDMP: %v", err)
	}
}

func TestDecodeDMP_EmptyDataset(t *testing.T) {
	v := mutate(t, func(m map[string]any) { m["dataset"] = []any{} })
	_, err := v1_0.DecodeDMP(context.Background(), v)
	issueAt(t, err, "/dataset", issue.CodeTooShort)
}

func TestDecodeDMP_InvalidDOIRejected(t *testing.T) {
	v := mutate(t, func(m map[string]any) {
		m["dmp_id"].(map[string]any)["identifier"] = "not-a-doi"
	})
	d, err := v1_0.DecodeDMP(context.Background(), v)
	if d != nil {
		t.Fatalf("no partially-valid instance may escape")
	}
	issueAt(t, err, "/dmp_id", issue.CodeInvalidFormat)
}

func TestDecodeDMP_EmptyIdentifiersRejected(t *testing.T) {
	v := mutate(t, func(m map[string]any) {
		m["dmp_id"].(map[string]any)["identifier"] = ""
	})
	_, err := v1_0.DecodeDMP(context.Background(), v)
	issueAt(t, err, "/dmp_id", issue.CodeInvalidFormat)

	v = mutate(t, func(m map[string]any) {
		m["contact"].(map[string]any)["contact_id"].(map[string]any)["identifier"] = ""
	})
	_, err = v1_0.DecodeDMP(context.Background(), v)
	issueAt(t, err, "/contact/contact_id", issue.CodeInvalidFormat)

	v = mutate(t, func(m map[string]any) {
		m["dataset"] = []any{map[string]any{
			"title":      "D",
			"dataset_id": map[string]any{"identifier": "", "type": "handle"},
		}}
	})
	_, err = v1_0.DecodeDMP(context.Background(), v)
	issueAt(t, err, "/dataset/0/dataset_id", issue.CodeInvalidFormat)

	v = mutate(t, func(m map[string]any) {
		m["dataset"] = []any{map[string]any{
			"title": "D",
			"distribution": []any{map[string]any{
				"title":   "copy",
				"license": map[string]any{"license_ref": "", "start_date": "2024-01-01"},
			}},
		}}
	})
	_, err = v1_0.DecodeDMP(context.Background(), v)
	issueAt(t, err, "/dataset/0/distribution/0/license/license_ref", issue.CodeInvalidFormat)
}

func TestDecodeDMP_ProjectRequiresStartEnd(t *testing.T) {
	v := mutate(t, func(m map[string]any) {
		m["project"] = []any{map[string]any{"title": "P"}}
	})
	_, err := v1_0.DecodeDMP(context.Background(), v)
	issueAt(t, err, "/project/0/start", issue.CodeRequired)
	issueAt(t, err, "/project/0/end", issue.CodeRequired)
}

func TestDecodeDMP_FlatFunding(t *testing.T) {
	v := mutate(t, func(m map[string]any) {
		m["project"] = []any{map[string]any{
			"title": "P",
			"start": "2020-01-01T00:00:00",
			"end":   "2021-01-01T00:00:00",
			"funding": map[string]any{
				"funder_id":      "https://doi.org/10.13039/501100000780",
				"funding_status": "granted",
			},
		}}
	})
	d, err := v1_0.DecodeDMP(context.Background(), v)
	if err != nil {
		t.Fatalf("DecodeDMP: %v", err)
	}
	f := d.Project[0].Funding
	if f == nil || f.FunderID == "" || *f.FundingStatus != "granted" {
		t.Fatalf("funding: %+v", f)
	}
}

func TestDecodeDMP_SingleMetadataRecord(t *testing.T) {
	v := mutate(t, func(m map[string]any) {
		m["dataset"] = []any{map[string]any{
			"title":    "D",
			"metadata": map[string]any{"identifier": "http://purl.org/dc/terms/"},
			"security_and_privacy": map[string]any{
				"title": "encryption at rest",
			},
		}}
	})
	d, err := v1_0.DecodeDMP(context.Background(), v)
	if err != nil {
		t.Fatalf("DecodeDMP: %v", err)
	}
	ds := d.Dataset[0]
	if ds.Metadata == nil || ds.Metadata.Identifier == "" {
		t.Fatalf("metadata: %+v", ds.Metadata)
	}
	if ds.SecurityAndPrivacy == nil {
		t.Fatalf("security_and_privacy missing")
	}
}

func TestToDCAT_NoIdentifier(t *testing.T) {
	d, err := v1_0.DecodeDMP(context.Background(), mustAny(t, minimalDMP10))
	if err != nil {
		t.Fatalf("DecodeDMP: %v", err)
	}
	frag := d.Dataset[0].ToDCAT()
	if _, ok := frag["@id"]; ok {
		t.Fatalf("dataset without dataset_id must not project @id")
	}
	titles := frag["http://purl.org/dc/terms/title"].([]map[string]any)
	if titles[0]["@language"] != "und" {
		t.Fatalf("language tag = %v", titles[0]["@language"])
	}
}
