package v1_1_test

import (
	"context"
	"testing"
	"time"

	"github.com/reoring/madmp/codec"
	"github.com/reoring/madmp/issue"
	"github.com/reoring/madmp/v1_1"
)

func decodeWithDataset(t *testing.T, ds map[string]any) (*v1_1.DMP, error) {
	t.Helper()
	v := mutate(t, func(m map[string]any) {
		base := m["dataset"].([]any)[0].(map[string]any)
		for k, val := range ds {
			base[k] = val
		}
		m["dataset"] = []any{base}
	})
	return v1_1.DecodeDMP(context.Background(), v)
}

func TestDataset_ThreeStateFlags(t *testing.T) {
	_, err := decodeWithDataset(t, map[string]any{"personal_data": "perhaps"})
	issueAt(t, err, "/dataset/0/personal_data", issue.CodeInvalidEnum)

	d, err := decodeWithDataset(t, map[string]any{"personal_data": "unknown"})
	if err != nil {
		t.Fatalf("DecodeDMP: %v", err)
	}
	if d.Dataset[0].PersonalData != v1_1.Unknown {
		t.Fatalf("personal_data: %v", d.Dataset[0].PersonalData)
	}
}

func TestDataset_MetadataListMinOne(t *testing.T) {
	_, err := decodeWithDataset(t, map[string]any{"metadata": []any{}})
	issueAt(t, err, "/dataset/0/metadata", issue.CodeTooShort)

	d, err := decodeWithDataset(t, map[string]any{"metadata": []any{map[string]any{
		"metadata_standard_id": map[string]any{"identifier": "https://dublincore.org/specifications/dublin-core/dcmi-terms/", "type": "url"},
		"language":             "eng",
	}}})
	if err != nil {
		t.Fatalf("DecodeDMP: %v", err)
	}
	if len(d.Dataset[0].Metadata) != 1 {
		t.Fatalf("metadata: %+v", d.Dataset[0].Metadata)
	}
}

func TestDataset_SecurityAndPrivacyMinOne(t *testing.T) {
	_, err := decodeWithDataset(t, map[string]any{"security_and_privacy": []any{}})
	issueAt(t, err, "/dataset/0/security_and_privacy", issue.CodeTooShort)
}

func TestDistribution_DataAccessAndURLs(t *testing.T) {
	_, err := decodeWithDataset(t, map[string]any{"distribution": []any{map[string]any{
		"title":       "copy",
		"data_access": "hidden",
	}}})
	issueAt(t, err, "/dataset/0/distribution/0/data_access", issue.CodeInvalidEnum)

	_, err = decodeWithDataset(t, map[string]any{"distribution": []any{map[string]any{
		"title":      "copy",
		"access_url": "no scheme here",
	}}})
	issueAt(t, err, "/dataset/0/distribution/0/access_url", issue.CodeInvalidFormat)
}

func TestDistribution_LicenseEmbargo(t *testing.T) {
	d, err := decodeWithDataset(t, map[string]any{"distribution": []any{map[string]any{
		"title":       "copy",
		"data_access": "open",
		"byte_size":   float64(1024),
		"license": []any{map[string]any{
			"license_ref": "https://creativecommons.org/licenses/by/4.0/",
			"start_date":  "2031-01-01",
		}},
	}}})
	if err != nil {
		t.Fatalf("DecodeDMP: %v", err)
	}
	l := d.Dataset[0].Distribution[0].License[0]
	now := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	if !l.Embargoed(now) {
		t.Fatalf("start_date %v should embargo at %v", l.StartDate, now)
	}
	if l.Embargoed(time.Date(2031, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("embargo must lift once start_date passed")
	}
}

func TestDataset_EmptyIdentifierRejected(t *testing.T) {
	_, err := decodeWithDataset(t, map[string]any{
		"dataset_id": map[string]any{"identifier": "", "type": "doi"},
	})
	issueAt(t, err, "/dataset/0/dataset_id", issue.CodeInvalidFormat)
}

func TestDistribution_EmptyLicenseRefRejected(t *testing.T) {
	_, err := decodeWithDataset(t, map[string]any{"distribution": []any{map[string]any{
		"title": "copy",
		"license": []any{map[string]any{
			"license_ref": "",
			"start_date":  "2024-01-01",
		}},
	}}})
	issueAt(t, err, "/dataset/0/distribution/0/license/0/license_ref", issue.CodeInvalidFormat)
}

func TestDistribution_EmptyLicenseList(t *testing.T) {
	_, err := decodeWithDataset(t, map[string]any{"distribution": []any{map[string]any{
		"title":   "copy",
		"license": []any{},
	}}})
	issueAt(t, err, "/dataset/0/distribution/0/license", issue.CodeTooShort)
}

func TestHost_ClosedEnums(t *testing.T) {
	_, err := decodeWithDataset(t, map[string]any{"distribution": []any{map[string]any{
		"title": "copy",
		"host": map[string]any{
			"title":          "repo",
			"certified_with": "iso9001",
		},
	}}})
	issueAt(t, err, "/dataset/0/distribution/0/host/certified_with", issue.CodeInvalidEnum)

	_, err = decodeWithDataset(t, map[string]any{"distribution": []any{map[string]any{
		"title": "copy",
		"host": map[string]any{
			"title":        "repo",
			"geo_location": "Austria",
		},
	}}})
	issueAt(t, err, "/dataset/0/distribution/0/host/geo_location", issue.CodeInvalidEnum)

	_, err = decodeWithDataset(t, map[string]any{"distribution": []any{map[string]any{
		"title": "copy",
		"host": map[string]any{
			"title":      "repo",
			"pid_system": []any{"doi", "barcode"},
		},
	}}})
	issueAt(t, err, "/dataset/0/distribution/0/host/pid_system/1", issue.CodeInvalidEnum)
}

func TestHost_Valid(t *testing.T) {
	d, err := decodeWithDataset(t, map[string]any{"distribution": []any{map[string]any{
		"title": "copy",
		"host": map[string]any{
			"title":              "Zenodo",
			"url":                "https://zenodo.org",
			"certified_with":     "coretrustseal",
			"geo_location":       "AT",
			"pid_system":         []any{"doi"},
			"support_versioning": "yes",
		},
	}}})
	if err != nil {
		t.Fatalf("DecodeDMP: %v", err)
	}
	h := d.Dataset[0].Distribution[0].Host
	if h == nil || h.SupportVersioning == nil || *h.SupportVersioning != v1_1.Yes {
		t.Fatalf("host: %+v", h)
	}
}

func TestDataset_IssuedDate(t *testing.T) {
	d, err := decodeWithDataset(t, map[string]any{"issued": "2024-05-01"})
	if err != nil {
		t.Fatalf("DecodeDMP: %v", err)
	}
	want, _ := codec.ParseDate("2024-05-01")
	if d.Dataset[0].Issued == nil || !d.Dataset[0].Issued.Equal(want.Time) {
		t.Fatalf("issued: %+v", d.Dataset[0].Issued)
	}
}
