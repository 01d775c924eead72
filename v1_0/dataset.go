package v1_0

import (
	"github.com/reoring/madmp/codec"
	"github.com/reoring/madmp/internal/decode"
	"github.com/reoring/madmp/issue"
	"github.com/reoring/madmp/pid"
	"github.com/reoring/madmp/refdata"
)

// Dataset is one data output described by a 1.0 plan. metadata and
// security_and_privacy are single optional records here, not lists.
type Dataset struct {
	ID                 *DatasetID          `json:"dataset_id,omitempty"`
	Description        *string             `json:"description,omitempty"`
	Distribution       []Distribution      `json:"distribution,omitempty"`
	Keyword            []string            `json:"keyword,omitempty"`
	Language           *string             `json:"language,omitempty"`
	Metadata           *Metadata           `json:"metadata,omitempty"`
	PersonalData       *YesNoUnknown       `json:"personal_data,omitempty"`
	SecurityAndPrivacy *SecurityAndPrivacy `json:"security_and_privacy,omitempty"`
	SensitiveData      *YesNoUnknown       `json:"sensitive_data,omitempty"`
	Title              string              `json:"title"`
	Type               *string             `json:"type,omitempty"`
}

// DatasetID identifies a dataset.
type DatasetID struct {
	Identifier string   `json:"identifier"`
	Type       pid.Kind `json:"type"`
}

// Metadata names the metadata standard the dataset documentation follows.
type Metadata struct {
	Description *string `json:"description,omitempty"`
	Identifier  string  `json:"identifier"`
}

// SecurityAndPrivacy describes the security or privacy measure applied to
// the dataset.
type SecurityAndPrivacy struct {
	Description *string `json:"description,omitempty"`
	Title       string  `json:"title"`
}

// Distribution describes one accessible copy of a dataset.
type Distribution struct {
	AccessURL   *string  `json:"access_url,omitempty"`
	ByteSize    *int64   `json:"byte_size,omitempty"`
	DataAccess  *string  `json:"data_access,omitempty"`
	Description *string  `json:"description,omitempty"`
	DownloadURL *string  `json:"download_url,omitempty"`
	License     *License `json:"license,omitempty"`
	Title       string   `json:"title"`
}

// License attaches license terms to a distribution.
type License struct {
	LicenseRef string     `json:"license_ref"`
	StartDate  codec.Date `json:"start_date"`
}

var (
	datasetIDTypes  = []string{"handle", "doi", "ark", "url", "other"}
	dataAccessModes = []string{"open", "shared", "closed"}
)

func decodeDataset(path issue.Path, v any) (Dataset, issue.Issues) {
	o, iss := decode.Obj(path, v)
	if o == nil {
		return Dataset{}, iss
	}
	d := Dataset{
		Title:       o.ReqString("title"),
		Description: o.OptString("description"),
		Type:        o.OptString("type"),
		Language:    o.OptString("language"),
		Keyword:     o.OptStringList("keyword", 1),
	}
	if d.Language != nil && !refdata.Language(*d.Language) {
		o.Report("language", issue.CodeInvalidEnum, "unknown ISO 639-3 language code", map[string]any{"got": *d.Language})
	}
	if s := o.OptEnum("personal_data", yesNoUnknown...); s != nil {
		f := YesNoUnknown(*s)
		d.PersonalData = &f
	}
	if s := o.OptEnum("sensitive_data", yesNoUnknown...); s != nil {
		f := YesNoUnknown(*s)
		d.SensitiveData = &f
	}
	if raw, p, ok := o.OptObject("dataset_id"); ok {
		id, iss := decodeDatasetID(p, raw)
		o.Merge(iss.AsError())
		d.ID = &id
	}
	if raw, p, ok := o.OptObject("metadata"); ok {
		mo, iss := decode.Obj(p, raw)
		if mo == nil {
			o.Merge(iss.AsError())
		} else {
			d.Metadata = &Metadata{
				Identifier:  mo.ReqString("identifier"),
				Description: mo.OptString("description"),
			}
			o.Merge(mo.Issues().AsError())
		}
	}
	if raw, p, ok := o.OptObject("security_and_privacy"); ok {
		so, iss := decode.Obj(p, raw)
		if so == nil {
			o.Merge(iss.AsError())
		} else {
			d.SecurityAndPrivacy = &SecurityAndPrivacy{
				Title:       so.ReqString("title"),
				Description: so.OptString("description"),
			}
			o.Merge(so.Issues().AsError())
		}
	}
	for i, raw := range o.OptList("distribution", 1) {
		dist, iss := decodeDistribution(o.Path().Field("distribution").Index(i), raw)
		o.Merge(iss.AsError())
		d.Distribution = append(d.Distribution, dist)
	}
	return d, o.Issues()
}

func decodeDatasetID(path issue.Path, v any) (DatasetID, issue.Issues) {
	o, iss := decode.Obj(path, v)
	if o == nil {
		return DatasetID{}, iss
	}
	id := DatasetID{
		Identifier: o.ReqString("identifier"),
		Type:       pid.Kind(o.ReqEnum("type", datasetIDTypes...)),
	}
	if o.HasString("identifier") && id.Type != "" {
		if err := pid.Check(id.Type, id.Identifier); err != nil {
			return id, issue.Append(o.Issues(), issue.At(path, issue.CodeInvalidFormat, err.Error(), map[string]any{"type": string(id.Type), "got": id.Identifier}))
		}
	}
	return id, o.Issues()
}

func decodeDistribution(path issue.Path, v any) (Distribution, issue.Issues) {
	o, iss := decode.Obj(path, v)
	if o == nil {
		return Distribution{}, iss
	}
	d := Distribution{
		Title:       o.ReqString("title"),
		Description: o.OptString("description"),
		AccessURL:   o.OptString("access_url"),
		DownloadURL: o.OptString("download_url"),
		ByteSize:    o.OptInt("byte_size"),
		DataAccess:  o.OptEnum("data_access", dataAccessModes...),
	}
	if d.AccessURL != nil {
		if err := pid.Check(pid.URL, *d.AccessURL); err != nil {
			o.Report("access_url", issue.CodeInvalidFormat, "not an absolute URL", map[string]any{"got": *d.AccessURL})
		}
	}
	if d.DownloadURL != nil {
		if err := pid.Check(pid.URL, *d.DownloadURL); err != nil {
			o.Report("download_url", issue.CodeInvalidFormat, "not an absolute URL", map[string]any{"got": *d.DownloadURL})
		}
	}
	if raw, p, ok := o.OptObject("license"); ok {
		lo, iss := decode.Obj(p, raw)
		if lo == nil {
			o.Merge(iss.AsError())
		} else {
			l := License{
				LicenseRef: lo.ReqString("license_ref"),
				StartDate:  lo.ReqDate("start_date"),
			}
			if lo.HasString("license_ref") {
				if err := pid.Check(pid.URL, l.LicenseRef); err != nil {
					lo.Report("license_ref", issue.CodeInvalidFormat, "not an absolute URL", map[string]any{"got": l.LicenseRef})
				}
			}
			d.License = &l
			o.Merge(lo.Issues().AsError())
		}
	}
	return d, o.Issues()
}
