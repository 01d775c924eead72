package v1_1

import (
	"time"

	"github.com/reoring/madmp/codec"
	"github.com/reoring/madmp/internal/decode"
	"github.com/reoring/madmp/issue"
	"github.com/reoring/madmp/pid"
	"github.com/reoring/madmp/refdata"
)

// Dataset is one data output described by the plan.
type Dataset struct {
	DataQualityAssurance  []string             `json:"data_quality_assurance,omitempty"`
	ID                    DatasetID            `json:"dataset_id"`
	Description           *string              `json:"description,omitempty"`
	Distribution          []Distribution       `json:"distribution,omitempty"`
	Issued                *codec.Date          `json:"issued,omitempty"`
	Keyword               []string             `json:"keyword,omitempty"`
	Language              *string              `json:"language,omitempty"`
	Metadata              []Metadata           `json:"metadata,omitempty"`
	PersonalData          YesNoUnknown         `json:"personal_data"`
	PreservationStatement *string              `json:"preservation_statement,omitempty"`
	SecurityAndPrivacy    []SecurityAndPrivacy `json:"security_and_privacy,omitempty"`
	SensitiveData         YesNoUnknown         `json:"sensitive_data"`
	Title                 string               `json:"title"`
	Type                  *string              `json:"type,omitempty"`
}

// DatasetID identifies a dataset.
type DatasetID struct {
	Identifier string   `json:"identifier"`
	Type       pid.Kind `json:"type"`
}

// Metadata names a metadata standard the dataset documentation follows.
type Metadata struct {
	Description *string    `json:"description,omitempty"`
	Language    *string    `json:"language,omitempty"`
	StandardID  MetadataID `json:"metadata_standard_id"`
}

// MetadataID identifies a metadata standard.
type MetadataID struct {
	Identifier string `json:"identifier"`
	Type       string `json:"type"`
}

// SecurityAndPrivacy describes one security or privacy measure.
type SecurityAndPrivacy struct {
	Description *string `json:"description,omitempty"`
	Title       string  `json:"title"`
}

// DataAccess is the access mode of a distribution.
type DataAccess string

const (
	AccessOpen   DataAccess = "open"
	AccessShared DataAccess = "shared"
	AccessClosed DataAccess = "closed"
)

// Distribution describes one accessible copy of a dataset.
type Distribution struct {
	AccessURL      *string     `json:"access_url,omitempty"`
	AvailableUntil *codec.Date `json:"available_until,omitempty"`
	ByteSize       *int64      `json:"byte_size,omitempty"`
	DataAccess     *DataAccess `json:"data_access,omitempty"`
	Description    *string     `json:"description,omitempty"`
	DownloadURL    *string     `json:"download_url,omitempty"`
	Format         []string    `json:"format,omitempty"`
	Host           *Host       `json:"host,omitempty"`
	License        []License   `json:"license,omitempty"`
	Title          string      `json:"title"`
}

// License attaches license terms to a distribution. A start date in the
// future signals an embargo.
type License struct {
	LicenseRef string     `json:"license_ref"`
	StartDate  codec.Date `json:"start_date"`
}

// Embargoed reports whether the license terms only take effect after now.
func (l License) Embargoed(now time.Time) bool { return l.StartDate.After(now) }

// Host describes the repository or storage system backing a distribution.
type Host struct {
	Availability      *string       `json:"availability,omitempty"`
	BackupFrequency   *string       `json:"backup_frequency,omitempty"`
	BackupType        *string       `json:"backup_type,omitempty"`
	CertifiedWith     *string       `json:"certified_with,omitempty"`
	Description       *string       `json:"description,omitempty"`
	GeoLocation       *string       `json:"geo_location,omitempty"`
	PIDSystem         []string      `json:"pid_system,omitempty"`
	StorageType       *string       `json:"storage_type,omitempty"`
	SupportVersioning *YesNoUnknown `json:"support_versioning,omitempty"`
	Title             string        `json:"title"`
	URL               *string       `json:"url,omitempty"`
}

var (
	datasetIDTypes  = []string{"handle", "doi", "ark", "url", "other"}
	metadataIDTypes = []string{"url", "other"}
	certifications  = []string{"din31644", "dini-zertifikat", "dsa", "nestor-seal", "wds", "coretrustseal"}
	pidSystems      = []string{"ark", "doi", "handle", "igsn", "lsid", "purl", "urn"}
	dataAccessModes = []string{"open", "shared", "closed"}
)

func decodeDataset(path issue.Path, v any) (Dataset, issue.Issues) {
	o, iss := decode.Obj(path, v)
	if o == nil {
		return Dataset{}, iss
	}
	d := Dataset{
		Title:                 o.ReqString("title"),
		Description:           o.OptString("description"),
		Type:                  o.OptString("type"),
		Issued:                o.OptDate("issued"),
		Language:              o.OptString("language"),
		Keyword:               o.OptStringList("keyword", 1),
		DataQualityAssurance:  o.OptStringList("data_quality_assurance", 1),
		PreservationStatement: o.OptString("preservation_statement"),
		PersonalData:          YesNoUnknown(o.ReqEnum("personal_data", yesNoUnknown...)),
		SensitiveData:         YesNoUnknown(o.ReqEnum("sensitive_data", yesNoUnknown...)),
	}
	if d.Language != nil && !refdata.Language(*d.Language) {
		o.Report("language", issue.CodeInvalidEnum, "unknown ISO 639-3 language code", map[string]any{"got": *d.Language})
	}
	if raw, p, ok := o.ReqObject("dataset_id"); ok {
		id, iss := decodeDatasetID(p, raw)
		o.Merge(iss.AsError())
		d.ID = id
	}
	for i, raw := range o.OptList("metadata", 1) {
		m, iss := decodeMetadata(o.Path().Field("metadata").Index(i), raw)
		o.Merge(iss.AsError())
		d.Metadata = append(d.Metadata, m)
	}
	for i, raw := range o.OptList("security_and_privacy", 1) {
		sp, iss := decodeSecurityAndPrivacy(o.Path().Field("security_and_privacy").Index(i), raw)
		o.Merge(iss.AsError())
		d.SecurityAndPrivacy = append(d.SecurityAndPrivacy, sp)
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

func decodeMetadata(path issue.Path, v any) (Metadata, issue.Issues) {
	o, iss := decode.Obj(path, v)
	if o == nil {
		return Metadata{}, iss
	}
	m := Metadata{
		Description: o.OptString("description"),
		Language:    o.OptString("language"),
	}
	if m.Language != nil && !refdata.Language(*m.Language) {
		o.Report("language", issue.CodeInvalidEnum, "unknown ISO 639-3 language code", map[string]any{"got": *m.Language})
	}
	if raw, p, ok := o.ReqObject("metadata_standard_id"); ok {
		mo, iss := decode.Obj(p, raw)
		if mo == nil {
			o.Merge(iss.AsError())
		} else {
			m.StandardID = MetadataID{
				Identifier: mo.ReqString("identifier"),
				Type:       mo.ReqEnum("type", metadataIDTypes...),
			}
			if mo.HasString("identifier") && m.StandardID.Type != "" {
				kind := pid.Other
				if m.StandardID.Type == "url" {
					kind = pid.URL
				}
				if err := pid.Check(kind, m.StandardID.Identifier); err != nil {
					mo.Report("identifier", issue.CodeInvalidFormat, err.Error(), map[string]any{"got": m.StandardID.Identifier})
				}
			}
			o.Merge(mo.Issues().AsError())
		}
	}
	return m, o.Issues()
}

func decodeSecurityAndPrivacy(path issue.Path, v any) (SecurityAndPrivacy, issue.Issues) {
	o, iss := decode.Obj(path, v)
	if o == nil {
		return SecurityAndPrivacy{}, iss
	}
	sp := SecurityAndPrivacy{
		Title:       o.ReqString("title"),
		Description: o.OptString("description"),
	}
	return sp, o.Issues()
}

func decodeDistribution(path issue.Path, v any) (Distribution, issue.Issues) {
	o, iss := decode.Obj(path, v)
	if o == nil {
		return Distribution{}, iss
	}
	d := Distribution{
		Title:          o.ReqString("title"),
		Description:    o.OptString("description"),
		AccessURL:      o.OptString("access_url"),
		DownloadURL:    o.OptString("download_url"),
		ByteSize:       o.OptInt("byte_size"),
		Format:         o.OptStringList("format", 1),
		AvailableUntil: o.OptDate("available_until"),
	}
	if s := o.OptEnum("data_access", dataAccessModes...); s != nil {
		a := DataAccess(*s)
		d.DataAccess = &a
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
	if raw, p, ok := o.OptObject("host"); ok {
		h, iss := decodeHost(p, raw)
		o.Merge(iss.AsError())
		d.Host = &h
	}
	for i, raw := range o.OptList("license", 1) {
		l, iss := decodeLicense(o.Path().Field("license").Index(i), raw)
		o.Merge(iss.AsError())
		d.License = append(d.License, l)
	}
	return d, o.Issues()
}

func decodeLicense(path issue.Path, v any) (License, issue.Issues) {
	o, iss := decode.Obj(path, v)
	if o == nil {
		return License{}, iss
	}
	l := License{
		LicenseRef: o.ReqString("license_ref"),
		StartDate:  o.ReqDate("start_date"),
	}
	if o.HasString("license_ref") {
		if err := pid.Check(pid.URL, l.LicenseRef); err != nil {
			o.Report("license_ref", issue.CodeInvalidFormat, "not an absolute URL", map[string]any{"got": l.LicenseRef})
		}
	}
	return l, o.Issues()
}

func decodeHost(path issue.Path, v any) (Host, issue.Issues) {
	o, iss := decode.Obj(path, v)
	if o == nil {
		return Host{}, iss
	}
	h := Host{
		Title:           o.ReqString("title"),
		Description:     o.OptString("description"),
		Availability:    o.OptString("availability"),
		BackupFrequency: o.OptString("backup_frequency"),
		BackupType:      o.OptString("backup_type"),
		StorageType:     o.OptString("storage_type"),
		URL:             o.OptString("url"),
		CertifiedWith:   o.OptEnum("certified_with", certifications...),
		GeoLocation:     o.OptString("geo_location"),
	}
	if h.GeoLocation != nil && !refdata.Country(*h.GeoLocation) {
		o.Report("geo_location", issue.CodeInvalidEnum, "unknown ISO 3166-1 country code", map[string]any{"got": *h.GeoLocation})
	}
	if h.URL != nil {
		if err := pid.Check(pid.URL, *h.URL); err != nil {
			o.Report("url", issue.CodeInvalidFormat, "not an absolute URL", map[string]any{"got": *h.URL})
		}
	}
	h.PIDSystem = o.OptStringList("pid_system", 1)
	for i, sys := range h.PIDSystem {
		ok := false
		for _, allowed := range pidSystems {
			if sys == allowed {
				ok = true
				break
			}
		}
		if !ok {
			o.ReportIndex("pid_system", i, issue.CodeInvalidEnum, "unknown PID system", map[string]any{"got": sys, "allowed": pidSystems})
		}
	}
	if s := o.OptEnum("support_versioning", yesNoUnknown...); s != nil {
		f := YesNoUnknown(*s)
		h.SupportVersioning = &f
	}
	return h, o.Issues()
}
