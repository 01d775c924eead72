// Package v1_0 models a maDMP document as defined by version 1.0 of the
// RDA-DMP-Common-Standard. It is the reduced predecessor of v1_1 and is
// retained for backward-compatible validation only: funding, metadata and
// security_and_privacy are single values rather than lists, and several of
// the 1.1 optional fields do not exist.
package v1_0

import (
	"context"

	"github.com/reoring/madmp/codec"
	"github.com/reoring/madmp/internal/decode"
	"github.com/reoring/madmp/issue"
	"github.com/reoring/madmp/pid"
	"github.com/reoring/madmp/refdata"
)

// YesNoUnknown is the three-state flag used by personal_data and
// sensitive_data.
type YesNoUnknown string

const (
	Yes     YesNoUnknown = "yes"
	No      YesNoUnknown = "no"
	Unknown YesNoUnknown = "unknown"
)

var yesNoUnknown = []string{"yes", "no", "unknown"}

// DMP is the root entity of a validated 1.0 document.
type DMP struct {
	Title       string           `json:"title"`
	ContactInfo Contact          `json:"contact"`
	Created     codec.Timestamp  `json:"created"`
	Modified    *codec.Timestamp `json:"modified,omitempty"`
	Dataset     []Dataset        `json:"dataset"`
	Description *string          `json:"description,omitempty"`
	ID          DMPID            `json:"dmp_id"`
	Language    *string          `json:"language,omitempty"`
	Project     []Project        `json:"project,omitempty"`
}

// SchemaVersion names the schema release this model validates against.
func (*DMP) SchemaVersion() string { return "1.0" }

// DMPID identifies the plan itself.
type DMPID struct {
	Identifier string   `json:"identifier"`
	Type       pid.Kind `json:"type"`
}

// Contact is the single mandatory contact person of a plan.
type Contact struct {
	ID   ContactID `json:"contact_id"`
	Mbox string    `json:"mbox"`
	Name string    `json:"name"`
}

// ContactID identifies a contact person.
type ContactID struct {
	Identifier string `json:"identifier"`
	Type       string `json:"type"`
}

// Project is the research context a plan belongs to. Unlike 1.1, start and
// end are mandatory and funding is a single value.
type Project struct {
	Description *string         `json:"description,omitempty"`
	End         codec.Timestamp `json:"end"`
	Funding     *Funding        `json:"funding,omitempty"`
	Start       codec.Timestamp `json:"start"`
	Title       string          `json:"title"`
}

// Funding is the flat 1.0 funding record: bare identifier strings instead of
// typed identifier objects.
type Funding struct {
	FunderID      string  `json:"funder_id"`
	FundingStatus *string `json:"funding_status,omitempty"`
	GrantID       *string `json:"grant_id,omitempty"`
}

var (
	dmpIDTypes    = []string{"handle", "doi", "ark", "url", "other"}
	personIDTypes = []string{"orcid", "isni", "openid", "other"}
	fundingStates = []string{"planned", "applied", "granted", "rejected"}
)

// DecodeDMP validates v (the value of the "dmp" envelope key) against the
// 1.0 schema and constructs the typed root entity.
func DecodeDMP(ctx context.Context, v any) (*DMP, error) {
	_ = ctx
	o, iss := decode.Obj(issue.Root(), v)
	if o == nil {
		return nil, iss
	}

	d := &DMP{
		Title:       o.ReqString("title"),
		Created:     o.ReqTimestamp("created"),
		Modified:    o.OptTimestamp("modified"),
		Description: o.OptString("description"),
		Language:    o.OptString("language"),
	}
	if d.Language != nil && !refdata.Language(*d.Language) {
		o.Report("language", issue.CodeInvalidEnum, "unknown ISO 639-3 language code", map[string]any{"got": *d.Language})
	}

	if raw, p, ok := o.ReqObject("dmp_id"); ok {
		id, iss := decodeDMPID(p, raw)
		o.Merge(iss.AsError())
		d.ID = id
	}
	if raw, p, ok := o.ReqObject("contact"); ok {
		c, iss := decodeContact(p, raw)
		o.Merge(iss.AsError())
		d.ContactInfo = c
	}
	for i, raw := range o.ReqList("dataset", 1) {
		ds, iss := decodeDataset(o.Path().Field("dataset").Index(i), raw)
		o.Merge(iss.AsError())
		d.Dataset = append(d.Dataset, ds)
	}
	for i, raw := range o.OptList("project", 1) {
		p, iss := decodeProject(o.Path().Field("project").Index(i), raw)
		o.Merge(iss.AsError())
		d.Project = append(d.Project, p)
	}

	if iss := o.Issues(); iss != nil {
		return nil, iss
	}
	return d, nil
}

func decodeDMPID(path issue.Path, v any) (DMPID, issue.Issues) {
	o, iss := decode.Obj(path, v)
	if o == nil {
		return DMPID{}, iss
	}
	id := DMPID{
		Identifier: o.ReqString("identifier"),
		Type:       pid.Kind(o.ReqEnum("type", dmpIDTypes...)),
	}
	if o.HasString("identifier") && id.Type != "" {
		if err := pid.Check(id.Type, id.Identifier); err != nil {
			return id, issue.Append(o.Issues(), issue.At(path, issue.CodeInvalidFormat, err.Error(), map[string]any{"type": string(id.Type), "got": id.Identifier}))
		}
	}
	return id, o.Issues()
}

func decodeContact(path issue.Path, v any) (Contact, issue.Issues) {
	o, iss := decode.Obj(path, v)
	if o == nil {
		return Contact{}, iss
	}
	c := Contact{
		Name: o.ReqString("name"),
		Mbox: o.ReqString("mbox"),
	}
	if raw, p, ok := o.ReqObject("contact_id"); ok {
		co, iss := decode.Obj(p, raw)
		if co == nil {
			o.Merge(iss.AsError())
		} else {
			c.ID = ContactID{
				Identifier: co.ReqString("identifier"),
				Type:       co.ReqEnum("type", personIDTypes...),
			}
			if co.HasString("identifier") && c.ID.Type != "" {
				kind := pid.Other
				if c.ID.Type == "orcid" {
					kind = pid.ORCID
				}
				if err := pid.Check(kind, c.ID.Identifier); err != nil {
					o.Merge(issue.Issues{issue.At(p, issue.CodeInvalidFormat, err.Error(), map[string]any{"type": c.ID.Type, "got": c.ID.Identifier})}.AsError())
				}
			}
			o.Merge(co.Issues().AsError())
		}
	}
	return c, o.Issues()
}

func decodeProject(path issue.Path, v any) (Project, issue.Issues) {
	o, iss := decode.Obj(path, v)
	if o == nil {
		return Project{}, iss
	}
	p := Project{
		Title:       o.ReqString("title"),
		Description: o.OptString("description"),
		Start:       o.ReqTimestamp("start"),
		End:         o.ReqTimestamp("end"),
	}
	if raw, fp, ok := o.OptObject("funding"); ok {
		fo, iss := decode.Obj(fp, raw)
		if fo == nil {
			o.Merge(iss.AsError())
		} else {
			f := Funding{
				FunderID:      fo.ReqString("funder_id"),
				GrantID:       fo.OptString("grant_id"),
				FundingStatus: fo.OptEnum("funding_status", fundingStates...),
			}
			p.Funding = &f
			o.Merge(fo.Issues().AsError())
		}
	}
	return p, o.Issues()
}
