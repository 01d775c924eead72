// Package v1_1 models a maDMP document as defined by version 1.1 of the
// RDA-DMP-Common-Standard. Instances are constructed exclusively through
// DecodeDMP, which validates the whole object graph bottom-up; a returned
// *DMP therefore satisfies every declared invariant and is not mutated
// afterwards.
package v1_1

import (
	"context"

	"github.com/reoring/madmp/codec"
	"github.com/reoring/madmp/internal/decode"
	"github.com/reoring/madmp/issue"
	"github.com/reoring/madmp/pid"
	"github.com/reoring/madmp/refdata"
)

// YesNoUnknown is the three-state flag used by personal_data, sensitive_data,
// ethical_issues_exist and support_versioning.
type YesNoUnknown string

const (
	Yes     YesNoUnknown = "yes"
	No      YesNoUnknown = "no"
	Unknown YesNoUnknown = "unknown"
)

var yesNoUnknown = []string{"yes", "no", "unknown"}

// DMP is the root entity of a validated document.
type DMP struct {
	Title               string          `json:"title"`
	ContactInfo         Contact         `json:"contact"`
	Contributor         []Contributor   `json:"contributor,omitempty"`
	Cost                []Cost          `json:"cost,omitempty"`
	Created             codec.Timestamp `json:"created"`
	Modified            codec.Timestamp `json:"modified"`
	Dataset             []Dataset       `json:"dataset"`
	Description         *string         `json:"description,omitempty"`
	ID                  DMPID           `json:"dmp_id"`
	EthicalIssuesDesc   *string         `json:"ethical_issues_description,omitempty"`
	EthicalIssuesExist  *YesNoUnknown   `json:"ethical_issues_exist,omitempty"`
	EthicalIssuesReport *string         `json:"ethical_issues_report,omitempty"`
	Language            string          `json:"language"`
	Project             []Project       `json:"project,omitempty"`
}

// SchemaVersion names the schema release this model validates against.
func (*DMP) SchemaVersion() string { return "1.1" }

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

// ContactID identifies a contact; orcid identifiers are format-checked,
// isni/openid/other only need to be non-empty.
type ContactID struct {
	Identifier string `json:"identifier"`
	Type       string `json:"type"`
}

// Contributor is an additional person attached to the plan, with at least
// one role.
type Contributor struct {
	ID   ContactID `json:"contributor_id"`
	Mbox *string   `json:"mbox,omitempty"`
	Name string    `json:"name"`
	Role []string  `json:"role"`
}

// Cost is an anticipated cost item.
type Cost struct {
	CurrencyCode *string  `json:"currency_code,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Title        string   `json:"title"`
	Value        *float64 `json:"value,omitempty"`
}

// Project is the research context a plan belongs to.
type Project struct {
	Description *string          `json:"description,omitempty"`
	End         *codec.Timestamp `json:"end,omitempty"`
	Funding     []Funding        `json:"funding,omitempty"`
	Start       *codec.Timestamp `json:"start,omitempty"`
	Title       string           `json:"title"`
}

// FundingStatus enumerates the lifecycle of a funding application.
type FundingStatus string

const (
	FundingPlanned  FundingStatus = "planned"
	FundingApplied  FundingStatus = "applied"
	FundingGranted  FundingStatus = "granted"
	FundingRejected FundingStatus = "rejected"
)

// Funding ties a funder and an optional grant to a funding status.
type Funding struct {
	FunderID      FundingID      `json:"funder_id"`
	GrantID       *GrantID       `json:"grant_id,omitempty"`
	FundingStatus *FundingStatus `json:"funding_status,omitempty"`
}

// FundingID identifies a funder (fundref registry entry or URL).
type FundingID struct {
	Identifier string `json:"identifier"`
	Type       string `json:"type"`
}

// GrantID identifies an awarded grant.
type GrantID struct {
	Identifier string `json:"identifier"`
	Type       string `json:"type"`
}

// DecodeDMP validates v (the value of the "dmp" envelope key) and constructs
// the typed root entity. All structural issues are collected, each tagged
// with its JSON Pointer path; on any issue the returned DMP is nil.
func DecodeDMP(ctx context.Context, v any) (*DMP, error) {
	_ = ctx
	o, iss := decode.Obj(issue.Root(), v)
	if o == nil {
		return nil, iss
	}

	d := &DMP{
		Title:    o.ReqString("title"),
		Created:  o.ReqTimestamp("created"),
		Modified: o.ReqTimestamp("modified"),
		Language: o.ReqString("language"),

		Description:         o.OptString("description"),
		EthicalIssuesDesc:   o.OptString("ethical_issues_description"),
		EthicalIssuesReport: o.OptString("ethical_issues_report"),
	}
	if d.Language != "" && !refdata.Language(d.Language) {
		o.Report("language", issue.CodeInvalidEnum, "unknown ISO 639-3 language code", map[string]any{"got": d.Language})
	}
	if s := o.OptEnum("ethical_issues_exist", yesNoUnknown...); s != nil {
		f := YesNoUnknown(*s)
		d.EthicalIssuesExist = &f
	}
	if report := d.EthicalIssuesReport; report != nil {
		if err := pid.Check(pid.URL, *report); err != nil {
			o.Report("ethical_issues_report", issue.CodeInvalidFormat, "not an absolute URI", map[string]any{"got": *report})
		}
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
	for i, raw := range o.OptList("contributor", 1) {
		c, iss := decodeContributor(o.Path().Field("contributor").Index(i), raw)
		o.Merge(iss.AsError())
		d.Contributor = append(d.Contributor, c)
	}
	for i, raw := range o.OptList("cost", 1) {
		c, iss := decodeCost(o.Path().Field("cost").Index(i), raw)
		o.Merge(iss.AsError())
		d.Cost = append(d.Cost, c)
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

var dmpIDTypes = []string{"handle", "doi", "ark", "url", "other"}

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

var personIDTypes = []string{"orcid", "isni", "openid", "other"}

func decodePersonID(path issue.Path, v any) (ContactID, issue.Issues) {
	o, iss := decode.Obj(path, v)
	if o == nil {
		return ContactID{}, iss
	}
	id := ContactID{
		Identifier: o.ReqString("identifier"),
		Type:       o.ReqEnum("type", personIDTypes...),
	}
	// Only orcid has a checkable wire format; the remaining schemes are
	// opaque and must merely be non-empty.
	if o.HasString("identifier") && id.Type != "" {
		kind := pid.Other
		if id.Type == "orcid" {
			kind = pid.ORCID
		}
		if err := pid.Check(kind, id.Identifier); err != nil {
			return id, issue.Append(o.Issues(), issue.At(path, issue.CodeInvalidFormat, err.Error(), map[string]any{"type": id.Type, "got": id.Identifier}))
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
		id, iss := decodePersonID(p, raw)
		o.Merge(iss.AsError())
		c.ID = id
	}
	return c, o.Issues()
}

func decodeContributor(path issue.Path, v any) (Contributor, issue.Issues) {
	o, iss := decode.Obj(path, v)
	if o == nil {
		return Contributor{}, iss
	}
	c := Contributor{
		Name: o.ReqString("name"),
		Mbox: o.OptString("mbox"),
		Role: o.ReqStringList("role", 1),
	}
	if raw, p, ok := o.ReqObject("contributor_id"); ok {
		id, iss := decodePersonID(p, raw)
		o.Merge(iss.AsError())
		c.ID = id
	}
	return c, o.Issues()
}

func decodeCost(path issue.Path, v any) (Cost, issue.Issues) {
	o, iss := decode.Obj(path, v)
	if o == nil {
		return Cost{}, iss
	}
	c := Cost{
		Title:        o.ReqString("title"),
		Description:  o.OptString("description"),
		Value:        o.OptNumber("value"),
		CurrencyCode: o.OptString("currency_code"),
	}
	if c.CurrencyCode != nil && !refdata.Currency(*c.CurrencyCode) {
		o.Report("currency_code", issue.CodeInvalidEnum, "unknown ISO 4217 currency code", map[string]any{"got": *c.CurrencyCode})
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
		Start:       o.OptTimestamp("start"),
		End:         o.OptTimestamp("end"),
	}
	for i, raw := range o.OptList("funding", 1) {
		f, iss := decodeFunding(o.Path().Field("funding").Index(i), raw)
		o.Merge(iss.AsError())
		p.Funding = append(p.Funding, f)
	}
	return p, o.Issues()
}

var (
	funderIDTypes = []string{"fundref", "url", "other"}
	grantIDTypes  = []string{"url", "other"}
	fundingStates = []string{"planned", "applied", "granted", "rejected"}
)

func decodeFunding(path issue.Path, v any) (Funding, issue.Issues) {
	o, iss := decode.Obj(path, v)
	if o == nil {
		return Funding{}, iss
	}
	var f Funding
	if raw, p, ok := o.ReqObject("funder_id"); ok {
		fo, iss := decode.Obj(p, raw)
		if fo == nil {
			o.Merge(iss.AsError())
		} else {
			f.FunderID = FundingID{
				Identifier: fo.ReqString("identifier"),
				Type:       fo.ReqEnum("type", funderIDTypes...),
			}
			if fo.HasString("identifier") && f.FunderID.Type != "" {
				kind := pid.Other
				if f.FunderID.Type == "url" {
					kind = pid.URL
				}
				if err := pid.Check(kind, f.FunderID.Identifier); err != nil {
					fo.Report("identifier", issue.CodeInvalidFormat, err.Error(), map[string]any{"got": f.FunderID.Identifier})
				}
			}
			o.Merge(fo.Issues().AsError())
		}
	}
	if raw, p, ok := o.OptObject("grant_id"); ok {
		g, iss := decode.Obj(p, raw)
		if g == nil {
			o.Merge(iss.AsError())
		} else {
			gid := GrantID{
				Identifier: g.ReqString("identifier"),
				Type:       g.ReqEnum("type", grantIDTypes...),
			}
			if g.HasString("identifier") && gid.Type != "" {
				kind := pid.Other
				if gid.Type == "url" {
					kind = pid.URL
				}
				if err := pid.Check(kind, gid.Identifier); err != nil {
					g.Report("identifier", issue.CodeInvalidFormat, err.Error(), map[string]any{"got": gid.Identifier})
				}
			}
			f.GrantID = &gid
			o.Merge(g.Issues().AsError())
		}
	}
	if s := o.OptEnum("funding_status", fundingStates...); s != nil {
		st := FundingStatus(*s)
		f.FundingStatus = &st
	}
	return f, o.Issues()
}
