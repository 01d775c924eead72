package v1_1

// DCAT / Dublin Core predicate URIs used by the export projection.
// https://www.dublincore.org/specifications/dublin-core/dcmi-terms/
const (
	dcatDatasetType = "http://www.w3.org/ns/dcat#Dataset"
	dctTitle        = "http://purl.org/dc/terms/title"
	dctIdentifier   = "http://purl.org/dc/terms/identifier"
	dctDescription  = "http://purl.org/dc/terms/description"
	dctLanguage     = "http://purl.org/dc/terms/language"
	dctIssued       = "http://purl.org/dc/terms/issued"
	dctType         = "http://purl.org/dc/terms/type"
	dcSubject       = "http://purl.org/dc/elements/1.1/subject"
)

// ToDCAT projects the dataset onto a JSON-LD-flavored mapping keyed by
// DCAT/Dublin Core predicate URIs. The projection is one-way and lossy; it is
// a convenience export, not a serialization format. Values are tagged with
// the dataset's language, falling back to "und" when unset.
func (d *Dataset) ToDCAT() map[string]any {
	lang := "und"
	if d.Language != nil && *d.Language != "" {
		lang = *d.Language
	}
	tagged := func(v string) []map[string]any {
		return []map[string]any{{"@value": v, "@language": lang}}
	}

	frag := map[string]any{
		"@id":         d.ID.Identifier,
		"@type":       []string{dcatDatasetType},
		dctTitle:      tagged(d.Title),
		dctIdentifier: []map[string]any{{"@value": d.ID.Identifier}},
	}
	if d.Description != nil {
		frag[dctDescription] = tagged(*d.Description)
	}
	if len(d.Keyword) > 0 {
		subjects := make([]map[string]any, 0, len(d.Keyword))
		for _, k := range d.Keyword {
			subjects = append(subjects, map[string]any{"@value": k, "@language": lang})
		}
		frag[dcSubject] = subjects
	}
	if d.Language != nil {
		frag[dctLanguage] = tagged(*d.Language)
	}
	if d.Issued != nil {
		frag[dctIssued] = tagged(d.Issued.String())
	}
	if d.Type != nil {
		frag[dctType] = tagged(*d.Type)
	}
	return frag
}
