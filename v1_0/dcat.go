package v1_0

// DCAT / Dublin Core predicate URIs used by the export projection.
const (
	dcatDatasetType = "http://www.w3.org/ns/dcat#Dataset"
	dctTitle        = "http://purl.org/dc/terms/title"
	dctIdentifier   = "http://purl.org/dc/terms/identifier"
	dctDescription  = "http://purl.org/dc/terms/description"
	dctLanguage     = "http://purl.org/dc/terms/language"
	dcSubject       = "http://purl.org/dc/elements/1.1/subject"
)

// ToDCAT projects the dataset onto a JSON-LD-flavored mapping keyed by
// DCAT/Dublin Core predicate URIs; one-way and lossy. Values are tagged with
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
		"@type":  []string{dcatDatasetType},
		dctTitle: tagged(d.Title),
	}
	if d.ID != nil {
		frag["@id"] = d.ID.Identifier
		frag[dctIdentifier] = []map[string]any{{"@value": d.ID.Identifier}}
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
	return frag
}
