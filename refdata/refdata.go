// Package refdata exposes membership predicates over the closed code tables
// the schema consumes as allowed-value sets: ISO 639-3 language codes,
// ISO 4217 currency codes and ISO 3166-1 alpha-2 country codes. The tables
// are embedded YAML documents loaded once on first use.
package refdata

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed tables/languages.yaml
var languagesYAML []byte

//go:embed tables/currencies.yaml
var currenciesYAML []byte

//go:embed tables/countries.yaml
var countriesYAML []byte

var (
	loadOnce   sync.Once
	languages  map[string]struct{}
	currencies map[string]struct{}
	countries  map[string]struct{}
)

func load() {
	loadOnce.Do(func() {
		languages = mustSet("languages", languagesYAML)
		currencies = mustSet("currencies", currenciesYAML)
		countries = mustSet("countries", countriesYAML)
	})
}

func mustSet(name string, raw []byte) map[string]struct{} {
	var codes []string
	if err := yaml.Unmarshal(raw, &codes); err != nil {
		// The tables ship inside the binary; failing to parse them is a
		// build defect, not a runtime condition.
		panic(fmt.Sprintf("refdata: embedded %s table: %v", name, err))
	}
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

// Language reports whether code is a known ISO 639-3 language code.
func Language(code string) bool {
	load()
	_, ok := languages[code]
	return ok
}

// Currency reports whether code is a known ISO 4217 currency code.
func Currency(code string) bool {
	load()
	_, ok := currencies[code]
	return ok
}

// Country reports whether code is a known ISO 3166-1 alpha-2 country code.
func Country(code string) bool {
	load()
	_, ok := countries[code]
	return ok
}
