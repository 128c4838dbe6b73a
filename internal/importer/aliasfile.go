package importer

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// AliasOverrides maps canonical field names to extra header spellings.
// Overrides are prepended to the built-in alias lists, so a file entry
// outranks every built-in spelling under exact-first resolution.
type AliasOverrides map[string][]string

// LoadAliasOverrides reads a YAML overrides file:
//
//	company_name:
//	  - "Cust Org"
//	value:
//	  - "Est. Contract $"
func LoadAliasOverrides(path string) (AliasOverrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "aliases: read file")
	}
	var overrides AliasOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, eris.Wrap(err, "aliases: parse yaml")
	}
	return overrides, nil
}

// Apply prepends the overrides to the built-in alias table. Unknown field
// names are an error so a typo in the file fails loudly instead of being
// silently ignored.
func (o AliasOverrides) Apply() error {
	for name, extra := range o {
		if name == "phone" {
			phoneHeaderAliases = append(append([]string{}, extra...), phoneHeaderAliases...)
			continue
		}
		spec, ok := aliasTable[Field(name)]
		if !ok {
			return eris.Errorf("aliases: unknown canonical field %q", name)
		}
		spec.aliases = append(append([]string{}, extra...), spec.aliases...)
	}
	return nil
}
