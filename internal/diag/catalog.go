package diag

import "sort"

// catalog indexes every known Code by its rendered ID string, so that
// `zpl explain <ID>` and similar lookups don't need to re-derive the
// family arithmetic in ID().
var catalog = buildCatalog()

func buildCatalog() map[string]Code {
	m := make(map[string]Code, len(codeDescription))
	for code := range codeDescription {
		m[code.ID()] = code
	}
	return m
}

// Explain looks up a diagnostic by its rendered ID (e.g. "SEM3004") and
// returns its title. The second return value is false if the ID is not
// registered.
func Explain(id string) (string, bool) {
	code, ok := catalog[id]
	if !ok {
		return "", false
	}
	return code.Title(), true
}

// KnownCodes returns every registered code's ID in ascending order, for
// listing commands like `zpl explain --list`.
func KnownCodes() []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
