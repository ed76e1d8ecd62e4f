// Package sitekey normalizes free-form site names to canonical site keys.
//
// Duty-log entries and spreadsheet rows name sites inconsistently: mixed
// case, stray whitespace, local-language spellings and transliterations of
// the same point. Weight aggregation must fold all of them onto one
// canonical key or a staff member's shifts get split across phantom sites.
package sitekey

import "strings"

// Normalizer maps raw site spellings to canonical site keys.
type Normalizer struct {
	// aliases maps a folded spelling to its canonical key.
	aliases map[string]string
}

// New creates a Normalizer from canonical-key -> alias-list tables.
//
// The canonical key itself is always accepted, in any case. Alias matching
// is case-insensitive and whitespace-tolerant.
//
// Parameters:
//   - tables: Canonical site key -> accepted alternate spellings
//
// Returns:
//   - *Normalizer: Initialized normalizer
//
// Example:
//
//	n := sitekey.New(map[string][]string{
//	    "center": {"центр", "tsentr", "Centr"},
//	    "north":  {"север", "sever"},
//	})
//	n.Canonical(" ЦЕНТР ") // "center"
func New(tables map[string][]string) *Normalizer {
	aliases := make(map[string]string)
	for canonical, spellings := range tables {
		key := fold(canonical)
		aliases[fold(canonical)] = key
		for _, s := range spellings {
			aliases[fold(s)] = key
		}
	}

	return &Normalizer{aliases: aliases}
}

// Canonical returns the canonical site key for a raw spelling.
//
// Unknown spellings fold to lowercase-trimmed form so that consistent but
// unregistered site names still aggregate onto a single key.
//
// Parameters:
//   - raw: Site name as it appears in the source
//
// Returns:
//   - string: Canonical site key ("" for blank input)
func (n *Normalizer) Canonical(raw string) string {
	folded := fold(raw)
	if folded == "" {
		return ""
	}
	if canonical, ok := n.aliases[folded]; ok {
		return canonical
	}

	return folded
}

// fold lowercases and collapses whitespace for alias comparison.
func fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
