// Package langname resolves ISO 639 language codes to display names.
package langname

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Namer looks up language names in one display language.
type Namer struct {
	names display.Namer
}

// English returns a Namer producing English names ("spa" → "Spanish").
func English() *Namer {
	return &Namer{names: display.English.Languages()}
}

// Name returns the display name of a two- or three-letter ISO 639 code.
// ok is false for codes that do not parse or have no known name.
func (n *Namer) Name(code string) (string, bool) {
	base, err := language.ParseBase(strings.ToLower(strings.TrimSpace(code)))
	if err != nil {
		return "", false
	}
	name := n.names.Name(base)
	if name == "" {
		return "", false
	}
	return name, true
}
