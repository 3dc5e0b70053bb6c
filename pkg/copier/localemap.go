package copier

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// LocaleMap is an optional source→destination locale substitution table.
// It is applied to every locale value written to the destination. Locales
// absent from the map pass through unchanged.
type LocaleMap struct {
	subs map[string]string
}

// NewLocaleMap builds a LocaleMap from operator-supplied pairs. Keys are
// matched case-insensitively; help-center locales are lowercase BCP 47
// tags like "en-us" or "de".
func NewLocaleMap(pairs map[string]string) *LocaleMap {
	subs := make(map[string]string, len(pairs))
	for from, to := range pairs {
		subs[normalizeLocale(from)] = to
	}
	return &LocaleMap{subs: subs}
}

// Map returns the destination locale for a source locale, or the source
// locale unchanged when no substitution is configured.
func (lm *LocaleMap) Map(locale string) string {
	if lm == nil {
		return locale
	}
	if to, ok := lm.subs[normalizeLocale(locale)]; ok {
		return to
	}
	return locale
}

// Len returns the number of configured substitutions.
func (lm *LocaleMap) Len() int {
	if lm == nil {
		return 0
	}
	return len(lm.subs)
}

// Validate reports a warning per entry that is not a well-formed language
// tag. Bad entries still apply verbatim; the destination API is the final
// authority on which locales exist.
func (lm *LocaleMap) Validate() []string {
	if lm == nil {
		return nil
	}
	var warnings []string
	for from, to := range lm.subs {
		if _, err := language.Parse(from); err != nil {
			warnings = append(warnings, fmt.Sprintf("locale map key %q is not a valid language tag", from))
		}
		if _, err := language.Parse(to); err != nil {
			warnings = append(warnings, fmt.Sprintf("locale map value %q is not a valid language tag", to))
		}
	}
	return warnings
}

func normalizeLocale(locale string) string {
	return strings.ToLower(strings.TrimSpace(locale))
}
