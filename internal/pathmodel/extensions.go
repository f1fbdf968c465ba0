package pathmodel

import "strings"

// ExtensionList filters file extensions by an optional allow-list and an
// optional deny-list, matching case-insensitively (testable property 6).
//
// Semantics:
//   - both lists empty: accepts every extension.
//   - Exclude non-empty: rejects any extension present in Exclude.
//   - Target non-empty: accepts only extensions present in Target.
//
// When both are set, Exclude is checked first: an extension listed in
// Exclude is rejected even if Target also lists it.
type ExtensionList struct {
	Target  []string
	Exclude []string
}

// Accepts reports whether ext (with or without a leading dot) passes this
// filter.
func (l ExtensionList) Accepts(ext string) bool {
	ext = normalizeExt(ext)

	if len(l.Exclude) > 0 && containsExt(l.Exclude, ext) {
		return false
	}
	if len(l.Target) > 0 {
		return containsExt(l.Target, ext)
	}
	return true
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

func containsExt(list []string, ext string) bool {
	for _, e := range list {
		if normalizeExt(e) == ext {
			return true
		}
	}
	return false
}
