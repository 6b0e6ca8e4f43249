package entities

import "strings"

// CategoryNormalizer maps free-text vendor category labels to a canonical
// tag before cross-quote matching. Vendor-entered labels are free text, so
// raw equality is brittle ("타일" and "타일공사" never align); deployments
// with a controlled vocabulary plug in an alias table.
type CategoryNormalizer interface {
	Canonical(category string) string
}

// ExactCategoryNormalizer preserves raw string equality, the compatibility
// default.
type ExactCategoryNormalizer struct{}

func (ExactCategoryNormalizer) Canonical(category string) string {
	return strings.TrimSpace(category)
}

// AliasCategoryNormalizer folds known label variants into a canonical tag.
// Unknown labels pass through unchanged.
type AliasCategoryNormalizer struct {
	Aliases map[string]string
}

func (n AliasCategoryNormalizer) Canonical(category string) string {
	trimmed := strings.TrimSpace(category)
	if canonical, ok := n.Aliases[trimmed]; ok {
		return canonical
	}
	return trimmed
}
