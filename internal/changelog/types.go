package changelog

import "strings"

// Category is a Keep a Changelog section heading. The zero value is
// Breaking and the declaration order is the rendering order.
type Category int

const (
	Breaking Category = iota
	Removed
	Deprecated
	Added
	Changed
	Fixed
	Security
)

var categoryNames = [...]string{
	Breaking:   "Breaking Changes",
	Removed:    "Removed",
	Deprecated: "Deprecated",
	Added:      "Added",
	Changed:    "Changed",
	Fixed:      "Fixed",
	Security:   "Security",
}

// String returns the heading text used in the rendered section.
func (c Category) String() string {
	if c < Breaking || c > Security {
		return "Unknown"
	}
	return categoryNames[c]
}

// Key returns a lower-case identifier suitable for styling and YAML output.
func (c Category) Key() string {
	return strings.ReplaceAll(strings.ToLower(c.String()), " ", "_")
}

// MarshalYAML renders the category by name rather than ordinal.
func (c Category) MarshalYAML() (any, error) {
	return c.String(), nil
}

// Categories returns every category in rendering order.
func Categories() []Category {
	return []Category{Breaking, Removed, Deprecated, Added, Changed, Fixed, Security}
}

// Entry is a single rendered changelog line and the section it belongs to.
// Text is the full markdown bullet, including any reference link.
type Entry struct {
	Category Category `yaml:"category"`
	Text     string   `yaml:"text"`
}

// Classification is the outcome of parsing one commit title.
type Classification struct {
	// Type is the lower-cased conventional commit type, empty when the
	// title does not follow the grammar.
	Type        string
	Breaking    bool
	Description string
	Category    Category
}
