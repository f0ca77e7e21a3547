package changelog

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	conventionalPattern = regexp.MustCompile(`^(?P<type>[a-zA-Z]+)(?:\([^)]*\))?(?P<bang>!)?:\s*(?P<desc>.*)$`)
	breakingPattern     = regexp.MustCompile(`(?i)\bBREAKING\b`)
	trailingRefPattern  = regexp.MustCompile(`\s*\(#\d+\)$`)
)

// typeCategories maps conventional commit types to their section.
// Types not listed land in Changed.
var typeCategories = map[string]Category{
	"feat":      Added,
	"fix":       Fixed,
	"security":  Security,
	"deprecate": Deprecated,
	"revert":    Removed,
}

// Classify parses a commit title into its category and cleaned description.
// Every title produces a classification; titles outside the conventional
// commit grammar keep their full text and fall into Changed.
func Classify(title string) Classification {
	var c Classification

	if m := conventionalPattern.FindStringSubmatch(title); m != nil {
		c.Type = strings.ToLower(m[conventionalPattern.SubexpIndex("type")])
		c.Breaking = m[conventionalPattern.SubexpIndex("bang")] != ""
		c.Description = m[conventionalPattern.SubexpIndex("desc")]
	} else {
		c.Description = title
	}

	if breakingPattern.MatchString(c.Description) {
		c.Breaking = true
	}

	c.Category = categoryFor(c.Type, c.Breaking)
	c.Description = trailingRefPattern.ReplaceAllString(capitalizeFirst(c.Description), "")

	return c
}

func categoryFor(commitType string, breaking bool) Category {
	if breaking {
		return Breaking
	}
	if cat, ok := typeCategories[commitType]; ok {
		return cat
	}
	return Changed
}

// capitalizeFirst upper-cases the first rune and leaves the rest untouched.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
