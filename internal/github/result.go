// Package github looks up pull request titles, either through the REST API
// or through the gh command-line tool.
package github

// TitleResult is either a found title or the reason none is available.
type TitleResult struct {
	title  string
	reason string
	found  bool
}

// Found returns a result holding title. An empty title counts as unavailable.
func Found(title string) TitleResult {
	if title == "" {
		return Unavailable("empty title")
	}
	return TitleResult{title: title, found: true}
}

// Unavailable returns a result explaining why no title could be fetched.
func Unavailable(reason string) TitleResult {
	return TitleResult{reason: reason}
}

// Get returns the title and whether one was found.
func (r TitleResult) Get() (string, bool) {
	return r.title, r.found
}

// Reason describes why the title is unavailable; empty when found.
func (r TitleResult) Reason() string {
	return r.reason
}
