package release

import (
	"context"
	"regexp"
	"strconv"
)

var prNumberPattern = regexp.MustCompile(`\(#(\d+)\)$`)

// Resolution is the title to classify and the pull request it came from.
// Ref is zero when the message carries no reference.
type Resolution struct {
	Title string
	Ref   int
}

// Resolver swaps commit subjects for pull request titles when it can.
type Resolver struct {
	lookup TitleLookup
	log    Logger
}

// NewResolver creates a resolver. A nil lookup keeps every commit subject.
func NewResolver(lookup TitleLookup, log Logger) *Resolver {
	return &Resolver{lookup: lookup, log: loggerOrNop(log)}
}

// ReferenceNumber extracts the trailing "(#N)" pull request number.
func ReferenceNumber(message string) (int, bool) {
	m := prNumberPattern.FindStringSubmatch(message)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Resolve returns the authoritative title for message. An unavailable
// title falls back to the message itself.
func (r *Resolver) Resolve(ctx context.Context, message string) Resolution {
	ref, ok := ReferenceNumber(message)
	if !ok {
		return Resolution{Title: message}
	}

	res := Resolution{Title: message, Ref: ref}
	if r.lookup == nil {
		return res
	}

	result := r.lookup.LookupTitle(ctx, ref)
	if title, found := result.Get(); found {
		res.Title = title
	} else {
		r.log.Debugf("using commit subject for #%d: %s", ref, result.Reason())
	}
	return res
}
