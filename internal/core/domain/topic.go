package domain

import (
	"sort"
	"strings"
)

// Topic is immutable reference data identified by its title.
type Topic struct {
	Title string
}

// TopicSet is a set of topic titles.
type TopicSet map[string]struct{}

// NewTopicSet builds a set from titles, ignoring blanks and duplicates.
func NewTopicSet(titles ...string) TopicSet {
	s := make(TopicSet, len(titles))
	for _, t := range titles {
		s.Add(t)
	}
	return s
}

// Add inserts a title. Surrounding whitespace is trimmed.
func (s TopicSet) Add(title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}
	s[title] = struct{}{}
}

// Has reports whether title is in the set. A nil set has no members.
func (s TopicSet) Has(title string) bool {
	_, ok := s[title]
	return ok
}

// Slice returns the titles in lexical order. Never nil.
func (s TopicSet) Slice() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
