package store

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Search scans tasks in current order and returns the first whose course
// name equals query once both are lower-cased, so "STRASSE" does not match
// "Straße". The store is searched as-is, sorted or not.
func (s *Store) Search(query string) (Task, bool) {
	lower := cases.Lower(language.Und)
	want := lower.String(query)
	for _, t := range s.tasks {
		if lower.String(t.CourseName) == want {
			return t, true
		}
	}
	return Task{}, false
}
