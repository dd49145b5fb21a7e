package schedule

import (
	"strings"
	"unicode"

	"github.com/derekprior/youthcup/internal/fixture"
)

// resolveVenue picks the venue for a group: an explicit group binding first,
// then an unbound venue whose name mentions the label ("Pitch A" for "A",
// "U10 North Field" for "North"), then the venue at the group's ordinal
// position. A venue bound to one group is never lent to another.
func resolveVenue(label string, ordinal int, venues []fixture.Venue) (fixture.Venue, bool) {
	for _, v := range venues {
		if v.Group != "" && strings.EqualFold(v.Group, label) {
			return v, true
		}
	}
	for _, v := range venues {
		if v.Group == "" && nameMentions(v.Name, label) {
			return v, true
		}
	}
	if ordinal >= 0 && ordinal < len(venues) && venues[ordinal].Group == "" {
		return venues[ordinal], true
	}
	return fixture.Venue{}, false
}

func nameMentions(name, label string) bool {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		if strings.EqualFold(w, label) {
			return true
		}
	}
	// Short labels only match whole words; "A" is in too many names.
	if len([]rune(label)) < 3 {
		return false
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(label))
}
