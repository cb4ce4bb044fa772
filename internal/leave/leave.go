// Package leave decides which calendar events mark someone as absent and
// turns them into leave records.
package leave

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/guilherme-santos/leavebot/internal"
)

const (
	defaultLabel     = "LEAVE"
	outOfOfficeLabel = "OUT OF OFFICE"
	nameSeparator    = " - "
)

// Rule matches Keyword case-insensitively anywhere in a title. When
// WordBoundary is set the occurrence must not touch a letter or digit on
// either side, so short tokens like "al" don't fire inside "Personal".
type Rule struct {
	Keyword      string
	WordBoundary bool
}

// Label is the leave type reported for titles matching the rule.
func (r Rule) Label() string {
	return strings.ToUpper(r.Keyword)
}

func (r Rule) match(lowerTitle string) bool {
	if !r.WordBoundary {
		return strings.Contains(lowerTitle, r.Keyword)
	}
	for offset := 0; offset < len(lowerTitle); {
		i := strings.Index(lowerTitle[offset:], r.Keyword)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(r.Keyword)
		if isBoundary(lowerTitle[:start], true) && isBoundary(lowerTitle[end:], false) {
			return true
		}
		offset = start + 1
	}
	return false
}

func isBoundary(s string, before bool) bool {
	if s == "" {
		return true
	}
	var r rune
	if before {
		r, _ = utf8.DecodeLastRuneInString(s)
	} else {
		r, _ = utf8.DecodeRuneInString(s)
	}
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// Rules is checked in order; the first match names the leave type.
var Rules = []Rule{
	{Keyword: "annual leave"},
	{Keyword: "sick leave"},
	{Keyword: "parental leave"},
	{Keyword: "vacation"},
	{Keyword: "holiday"},
	{Keyword: "out of office"},
	{Keyword: "time off"},
	{Keyword: "ooo", WordBoundary: true},
	{Keyword: "pto", WordBoundary: true},
	{Keyword: "toil", WordBoundary: true},
	{Keyword: "rdo", WordBoundary: true},
	{Keyword: "al", WordBoundary: true},
}

func matchRule(title string) (Rule, bool) {
	// upper first so runes like 'ı' or 'ſ' fold to their ASCII letters
	lower := strings.ToLower(strings.ToUpper(title))
	for _, r := range Rules {
		if r.match(lower) {
			return r, true
		}
	}
	return Rule{}, false
}

func IsLeave(title string) bool {
	if strings.TrimSpace(title) == "" {
		return false
	}
	_, ok := matchRule(title)
	return ok
}

// IsLeaveEvent also accepts Google "out of office" entries whatever their title.
func IsLeaveEvent(e *internal.Event) bool {
	return e.Type == internal.EventTypeOutOfOffice || IsLeave(e.Title)
}

// Extract builds the leave record of e found on cal. Leave that started
// before the window is dated on the window's first day.
func Extract(e *internal.Event, cal internal.Calendar, w internal.Window) internal.LeaveRecord {
	name, _, found := strings.Cut(e.Title, nameSeparator)
	name = strings.TrimSpace(name)
	if !found || name == "" {
		name = cal.LocalPart()
	}

	label := defaultLabel
	if r, ok := matchRule(e.Title); ok {
		label = r.Label()
	} else if e.Type == internal.EventTypeOutOfOffice {
		label = outOfOfficeLabel
	}

	date := e.Day()
	if first := internal.NewDateFromTime(w.Start); date.Before(first.Time) {
		date = first
	}
	return internal.LeaveRecord{
		PersonName: name,
		Type:       label,
		Date:       date,
	}
}

// Records returns the leave found among events overlapping w, keeping
// their order.
func Records(cal internal.Calendar, w internal.Window, events []*internal.Event) []internal.LeaveRecord {
	var recs []internal.LeaveRecord
	for _, e := range internal.During(events, w) {
		if IsLeaveEvent(e) {
			recs = append(recs, Extract(e, cal, w))
		}
	}
	return recs
}
