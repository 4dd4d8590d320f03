// Package calendar pulls availability from external iCal feeds.
package calendar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"islandloaf/pkg/ai"
	"islandloaf/pkg/domain"
)

// Event is one VEVENT read from a feed.
type Event struct {
	UID         string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Status      domain.CalendarEventStatus
}

var ErrNoCalendar = errors.New("feed is not an iCalendar document")

// Parse reads VEVENT blocks from an iCalendar stream. Events without a
// start are skipped; a missing end defaults to one day after start for
// all-day events and to start otherwise.
func Parse(r io.Reader) ([]Event, error) {
	lines, err := unfold(r)
	if err != nil {
		return nil, err
	}
	var (
		events  []Event
		cur     *Event
		seenCal bool
		allDay  bool
	)
	for _, line := range lines {
		name, params, value := splitProperty(line)
		switch {
		case name == "BEGIN" && value == "VCALENDAR":
			seenCal = true
		case name == "BEGIN" && value == "VEVENT":
			cur = &Event{}
			allDay = false
		case name == "END" && value == "VEVENT":
			if cur != nil && !cur.Start.IsZero() {
				if cur.End.IsZero() {
					cur.End = cur.Start
					if allDay {
						cur.End = cur.Start.AddDate(0, 0, 1)
					}
				}
				cur.Status = classify(cur.Summary)
				events = append(events, *cur)
			}
			cur = nil
		case cur == nil:
			continue
		case name == "UID":
			cur.UID = value
		case name == "SUMMARY":
			cur.Summary = unescapeText(value)
		case name == "DESCRIPTION":
			cur.Description = ai.PlainText(unescapeText(value))
		case name == "DTSTART":
			t, isDate, err := parseTime(value, params)
			if err != nil {
				return nil, fmt.Errorf("event %q: DTSTART: %w", cur.UID, err)
			}
			cur.Start, allDay = t, isDate
		case name == "DTEND":
			t, _, err := parseTime(value, params)
			if err != nil {
				return nil, fmt.Errorf("event %q: DTEND: %w", cur.UID, err)
			}
			cur.End = t
		}
	}
	if !seenCal {
		return nil, ErrNoCalendar
	}
	return events, nil
}

// unfold joins continuation lines (leading space or tab).
func unfold(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	var out []string
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		if (line[0] == ' ' || line[0] == '\t') && len(out) > 0 {
			out[len(out)-1] += line[1:]
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	return out, nil
}

// splitProperty splits "NAME;P1=a;P2=b:value".
func splitProperty(line string) (name string, params map[string]string, value string) {
	head, value, ok := strings.Cut(line, ":")
	if !ok {
		return strings.ToUpper(line), nil, ""
	}
	parts := strings.Split(head, ";")
	name = strings.ToUpper(strings.TrimSpace(parts[0]))
	if len(parts) > 1 {
		params = make(map[string]string, len(parts)-1)
		for _, p := range parts[1:] {
			k, v, _ := strings.Cut(p, "=")
			params[strings.ToUpper(k)] = strings.Trim(v, `"`)
		}
	}
	return name, params, strings.TrimSpace(value)
}

func parseTime(value string, params map[string]string) (time.Time, bool, error) {
	if params["VALUE"] == "DATE" || len(value) == len("20060102") {
		t, err := time.ParseInLocation("20060102", value, time.UTC)
		return t, true, err
	}
	if strings.HasSuffix(value, "Z") {
		t, err := time.Parse("20060102T150405Z", value)
		return t.UTC(), false, err
	}
	loc := time.UTC
	if tzid := params["TZID"]; tzid != "" {
		if l, err := time.LoadLocation(tzid); err == nil {
			loc = l
		}
	}
	t, err := time.ParseInLocation("20060102T150405", value, loc)
	return t.UTC(), false, err
}

// classify maps channel-manager summaries onto booked or blocked.
func classify(summary string) domain.CalendarEventStatus {
	s := strings.ToLower(summary)
	for _, marker := range []string{"not available", "blocked", "unavailable", "closed"} {
		if strings.Contains(s, marker) {
			return domain.EventBlocked
		}
	}
	return domain.EventBooked
}

func unescapeText(s string) string {
	return strings.NewReplacer(`\n`, "\n", `\N`, "\n", `\,`, ",", `\;`, ";", `\\`, `\`).Replace(s)
}
