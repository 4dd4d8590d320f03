package calendar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"islandloaf/pkg/domain"
)

const feed = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:abc-1@airbnb.com\r\n" +
	"DTSTART;VALUE=DATE:20260301\r\n" +
	"DTEND;VALUE=DATE:20260304\r\n" +
	"SUMMARY:Reserved\r\n" +
	"DESCRIPTION:Guest <b>Ann</b>\\, two\r\n" +
	"  nights\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:abc-2@airbnb.com\r\n" +
	"DTSTART:20260310T140000Z\r\n" +
	"DTEND:20260310T160000Z\r\n" +
	"SUMMARY:Airbnb (Not available)\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:no-start\r\n" +
	"SUMMARY:Broken\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:one-day\r\n" +
	"DTSTART;VALUE=DATE:20260320\r\n" +
	"SUMMARY:Reserved\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestParse(t *testing.T) {
	events, err := Parse(strings.NewReader(feed))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d: %+v", len(events), events)
	}

	first := events[0]
	if first.UID != "abc-1@airbnb.com" || first.Status != domain.EventBooked {
		t.Fatalf("unexpected first event: %+v", first)
	}
	if !first.Start.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) || !first.End.Equal(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected dates: %v - %v", first.Start, first.End)
	}
	if first.Description != "Guest Ann, two nights" {
		t.Fatalf("unexpected description %q", first.Description)
	}

	if events[1].Status != domain.EventBlocked {
		t.Fatalf("expected blocked status, got %s", events[1].Status)
	}
	if !events[1].Start.Equal(time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected utc start: %v", events[1].Start)
	}

	if !events[2].End.Equal(time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected all-day event to default to one day, got %v", events[2].End)
	}
}

func TestParseRejectsNonCalendar(t *testing.T) {
	if _, err := Parse(strings.NewReader("<html></html>")); !errors.Is(err, ErrNoCalendar) {
		t.Fatalf("expected ErrNoCalendar, got %v", err)
	}
}

func TestParseRejectsBadDate(t *testing.T) {
	bad := "BEGIN:VCALENDAR\nBEGIN:VEVENT\nUID:x\nDTSTART:2026-03-01\nEND:VEVENT\nEND:VCALENDAR\n"
	if _, err := Parse(strings.NewReader(bad)); err == nil {
		t.Fatalf("expected bad date error")
	}
}

func TestFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/calendar")
		_, _ = w.Write([]byte(feed))
	}))
	defer srv.Close()

	events, err := NewFetcher(time.Second).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if _, err := NewFetcher(time.Second).Fetch(context.Background(), "file:///etc/passwd"); err == nil {
		t.Fatalf("expected non-http url to be rejected")
	}
}
