package audit

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileLoggerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.cbor")

	l, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	events := []Event{
		{Timestamp: time.Now().UTC(), Code: SystemRestarted},
		{Timestamp: time.Now().UTC(), Code: UserLoggedIn, User: "admin", SessionID: "s-1"},
		{Timestamp: time.Now().UTC(), Code: ControllerWrite, Detail: "reg 0x4D"},
	}
	for _, ev := range events {
		l.Log(ev)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	got, err := ReadEvents(f)
	if err != nil {
		t.Fatalf("ReadEvents failed: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("decoded %d events, want %d", len(got), len(events))
	}
	for i := range events {
		if got[i].Code != events[i].Code || got[i].User != events[i].User {
			t.Errorf("event %d = %+v, want %+v", i, got[i], events[i])
		}
	}
}

func TestFileLoggerLogAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.cbor")
	l, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	l.Log(Event{Code: UserLoggedOut}) // must not panic
	if err := l.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}

func TestRingEviction(t *testing.T) {
	r := NewRing(3)
	for i := 0; i < 5; i++ {
		r.Log(Event{Detail: string(rune('a' + i))})
	}
	got := r.Events()
	if len(got) != 3 {
		t.Fatalf("Len = %d, want 3", len(got))
	}
	if got[0].Detail != "c" || got[2].Detail != "e" {
		t.Errorf("ring kept %q..%q, want c..e", got[0].Detail, got[2].Detail)
	}

	r.Clear()
	if r.Len() != 0 {
		t.Errorf("Len after Clear = %d", r.Len())
	}
}

func TestFilterMask(t *testing.T) {
	ring := NewRing(10)
	f := NewFilter(ring)

	if !f.Enabled(UserLoggedIn) {
		t.Fatal("codes should start enabled")
	}

	f.SetEnabled(UserLoggedIn, false)
	f.Log(Event{Code: UserLoggedIn})
	f.Log(Event{Code: UserLoggedOut})

	if ring.Len() != 1 {
		t.Fatalf("ring has %d events, want 1", ring.Len())
	}
	if ring.Events()[0].Code != UserLoggedOut {
		t.Errorf("recorded %v, want UserLoggedOut", ring.Events()[0].Code)
	}
}

func TestCodeStrings(t *testing.T) {
	for _, c := range Codes() {
		if c.String() == "Unknown Event" {
			t.Errorf("code %d has no name", c)
		}
	}
}
