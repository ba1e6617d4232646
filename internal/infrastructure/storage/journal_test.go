package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/uhaszYsz/mmomicro/internal/domain"
)

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

func TestJournal_RoundTrip(t *testing.T) {
	buf := nopCloser{new(bytes.Buffer)}
	started := time.UnixMilli(1_700_000_000_000)

	w, err := NewJournalWriter(buf, 42, started)
	if err != nil {
		t.Fatalf("NewJournalWriter: %v", err)
	}
	cmds := []domain.InternalCommand{
		{Action: domain.ActionMove, Token: "p1", Payload: json.RawMessage(`{"x":1,"y":2}`)},
		{Action: domain.ActionAttack, Token: "p2", Payload: json.RawMessage(`{"targetId":"mob_1"}`)},
	}
	for i, cmd := range cmds {
		errMsg := ""
		if i == 1 {
			errMsg = "Цель не найдена"
		}
		if err := w.Append(domain.NewJournalEntry(started, uint64(i+1), cmd, errMsg)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if w.Count() != 2 {
		t.Errorf("Count() = %d", w.Count())
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var got []domain.JournalEntry
	header, err := ReadJournal(bytes.NewReader(buf.Bytes()), func(e domain.JournalEntry) error {
		got = append(got, e)
		return nil
	})
	if err != nil {
		t.Fatalf("ReadJournal: %v", err)
	}
	if header.Seed != 42 || header.Timestamp != started.UnixMilli() {
		t.Errorf("header = %+v", header)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].Action != "MOVE" || got[0].Tick != 1 || string(got[0].Payload) != `{"x":1,"y":2}` {
		t.Errorf("entry 0 = %+v", got[0])
	}
	if got[1].Token != "p2" || got[1].Error != "Цель не найдена" {
		t.Errorf("entry 1 = %+v", got[1])
	}
}

func TestJournal_InvalidMagic(t *testing.T) {
	data := bytes.Repeat([]byte{0}, 24)
	if _, err := ReadJournal(bytes.NewReader(data), func(domain.JournalEntry) error { return nil }); err == nil {
		t.Error("expected error for invalid magic")
	}
}

func TestJournalService_OpenAndLoad(t *testing.T) {
	svc := NewJournalService(filepath.Join(t.TempDir(), "journal"))
	w, err := svc.Open(7, time.Now())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	entry := domain.JournalEntry{At: 1, Tick: 3, Token: "p1", Action: "CHAT"}
	if err := w.Append(entry); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(w.Path); err != nil {
		t.Fatalf("journal file: %v", err)
	}

	header, entries, err := svc.Load(w.Path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if header.Seed != 7 || len(entries) != 1 || entries[0].Action != "CHAT" {
		t.Errorf("Load() = %+v, %+v", header, entries)
	}
}
