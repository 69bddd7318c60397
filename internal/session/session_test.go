package session

import (
	"sync"
	"testing"

	"github.com/AmirMakir/speechbot/internal/i18n"
)

func TestStartAwaitsLanguage(t *testing.T) {
	m := NewManager(i18n.EN)
	s := m.Start(42)
	if s.State != AwaitingLanguage {
		t.Fatalf("expected AwaitingLanguage, got %v", s.State)
	}
	if s.Lang != i18n.EN {
		t.Fatalf("expected default language en, got %s", s.Lang)
	}
}

func TestSetLanguageTransitionsToReady(t *testing.T) {
	m := NewManager(i18n.EN)
	m.Start(1)
	if !m.SetLanguage(1, "ru") {
		t.Fatal("expected ru to be accepted")
	}
	s := m.Get(1)
	if s == nil || s.State != Ready || s.Lang != i18n.RU {
		t.Fatalf("expected ready ru session, got %+v", s)
	}
}

func TestUnknownLanguageIgnored(t *testing.T) {
	m := NewManager(i18n.EN)
	m.Start(1)
	if m.SetLanguage(1, "de") {
		t.Fatal("expected de to be rejected")
	}
	if s := m.Get(1); s.State != AwaitingLanguage {
		t.Fatalf("state must not change on unknown code, got %v", s.State)
	}
}

func TestLanguageIsPerChat(t *testing.T) {
	m := NewManager(i18n.EN)
	m.SetLanguage(1, "ru")
	m.SetLanguage(2, "en")
	if m.Language(1) != i18n.RU {
		t.Fatal("chat 1 should be ru")
	}
	if m.Language(2) != i18n.EN {
		t.Fatal("chat 2 should be en")
	}
	if m.Language(3) != i18n.EN {
		t.Fatal("unknown chat should default to en")
	}
}

func TestRestartKeepsLanguage(t *testing.T) {
	m := NewManager(i18n.EN)
	m.SetLanguage(1, "ru")
	s := m.Start(1)
	if s.Lang != i18n.RU {
		t.Fatalf("expected previously selected language kept, got %s", s.Lang)
	}
	if s.State != AwaitingLanguage {
		t.Fatalf("expected AwaitingLanguage after restart, got %v", s.State)
	}
}

func TestConcurrentAccess(t *testing.T) {
	m := NewManager(i18n.EN)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			m.Start(id)
			m.SetLanguage(id, "ru")
			_ = m.Language(id)
		}(int64(i))
	}
	wg.Wait()
	if m.Language(25) != i18n.RU {
		t.Fatal("expected ru after concurrent updates")
	}
}
