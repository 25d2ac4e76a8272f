package theme

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/quasilyte/gdata/v2"
)

type memStore struct {
	p   Preference
	ok  bool
	err error
}

func (m *memStore) Load() (Preference, bool, error) { return m.p, m.ok, m.err }
func (m *memStore) Save(p Preference) error         { m.p, m.ok = p, true; return nil }

func TestInit(t *testing.T) {
	tests := []struct {
		name       string
		store      Store
		systemDark bool
		want       Preference
		wantErr    bool
	}{
		{"nil store", nil, false, Default, false},
		{"nothing saved, light system", &memStore{}, false, Default, false},
		{"nothing saved, dark system", &memStore{}, true, Preference{Mode: Dark, Color: Emerald}, false},
		{"saved wins over system", &memStore{p: Preference{Mode: Light, Color: Rose}, ok: true}, true, Preference{Mode: Light, Color: Rose}, false},
		{"saved without color", &memStore{p: Preference{Mode: Dark}, ok: true}, false, Preference{Mode: Dark, Color: Emerald}, false},
		{"garbage saved", &memStore{p: Preference{Mode: "sepia"}, ok: true}, false, Default, false},
		{"store error", &memStore{err: errors.New("boom")}, true, Preference{Mode: Dark, Color: Emerald}, true},
	}
	for _, tt := range tests {
		got, err := Init(tt.store, tt.systemDark)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: expected %+v, got %+v", tt.name, tt.want, got)
		}
	}
}

func TestModeToggle(t *testing.T) {
	if Light.Toggle() != Dark || Dark.Toggle() != Light {
		t.Fatal("toggle should swap light and dark")
	}
}

func TestParse(t *testing.T) {
	if _, err := ParseMode("dark"); err != nil {
		t.Error(err)
	}
	if _, err := ParseMode("dim"); err == nil {
		t.Error("expected an error for an unknown mode")
	}
	if c, err := ParseColor("amber"); err != nil || c != Amber {
		t.Errorf("expected amber, got %q (%v)", c, err)
	}
	if _, err := ParseColor("teal"); err == nil {
		t.Error("expected an error for an unknown color")
	}
}

func TestPalette(t *testing.T) {
	p := Blue.Palette()
	if !strings.Contains(p.Primary, "text-blue-800") || p.Terminal != "33" {
		t.Fatalf("unexpected palette %+v", p)
	}
	if Color("teal").Palette() != Emerald.Palette() {
		t.Fatal("unknown colors should fall back to emerald")
	}
}

func TestCookieStore(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	c.Request = httptest.NewRequest("POST", "/theme", nil)

	s := NewCookieStore(c)
	if _, ok, err := s.Load(); ok || err != nil {
		t.Fatalf("expected nothing saved, got ok=%v err=%v", ok, err)
	}
	if err := s.Save(Preference{Mode: Dark, Color: Purple}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(Preference{Mode: "dim"}); err == nil {
		t.Fatal("expected an invalid preference to be rejected")
	}

	cookie := rr.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "theme=dark%3Apurple") {
		t.Fatalf("unexpected cookie %q", cookie)
	}

	rr2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(rr2)
	c2.Request = httptest.NewRequest("GET", "/", nil)
	c2.Request.AddCookie(&http.Cookie{Name: "theme", Value: "dark:purple"})

	p, err := Init(NewCookieStore(c2), false)
	if err != nil {
		t.Fatal(err)
	}
	if p != (Preference{Mode: Dark, Color: Purple}) {
		t.Fatalf("unexpected preference %+v", p)
	}
}

func TestGdataStoreRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", originalHome)

	m, err := gdata.Open(gdata.Config{AppName: "portfolio_theme_test"})
	if err != nil {
		t.Fatalf("open gdata: %v", err)
	}
	s := NewGdataStore(m)

	if _, ok, err := s.Load(); ok || err != nil {
		t.Fatalf("expected an empty store, got ok=%v err=%v", ok, err)
	}
	if err := s.Save(Preference{Mode: Dark, Color: Amber}); err != nil {
		t.Fatalf("save: %v", err)
	}
	p, err := Init(s, false)
	if err != nil {
		t.Fatal(err)
	}
	if p != (Preference{Mode: Dark, Color: Amber}) {
		t.Fatalf("unexpected preference %+v", p)
	}
}

func TestGdataStoreNilManager(t *testing.T) {
	s := NewGdataStore(nil)
	if err := s.Save(Default); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Load(); ok {
		t.Fatal("a nil manager never has anything saved")
	}
}
