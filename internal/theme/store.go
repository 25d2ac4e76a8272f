package theme

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	cookieName  = "theme"
	cookieAge   = 3600 * 24 * 365
	gdataObject = "theme"
	gdataProp   = "preference"
)

// CookieStore keeps the preference in a cookie on the visitor's browser.
type CookieStore struct {
	c *gin.Context
}

func NewCookieStore(c *gin.Context) *CookieStore {
	return &CookieStore{c: c}
}

// The cookie value is "<mode>:<color>".
func (s *CookieStore) Load() (Preference, bool, error) {
	v, err := s.c.Cookie(cookieName)
	if errors.Is(err, http.ErrNoCookie) || (err == nil && v == "") {
		return Preference{}, false, nil
	}
	if err != nil {
		return Preference{}, false, err
	}
	mode, color, _ := strings.Cut(v, ":")
	return Preference{Mode: Mode(mode), Color: Color(color)}, true, nil
}

func (s *CookieStore) Save(p Preference) error {
	if !p.Valid() {
		return fmt.Errorf("theme: invalid preference %+v", p)
	}
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(cookieName, string(p.Mode)+":"+string(p.Color), cookieAge, "/", "", false, true)
	return nil
}

// GdataStore keeps the preference in the user's data directory, for the
// terminal preview. A nil manager keeps nothing.
type GdataStore struct {
	m *gdata.Manager
}

func NewGdataStore(m *gdata.Manager) *GdataStore {
	return &GdataStore{m: m}
}

// OpenGdataStore opens the app's data directory.
func OpenGdataStore(appName string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("theme: open data dir: %w", err)
	}
	return NewGdataStore(m), nil
}

func (s *GdataStore) Load() (Preference, bool, error) {
	if s.m == nil || !s.m.ObjectPropExists(gdataObject, gdataProp) {
		return Preference{}, false, nil
	}
	data, err := s.m.LoadObjectProp(gdataObject, gdataProp)
	if err != nil {
		return Preference{}, false, err
	}
	var p Preference
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preference{}, false, fmt.Errorf("theme: decode preference: %w", err)
	}
	return p, true, nil
}

func (s *GdataStore) Save(p Preference) error {
	if s.m == nil {
		return nil
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return s.m.SaveObjectProp(gdataObject, gdataProp, data)
}
