package main

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/Zachkp/portfolio/internal/contact"
)

func validMessage() contact.Message {
	return contact.Message{Name: "Ada Lovelace", Email: "ada@example.com", Body: "Hello there"}
}

func loginCookie(t *testing.T, s *testServer) string {
	t.Helper()
	w := s.postForm("/admin/login", url.Values{"username": {"admin"}, "password": {"admin123"}}, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("login = %d: %s", w.Code, w.Body)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "admin_token" {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("no admin_token cookie")
	return ""
}

func TestAdminLogin(t *testing.T) {
	s := newTestServer(t)

	w := s.postForm("/admin/login", url.Values{"username": {"admin"}, "password": {"nope"}}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad password = %d, want 401", w.Code)
	}

	w = s.do(http.MethodGet, "/admin/dashboard", "", nil)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/login" {
		t.Errorf("anonymous dashboard = %d %q", w.Code, w.Header().Get("Location"))
	}

	cookie := loginCookie(t, s)
	w = s.do(http.MethodGet, "/admin/dashboard", "", http.Header{"Cookie": {cookie}})
	if w.Code != http.StatusOK {
		t.Errorf("dashboard = %d", w.Code)
	}
}

func TestAdminStats(t *testing.T) {
	s := newTestServer(t)
	open := s.openCarousel(t)

	for _, name := range []string{"Golang", "Golang", "Docker"} {
		if w := s.postJSON("/carousel/"+open.ID+"/click", `{"name":"`+name+`"}`); w.Code != http.StatusOK {
			t.Fatalf("click %s = %d", name, w.Code)
		}
	}
	if _, err := saveMessage(s.app.db, validMessage()); err != nil {
		t.Fatal(err)
	}
	s.app.admin.trackVisitor("10.0.0.1", "test", "/")
	s.app.admin.trackVisitor("10.0.0.1", "test", "/")
	s.app.admin.trackVisitor("10.0.0.2", "test", "/")

	w := s.do(http.MethodGet, "/admin/api/stats", "", http.Header{"Cookie": {loginCookie(t, s)}})
	if w.Code != http.StatusOK {
		t.Fatalf("stats = %d: %s", w.Code, w.Body)
	}
	var stats AdminStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalSkillClicks != 3 {
		t.Errorf("TotalSkillClicks = %d, want 3", stats.TotalSkillClicks)
	}
	if len(stats.TopSkills) == 0 || stats.TopSkills[0].Name != "Golang" || stats.TopSkills[0].Clicks != 2 {
		t.Errorf("TopSkills = %+v", stats.TopSkills)
	}
	if stats.TotalMessages != 1 {
		t.Errorf("TotalMessages = %d, want 1", stats.TotalMessages)
	}
	if stats.TotalVisitors != 3 || stats.UniqueVisitors != 2 {
		t.Errorf("visitors = %d/%d, want 3/2", stats.TotalVisitors, stats.UniqueVisitors)
	}
	if stats.VisitorsToday != 3 {
		t.Errorf("VisitorsToday = %d, want 3", stats.VisitorsToday)
	}
	if stats.OpenCarousels != 1 {
		t.Errorf("OpenCarousels = %d, want 1", stats.OpenCarousels)
	}
	for _, v := range stats.RecentVisitors {
		if strings.Contains(v.HashedIP, "10.0.0") {
			t.Errorf("raw IP stored: %s", v.HashedIP)
		}
	}
}

func TestAdminDeleteMessage(t *testing.T) {
	s := newTestServer(t)
	id, err := saveMessage(s.app.db, validMessage())
	if err != nil {
		t.Fatal(err)
	}
	cookie := http.Header{"Cookie": {loginCookie(t, s)}}

	w := s.do(http.MethodGet, "/admin/messages", "", cookie)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "ada@example.com") {
		t.Fatalf("messages = %d: %s", w.Code, w.Body)
	}

	path := "/admin/messages/" + strconv.FormatInt(id, 10)
	if w := s.do(http.MethodDelete, path, "", cookie); w.Code != http.StatusOK {
		t.Errorf("delete = %d", w.Code)
	}
	if w := s.do(http.MethodDelete, path, "", cookie); w.Code != http.StatusNotFound {
		t.Errorf("second delete = %d, want 404", w.Code)
	}
	if w := s.do(http.MethodDelete, "/admin/messages/abc", "", cookie); w.Code != http.StatusBadRequest {
		t.Errorf("bad id = %d, want 400", w.Code)
	}
}

func TestVisitorTracking(t *testing.T) {
	s := newTestServer(t)
	a := s.app.admin

	if got := a.hashIP("10.0.0.1"); got != a.hashIP("10.0.0.1") || len(got) != 16 {
		t.Errorf("hashIP = %q", got)
	}
	if a.hashIP("10.0.0.1") == a.hashIP("10.0.0.2") {
		t.Error("different IPs share a hash")
	}
}
