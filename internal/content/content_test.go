package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultLoads(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatalf("default content: %v", err)
	}
	if len(p.Skills) == 0 || len(p.Projects) == 0 || len(p.Experience) == 0 || len(p.Explore) == 0 {
		t.Fatalf("default content is missing sections: %+v", p)
	}
	if p.Categories[0].ID != CategoryAll {
		t.Errorf("expected the first category to be %q, got %q", CategoryAll, p.Categories[0].ID)
	}
	if p.Journey.Title == "" || len(p.Journey.Paragraphs) == 0 {
		t.Errorf("default content has no journey: %+v", p.Journey)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	doc := `
profile:
  name: Test
skills:
  - {name: Go, image: /go.png, category: language}
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Profile.Name != "Test" || len(p.Skills) != 1 {
		t.Fatalf("unexpected portfolio: %+v", p)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestParseRejectsBadContent(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"duplicate skill", "skills:\n  - {name: Go, category: language}\n  - {name: Go, category: tool}\n", "duplicate skill"},
		{"bad category", "skills:\n  - {name: Go, category: snack}\n", "unknown skill category"},
		{"nameless skill", "skills:\n  - {category: tool}\n", "no name"},
		{"untitled project", "projects:\n  - {description: x}\n", "no title"},
		{"bad yaml", "skills: [", "parse content"},
	}
	for _, tt := range tests {
		_, err := Parse([]byte(tt.doc))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: expected error containing %q, got %v", tt.name, tt.want, err)
		}
	}
}

func TestFilterSkills(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	all, err := p.FilterSkills(CategoryAll)
	if err != nil || len(all) != len(p.Skills) {
		t.Fatalf("all: got %d skills, err %v", len(all), err)
	}

	dbs, err := p.FilterSkills("database")
	if err != nil {
		t.Fatal(err)
	}
	if len(dbs) != 4 {
		t.Fatalf("expected 4 databases, got %d", len(dbs))
	}
	for _, s := range dbs {
		if s.Category != "database" {
			t.Errorf("%s is not a database", s.Name)
		}
	}

	other, err := p.FilterSkills("other")
	if err != nil || len(other) != 0 {
		t.Fatalf("other: expected none, got %v (%v)", other, err)
	}

	if _, err := p.FilterSkills("snacks"); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestMarqueeItemsKeepsOrder(t *testing.T) {
	items := MarqueeItems([]Skill{{Name: "A", Image: "/a"}, {Name: "B", Image: "/b"}})
	if len(items) != 2 || items[0].Name != "A" || items[1].Image != "/b" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestSelect(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		source string
		index  int
		kind   Kind
		title  string
	}{
		{"project", 0, KindPortfolio, p.Projects[0].Title},
		{"portfolio", 1, KindPortfolio, p.Projects[1].Title},
		{"certification", 0, KindPortfolio, p.Certifications[0].Title},
		{"experience", 1, KindExperience, p.Experience[1].Title},
		{"explore", 2, KindExplore, p.Explore[2].Title},
	}
	for _, tt := range tests {
		sel, err := p.Select(tt.source, tt.index)
		if err != nil {
			t.Fatalf("%s/%d: %v", tt.source, tt.index, err)
		}
		if sel.Kind != tt.kind {
			t.Errorf("%s/%d: expected kind %s, got %s", tt.source, tt.index, tt.kind, sel.Kind)
		}
		if sel.Title() != tt.title {
			t.Errorf("%s/%d: expected title %q, got %q", tt.source, tt.index, tt.title, sel.Title())
		}
		if sel.Image() == "" || sel.FullDescription() == "" {
			t.Errorf("%s/%d: missing image or description", tt.source, tt.index)
		}
	}

	if _, err := p.Select("project", len(p.Projects)); err == nil {
		t.Error("expected an out of range error")
	}
	if _, err := p.Select("experience", -1); err == nil {
		t.Error("expected an out of range error for a negative index")
	}
	if _, err := p.Select("blog", 0); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestCertificationAsProjectFillsDescription(t *testing.T) {
	pr := Certification{Title: "BDD Certificate"}.AsProject()
	if !strings.Contains(pr.FullDescription, "BDD Certificate") {
		t.Fatalf("expected a generated description, got %q", pr.FullDescription)
	}
}
