// Package content loads the portfolio's static sections from YAML.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/marquee"
)

//go:embed data/portfolio.yaml
var defaultDocument []byte

// CategoryAll selects every skill and the animated carousel.
const CategoryAll = "all"

var ErrUnknownCategory = errors.New("content: unknown skill category")

var skillCategories = map[string]bool{
	"language":  true,
	"framework": true,
	"database":  true,
	"tool":      true,
	"other":     true,
}

type Profile struct {
	Name         string `yaml:"name"`
	Headline     string `yaml:"headline"`
	Summary      string `yaml:"summary"`
	ContactURL   string `yaml:"contact_url"`
	ResponseNote string `yaml:"response_note"`
}

type Competency struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Journey is the biography block shown after the competencies.
type Journey struct {
	Title      string   `yaml:"title"`
	Image      string   `yaml:"image"`
	Paragraphs []string `yaml:"paragraphs"`
}

type Category struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type Skill struct {
	Name     string `yaml:"name"`
	Image    string `yaml:"image"`
	Category string `yaml:"category"`
}

type Project struct {
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	Image           string   `yaml:"image"`
	FullDescription string   `yaml:"full_description"`
	Technologies    []string `yaml:"technologies"`
	DemoURL         string   `yaml:"demo_url"`
	GithubURL       string   `yaml:"github_url"`
}

type Certification struct {
	Title           string   `yaml:"title"`
	Image           string   `yaml:"image"`
	Description     string   `yaml:"description"`
	FullDescription string   `yaml:"full_description"`
	Technologies    []string `yaml:"technologies"`
}

type Experience struct {
	Title           string   `yaml:"title"`
	Company         string   `yaml:"company"`
	Period          string   `yaml:"period"`
	Logo            string   `yaml:"logo"`
	Description     string   `yaml:"description"`
	FullDescription string   `yaml:"full_description"`
	Achievements    []string `yaml:"achievements"`
	Technologies    []string `yaml:"technologies"`
}

type Explore struct {
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	Image           string   `yaml:"image"`
	FullDescription string   `yaml:"full_description"`
	Topics          []string `yaml:"topics"`
	Difficulty      string   `yaml:"difficulty"`
}

// Portfolio is everything the page shows.
type Portfolio struct {
	Profile        Profile         `yaml:"profile"`
	Competencies   []Competency    `yaml:"competencies"`
	Journey        Journey         `yaml:"journey"`
	Categories     []Category      `yaml:"categories"`
	Skills         []Skill         `yaml:"skills"`
	Projects       []Project       `yaml:"projects"`
	Certifications []Certification `yaml:"certifications"`
	Experience     []Experience    `yaml:"experience"`
	Explore        []Explore       `yaml:"explore"`
}

// Default returns the embedded portfolio.
func Default() (*Portfolio, error) {
	return Parse(defaultDocument)
}

// Load reads a portfolio file, or the embedded one when path is empty.
func Load(path string) (*Portfolio, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks what the page and carousel depend on.
func (p *Portfolio) Validate() error {
	seen := make(map[string]bool, len(p.Skills))
	for i, s := range p.Skills {
		if s.Name == "" {
			return fmt.Errorf("content: skill %d has no name", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("content: duplicate skill %q", s.Name)
		}
		seen[s.Name] = true
		if !skillCategories[s.Category] {
			return fmt.Errorf("%w: %q on skill %q", ErrUnknownCategory, s.Category, s.Name)
		}
	}
	for _, c := range p.Categories {
		if c.ID != CategoryAll && !skillCategories[c.ID] {
			return fmt.Errorf("%w: %q in categories", ErrUnknownCategory, c.ID)
		}
	}
	for i, pr := range p.Projects {
		if pr.Title == "" {
			return fmt.Errorf("content: project %d has no title", i)
		}
	}
	for i, c := range p.Certifications {
		if c.Title == "" {
			return fmt.Errorf("content: certification %d has no title", i)
		}
	}
	for i, e := range p.Experience {
		if e.Title == "" {
			return fmt.Errorf("content: experience %d has no title", i)
		}
	}
	for i, e := range p.Explore {
		if e.Title == "" {
			return fmt.Errorf("content: explore item %d has no title", i)
		}
	}
	return nil
}

// FilterSkills returns the skills of one category, or all of them for "all".
func (p *Portfolio) FilterSkills(category string) ([]Skill, error) {
	if category == "" || category == CategoryAll {
		return p.Skills, nil
	}
	if !skillCategories[category] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	var out []Skill
	for _, s := range p.Skills {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out, nil
}

// MarqueeItems converts skills for the carousel, keeping their order.
func MarqueeItems(skills []Skill) []marquee.Item {
	items := make([]marquee.Item, len(skills))
	for i, s := range skills {
		items[i] = marquee.Item{Name: s.Name, Image: s.Image}
	}
	return items
}
