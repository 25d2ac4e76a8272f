package content

import (
	"errors"
	"fmt"
)

// Kind tags what a detail view is showing.
type Kind string

const (
	KindPortfolio  Kind = "portfolio"
	KindExperience Kind = "experience"
	KindExplore    Kind = "explore"
)

var ErrUnknownKind = errors.New("content: unknown detail kind")

// Selection is the item opened in the detail view. Exactly one of Project,
// Experience and Explore is set, and Kind says which.
type Selection struct {
	Kind       Kind
	Project    *Project
	Experience *Experience
	Explore    *Explore
}

// Title of the selected item.
func (s Selection) Title() string {
	switch s.Kind {
	case KindPortfolio:
		return s.Project.Title
	case KindExperience:
		return s.Experience.Title
	case KindExplore:
		return s.Explore.Title
	}
	return ""
}

// Image is the header image of the detail view.
func (s Selection) Image() string {
	switch s.Kind {
	case KindPortfolio:
		return s.Project.Image
	case KindExperience:
		return s.Experience.Logo
	case KindExplore:
		return s.Explore.Image
	}
	return ""
}

func (s Selection) FullDescription() string {
	switch s.Kind {
	case KindPortfolio:
		return s.Project.FullDescription
	case KindExperience:
		return s.Experience.FullDescription
	case KindExplore:
		return s.Explore.FullDescription
	}
	return ""
}

// Select resolves a detail route. source is one of project, certification,
// experience or explore; certifications open as portfolio entries.
func (p *Portfolio) Select(source string, index int) (Selection, error) {
	outOfRange := func(n int) error {
		return fmt.Errorf("content: %s index %d out of range [0,%d)", source, index, n)
	}
	switch source {
	case "project", string(KindPortfolio):
		if index < 0 || index >= len(p.Projects) {
			return Selection{}, outOfRange(len(p.Projects))
		}
		pr := p.Projects[index]
		return Selection{Kind: KindPortfolio, Project: &pr}, nil
	case "certification":
		if index < 0 || index >= len(p.Certifications) {
			return Selection{}, outOfRange(len(p.Certifications))
		}
		pr := p.Certifications[index].AsProject()
		return Selection{Kind: KindPortfolio, Project: &pr}, nil
	case "experience":
		if index < 0 || index >= len(p.Experience) {
			return Selection{}, outOfRange(len(p.Experience))
		}
		e := p.Experience[index]
		return Selection{Kind: KindExperience, Experience: &e}, nil
	case "explore":
		if index < 0 || index >= len(p.Explore) {
			return Selection{}, outOfRange(len(p.Explore))
		}
		e := p.Explore[index]
		return Selection{Kind: KindExplore, Explore: &e}, nil
	}
	return Selection{}, fmt.Errorf("%w: %q", ErrUnknownKind, source)
}

// AsProject is how a certification shows up in the detail view.
func (c Certification) AsProject() Project {
	full := c.FullDescription
	if full == "" {
		full = fmt.Sprintf("This is my %s that demonstrates my expertise and commitment to professional growth.", c.Title)
	}
	return Project{
		Title:           c.Title,
		Description:     c.Description,
		Image:           c.Image,
		FullDescription: full,
		Technologies:    c.Technologies,
	}
}
