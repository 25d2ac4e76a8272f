package main

import (
	"errors"
	"io"
	"log"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/carousel"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/marquee"
	"github.com/Zachkp/portfolio/internal/theme"
)

// stripTile is one logo in the rendered carousel. Copy is 0 or 1 so keys stay
// unique across the doubled strip.
type stripTile struct {
	marquee.Item
	Copy int
}

func doubledTiles(skills []content.Skill) []stripTile {
	items := content.MarqueeItems(skills)
	tiles := make([]stripTile, 0, 2*len(items))
	for i, it := range marquee.Double(items) {
		tiles = append(tiles, stripTile{Item: it, Copy: i / max(len(items), 1)})
	}
	return tiles
}

// themeFor reads the visitor's theme once per request.
func themeFor(c *gin.Context) theme.Preference {
	systemDark := c.GetHeader("Sec-CH-Prefers-Color-Scheme") == "dark"
	pref, err := theme.Init(theme.NewCookieStore(c), systemDark)
	if err != nil {
		log.Printf("theme: %v", err)
	}
	return pref
}

func (a *app) pageData(c *gin.Context) gin.H {
	pref := themeFor(c)
	contentWidth := a.hub.Layout().StripWidth(len(a.portfolio.Skills))
	return gin.H{
		"profile":        a.portfolio.Profile,
		"competencies":   a.portfolio.Competencies,
		"journey":        a.portfolio.Journey,
		"categories":     a.portfolio.Categories,
		"category":       content.CategoryAll,
		"tiles":          doubledTiles(a.portfolio.Skills),
		"contentWidth":   contentWidth,
		"stripWidth":     2 * contentWidth,
		"projects":       a.portfolio.Projects,
		"certifications": a.portfolio.Certifications,
		"experience":     a.portfolio.Experience,
		"explore":        a.portfolio.Explore,
		"sections":       Sections,
		"skillsTitle":    SkillsTitle,
		"skillsHint":     SkillsHint,
		"contactTitle":   ContactTitle,
		"contactIntro":   ContactIntro,
		"theme":          pref,
		"palette":        pref.Color.Palette(),
		"colors":         theme.Colors,
	}
}

func (a *app) home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", a.pageData(c))
}

func (a *app) section(c *gin.Context) {
	name := c.Param("name")
	if !slices.Contains(Sections, name) {
		c.String(http.StatusNotFound, "unknown section")
		return
	}
	c.HTML(http.StatusOK, "section-"+name, a.pageData(c))
}

func (a *app) detail(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid index")
		return
	}
	sel, err := a.portfolio.Select(c.Param("source"), index)
	if err != nil {
		c.String(http.StatusNotFound, err.Error())
		return
	}
	pref := themeFor(c)
	c.HTML(http.StatusOK, "detail.html", gin.H{
		"item":    sel,
		"palette": pref.Color.Palette(),
	})
}

// setTheme takes mode/color form values; an empty mode toggles.
func (a *app) setTheme(c *gin.Context) {
	pref := themeFor(c)
	if m := c.PostForm("mode"); m != "" {
		mode, err := theme.ParseMode(m)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		pref.Mode = mode
	} else {
		pref.Mode = pref.Mode.Toggle()
	}
	if col := c.PostForm("color"); col != "" {
		color, err := theme.ParseColor(col)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		pref.Color = color
	}
	if err := theme.NewCookieStore(c).Save(pref); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("HX-Refresh", "true")
	c.JSON(http.StatusOK, gin.H{"mode": pref.Mode, "color": pref.Color})
}

// skills swaps between the carousel and the category grid. Leaving the
// carousel closes its session; coming back opens a fresh one from the page.
func (a *app) skills(c *gin.Context) {
	category := c.DefaultQuery("category", content.CategoryAll)
	skills, err := a.portfolio.FilterSkills(category)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	data := a.pageData(c)
	data["category"] = category
	if category == content.CategoryAll {
		c.HTML(http.StatusOK, "skills-carousel", data)
		return
	}

	if id := c.Query("session"); id != "" {
		a.hub.Close(id)
	}
	data["skills"] = skills
	c.HTML(http.StatusOK, "skills-grid", data)
}

func (a *app) openCarousel(c *gin.Context) {
	s, err := a.hub.Open(content.MarqueeItems(a.portfolio.Skills))
	if err != nil {
		log.Printf("carousel: open: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start carousel"})
		return
	}
	snap := s.Snapshot()
	c.JSON(http.StatusCreated, gin.H{
		"id":     s.ID,
		"top":    snap.Top,
		"bottom": snap.Bottom,
	})
}

func (a *app) session(c *gin.Context) (*carousel.Session, bool) {
	s, err := a.hub.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown carousel"})
		return nil, false
	}
	return s, true
}

// streamCarousel mounts the session's engine and sends both rows' offsets
// until the browser goes away. The last stream to leave unmounts it.
func (a *app) streamCarousel(c *gin.Context) {
	s, release, err := a.hub.Attach(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown carousel"})
		return
	}
	defer release()

	ticker := time.NewTicker(time.Second / time.Duration(a.cfg.Marquee.StreamFPS))
	defer ticker.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("offsets", s.Snapshot())

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			if !s.Mounted() {
				return false
			}
			c.SSEvent("offsets", s.Snapshot())
			return true
		}
	})
}

type hoverRequest struct {
	Row    string `form:"row" json:"row" binding:"required"`
	Paused bool   `form:"paused" json:"paused"`
}

func (a *app) hoverCarousel(c *gin.Context) {
	s, ok := a.session(c)
	if !ok {
		return
	}
	var req hoverRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dir, err := marquee.ParseDirection(req.Row)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.Hover(dir, req.Paused)
	c.JSON(http.StatusOK, s.Snapshot())
}

type clickRequest struct {
	Name string `form:"name" json:"name" binding:"required"`
}

func (a *app) clickCarousel(c *gin.Context) {
	s, ok := a.session(c)
	if !ok {
		return
	}
	var req clickRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.Click(req.Name); err != nil {
		if errors.Is(err, carousel.ErrUnknownItem) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

func (a *app) closeCarousel(c *gin.Context) {
	a.hub.Close(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// Handle contact form submission with HTMX
func (a *app) submitContact(c *gin.Context) {
	m := contact.Message{
		Name:  c.PostForm("fullName"),
		Email: c.PostForm("email"),
		Body:  c.PostForm("message"),
	}
	if err := m.Validate(); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": ContactInvalid,
		})
		return
	}

	id, err := saveMessage(a.db, m)
	if err != nil {
		log.Printf("Error saving contact message: %v", err)
	}

	if err := a.sender.Send(m); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": ContactFailure,
		})
		return
	}
	if id > 0 {
		if err := markDelivered(a.db, id); err != nil {
			log.Printf("Error marking message %d delivered: %v", id, err)
		}
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": ContactSuccess,
	})
}
