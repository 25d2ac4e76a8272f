package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/carousel"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/marquee"
)

// app is everything the handlers share.
type app struct {
	cfg       *config.Config
	db        *sql.DB
	portfolio *content.Portfolio
	hub       *carousel.Hub
	sender    contact.Sender
	admin     *admin
}

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.toml", "path to the TOML config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	portfolio, err := content.Load(cfg.Content.Path)
	if err != nil {
		log.Fatalf("content: %v", err)
	}

	db, err := openDB(cfg.Database.Path)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	frames := marquee.NewTickerScheduler(cfg.Marquee.FPS)
	defer frames.Close()

	a := newApp(cfg, db, portfolio, frames, marquee.RealClock,
		contact.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.To))

	// Clean up old visitor data for privacy compliance
	go a.admin.cleanupOldVisitorData()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           a.router(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-done
	log.Println("shutdown signal received")

	// Unmount every carousel first so open streams end.
	a.hub.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = srv.Close()
	}
	log.Println("server stopped")
}

func newApp(cfg *config.Config, db *sql.DB, portfolio *content.Portfolio, frames marquee.Scheduler, clock marquee.Clock, sender contact.Sender) *app {
	a := &app{
		cfg:       cfg,
		db:        db,
		portfolio: portfolio,
		sender:    sender,
		hub: carousel.NewHub(carousel.Options{
			Speed:         cfg.Marquee.Speed,
			ClickPause:    cfg.Marquee.ClickPause(),
			AttachTimeout: cfg.Marquee.AttachTimeout(),
			Layout:        carousel.Layout{ItemWidth: cfg.Marquee.ItemWidth, ItemGap: cfg.Marquee.ItemGap},
			Scheduler:     frames,
			Clock:         clock,
			Recorder:      clickStore{db: db},
		}),
	}
	a.admin = newAdmin(db, cfg.Admin.Username, cfg.Admin.Password, a.hub.Len)
	return a
}

func (a *app) router() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(mustTemplates())

	r.Use(a.admin.visitorTrackingMiddleware())

	r.StaticFS("/static", staticFS())
	r.Static("/images", a.cfg.Server.ImagesDir)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "carousels": a.hub.Len()})
	})

	// Home page route
	r.GET("/", a.home)
	r.GET("/sections/:name", a.section)
	r.GET("/detail/:source/:index", a.detail)
	r.POST("/theme", a.setTheme)

	// Skills: carousel for "all", a static grid for one category
	r.GET("/skills", a.skills)

	// Carousel sessions: open, stream, hover, click, close
	r.POST("/carousel", a.openCarousel)
	r.GET("/carousel/:id/stream", a.streamCarousel)
	r.POST("/carousel/:id/hover", a.hoverCarousel)
	r.POST("/carousel/:id/click", a.clickCarousel)
	r.DELETE("/carousel/:id", a.closeCarousel)

	// HTMX contact form endpoint - returns just the form HTML
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": ContactTitle,
			"intro": ContactIntro,
		})
	})
	r.POST("/contact", a.submitContact)

	a.admin.setupRoutes(r)
	return r
}
