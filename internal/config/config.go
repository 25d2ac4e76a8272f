package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultPort         = "8080"
	DefaultDatabasePath = "portfolio.db"
	DefaultFPS          = 60
	DefaultStreamFPS    = 30
	DefaultSpeed        = 0.03
	DefaultClickPauseMS = 1500
	DefaultAttachMS     = 10000
	DefaultItemWidth    = 80
	DefaultItemGap      = 16
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Marquee  MarqueeConfig  `toml:"marquee"`
	Content  ContentConfig  `toml:"content"`
	SMTP     SMTPConfig     `toml:"smtp"`
	Admin    AdminConfig    `toml:"admin"`
}

type ServerConfig struct {
	Port      string `toml:"port"`
	ImagesDir string `toml:"images_dir"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type MarqueeConfig struct {
	// Speed in pixels per millisecond.
	Speed        float64 `toml:"speed"`
	FPS          int     `toml:"fps"`
	StreamFPS    int     `toml:"stream_fps"`
	ClickPauseMS int     `toml:"click_pause_ms"`
	ItemWidth    float64 `toml:"item_width"`
	ItemGap      float64 `toml:"item_gap"`
	// AttachMS is how long an opened carousel waits for its stream.
	AttachMS int `toml:"attach_ms"`
}

// ClickPause as a duration.
func (m MarqueeConfig) ClickPause() time.Duration {
	return time.Duration(m.ClickPauseMS) * time.Millisecond
}

// AttachTimeout as a duration.
func (m MarqueeConfig) AttachTimeout() time.Duration {
	return time.Duration(m.AttachMS) * time.Millisecond
}

type ContentConfig struct {
	// Path to a portfolio YAML file; the embedded one when empty.
	Path string `toml:"path"`
}

type SMTPConfig struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	To       string `toml:"to"`
}

type AdminConfig struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      DefaultPort,
			ImagesDir: "./images",
		},
		Database: DatabaseConfig{Path: DefaultDatabasePath},
		Marquee: MarqueeConfig{
			Speed:        DefaultSpeed,
			FPS:          DefaultFPS,
			StreamFPS:    DefaultStreamFPS,
			ClickPauseMS: DefaultClickPauseMS,
			ItemWidth:    DefaultItemWidth,
			ItemGap:      DefaultItemGap,
			AttachMS:     DefaultAttachMS,
		},
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: "587",
		},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Server.Port, "PORT")
	set(&c.Database.Path, "DATABASE_PATH")
	set(&c.Content.Path, "CONTENT_PATH")
	set(&c.SMTP.Host, "SMTP_HOST")
	set(&c.SMTP.Port, "SMTP_PORT")
	set(&c.SMTP.User, "SMTP_USER")
	set(&c.SMTP.Password, "SMTP_PASS")
	set(&c.SMTP.To, "TO_EMAIL")
	set(&c.Admin.Username, "ADMIN_USERNAME")
	set(&c.Admin.Password, "ADMIN_PASSWORD")

	if v := getenv("MARQUEE_SPEED"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("MARQUEE_SPEED: %w", err)
		}
		c.Marquee.Speed = f
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("config: server.port is empty")
	}
	if c.Marquee.Speed <= 0 {
		return fmt.Errorf("config: marquee.speed must be positive, got %v", c.Marquee.Speed)
	}
	if c.Marquee.FPS <= 0 || c.Marquee.StreamFPS <= 0 {
		return errors.New("config: marquee.fps and marquee.stream_fps must be positive")
	}
	if c.Marquee.ClickPauseMS < 0 {
		return errors.New("config: marquee.click_pause_ms must not be negative")
	}
	if c.Marquee.AttachMS <= 0 {
		return errors.New("config: marquee.attach_ms must be positive")
	}
	if c.Marquee.ItemWidth <= 0 || c.Marquee.ItemGap < 0 {
		return errors.New("config: marquee.item_width must be positive and item_gap not negative")
	}
	return nil
}
