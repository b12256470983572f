// Load envs from .env
// Load YAML config
// Override with env vars
// Provide default values

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

const (
	EngineBrowser = "browser"
	EngineStatic  = "static"
)

type Config struct {
	Port   string `yaml:"port" env:"PORT"`
	Engine string `yaml:"engine" env:"SCRAPER_ENGINE"`
	//Search target
	SearchURLTemplate string `yaml:"search_url_template" env:"SEARCH_URL_TEMPLATE"`
	UserAgent         string `yaml:"user_agent" env:"USER_AGENT"`
	//Browser
	Headless          *bool         `yaml:"headless" env:"HEADLESS"`
	InstallBrowsers   bool          `yaml:"install_browsers" env:"INSTALL_BROWSERS"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout" env:"NAVIGATION_TIMEOUT"`
	LandmarkTimeout   time.Duration `yaml:"landmark_timeout" env:"LANDMARK_TIMEOUT"`
	MaxConcurrent     *int64        `yaml:"max_concurrent_scrapes" env:"MAX_CONCURRENT_SCRAPES"`
	//Paths
	ScreenshotPath string `yaml:"screenshot_path" env:"SCREENSHOT_PATH"`
	DebugHTMLPath  string `yaml:"debug_html_path" env:"DEBUG_HTML_PATH"`
	CookiesPath    string `yaml:"cookies_path" env:"COOKIES_PATH"`
	//Notifications (optional)
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
}

// IsHeadless defaults to true when unset
func (c *Config) IsHeadless() bool {
	return c.Headless == nil || *c.Headless
}

// MaxConcurrentScrapes defaults to 4 when unset. Zero or less means no cap.
func (c *Config) MaxConcurrentScrapes() int64 {
	if c.MaxConcurrent == nil {
		return 4
	}
	return *c.MaxConcurrent
}

func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// Load reads .env and configs/config.yaml, exiting on invalid values
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := LoadFrom(DefaultPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	return cfg
}

// LoadFrom reads the YAML file at path (a missing file is fine), then env overrides and defaults
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Could not read %s: %v", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.Engine, "SCRAPER_ENGINE")
	setString(&c.SearchURLTemplate, "SEARCH_URL_TEMPLATE")
	setString(&c.UserAgent, "USER_AGENT")
	setString(&c.ScreenshotPath, "SCREENSHOT_PATH")
	setString(&c.DebugHTMLPath, "DEBUG_HTML_PATH")
	setString(&c.CookiesPath, "COOKIES_PATH")
	setString(&c.TelegramToken, "TELEGRAM_BOT_TOKEN")

	if v := os.Getenv("HEADLESS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid HEADLESS: %w", err)
		}
		c.Headless = &b
	}
	if v := os.Getenv("INSTALL_BROWSERS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid INSTALL_BROWSERS: %w", err)
		}
		c.InstallBrowsers = b
	}
	if err := setDuration(&c.NavigationTimeout, "NAVIGATION_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&c.LandmarkTimeout, "LANDMARK_TIMEOUT"); err != nil {
		return err
	}
	if v := os.Getenv("MAX_CONCURRENT_SCRAPES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_CONCURRENT_SCRAPES: %w", err)
		}
		c.MaxConcurrent = &n
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.TelegramChatID = id
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = "5010"
	}
	if c.Engine == "" {
		c.Engine = EngineBrowser
	}
	if c.NavigationTimeout == 0 {
		c.NavigationTimeout = 60 * time.Second
	}
	if c.LandmarkTimeout == 0 {
		c.LandmarkTimeout = 20 * time.Second
	}
	if c.ScreenshotPath == "" {
		c.ScreenshotPath = "debug-screenshot.png"
	}
	if c.DebugHTMLPath == "" {
		c.DebugHTMLPath = "debug-page.html"
	}
	//search template and user agent default inside the scraper
}

func (c *Config) Validate() error {
	if c.Engine != EngineBrowser && c.Engine != EngineStatic {
		return fmt.Errorf("unknown engine %q (want %q or %q)", c.Engine, EngineBrowser, EngineStatic)
	}
	if c.NavigationTimeout < 0 || c.LandmarkTimeout < 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.TelegramToken != "" && c.TelegramChatID == 0 {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}
