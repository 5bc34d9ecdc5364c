package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration. Credentials and the data directory
// are resolved here once and injected into adapters at construction;
// nothing reads the environment at collection time.
type Config struct {
	DataDir   string          `yaml:"data_dir"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Platforms PlatformsConfig `yaml:"platforms"`
	Archive   ArchiveConfig   `yaml:"archive"`
	Server    ServerConfig    `yaml:"server"`
}

// ScheduleConfig configures driver pacing and the daemon interval.
type ScheduleConfig struct {
	Pause           string `yaml:"pause"`
	CollectInterval string `yaml:"collect_interval"`
}

// ParsePause returns the inter-adapter pause as a duration.
func (s ScheduleConfig) ParsePause() time.Duration {
	d, err := time.ParseDuration(s.Pause)
	if err != nil {
		return 2 * time.Second
	}
	return d
}

// ParseCollectInterval returns the daemon collection interval.
func (s ScheduleConfig) ParseCollectInterval() time.Duration {
	d, err := time.ParseDuration(s.CollectInterval)
	if err != nil {
		return 30 * time.Minute
	}
	return d
}

// PlatformsConfig holds per-platform settings and credentials.
type PlatformsConfig struct {
	YouTube YouTubeConfig `yaml:"youtube"`
	Reddit  RedditConfig  `yaml:"reddit"`
	Google  GoogleConfig  `yaml:"google"`
	Twitter TwitterConfig `yaml:"twitter"`
	Spotify SpotifyConfig `yaml:"spotify"`
	News    NewsConfig    `yaml:"news"`
}

// YouTubeConfig for the video adapter.
type YouTubeConfig struct {
	APIKey     string `yaml:"api_key"`
	Region     string `yaml:"region"`
	MaxResults int    `yaml:"max_results"`
}

// RedditConfig for the forum adapter.
type RedditConfig struct {
	FeedURL string `yaml:"feed_url"`
}

// GoogleConfig for the search-trends adapter.
type GoogleConfig struct {
	RapidAPIKey string `yaml:"rapid_api_key"`
	Region      string `yaml:"region"`
}

// TwitterConfig for the microblog adapter.
type TwitterConfig struct {
	Country string `yaml:"country"`
}

// SpotifyConfig for the music adapter.
type SpotifyConfig struct {
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	Queries      []string `yaml:"queries"`
}

// NewsConfig for the headline adapter.
type NewsConfig struct {
	FeedURL string `yaml:"feed_url"`
}

// ArchiveConfig configures the post-collection snapshot push.
type ArchiveConfig struct {
	S3 S3Config `yaml:"s3"`
}

// S3Config for the S3 archive sink.
type S3Config struct {
	Enabled bool   `yaml:"enabled"`
	Bucket  string `yaml:"bucket"`
	Region  string `yaml:"region"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		DataDir: "./data",
		Schedule: ScheduleConfig{
			Pause:           "2s",
			CollectInterval: "30m",
		},
		Platforms: PlatformsConfig{
			YouTube: YouTubeConfig{Region: "IN", MaxResults: 30},
			Google:  GoogleConfig{Region: "INDIA"},
			Twitter: TwitterConfig{Country: "india"},
			Spotify: SpotifyConfig{
				Queries: []string{"Bollywood Hits", "Top Hindi Songs", "India Trending Music"},
			},
			News: NewsConfig{FeedURL: "https://news.google.com/rss"},
		},
		Archive: ArchiveConfig{
			S3: S3Config{Region: "ap-south-1"},
		},
		Server: ServerConfig{Port: 8080},
	}
}

// Load reads configuration from an optional YAML file, a local .env, and
// environment variable overrides, in that order of precedence (env wins).
func Load(path string) (*Config, error) {
	// Credentials typically live in a .env beside the binary. A missing
	// file is fine.
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TREND_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		cfg.Platforms.YouTube.APIKey = v
	}
	if v := os.Getenv("RAPID_API_KEY"); v != "" {
		cfg.Platforms.Google.RapidAPIKey = v
	}
	if v := os.Getenv("SPOTIFY_CLIENT_ID"); v != "" {
		cfg.Platforms.Spotify.ClientID = v
	}
	if v := os.Getenv("SPOTIFY_CLIENT_SECRET"); v != "" {
		cfg.Platforms.Spotify.ClientSecret = v
	}
	if v := os.Getenv("TREND_S3_BUCKET"); v != "" {
		cfg.Archive.S3.Bucket = v
		cfg.Archive.S3.Enabled = true
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.Archive.S3.Region = v
	}
}
