package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/ajay-panchal-099/daily-news-trend/internal/archive"
	"github.com/ajay-panchal-099/daily-news-trend/internal/collector"
	"github.com/ajay-panchal-099/daily-news-trend/internal/config"
	"github.com/ajay-panchal-099/daily-news-trend/internal/snapshot"
	"github.com/ajay-panchal-099/daily-news-trend/pkg/platform"
	"github.com/ajay-panchal-099/daily-news-trend/pkg/server"
)

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// buildAdapters wires every platform adapter in the fixed collection
// order: music, forum, video, news, microblog, search trends.
func buildAdapters(cfg *config.Config, store *snapshot.Store) []platform.Adapter {
	p := cfg.Platforms
	return []platform.Adapter{
		platform.NewSpotify(p.Spotify.ClientID, p.Spotify.ClientSecret, p.Spotify.Queries),
		platform.NewReddit(p.Reddit.FeedURL),
		platform.NewYouTube(p.YouTube.APIKey, p.Google.RapidAPIKey, p.YouTube.Region, p.YouTube.MaxResults),
		platform.NewNews(p.News.FeedURL),
		platform.NewTwitter(p.Twitter.Country, store),
		platform.NewGoogle(p.Google.RapidAPIKey, p.Google.Region, store),
	}
}

func buildArchiver(ctx context.Context, cfg *config.Config, logger *slog.Logger) *archive.Manager {
	var sinks []archive.Sink
	if cfg.Archive.S3.Enabled && cfg.Archive.S3.Bucket != "" {
		sink, err := archive.NewS3Sink(ctx, cfg.Archive.S3.Bucket, cfg.Archive.S3.Region)
		if err != nil {
			logger.Warn("s3 sink unavailable", "error", err)
		} else {
			sinks = append(sinks, sink)
		}
	}
	return archive.NewManager(sinks, logger)
}

func buildCollector(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*collector.Collector, *snapshot.Store, error) {
	store, err := snapshot.New(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open snapshot store: %w", err)
	}
	adapters := buildAdapters(cfg, store)
	archiver := buildArchiver(ctx, cfg, logger)
	return collector.New(store, adapters, cfg.Schedule.ParsePause(), archiver, logger), store, nil
}

func runCollect(filterPlatforms []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger()
	ctx := context.Background()
	c, _, err := buildCollector(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if len(filterPlatforms) == 0 {
		results := c.CollectAll(ctx)
		return reportResults(results)
	}

	results := make(map[platform.Platform]bool)
	for _, name := range filterPlatforms {
		p, ok := platform.Parse(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			return fmt.Errorf("unknown platform %q", name)
		}
		adapter := c.Adapter(p)
		if adapter == nil {
			return fmt.Errorf("platform %q is not wired in", name)
		}
		results[p] = c.CollectOne(ctx, adapter)
	}
	return reportResults(results)
}

func reportResults(results map[platform.Platform]bool) error {
	failed := 0
	for _, p := range platform.All() {
		ok, ran := results[p]
		if !ran {
			continue
		}
		status := "ok"
		if !ok {
			status = "failed"
			failed++
		}
		fmt.Printf("%-10s %s\n", p, status)
	}
	if failed > 0 {
		return fmt.Errorf("%d platform(s) ended the cycle with no data", failed)
	}
	return nil
}

func runTop(platformName string, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	p, ok := platform.Parse(platformName)
	if !ok {
		return fmt.Errorf("unknown platform %q", platformName)
	}

	store, err := snapshot.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open snapshot store: %w", err)
	}

	snap := store.Top10(p)
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	if len(snap.Trends) == 0 {
		fmt.Printf("no data for %s (try: dailytrends collect)\n", p)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tTITLE\tURL")
	for i, t := range snap.Trends {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, t.DisplayName(), t.URL)
	}
	fmt.Fprintf(w, "\nlast updated: %s\n", snap.LastUpdated)
	return w.Flush()
}

func runServe(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if port == 0 {
		port = cfg.Server.Port
	}

	logger := newLogger()
	ctx := context.Background()
	c, store, err := buildCollector(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srv := server.New(store, c, port)
	logger.Info("server listening", "port", port)
	return srv.ListenAndServe()
}

func runDaemon(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if port == 0 {
		port = cfg.Server.Port
	}

	logger := newLogger()
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	c, store, err := buildCollector(ctx, cfg, logger)
	if err != nil {
		return err
	}

	go func() {
		if err := c.Run(ctx, cfg.Schedule.ParseCollectInterval()); err != nil && ctx.Err() == nil {
			logger.Error("collector stopped", "error", err)
		}
	}()

	srv := server.New(store, c, port)
	logger.Info("server listening", "port", port)
	return srv.ListenAndServe()
}
