package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"newsproxy/internal/config"
	"newsproxy/internal/handler"
	"newsproxy/internal/widgets"
	"newsproxy/pkg/news"
)

func main() {

	godotenv.Load()

	cfg := config.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	if cfg.Upstream.APIKey == "" {
		slog.Warn("RAPIDAPI_KEY environment variable is not set")
	}
	if cfg.Scraper.Token == "" {
		slog.Warn("APIFY_TOKEN environment variable is not set, /article will report a configuration error")
	}

	catalog, err := widgets.Load()
	if err != nil {
		log.Fatalf("error loading widget catalog: %v", err)
	}

	bloomberg := news.NewBloombergClient(cfg.Upstream.BaseURL, cfg.Upstream.Host, cfg.Upstream.APIKey, cfg.Upstream.Timeout)
	apify := news.NewApifyClient(cfg.Scraper.BaseURL, cfg.Scraper.ActorID, cfg.Scraper.Token, cfg.Scraper.Timeout)

	r := handler.NewRouter(
		handler.NewNewsHandler(bloomberg, cfg.Server.PublicURL),
		handler.NewArticleHandler(apify, cfg.Scraper.PublisherDomain),
		handler.NewStaticHandler(catalog),
	)

	slog.Info("starting news proxy", "addr", cfg.Addr(), "upstream", cfg.Upstream.BaseURL, "widgets", len(catalog))

	err = r.Run(cfg.Addr())
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
