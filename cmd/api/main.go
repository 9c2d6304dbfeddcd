package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	apicongress "github.com/chrishlee1228/fountain-ai-website/pkg/api/congress"
	apifilings "github.com/chrishlee1228/fountain-ai-website/pkg/api/filings"
	apinews "github.com/chrishlee1228/fountain-ai-website/pkg/api/news"
	"github.com/chrishlee1228/fountain-ai-website/pkg/core/cache"
	"github.com/chrishlee1228/fountain-ai-website/pkg/core/config"
	corefilings "github.com/chrishlee1228/fountain-ai-website/pkg/core/filings"
	"github.com/chrishlee1228/fountain-ai-website/pkg/models"
)

func main() {
	godotenv.Load()

	cfg := config.Load("config/service.yaml")

	// Snapshot caches. Each source gets its own store so one upstream going
	// dark never invalidates the others.
	rankingStore := cache.NewStore[models.RankingResult]("congress-ranking", cfg.RankingTTL())
	recentFilings := cache.NewKeyed[[]models.FilingRecord](cfg.FilingsTTL())
	majorNews := cache.NewStore[[]models.Headline]("major-headlines", cfg.HeadlinesTTL())

	browser := corefilings.NewBrowser(cfg.DescriptionTTL())

	congressHandler := apicongress.NewHandler(rankingStore, cfg.TopN)
	filingsHandler := apifilings.NewHandler(browser, recentFilings)
	newsHandler := apinews.NewHandler(majorNews)

	// Background ranking refresh: warm once at boot, then on a fixed period.
	// The job errors on upstream trouble; the scheduler logs and keeps going.
	scheduler := cache.NewScheduler("congress-ranking", cfg.RefreshInterval(), func(ctx context.Context) error {
		_, err := rankingStore.ForceRefresh(ctx, congressHandler.Refresh)
		return err
	})
	scheduler.Start()

	http.HandleFunc("/api/ping", handlePing)
	http.HandleFunc("/api/congress/top-bottom", congressHandler.HandleTopBottom)
	http.HandleFunc("/tasks/refresh", congressHandler.HandleForceRefresh)
	http.HandleFunc("/api/home/sec-recent", filingsHandler.HandleRecent)
	http.HandleFunc("/api/sec/filings-browse-for", filingsHandler.HandleBrowseFor)
	http.HandleFunc("/api/home/major", newsHandler.HandleMajor)
	http.HandleFunc("/api/news", newsHandler.HandleTickerNews)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[api] listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Printf("[FATAL] server failed: %v\n", err)
			os.Exit(1)
		}
	}()

	// Block until shutdown is requested, then stop the scheduler before the
	// listener so no refresh is cut off mid-write.
	stop, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	<-stop.Done()

	log.Println("[api] shutting down")
	scheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[api] shutdown: %v", err)
	}
}

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
