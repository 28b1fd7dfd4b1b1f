package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"crisis-insights-backend/storage"

	"github.com/joho/godotenv"
)

// Map and background assets served by GET /api/assets/*path. Fetched once
// into the configured storage backend so the frontend never hits the CDNs.
var assets = []struct {
	url string
	key string
}{
	{"https://unpkg.com/leaflet@1.9.4/dist/images/marker-icon.png", "leaflet/marker-icon.png"},
	{"https://unpkg.com/leaflet@1.9.4/dist/images/marker-icon-2x.png", "leaflet/marker-icon-2x.png"},
	{"https://unpkg.com/leaflet@1.9.4/dist/images/marker-shadow.png", "leaflet/marker-shadow.png"},
	{"https://images.unsplash.com/photo-1469571486292-0ba58a3f068b?q=80&w=1920", "crisis-background.jpg"},
}

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	store, err := storage.NewStorageFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize asset storage: %v", err)
	}

	ctx := context.Background()
	client := &http.Client{Timeout: 30 * time.Second}

	for _, asset := range assets {
		if err := fetchAsset(ctx, client, store, asset.url, asset.key); err != nil {
			log.Fatalf("Failed to fetch %s: %v", asset.key, err)
		}
		log.Printf("✓ Stored %s", asset.key)
	}

	log.Println("All assets downloaded successfully")
}

func fetchAsset(ctx context.Context, client *http.Client, store storage.Storage, url, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s from %s", resp.Status, url)
	}

	return store.Upload(ctx, key, resp.Body)
}
