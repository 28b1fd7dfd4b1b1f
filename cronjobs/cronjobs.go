package cronjobs

import (
	"context"
	"log"
	"time"

	"crisis-insights-backend/embedding"
	"crisis-insights-backend/repository"
	"crisis-insights-backend/vectorstore"

	"github.com/robfig/cron/v3"
)

const refreshTimeout = 5 * time.Minute

// InitCronJobs schedules the embedding refresh: regions inserted without a
// vector get one generated and stored. mirror is an additional index to keep
// in sync (the qdrant backend); pass nil when embeddings live only in Postgres.
func InitCronJobs(repo *repository.RegionRepository, embedder embedding.Embedder, mirror vectorstore.Index) *cron.Cron {
	log.Println("Starting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	// Embedding refresh: every 15 minutes
	_, err := c.AddFunc("*/15 * * * *", func() {
		log.Println("CronJob: Embedding Refresh Running")
		RefreshEmbeddings(repo, embedder, mirror)
	})
	if err != nil {
		log.Println("Error scheduling Embedding Refresh:", err)
	}

	c.Start()
	return c
}

// RefreshEmbeddings embeds the profile text of every region missing a vector.
// Failures are logged per region and do not stop the pass.
func RefreshEmbeddings(repo *repository.RegionRepository, embedder embedding.Embedder, mirror vectorstore.Index) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	regions, err := repo.ListMissingEmbeddings(ctx)
	if err != nil {
		log.Printf("Embedding refresh: failed to list regions: %v", err)
		return
	}
	if len(regions) == 0 {
		return
	}
	log.Printf("Embedding refresh: %d regions missing embeddings", len(regions))

	for _, region := range regions {
		vector, err := embedder.Embed(ctx, region.ProfileText())
		if err != nil {
			log.Printf("Embedding refresh: failed to embed region %s: %v", region.ID, err)
			continue
		}

		if err := repo.Upsert(ctx, region.ID, vector); err != nil {
			log.Printf("Embedding refresh: failed to store embedding for %s: %v", region.ID, err)
			continue
		}

		if mirror != nil {
			if err := mirror.Upsert(ctx, region.ID, vector); err != nil {
				log.Printf("Embedding refresh: failed to mirror embedding for %s: %v", region.ID, err)
			}
		}

		log.Printf("Embedding refresh: embedded region %s (%s)", region.ID, region.Region)
	}
}
