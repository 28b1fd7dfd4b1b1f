package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"crisis-insights-backend/models"
	"crisis-insights-backend/vectorstore"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a region identifier does not resolve.
var ErrNotFound = errors.New("region not found")

// RegionRepository handles database operations for crisis regions. It also
// satisfies vectorstore.Index via the pgvector column on the regions table.
type RegionRepository struct {
	db  *pgxpool.Pool
	dim int
}

// NewRegionRepository creates a new region repository. dim is the embedding
// dimension enforced on every vector written or queried.
func NewRegionRepository(db *pgxpool.Pool, dim int) *RegionRepository {
	return &RegionRepository{db: db, dim: dim}
}

const regionColumns = `id, region, country, type, summary, displaced, casualties,
	health_status, start_date, last_updated, severity_level, affected_population,
	resources_needed, media_coverage, international_response, coordinates,
	key_organizations, related_articles, embedding::text`

// formatVector formats an embedding vector as a pgvector literal
func formatVector(embedding []float32) string {
	if len(embedding) == 0 {
		return "[]"
	}
	parts := make([]string, len(embedding))
	for i, v := range embedding {
		parts[i] = strconv.FormatFloat(float64(v), 'f', 6, 32)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// parseVector parses a pgvector text literal ("[0.1,0.2,...]") back into a slice
func parseVector(s string) ([]float32, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("invalid vector literal %q", s)
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return nil, nil
	}
	parts := strings.Split(inner, ",")
	vec := make([]float32, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("invalid vector component %q: %w", p, err)
		}
		vec[i] = float32(f)
	}
	return vec, nil
}

func scanRegion(row pgx.Row) (*models.CrisisRegion, error) {
	region := &models.CrisisRegion{}
	var embeddingText *string

	err := row.Scan(
		&region.ID,
		&region.Region,
		&region.Country,
		&region.Type,
		&region.Summary,
		&region.Displaced,
		&region.Casualties,
		&region.HealthStatus,
		&region.StartDate,
		&region.LastUpdated,
		&region.SeverityLevel,
		&region.AffectedPopulation,
		&region.ResourcesNeeded,
		&region.MediaCoverage,
		&region.InternationalResponse,
		&region.Coordinates,
		&region.KeyOrganizations,
		&region.RelatedArticles,
		&embeddingText,
	)
	if err != nil {
		return nil, err
	}

	if embeddingText != nil {
		region.Embedding, err = parseVector(*embeddingText)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored embedding: %w", err)
		}
	}

	return region, nil
}

// Create inserts a new region. The caller supplies the identifier, which may
// be a minted UUID string or a placeholder-prefixed key.
func (r *RegionRepository) Create(ctx context.Context, region *models.CrisisRegion) error {
	if err := region.Validate(); err != nil {
		return err
	}

	var embedding *string
	if len(region.Embedding) > 0 {
		if len(region.Embedding) != r.dim {
			return fmt.Errorf("embedding must be %d dimensions, got %d", r.dim, len(region.Embedding))
		}
		v := formatVector(region.Embedding)
		embedding = &v
	}

	query := `
		INSERT INTO regions (
			id, region, country, type, summary, displaced, casualties,
			health_status, start_date, last_updated, severity_level,
			affected_population, resources_needed, media_coverage,
			international_response, coordinates, key_organizations,
			related_articles, embedding
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19::vector
		)`

	_, err := r.db.Exec(
		ctx, query,
		region.ID,
		region.Region,
		region.Country,
		region.Type,
		region.Summary,
		region.Displaced,
		region.Casualties,
		region.HealthStatus,
		region.StartDate,
		region.LastUpdated,
		region.SeverityLevel,
		region.AffectedPopulation,
		region.ResourcesNeeded,
		region.MediaCoverage,
		region.InternationalResponse,
		region.Coordinates,
		region.KeyOrganizations,
		region.RelatedArticles,
		embedding,
	)

	return err
}

// GetByID retrieves a region by its opaque identifier. Both persisted keys and
// placeholder-prefixed identifiers are looked up the same way.
func (r *RegionRepository) GetByID(ctx context.Context, id string) (*models.CrisisRegion, error) {
	query := fmt.Sprintf(`SELECT %s FROM regions WHERE id = $1`, regionColumns)

	region, err := scanRegion(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get region %s: %w", id, err)
	}

	return region, nil
}

// List returns all regions ordered by severity, most severe first.
func (r *RegionRepository) List(ctx context.Context) ([]*models.CrisisRegion, error) {
	query := fmt.Sprintf(`SELECT %s FROM regions ORDER BY severity_level DESC, region`, regionColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}
	defer rows.Close()

	var regions []*models.CrisisRegion
	for rows.Next() {
		region, err := scanRegion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan region: %w", err)
		}
		regions = append(regions, region)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating regions: %w", err)
	}

	return regions, nil
}

// ListMissingEmbeddings returns regions that have no stored vector yet, for
// the scheduled embedding refresh.
func (r *RegionRepository) ListMissingEmbeddings(ctx context.Context) ([]*models.CrisisRegion, error) {
	query := fmt.Sprintf(`SELECT %s FROM regions WHERE embedding IS NULL`, regionColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list regions missing embeddings: %w", err)
	}
	defer rows.Close()

	var regions []*models.CrisisRegion
	for rows.Next() {
		region, err := scanRegion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan region: %w", err)
		}
		regions = append(regions, region)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating regions: %w", err)
	}

	return regions, nil
}

// Upsert stores the embedding for a region, implementing vectorstore.Index.
func (r *RegionRepository) Upsert(ctx context.Context, id string, vector []float32) error {
	if len(vector) != r.dim {
		return fmt.Errorf("embedding must be %d dimensions, got %d", r.dim, len(vector))
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE regions SET embedding = $2::vector, updated_at = NOW() WHERE id = $1`,
		id, formatVector(vector),
	)
	if err != nil {
		return fmt.Errorf("failed to update embedding for %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return nil
}

// Query performs a cosine nearest-neighbor search over stored embeddings,
// implementing vectorstore.Index. Scores are cosine similarities
// (1 - cosine distance), in [0, 1] for the unit vectors this system stores.
func (r *RegionRepository) Query(ctx context.Context, vector []float32, k int) ([]vectorstore.Match, error) {
	if len(vector) != r.dim {
		return nil, fmt.Errorf("query vector must be %d dimensions, got %d", r.dim, len(vector))
	}

	query := `
		SELECT
			id,
			1 - (embedding <=> $1::vector) AS score
		FROM regions
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1::vector
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, formatVector(vector), k)
	if err != nil {
		return nil, fmt.Errorf("failed to query region embeddings: %w", err)
	}
	defer rows.Close()

	var matches []vectorstore.Match
	for rows.Next() {
		var m vectorstore.Match
		if err := rows.Scan(&m.ID, &m.Score); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matches: %w", err)
	}

	return matches, nil
}
