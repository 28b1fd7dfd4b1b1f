package vectorstore

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/proto"
)

// QdrantIndex implements Index against a Qdrant collection. Qdrant reports
// cosine similarity directly, so raw scores already match the documented
// [0, 1] range for unit vectors.
type QdrantIndex struct {
	points     qdrant.PointsClient
	collection string
}

// NewQdrantIndex connects to Qdrant and ensures the collection exists with a
// cosine-distance vector config of the given dimension.
func NewQdrantIndex(addr, collection string, dim int) (*QdrantIndex, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("could not connect to Qdrant: %w", err)
	}

	idx := &QdrantIndex{
		points:     qdrant.NewPointsClient(conn),
		collection: collection,
	}

	if err := idx.ensureCollection(context.Background(), qdrant.NewCollectionsClient(conn), dim); err != nil {
		return nil, fmt.Errorf("failed to ensure collection exists: %w", err)
	}

	return idx, nil
}

func (q *QdrantIndex) ensureCollection(ctx context.Context, collections qdrant.CollectionsClient, dim int) error {
	_, err := collections.Get(ctx, &qdrant.GetCollectionInfoRequest{
		CollectionName: q.collection,
	})
	if err == nil {
		return nil
	}

	log.Printf("Collection %s does not exist, creating...", q.collection)
	_, err = collections.Create(ctx, &qdrant.CreateCollection{
		CollectionName: q.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dim),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// pointID derives a stable Qdrant UUID point id from an opaque region key.
// Region identifiers may be placeholder-prefixed strings Qdrant would reject,
// so the original key travels in the payload instead.
func pointID(id string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(id)).String()
}

// Upsert stores or replaces the vector for a region identifier.
func (q *QdrantIndex) Upsert(ctx context.Context, id string, vector []float32) error {
	point := &qdrant.PointStruct{
		Id:      &qdrant.PointId{PointIdOptions: &qdrant.PointId_Uuid{Uuid: pointID(id)}},
		Vectors: &qdrant.Vectors{VectorsOptions: &qdrant.Vectors_Vector{Vector: &qdrant.Vector{Data: vector}}},
		Payload: map[string]*qdrant.Value{
			"region_id": {Kind: &qdrant.Value_StringValue{StringValue: id}},
		},
	}

	_, err := q.points.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collection,
		Points:         []*qdrant.PointStruct{point},
		Wait:           proto.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point to Qdrant: %w", err)
	}

	return nil
}

// Query returns up to k matches ordered by similarity descending.
func (q *QdrantIndex) Query(ctx context.Context, vector []float32, k int) ([]Match, error) {
	result, err := q.points.Search(ctx, &qdrant.SearchPoints{
		CollectionName: q.collection,
		Vector:         vector,
		Limit:          uint64(k),
		WithPayload:    &qdrant.WithPayloadSelector{SelectorOptions: &qdrant.WithPayloadSelector_Enable{Enable: true}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search points in Qdrant: %w", err)
	}

	matches := make([]Match, 0, len(result.GetResult()))
	for _, hit := range result.GetResult() {
		regionID := hit.GetPayload()["region_id"].GetStringValue()
		if regionID == "" {
			continue
		}
		matches = append(matches, Match{
			ID:    regionID,
			Score: float64(hit.GetScore()),
		})
	}

	return matches, nil
}
