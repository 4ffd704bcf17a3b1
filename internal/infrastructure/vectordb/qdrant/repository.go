// Package qdrant provides a VectorIndex implementation using Qdrant.
package qdrant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/ersonp/phyla/internal/domain/entities"
	"github.com/ersonp/phyla/internal/infrastructure/config"
)

// Repository implements VectorIndex and CollectionManager for one
// language's collection.
type Repository struct {
	client     pb.CollectionsClient
	points     pb.PointsClient
	collection string
	conn       *grpc.ClientConn
}

// NewRepository creates a new Qdrant repository.
func NewRepository(cfg config.QdrantConfig) (*Repository, error) {
	if cfg.Collection == "" {
		return nil, fmt.Errorf("qdrant collection is required")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	opts := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	if cfg.APIKey != "" {
		opts = append(opts, grpc.WithUnaryInterceptor(apiKeyInterceptor(cfg.APIKey)))
	}

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to qdrant: %w", err)
	}

	return &Repository{
		client:     pb.NewCollectionsClient(conn),
		points:     pb.NewPointsClient(conn),
		collection: cfg.Collection,
		conn:       conn,
	}, nil
}

// apiKeyInterceptor attaches the Qdrant Cloud api-key header to every call.
func apiKeyInterceptor(key string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = metadata.AppendToOutgoingContext(ctx, "api-key", key)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// Close closes the gRPC connection.
func (r *Repository) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// Collection returns the collection name.
func (r *Repository) Collection() string {
	return r.collection
}

// EnsureCollection creates the collection if it doesn't exist.
func (r *Repository) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	_, err := r.client.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collection,
	})
	if err == nil {
		return nil
	}

	_, err = r.client.Create(ctx, &pb.CreateCollection{
		CollectionName: r.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     vectorSize,
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}

	return nil
}

// DeleteCollection drops the collection.
func (r *Repository) DeleteCollection(ctx context.Context) error {
	_, err := r.client.Delete(ctx, &pb.DeleteCollection{
		CollectionName: r.collection,
	})
	if err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}
	return nil
}

// Save stores an entry with its embedding.
func (r *Repository) Save(ctx context.Context, entry entities.LexiconEntry) error {
	return r.SaveBatch(ctx, []entities.LexiconEntry{entry})
}

// SaveBatch stores multiple entries.
func (r *Repository) SaveBatch(ctx context.Context, entries []entities.LexiconEntry) error {
	if len(entries) == 0 {
		return nil
	}

	points := make([]*pb.PointStruct, 0, len(entries))
	for _, entry := range entries {
		points = append(points, entryToPoint(entry))
	}

	_, err := r.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: r.collection,
		Wait:           pb.PtrOf(true),
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("upserting points: %w", err)
	}

	return nil
}

// Search performs a semantic search and returns similar entries.
func (r *Repository) Search(ctx context.Context, embedding []float32, limit int) ([]entities.LexiconEntry, error) {
	return r.search(ctx, embedding, nil, limit)
}

// SearchByKind performs a semantic search filtered by entry kind.
func (r *Repository) SearchByKind(ctx context.Context, embedding []float32, kind entities.EntryKind, limit int) ([]entities.LexiconEntry, error) {
	return r.search(ctx, embedding, kindFilter(kind), limit)
}

func (r *Repository) search(ctx context.Context, embedding []float32, filter *pb.Filter, limit int) ([]entities.LexiconEntry, error) {
	resp, err := r.points.Search(ctx, &pb.SearchPoints{
		CollectionName: r.collection,
		Vector:         embedding,
		Limit:          uint64(limit),
		Filter:         filter,
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("searching points: %w", err)
	}

	result := make([]entities.LexiconEntry, 0, len(resp.Result))
	for _, point := range resp.Result {
		result = append(result, payloadToEntry(point.Id, point.Payload))
	}
	return result, nil
}

// Delete removes an entry by its ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.points.Delete(ctx, &pb.DeletePoints{
		CollectionName: r.collection,
		Wait:           pb.PtrOf(true),
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Points{
				Points: &pb.PointsIdsList{
					Ids: []*pb.PointId{pointID(id)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("deleting point: %w", err)
	}

	return nil
}

// Count returns the number of indexed entries.
func (r *Repository) Count(ctx context.Context) (uint64, error) {
	resp, err := r.client.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collection,
	})
	if err != nil {
		return 0, fmt.Errorf("getting collection info: %w", err)
	}

	if resp.Result.PointsCount == nil {
		return 0, nil
	}

	return *resp.Result.PointsCount, nil
}

func kindFilter(kind entities.EntryKind) *pb.Filter {
	return &pb.Filter{
		Must: []*pb.Condition{
			{
				ConditionOneOf: &pb.Condition_Field{
					Field: &pb.FieldCondition{
						Key: "kind",
						Match: &pb.Match{
							MatchValue: &pb.Match_Keyword{
								Keyword: string(kind),
							},
						},
					},
				},
			},
		},
	}
}

// pointID maps an entry ID to a point ID. Qdrant only accepts UUIDs or
// integers, so other IDs are mapped to a name-based UUID.
func pointID(id string) *pb.PointId {
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(id)).String()
	}
	return &pb.PointId{PointIdOptions: &pb.PointId_Uuid{Uuid: id}}
}

func entryToPoint(entry entities.LexiconEntry) *pb.PointStruct {
	id := entry.ID
	if id == "" {
		id = uuid.New().String()
	}

	return &pb.PointStruct{
		Id: pointID(id),
		Vectors: &pb.Vectors{
			VectorsOptions: &pb.Vectors_Vector{
				Vector: &pb.Vector{
					Data: entry.Embedding,
				},
			},
		},
		Payload: map[string]*pb.Value{
			"entry_id":   stringValue(id),
			"language":   stringValue(entry.Language),
			"kind":       stringValue(string(entry.Kind)),
			"gloss":      stringValue(entry.Gloss),
			"form":       stringValue(entry.Form),
			"context":    stringValue(entry.Context),
			"updated_at": stringValue(entry.UpdatedAt.Format(time.RFC3339)),
		},
	}
}

func payloadToEntry(id *pb.PointId, payload map[string]*pb.Value) entities.LexiconEntry {
	entryID := getStringValue(payload, "entry_id")
	if entryID == "" {
		entryID = id.GetUuid()
	}

	entry := entities.LexiconEntry{
		ID:       entryID,
		Language: getStringValue(payload, "language"),
		Kind:     entities.EntryKind(getStringValue(payload, "kind")),
		Gloss:    getStringValue(payload, "gloss"),
		Form:     getStringValue(payload, "form"),
		Context:  getStringValue(payload, "context"),
	}
	if ts, err := time.Parse(time.RFC3339, getStringValue(payload, "updated_at")); err == nil {
		entry.UpdatedAt = ts
	}
	return entry
}

func stringValue(s string) *pb.Value {
	return &pb.Value{Kind: &pb.Value_StringValue{StringValue: s}}
}

func getStringValue(payload map[string]*pb.Value, key string) string {
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}
