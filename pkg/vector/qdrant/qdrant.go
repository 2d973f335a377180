// Package qdrant provides a Qdrant vector store driver over the official
// gRPC client.
package qdrant

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kodesword/blograg/pkg/vector"
)

const (
	// DefaultCollectionName is the default collection for blog chunk embeddings.
	DefaultCollectionName = "blog_embeddings"

	// payload keys stored with every point. documentID is keyword-indexed so
	// deletion by document is a single filtered operation.
	payloadKeyDocumentID = "blog_id"
	payloadKeyChunkIndex = "chunk_index"
	payloadKeyText       = "text"
	payloadKeyTitle      = "title"
	payloadKeyTags       = "tags"
)

// Driver implements vector.Driver against a Qdrant instance.
type Driver struct {
	client         *qdrant.Client
	collectionName string
	dimensions     uint64
	logger         *zap.Logger
}

// Config holds configuration for the Qdrant driver.
type Config struct {
	// Host and Port address the Qdrant gRPC endpoint.
	Host string
	Port int

	// APIKey authenticates against Qdrant Cloud; empty for local instances.
	APIKey string

	// UseTLS enables transport security (required by Qdrant Cloud).
	UseTLS bool

	// CollectionName defaults to DefaultCollectionName if empty.
	CollectionName string

	// Dimensions is the vector size for the collection schema.
	Dimensions uint
}

// NewDriver creates a new Qdrant vector driver.
func NewDriver(c Config, logger *zap.Logger) (*Driver, error) {
	if c.Host == "" {
		return nil, fmt.Errorf("qdrant host is required")
	}
	if c.Dimensions == 0 {
		return nil, fmt.Errorf("vector dimensions are required")
	}

	collectionName := c.CollectionName
	if collectionName == "" {
		collectionName = DefaultCollectionName
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   c.Host,
		Port:   c.Port,
		APIKey: c.APIKey,
		UseTLS: c.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("creating qdrant client: %w", err)
	}

	return &Driver{
		client:         client,
		collectionName: collectionName,
		dimensions:     uint64(c.Dimensions),
		logger:         logger,
	}, nil
}

// EnsureCollection creates the collection if absent and always (re)ensures
// the keyword payload index on the document id. Both steps are idempotent;
// concurrent callers race harmlessly to the same end state.
func (d *Driver) EnsureCollection(ctx context.Context) error {
	exists, err := d.client.CollectionExists(ctx, d.collectionName)
	if err != nil {
		return classify(fmt.Errorf("checking collection %q: %w", d.collectionName, err))
	}

	if !exists {
		err = d.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: d.collectionName,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     d.dimensions,
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			// A concurrent EnsureCollection may have won the race.
			if status.Code(err) != codes.AlreadyExists {
				return classify(fmt.Errorf("creating collection %q: %w", d.collectionName, err))
			}
		}
		d.logger.Info("created qdrant collection",
			zap.String("collection", d.collectionName),
			zap.Uint64("dimensions", d.dimensions),
		)
	}

	_, err = d.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: d.collectionName,
		FieldName:      payloadKeyDocumentID,
		FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil && status.Code(err) != codes.AlreadyExists {
		return classify(fmt.Errorf("ensuring %s payload index: %w", payloadKeyDocumentID, err))
	}

	d.logger.Debug("ensured qdrant collection",
		zap.String("collection", d.collectionName),
	)

	return nil
}

// Upsert inserts or replaces records by id.
func (d *Driver) Upsert(ctx context.Context, records []vector.Record) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, len(records))
	for i, rec := range records {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(rec.ID),
			Vectors: qdrant.NewVectors(rec.Vector...),
			Payload: qdrant.NewValueMap(map[string]any{
				payloadKeyDocumentID: rec.Payload.DocumentID,
				payloadKeyChunkIndex: rec.Payload.ChunkIndex,
				payloadKeyText:       rec.Payload.Text,
				payloadKeyTitle:      rec.Payload.Title,
				payloadKeyTags:       rec.Payload.Tags,
			}),
		}
	}

	_, err := d.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: d.collectionName,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return classify(fmt.Errorf("upserting %d points: %w", len(points), err))
	}

	d.logger.Debug("upserted points",
		zap.Int("count", len(points)),
	)

	return nil
}

// DeleteByDocument removes every record for the given document id in a
// single filtered delete.
func (d *Driver) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := d.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: d.collectionName,
		Wait:           qdrant.PtrOf(true),
		Points: qdrant.NewPointsSelectorFilter(&qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch(payloadKeyDocumentID, documentID),
			},
		}),
	})
	if err != nil {
		return classify(fmt.Errorf("deleting points for document %s: %w", documentID, err))
	}

	d.logger.Debug("deleted document points",
		zap.String("document_id", documentID),
	)

	return nil
}

// Search returns up to topK records ordered by descending cosine similarity.
func (d *Driver) Search(ctx context.Context, vec []float32, topK int) ([]vector.SearchResult, error) {
	if topK <= 0 {
		topK = 5
	}

	points, err := d.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: d.collectionName,
		Query:          qdrant.NewQuery(vec...),
		Limit:          qdrant.PtrOf(uint64(topK)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, classify(fmt.Errorf("querying collection %q: %w", d.collectionName, err))
	}

	results := make([]vector.SearchResult, 0, len(points))
	for _, p := range points {
		payload := p.GetPayload()
		results = append(results, vector.SearchResult{
			Score: p.GetScore(),
			Payload: vector.Payload{
				DocumentID: payload[payloadKeyDocumentID].GetStringValue(),
				ChunkIndex: int(payload[payloadKeyChunkIndex].GetIntegerValue()),
				Text:       payload[payloadKeyText].GetStringValue(),
				Title:      payload[payloadKeyTitle].GetStringValue(),
				Tags:       payload[payloadKeyTags].GetStringValue(),
			},
		})
	}

	d.logger.Debug("queried qdrant",
		zap.Int("results", len(results)),
	)

	return results, nil
}

// Close releases resources held by the driver.
func (d *Driver) Close() error {
	return d.client.Close()
}

// classify maps gRPC failure codes onto the package's sentinel errors so
// callers can distinguish transient outages from configuration problems.
func classify(err error) error {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %v", vector.ErrUnavailable, err)
	case codes.NotFound:
		return fmt.Errorf("%w: %v", vector.ErrCollectionMissing, err)
	default:
		return err
	}
}

// Ensure Driver implements vector.Driver
var _ vector.Driver = (*Driver)(nil)
