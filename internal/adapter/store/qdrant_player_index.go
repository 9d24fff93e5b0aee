package store

import (
	"context"
	"fmt"
	"nenmatch/internal/domain/entity"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// playerNamespace makes point IDs stable across re-indexing runs.
var playerNamespace = uuid.MustParse("5b0c7a8e-3f4d-4a52-9d61-2f1e0c9b7a10")

// QdrantPlayerIndex keeps one point per player, the vector being the player's
// affinity scores in category order.
type QdrantPlayerIndex struct {
	client         *qdrant.Client
	collectionName string
	logger         *zap.Logger
}

func NewQdrantPlayerIndex(client *qdrant.Client, collectionName string, logger *zap.Logger) *QdrantPlayerIndex {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QdrantPlayerIndex{
		client:         client,
		collectionName: collectionName,
		logger:         logger.Named("qdrant"),
	}
}

func (s *QdrantPlayerIndex) InitCollection(ctx context.Context) error {
	_, err := s.client.GetCollectionInfo(ctx, s.collectionName)
	if err != nil {
		st, ok := status.FromError(err)
		if !ok || st.Code() != codes.NotFound {
			return err
		}
		err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: s.collectionName,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     entity.CategoryCount,
				Distance: qdrant.Distance_Euclid,
			}),
		})
		if err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
	}

	// Matching always filters on position first.
	_, err = s.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: s.collectionName,
		FieldName:      "position",
		FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		s.logger.Warn("could not create position index (might already exist)", zap.Error(err))
	}
	return nil
}

func (s *QdrantPlayerIndex) Exists(ctx context.Context, playerID int) (bool, error) {
	points, err := s.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: s.collectionName,
		Ids:            []*qdrant.PointId{pointID(playerID)},
	})
	if err != nil {
		return false, err
	}
	return len(points) > 0, nil
}

func (s *QdrantPlayerIndex) Upsert(ctx context.Context, p entity.PlayerDiagnosis) error {
	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collectionName,
		Wait:           qdrant.PtrOf(true),
		Points: []*qdrant.PointStruct{
			{
				Id:      pointID(p.PlayerID),
				Vectors: qdrant.NewVectors(p.Diagnosis.Scores.Floats()...),
				Payload: qdrant.NewValueMap(playerPayload(p)),
			},
		},
	})
	return err
}

// Nearest returns the closest player, restricted to position when it is set.
// It returns nil when nothing matches.
func (s *QdrantPlayerIndex) Nearest(ctx context.Context, vector entity.AffinityVector, position string) (*entity.PlayerMatch, error) {
	query := &qdrant.QueryPoints{
		CollectionName: s.collectionName,
		Query:          qdrant.NewQuery(vector.Floats()...),
		Limit:          qdrant.PtrOf(uint64(1)),
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if position != "" {
		query.Filter = &qdrant.Filter{
			Must: []*qdrant.Condition{qdrant.NewMatch("position", position)},
		}
	}

	res, err := s.client.Query(ctx, query)
	if err != nil || len(res) == 0 {
		return nil, err
	}
	return toMatch(res[0]), nil
}

func pointID(playerID int) *qdrant.PointId {
	id := uuid.NewSHA1(playerNamespace, []byte(strconv.Itoa(playerID)))
	return qdrant.NewIDUUID(id.String())
}

func playerPayload(p entity.PlayerDiagnosis) map[string]any {
	return map[string]any{
		"player_id":        int64(p.PlayerID),
		"name":             p.Name,
		"position":         p.Position,
		"primary":          string(p.Diagnosis.Primary),
		"specialist_score": int64(p.Diagnosis.SpecialistScore),
		"comment":          p.Diagnosis.Comment,
		"indexed_at":       time.Now().Unix(),
	}
}

func toMatch(hit *qdrant.ScoredPoint) *entity.PlayerMatch {
	payload := hit.GetPayload()
	return &entity.PlayerMatch{
		PlayerID:        int(payload["player_id"].GetIntegerValue()),
		Name:            payload["name"].GetStringValue(),
		Position:        payload["position"].GetStringValue(),
		Primary:         entity.Category(payload["primary"].GetStringValue()),
		SpecialistScore: int(payload["specialist_score"].GetIntegerValue()),
		Comment:         payload["comment"].GetStringValue(),
		Distance:        hit.GetScore(),
	}
}
