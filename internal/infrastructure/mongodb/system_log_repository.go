package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/agrochain-api/internal/domain/entity"
	"github.com/jhoicas/agrochain-api/internal/domain/repository"
)

var _ repository.SystemLogRepository = (*SystemLogRepo)(nil)

// SystemLogRepo colección de logs de peticiones.
type SystemLogRepo struct {
	coll *mongo.Collection
}

// NewSystemLogRepository construye el repo sobre la colección dada.
func NewSystemLogRepository(coll *mongo.Collection) *SystemLogRepo {
	return &SystemLogRepo{coll: coll}
}

// EnsureIndexes crea los índices de consulta (timestamp desc, level).
func (r *SystemLogRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "level", Value: 1}, {Key: "timestamp", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("crear índices de logs: %w", err)
	}
	return nil
}

// InsertMany inserta el lote sin orden (un documento fallido no frena el resto).
func (r *SystemLogRepo) InsertMany(ctx context.Context, logs []entity.SystemLog) error {
	if len(logs) == 0 {
		return nil
	}
	docs := make([]any, len(logs))
	for i := range logs {
		docs[i] = logs[i]
	}
	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false)); err != nil {
		return fmt.Errorf("insertar logs: %w", err)
	}
	return nil
}

func logsFilter(f repository.LogFilter) bson.M {
	filter := bson.M{}
	if f.Level != "" {
		filter["level"] = f.Level
	}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{bson.M{"message": re}, bson.M{"source": re}}
	}
	if f.From != nil || f.To != nil {
		ts := bson.M{}
		if f.From != nil {
			ts["$gte"] = *f.From
		}
		if f.To != nil {
			ts["$lte"] = *f.To
		}
		filter["timestamp"] = ts
	}
	return filter
}

// List logs filtrados, más reciente primero.
func (r *SystemLogRepo) List(ctx context.Context, f repository.LogFilter) ([]entity.SystemLog, int64, error) {
	filter := logsFilter(f)
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("contar logs: %w", err)
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetSkip(int64(f.Offset))
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("buscar logs: %w", err)
	}
	logs := make([]entity.SystemLog, 0)
	if err := cur.All(ctx, &logs); err != nil {
		return nil, 0, fmt.Errorf("decodificar logs: %w", err)
	}
	return logs, total, nil
}

// CountByLevel conteo por nivel con $group.
func (r *SystemLogRepo) CountByLevel(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$level"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("agregar logs por nivel: %w", err)
	}
	var rows []struct {
		Level string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decodificar conteos: %w", err)
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Level] = row.Count
	}
	return counts, nil
}

// ListSince logs con timestamp >= since.
func (r *SystemLogRepo) ListSince(ctx context.Context, since time.Time) ([]entity.SystemLog, error) {
	cur, err := r.coll.Find(ctx, bson.M{"timestamp": bson.M{"$gte": since}},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("buscar logs recientes: %w", err)
	}
	logs := make([]entity.SystemLog, 0)
	if err := cur.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("decodificar logs: %w", err)
	}
	return logs, nil
}
