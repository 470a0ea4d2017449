package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/groupcast/groupcast-api/internal/core/domain"
)

const settingsCollection = "settings"

// SettingRepository stores key/value settings keyed directly by the setting
// key, so upserts are single atomic operations.
type SettingRepository struct {
	col *mongo.Collection
	seq *Sequence
}

func NewSettingRepository(db *mongo.Database, seq *Sequence) *SettingRepository {
	return &SettingRepository{col: db.Collection(settingsCollection), seq: seq}
}

type mongoSetting struct {
	Key       string `bson:"_id"`
	NumericID int64  `bson:"numeric_id"`
	Value     string `bson:"value"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (ms *mongoSetting) toDomain() *domain.Setting {
	return &domain.Setting{
		ID:        ms.NumericID,
		Key:       ms.Key,
		Value:     ms.Value,
		UpdatedAt: unixToTime(ms.UpdatedAt),
	}
}

func (r *SettingRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSetting
	if err := r.col.FindOne(ctx, bson.M{"_id": key}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSettingNotFound
		}
		return nil, fmt.Errorf("find setting: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *SettingRepository) List(ctx context.Context) ([]domain.Setting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer cur.Close(ctx)

	var settings []domain.Setting
	for cur.Next(ctx) {
		var ms mongoSetting
		if err := cur.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode setting: %w", err)
		}
		settings = append(settings, *ms.toDomain())
	}
	return settings, cur.Err()
}

func (r *SettingRepository) Upsert(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.Next(ctx, settingsCollection)
	if err != nil {
		return err
	}

	_, err = r.col.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{
			"$set":         bson.M{"value": value, "updated_at": time.Now().UTC().Unix()},
			"$setOnInsert": bson.M{"numeric_id": id},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}
