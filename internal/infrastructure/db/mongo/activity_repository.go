package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/groupcast/groupcast-api/internal/core/domain"
)

const activityCollection = "activity_logs"

type ActivityRepository struct {
	col *mongo.Collection
	seq *Sequence
}

func NewActivityRepository(db *mongo.Database, seq *Sequence) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(activityCollection), seq: seq}
}

type mongoActivity struct {
	ID          int64  `bson:"_id"`
	UserID      *int64 `bson:"user_id,omitempty"`
	AdminID     *int64 `bson:"admin_id,omitempty"`
	Action      string `bson:"action"`
	Description string `bson:"description,omitempty"`
	IPAddress   string `bson:"ip_address,omitempty"`
	CreatedAt   int64  `bson:"created_at"`
}

func (ma *mongoActivity) toDomain() domain.ActivityLog {
	return domain.ActivityLog{
		ID:          ma.ID,
		UserID:      ma.UserID,
		AdminID:     ma.AdminID,
		Action:      ma.Action,
		Description: ma.Description,
		IPAddress:   ma.IPAddress,
		CreatedAt:   unixToTime(ma.CreatedAt),
	}
}

func (r *ActivityRepository) Insert(ctx context.Context, entry *domain.ActivityLog) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.Next(ctx, activityCollection)
	if err != nil {
		return err
	}

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	doc := mongoActivity{
		ID:          id,
		UserID:      entry.UserID,
		AdminID:     entry.AdminID,
		Action:      entry.Action,
		Description: entry.Description,
		IPAddress:   entry.IPAddress,
		CreatedAt:   createdAt.Unix(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) List(ctx context.Context, limit int64) ([]domain.ActivityLog, error) {
	return r.list(ctx, bson.M{}, limit)
}

func (r *ActivityRepository) ListByUser(ctx context.Context, userID, limit int64) ([]domain.ActivityLog, error) {
	return r.list(ctx, bson.M{"user_id": userID}, limit)
}

func (r *ActivityRepository) list(ctx context.Context, filter bson.M, limit int64) ([]domain.ActivityLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer cur.Close(ctx)

	var entries []domain.ActivityLog
	for cur.Next(ctx) {
		var ma mongoActivity
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode activity: %w", err)
		}
		entries = append(entries, ma.toDomain())
	}
	return entries, cur.Err()
}

// EnsureIndexes creates the actor and recency indexes.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}
