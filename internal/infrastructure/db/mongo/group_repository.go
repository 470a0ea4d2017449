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
	"github.com/groupcast/groupcast-api/internal/core/ports"
)

const groupsCollection = "groups"

type GroupRepository struct {
	col *mongo.Collection
	seq *Sequence
}

func NewGroupRepository(db *mongo.Database, seq *Sequence) *GroupRepository {
	return &GroupRepository{col: db.Collection(groupsCollection), seq: seq}
}

type mongoGroup struct {
	ID        int64  `bson:"_id"`
	UserID    int64  `bson:"user_id"`
	GroupID   string `bson:"group_id"`
	GroupName string `bson:"group_name"`
	GroupURL  string `bson:"group_url,omitempty"`
	IsActive  bool   `bson:"is_active"`
	CreatedAt int64  `bson:"created_at"`
}

func (mg *mongoGroup) toDomain() *domain.Group {
	return &domain.Group{
		ID:        mg.ID,
		UserID:    mg.UserID,
		GroupID:   mg.GroupID,
		GroupName: mg.GroupName,
		GroupURL:  mg.GroupURL,
		IsActive:  mg.IsActive,
		CreatedAt: unixToTime(mg.CreatedAt),
	}
}

func (r *GroupRepository) Create(ctx context.Context, group *domain.Group) (*domain.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.Next(ctx, groupsCollection)
	if err != nil {
		return nil, err
	}

	doc := mongoGroup{
		ID:        id,
		UserID:    group.UserID,
		GroupID:   group.GroupID,
		GroupName: group.GroupName,
		GroupURL:  group.GroupURL,
		IsActive:  group.IsActive,
		CreatedAt: time.Now().UTC().Unix(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert group: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *GroupRepository) FindByID(ctx context.Context, id int64) (*domain.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mg mongoGroup
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&mg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, fmt.Errorf("find group: %w", err)
	}
	return mg.toDomain(), nil
}

func (r *GroupRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer cur.Close(ctx)

	var groups []domain.Group
	for cur.Next(ctx) {
		var mg mongoGroup
		if err := cur.Decode(&mg); err != nil {
			return nil, fmt.Errorf("decode group: %w", err)
		}
		groups = append(groups, *mg.toDomain())
	}
	return groups, cur.Err()
}

func (r *GroupRepository) Update(ctx context.Context, id int64, upd ports.UpdateGroupInput) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if upd.GroupName != nil {
		set["group_name"] = *upd.GroupName
	}
	if upd.GroupURL != nil {
		set["group_url"] = *upd.GroupURL
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}
	if len(set) == 0 {
		return nil
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrGroupNotFound
	}
	return nil
}

func (r *GroupRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrGroupNotFound
	}
	return nil
}

func (r *GroupRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"user_id": userID})
}

// EnsureIndexes creates the owner index used by every list query.
func (r *GroupRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}
