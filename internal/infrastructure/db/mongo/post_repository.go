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

const postsCollection = "posts"

type PostRepository struct {
	col *mongo.Collection
	seq *Sequence
}

func NewPostRepository(db *mongo.Database, seq *Sequence) *PostRepository {
	return &PostRepository{col: db.Collection(postsCollection), seq: seq}
}

type mongoPost struct {
	ID                int64  `bson:"_id"`
	UserID            int64  `bson:"user_id"`
	Content           string `bson:"content"`
	SpintaxContent    string `bson:"spintax_content,omitempty"`
	MediaURLs         string `bson:"media_urls,omitempty"`
	ScheduledAt       *int64 `bson:"scheduled_at,omitempty"`
	Status            string `bson:"status"`
	GroupsToPost      string `bson:"groups_to_post,omitempty"`
	DelayBetweenPosts int    `bson:"delay_between_posts"`
	ScheduleType      string `bson:"schedule_type"`
	ScheduleConfig    string `bson:"schedule_config,omitempty"`
	CreatedAt         int64  `bson:"created_at"`
	UpdatedAt         int64  `bson:"updated_at"`
}

func (mp *mongoPost) toDomain() *domain.Post {
	return &domain.Post{
		ID:                mp.ID,
		UserID:            mp.UserID,
		Content:           mp.Content,
		SpintaxContent:    mp.SpintaxContent,
		MediaURLs:         mp.MediaURLs,
		ScheduledAt:       unixPtrToTime(mp.ScheduledAt),
		Status:            mp.Status,
		GroupsToPost:      mp.GroupsToPost,
		DelayBetweenPosts: mp.DelayBetweenPosts,
		ScheduleType:      mp.ScheduleType,
		ScheduleConfig:    mp.ScheduleConfig,
		CreatedAt:         unixToTime(mp.CreatedAt),
		UpdatedAt:         unixToTime(mp.UpdatedAt),
	}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.Next(ctx, postsCollection)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Unix()
	doc := mongoPost{
		ID:                id,
		UserID:            post.UserID,
		Content:           post.Content,
		SpintaxContent:    post.SpintaxContent,
		MediaURLs:         post.MediaURLs,
		ScheduledAt:       timePtrToUnix(post.ScheduledAt),
		Status:            post.Status,
		GroupsToPost:      post.GroupsToPost,
		DelayBetweenPosts: post.DelayBetweenPosts,
		ScheduleType:      post.ScheduleType,
		ScheduleConfig:    post.ScheduleConfig,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPost
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PostRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	var posts []domain.Post
	for cur.Next(ctx) {
		var mp mongoPost
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, *mp.toDomain())
	}
	return posts, cur.Err()
}

func (r *PostRepository) Update(ctx context.Context, id int64, upd ports.UpdatePostInput) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC().Unix()}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.SpintaxContent != nil {
		set["spintax_content"] = *upd.SpintaxContent
	}
	if upd.MediaURLs != nil {
		set["media_urls"] = *upd.MediaURLs
	}
	if upd.ScheduledAt != nil {
		set["scheduled_at"] = upd.ScheduledAt.Unix()
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.GroupsToPost != nil {
		set["groups_to_post"] = *upd.GroupsToPost
	}
	if upd.DelayBetweenPosts != nil {
		set["delay_between_posts"] = *upd.DelayBetweenPosts
	}
	if upd.ScheduleType != nil {
		set["schedule_type"] = *upd.ScheduleType
	}
	if upd.ScheduleConfig != nil {
		set["schedule_config"] = *upd.ScheduleConfig
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"user_id": userID})
}

func (r *PostRepository) CountByUserAndStatus(ctx context.Context, userID int64, status string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"user_id": userID, "status": status})
}

// EnsureIndexes creates the owner and schedule indexes.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "scheduled_at", Value: 1}}},
	})
	return err
}
