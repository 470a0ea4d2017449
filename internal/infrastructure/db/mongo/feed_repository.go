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

const feedsCollection = "rss_feeds"

type FeedRepository struct {
	col *mongo.Collection
	seq *Sequence
}

func NewFeedRepository(db *mongo.Database, seq *Sequence) *FeedRepository {
	return &FeedRepository{col: db.Collection(feedsCollection), seq: seq}
}

type mongoFeed struct {
	ID            int64  `bson:"_id"`
	UserID        int64  `bson:"user_id"`
	FeedURL       string `bson:"feed_url"`
	FeedName      string `bson:"feed_name"`
	IsActive      bool   `bson:"is_active"`
	LastFetchedAt *int64 `bson:"last_fetched_at,omitempty"`
	CreatedAt     int64  `bson:"created_at"`
}

func (mf *mongoFeed) toDomain() *domain.Feed {
	return &domain.Feed{
		ID:            mf.ID,
		UserID:        mf.UserID,
		FeedURL:       mf.FeedURL,
		FeedName:      mf.FeedName,
		IsActive:      mf.IsActive,
		LastFetchedAt: unixPtrToTime(mf.LastFetchedAt),
		CreatedAt:     unixToTime(mf.CreatedAt),
	}
}

func (r *FeedRepository) Create(ctx context.Context, feed *domain.Feed) (*domain.Feed, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.Next(ctx, feedsCollection)
	if err != nil {
		return nil, err
	}

	doc := mongoFeed{
		ID:        id,
		UserID:    feed.UserID,
		FeedURL:   feed.FeedURL,
		FeedName:  feed.FeedName,
		IsActive:  feed.IsActive,
		CreatedAt: time.Now().UTC().Unix(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert feed: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *FeedRepository) FindByID(ctx context.Context, id int64) (*domain.Feed, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mf mongoFeed
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&mf); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFeedNotFound
		}
		return nil, fmt.Errorf("find feed: %w", err)
	}
	return mf.toDomain(), nil
}

func (r *FeedRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Feed, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}
	defer cur.Close(ctx)

	var feeds []domain.Feed
	for cur.Next(ctx) {
		var mf mongoFeed
		if err := cur.Decode(&mf); err != nil {
			return nil, fmt.Errorf("decode feed: %w", err)
		}
		feeds = append(feeds, *mf.toDomain())
	}
	return feeds, cur.Err()
}

func (r *FeedRepository) Update(ctx context.Context, id int64, upd ports.UpdateFeedInput) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if upd.FeedURL != nil {
		set["feed_url"] = *upd.FeedURL
	}
	if upd.FeedName != nil {
		set["feed_name"] = *upd.FeedName
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}
	if len(set) == 0 {
		return nil
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update feed: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrFeedNotFound
	}
	return nil
}

// EnsureIndexes creates the owner index backing ListByUser and the
// ownership checks.
func (r *FeedRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}

func (r *FeedRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete feed: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFeedNotFound
	}
	return nil
}
