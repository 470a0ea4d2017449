package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/groupcast/groupcast-api/internal/core/domain"
	"github.com/groupcast/groupcast-api/internal/core/ports"
)

const usersCollection = "users"

type UserRepository struct {
	col *mongo.Collection
	seq *Sequence
}

func NewUserRepository(db *mongo.Database, seq *Sequence) *UserRepository {
	return &UserRepository{col: db.Collection(usersCollection), seq: seq}
}

type mongoUser struct {
	ID                    int64  `bson:"_id"`
	OpenID                string `bson:"open_id"`
	Name                  string `bson:"name,omitempty"`
	Email                 string `bson:"email,omitempty"`
	LoginMethod           string `bson:"login_method,omitempty"`
	Role                  string `bson:"role"`
	SubscriptionStatus    string `bson:"subscription_status"`
	SubscriptionPackageID *int64 `bson:"subscription_package_id,omitempty"`
	SubscriptionExpiresAt *int64 `bson:"subscription_expires_at,omitempty"`
	TrialEndsAt           *int64 `bson:"trial_ends_at,omitempty"`
	CreatedAt             int64  `bson:"created_at"`
	UpdatedAt             int64  `bson:"updated_at"`
	LastSignedIn          int64  `bson:"last_signed_in"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:                    mu.ID,
		OpenID:                mu.OpenID,
		Name:                  mu.Name,
		Email:                 mu.Email,
		LoginMethod:           mu.LoginMethod,
		Role:                  mu.Role,
		SubscriptionStatus:    mu.SubscriptionStatus,
		SubscriptionPackageID: mu.SubscriptionPackageID,
		SubscriptionExpiresAt: unixPtrToTime(mu.SubscriptionExpiresAt),
		TrialEndsAt:           unixPtrToTime(mu.TrialEndsAt),
		CreatedAt:             unixToTime(mu.CreatedAt),
		UpdatedAt:             unixToTime(mu.UpdatedAt),
		LastSignedIn:          unixToTime(mu.LastSignedIn),
	}
}

// Upsert inserts or refreshes the record keyed by open_id. On insert the
// account starts as a trial user unless the caller already elevated the
// role; on later logins only the profile and last_signed_in move.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC().Unix()

	set := bson.M{
		"name":           user.Name,
		"email":          user.Email,
		"login_method":   user.LoginMethod,
		"last_signed_in": now,
		"updated_at":     now,
	}
	if user.Role == domain.RoleAdmin {
		set["role"] = domain.RoleAdmin
	}

	insertRole := user.Role
	if insertRole == "" {
		insertRole = domain.RoleUser
	}

	existing, err := r.FindByOpenID(ctx, user.OpenID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}

		id, err := r.seq.Next(ctx, usersCollection)
		if err != nil {
			return nil, err
		}

		doc := mongoUser{
			ID:                 id,
			OpenID:             user.OpenID,
			Name:               user.Name,
			Email:              user.Email,
			LoginMethod:        user.LoginMethod,
			Role:               insertRole,
			SubscriptionStatus: domain.SubscriptionTrial,
			CreatedAt:          now,
			UpdatedAt:          now,
			LastSignedIn:       now,
		}
		_, insertErr := r.col.InsertOne(ctx, doc)
		if insertErr == nil {
			return doc.toDomain(), nil
		}
		if !mongo.IsDuplicateKeyError(insertErr) {
			return nil, fmt.Errorf("insert user: %w", insertErr)
		}

		// A concurrent first login for the same open_id won the insert.
		// Converge on that record and refresh it below.
		existing, err = r.FindByOpenID(ctx, user.OpenID)
		if err != nil {
			return nil, err
		}
	}

	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": existing.ID}, bson.M{"$set": set}); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return r.FindByID(ctx, existing.ID)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) FindByOpenID(ctx context.Context, openID string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, bson.M{"open_id": openID}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by open id: %w", err)
	}
	return mu.toDomain(), nil
}

// List returns users newest first, optionally filtered by a case-insensitive
// match against email or name.
func (r *UserRepository) List(ctx context.Context, search string) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if search != "" {
		pattern := primitive.Regex{Pattern: search, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"email": pattern},
			bson.M{"name": pattern},
		}
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, *mu.toDomain())
	}
	return users, cur.Err()
}

func (r *UserRepository) Update(ctx context.Context, id int64, upd ports.UserUpdate) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC().Unix()}
	unset := bson.M{}

	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.LoginMethod != nil {
		set["login_method"] = *upd.LoginMethod
	}
	if upd.Role != nil {
		set["role"] = *upd.Role
	}
	if upd.SubscriptionStatus != nil {
		set["subscription_status"] = *upd.SubscriptionStatus
	}
	if upd.SubscriptionPackageID != nil {
		set["subscription_package_id"] = *upd.SubscriptionPackageID
	} else if upd.ClearSubscriptionPackageID {
		unset["subscription_package_id"] = ""
	}
	if upd.SubscriptionExpiresAt != nil {
		set["subscription_expires_at"] = upd.SubscriptionExpiresAt.Unix()
	} else if upd.ClearSubscriptionExpiresAt {
		unset["subscription_expires_at"] = ""
	}
	if upd.TrialEndsAt != nil {
		set["trial_ends_at"] = upd.TrialEndsAt.Unix()
	} else if upd.ClearTrialEndsAt {
		unset["trial_ends_at"] = ""
	}
	if upd.LastSignedIn != nil {
		set["last_signed_in"] = upd.LastSignedIn.Unix()
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *UserRepository) CountBySubscriptionStatus(ctx context.Context, status string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"subscription_status": status})
}

// EnsureIndexes creates the unique open_id index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "open_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	})
	return err
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

func unixPtrToTime(ts *int64) *time.Time {
	if ts == nil {
		return nil
	}
	t := time.Unix(*ts, 0).UTC()
	return &t
}

func timePtrToUnix(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ts := t.Unix()
	return &ts
}
