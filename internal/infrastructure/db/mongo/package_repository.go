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

const packagesCollection = "packages"

type PackageRepository struct {
	col *mongo.Collection
	seq *Sequence
}

func NewPackageRepository(db *mongo.Database, seq *Sequence) *PackageRepository {
	return &PackageRepository{col: db.Collection(packagesCollection), seq: seq}
}

type mongoPackage struct {
	ID             int64  `bson:"_id"`
	Name           string `bson:"name"`
	Price          string `bson:"price"`
	DurationDays   int    `bson:"duration_days"`
	MaxGroups      int    `bson:"max_groups"`
	MaxPostsPerDay int    `bson:"max_posts_per_day"`
	Features       string `bson:"features,omitempty"`
	IsActive       bool   `bson:"is_active"`
	CreatedAt      int64  `bson:"created_at"`
}

func (mp *mongoPackage) toDomain() *domain.Package {
	return &domain.Package{
		ID:             mp.ID,
		Name:           mp.Name,
		Price:          mp.Price,
		DurationDays:   mp.DurationDays,
		MaxGroups:      mp.MaxGroups,
		MaxPostsPerDay: mp.MaxPostsPerDay,
		Features:       mp.Features,
		IsActive:       mp.IsActive,
		CreatedAt:      unixToTime(mp.CreatedAt),
	}
}

func (r *PackageRepository) Create(ctx context.Context, pkg *domain.Package) (*domain.Package, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.Next(ctx, packagesCollection)
	if err != nil {
		return nil, err
	}

	doc := mongoPackage{
		ID:             id,
		Name:           pkg.Name,
		Price:          pkg.Price,
		DurationDays:   pkg.DurationDays,
		MaxGroups:      pkg.MaxGroups,
		MaxPostsPerDay: pkg.MaxPostsPerDay,
		Features:       pkg.Features,
		IsActive:       pkg.IsActive,
		CreatedAt:      time.Now().UTC().Unix(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert package: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PackageRepository) FindByID(ctx context.Context, id int64) (*domain.Package, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPackage
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPackageNotFound
		}
		return nil, fmt.Errorf("find package: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PackageRepository) List(ctx context.Context, activeOnly bool) ([]domain.Package, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer cur.Close(ctx)

	var packages []domain.Package
	for cur.Next(ctx) {
		var mp mongoPackage
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode package: %w", err)
		}
		packages = append(packages, *mp.toDomain())
	}
	return packages, cur.Err()
}

func (r *PackageRepository) Update(ctx context.Context, id int64, upd ports.UpdatePackageInput) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.DurationDays != nil {
		set["duration_days"] = *upd.DurationDays
	}
	if upd.MaxGroups != nil {
		set["max_groups"] = *upd.MaxGroups
	}
	if upd.MaxPostsPerDay != nil {
		set["max_posts_per_day"] = *upd.MaxPostsPerDay
	}
	if upd.Features != nil {
		set["features"] = *upd.Features
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}
	if len(set) == 0 {
		return nil
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update package: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPackageNotFound
	}
	return nil
}

func (r *PackageRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete package: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPackageNotFound
	}
	return nil
}
