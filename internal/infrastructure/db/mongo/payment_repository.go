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

const paymentsCollection = "payments"

type PaymentRepository struct {
	col *mongo.Collection
	seq *Sequence
}

func NewPaymentRepository(db *mongo.Database, seq *Sequence) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(paymentsCollection), seq: seq}
}

type mongoPayment struct {
	ID            int64  `bson:"_id"`
	UserID        int64  `bson:"user_id"`
	PackageID     *int64 `bson:"package_id,omitempty"`
	Amount        string `bson:"amount"`
	Currency      string `bson:"currency"`
	TransactionID string `bson:"transaction_id,omitempty"`
	PaymentMethod string `bson:"payment_method"`
	Status        string `bson:"status"`
	CreatedAt     int64  `bson:"created_at"`
}

func (mp *mongoPayment) toDomain() *domain.Payment {
	return &domain.Payment{
		ID:            mp.ID,
		UserID:        mp.UserID,
		PackageID:     mp.PackageID,
		Amount:        mp.Amount,
		Currency:      mp.Currency,
		TransactionID: mp.TransactionID,
		PaymentMethod: mp.PaymentMethod,
		Status:        mp.Status,
		CreatedAt:     unixToTime(mp.CreatedAt),
	}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.Next(ctx, paymentsCollection)
	if err != nil {
		return nil, err
	}

	doc := mongoPayment{
		ID:            id,
		UserID:        payment.UserID,
		PackageID:     payment.PackageID,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		TransactionID: payment.TransactionID,
		PaymentMethod: payment.PaymentMethod,
		Status:        payment.Status,
		CreatedAt:     time.Now().UTC().Unix(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id int64) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPayment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	return r.list(ctx, bson.M{})
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *PaymentRepository) list(ctx context.Context, filter bson.M) ([]domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer cur.Close(ctx)

	var payments []domain.Payment
	for cur.Next(ctx) {
		var mp mongoPayment
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode payment: %w", err)
		}
		payments = append(payments, *mp.toDomain())
	}
	return payments, cur.Err()
}

func (r *PaymentRepository) Update(ctx context.Context, id int64, upd ports.PaymentUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if upd.TransactionID != nil {
		set["transaction_id"] = *upd.TransactionID
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if len(set) == 0 {
		return nil
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

// SumCompleted totals completed payment amounts. Amounts are stored as
// decimal strings, so the aggregation casts with $toDouble.
func (r *PaymentRepository) SumCompleted(ctx context.Context) (float64, error) {
	return r.sum(ctx, bson.M{"status": domain.PaymentCompleted})
}

// SumCompletedSince totals completed payments created at or after the given
// unix timestamp.
func (r *PaymentRepository) SumCompletedSince(ctx context.Context, since int64) (float64, error) {
	return r.sum(ctx, bson.M{
		"status":     domain.PaymentCompleted,
		"created_at": bson.M{"$gte": since},
	})
}

func (r *PaymentRepository) sum(ctx context.Context, match bson.M) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": bson.M{"$toDouble": "$amount"}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("sum payments: %w", err)
	}
	defer cur.Close(ctx)

	var result struct {
		Total float64 `bson:"total"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&result); err != nil {
			return 0, fmt.Errorf("decode payment sum: %w", err)
		}
	}
	return result.Total, cur.Err()
}

// EnsureIndexes creates the owner and transaction indexes.
func (r *PaymentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "transaction_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}
