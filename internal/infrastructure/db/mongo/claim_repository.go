package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ucrmp/claims-platform/internal/core/domain"
)

const collectionClaims = "claims"

// ClaimRepository persists claims in MongoDB. The domain.Claim struct
// carries its own bson tags; metadata is stored as a raw JSON string.
type ClaimRepository struct {
	col *mongo.Collection
}

func NewClaimRepository(db *mongo.Database) *ClaimRepository {
	return &ClaimRepository{col: db.Collection(collectionClaims)}
}

// Create inserts a new claim document.
func (r *ClaimRepository) Create(ctx context.Context, claim *domain.Claim) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toClaimDoc(claim)
	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// FindByID retrieves a single claim by its id.
func (r *ClaimRepository) FindByID(ctx context.Context, id string) (*domain.Claim, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc claimDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClaimNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// ListByOwner returns all claims owned by userID, newest first.
func (r *ClaimRepository) ListByOwner(ctx context.Context, userID string) ([]*domain.Claim, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var claims []*domain.Claim
	for cur.Next(ctx) {
		var doc claimDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		claims = append(claims, doc.toDomain())
	}
	return claims, cur.Err()
}

// EnsureIndexes creates the indexes the owner-scoped queries rely on.
func (r *ClaimRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// claimDoc is the storage representation. Metadata is kept as a string so
// the canonical serialized form survives byte-for-byte.
type claimDoc struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"user_id"`
	ClaimType   string    `bson:"claim_type"`
	Amount      float64   `bson:"amount"`
	Status      string    `bson:"status"`
	Description string    `bson:"description,omitempty"`
	Metadata    string    `bson:"metadata,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func toClaimDoc(c *domain.Claim) claimDoc {
	return claimDoc{
		ID:          c.ID,
		UserID:      c.UserID,
		ClaimType:   string(c.ClaimType),
		Amount:      c.Amount,
		Status:      string(c.Status),
		Description: c.Description,
		Metadata:    string(c.Metadata),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (d claimDoc) toDomain() *domain.Claim {
	return &domain.Claim{
		ID:          d.ID,
		UserID:      d.UserID,
		ClaimType:   domain.ClaimType(d.ClaimType),
		Amount:      d.Amount,
		Status:      domain.ClaimStatus(d.Status),
		Description: d.Description,
		Metadata:    []byte(d.Metadata),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
