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

	"github.com/stickpark/game-portal/internal/core/domain"
)

const usersCollection = "users"

// caseInsensitive compares strings without regard to case, giving the
// case-insensitive uniqueness and lookup the username field requires.
var caseInsensitive = options.Collation{Locale: "en", Strength: 2}

type UserRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewUserRepository(client *mongo.Client, db *mongo.Database) *UserRepository {
	return &UserRepository{client: client, coll: db.Collection(usersCollection)}
}

type userDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Username        string             `bson:"username"`
	PasswordHash    string             `bson:"password_hash"`
	PhoneNumber     string             `bson:"phone_number"`
	IsPhoneVerified bool               `bson:"is_phone_verified"`
	Role            string             `bson:"role"`
	IsLocked        bool               `bson:"is_locked"`
	Privacy         string             `bson:"privacy"`
	DisplayName     string             `bson:"display_name"`
	Bio             string             `bson:"bio"`
	AvatarURL       string             `bson:"avatar_url"`
	LastInfoChange  time.Time          `bson:"last_info_change,omitempty"`

	PlayTurns        map[string]int `bson:"play_turns"`
	Friends          []string       `bson:"friends"`
	RequestsSent     []string       `bson:"requests_sent"`
	RequestsReceived []string       `bson:"requests_received"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toDoc(u *domain.User) *userDoc {
	doc := &userDoc{
		Username:        u.Username,
		PasswordHash:    u.PasswordHash,
		PhoneNumber:     u.PhoneNumber,
		IsPhoneVerified: u.IsPhoneVerified,
		Role:            u.Role,
		IsLocked:        u.IsLocked,
		Privacy:         u.Privacy,
		DisplayName:     u.DisplayName,
		Bio:             u.Bio,
		AvatarURL:       u.AvatarURL,
		LastInfoChange:  u.LastInfoChange,

		PlayTurns:        u.PlayTurns,
		Friends:          u.Friends,
		RequestsSent:     u.RequestsSent,
		RequestsReceived: u.RequestsReceived,

		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.ID != "" {
		if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
			doc.ID = oid
		}
	}
	return doc
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:              d.ID.Hex(),
		Username:        d.Username,
		PasswordHash:    d.PasswordHash,
		PhoneNumber:     d.PhoneNumber,
		IsPhoneVerified: d.IsPhoneVerified,
		Role:            d.Role,
		IsLocked:        d.IsLocked,
		Privacy:         d.Privacy,
		DisplayName:     d.DisplayName,
		Bio:             d.Bio,
		AvatarURL:       d.AvatarURL,
		LastInfoChange:  d.LastInfoChange,

		PlayTurns:        d.PlayTurns,
		Friends:          d.Friends,
		RequestsSent:     d.RequestsSent,
		RequestsReceived: d.RequestsReceived,

		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toDoc(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid}, nil)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username}, &caseInsensitive)
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"phone_number": phone}, nil)
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, collation *options.Collation) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.findOneCtx(ctx, filter, collation)
}

// findOneCtx reads with the caller's context untouched, so transactional
// reads stay bound to their session.
func (r *UserRepository) findOneCtx(ctx context.Context, filter bson.M, collation *options.Collation) (*domain.User, error) {
	opts := options.FindOne()
	if collation != nil {
		opts.SetCollation(collation)
	}

	var doc userDoc
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// Update reads the document inside a transaction, applies mutate, and
// replaces it. A concurrent write between the in-transaction read and the
// commit raises a write conflict; the retried attempt re-reads the fresh
// document, so mutate's checks hold at commit time.
func (r *UserRepository) Update(ctx context.Context, id string, mutate func(*domain.User) error) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var updated *domain.User
	err = withTransaction(ctx, r.client, func(sc mongo.SessionContext) error {
		user, err := r.findOneCtx(sc, bson.M{"_id": oid}, nil)
		if err != nil {
			return err
		}
		if err := mutate(user); err != nil {
			return err
		}
		if err := r.replace(sc, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdatePair applies mutate to both user documents inside one transaction.
// Both documents are read through the session, so every retry after a write
// conflict re-runs mutate against the state the conflicting writer left
// behind; paired social and ledger mutations are never observed
// half-applied and never clobber a concurrent update.
func (r *UserRepository) UpdatePair(ctx context.Context, aID, bID string, mutate func(a, b *domain.User) error) error {
	aOID, err := primitive.ObjectIDFromHex(aID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	bOID, err := primitive.ObjectIDFromHex(bID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return withTransaction(ctx, r.client, func(sc mongo.SessionContext) error {
		a, err := r.findOneCtx(sc, bson.M{"_id": aOID}, nil)
		if err != nil {
			return err
		}
		b, err := r.findOneCtx(sc, bson.M{"_id": bOID}, nil)
		if err != nil {
			return err
		}
		if err := mutate(a, b); err != nil {
			return err
		}
		if err := r.replace(sc, a); err != nil {
			return err
		}
		return r.replace(sc, b)
	})
}

// IncrementBalance adjusts one ledger entry with a single $inc, returning
// the post-update balance. The field-targeted operator cannot lose a
// concurrent write to any other field.
func (r *UserRepository) IncrementBalance(ctx context.Context, id, gameID string, delta int) (int, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$inc": bson.M{"play_turns." + gameID: delta}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("increment balance: %w", err)
	}
	return doc.PlayTurns[gameID], nil
}

func (r *UserRepository) replace(ctx context.Context, user *domain.User) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toDoc(user))
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete removes the user document and pulls its ID out of every other
// user's social sets in the same transaction.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return withTransaction(ctx, r.client, func(sc mongo.SessionContext) error {
		res, err := r.coll.DeleteOne(sc, bson.M{"_id": oid})
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		if res.DeletedCount == 0 {
			return domain.ErrUserNotFound
		}

		pull := bson.M{"$pull": bson.M{
			"friends":           id,
			"requests_sent":     id,
			"requests_received": id,
		}}
		if _, err := r.coll.UpdateMany(sc, bson.M{}, pull); err != nil {
			return fmt.Errorf("scrub social sets: %w", err)
		}
		return nil
	})
}

func (r *UserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, fmt.Errorf("count by role: %w", err)
	}
	return n, nil
}

func (r *UserRepository) CountGreaterBalance(ctx context.Context, gameID string, balance int) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"play_turns." + gameID: bson.M{"$gt": balance}}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count greater balance: %w", err)
	}
	return n, nil
}

func (r *UserRepository) List(ctx context.Context, page, limit int) ([]*domain.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	users, err := decodeUsers(ctx, cursor)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) Search(ctx context.Context, query string, limit int) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	re := literalRegex(query)
	filter := bson.M{"$or": bson.A{
		bson.M{"username": re},
		bson.M{"display_name": re},
	}}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeUsers(ctx, cursor)
}

func decodeUsers(ctx context.Context, cursor *mongo.Cursor) ([]*domain.User, error) {
	var users []*domain.User
	for cursor.Next(ctx) {
		var doc userDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}
	return users, nil
}

// EnsureIndexes creates the uniqueness indexes the account store relies on.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetCollation(&caseInsensitive),
		},
		{
			Keys:    bson.D{{Key: "phone_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
