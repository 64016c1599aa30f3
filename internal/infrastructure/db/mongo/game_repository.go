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

const gamesCollection = "games"

type GameRepository struct {
	coll *mongo.Collection
}

func NewGameRepository(db *mongo.Database) *GameRepository {
	return &GameRepository{coll: db.Collection(gamesCollection)}
}

type gameDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Description  string             `bson:"description"`
	GameURL      string             `bson:"game_url"`
	ThumbnailURL string             `bson:"thumbnail_url"`
	Category     string             `bson:"category"`
	IsActive     bool               `bson:"is_active"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toGameDoc(g *domain.Game) *gameDoc {
	doc := &gameDoc{
		Name:         g.Name,
		Description:  g.Description,
		GameURL:      g.GameURL,
		ThumbnailURL: g.ThumbnailURL,
		Category:     g.Category,
		IsActive:     g.IsActive,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
	if g.ID != "" {
		if oid, err := primitive.ObjectIDFromHex(g.ID); err == nil {
			doc.ID = oid
		}
	}
	return doc
}

func (d *gameDoc) toDomain() *domain.Game {
	return &domain.Game{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Description:  d.Description,
		GameURL:      d.GameURL,
		ThumbnailURL: d.ThumbnailURL,
		Category:     d.Category,
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *GameRepository) Create(ctx context.Context, game *domain.Game) (*domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toGameDoc(game))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrGameExists
		}
		return nil, fmt.Errorf("insert game: %w", err)
	}

	created := *game
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *GameRepository) FindByID(ctx context.Context, id string) (*domain.Game, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGameNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *GameRepository) FindByName(ctx context.Context, name string) (*domain.Game, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *GameRepository) findOne(ctx context.Context, filter bson.M) (*domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc gameDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGameNotFound
		}
		return nil, fmt.Errorf("find game: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *GameRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeGames(ctx, cursor)
}

func (r *GameRepository) Update(ctx context.Context, game *domain.Game) error {
	oid, err := primitive.ObjectIDFromHex(game.ID)
	if err != nil {
		return domain.ErrGameNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toGameDoc(game))
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}

func (r *GameRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrGameNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}

func (r *GameRepository) Search(ctx context.Context, query string, limit int) ([]*domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"name": literalRegex(query)}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("search games: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeGames(ctx, cursor)
}

func decodeGames(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Game, error) {
	var games []*domain.Game
	for cursor.Next(ctx) {
		var doc gameDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode game: %w", err)
		}
		games = append(games, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}
	return games, nil
}

// EnsureIndexes creates the unique name index on the games collection.
func (r *GameRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
