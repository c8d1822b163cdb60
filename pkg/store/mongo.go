package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/tilewire/pkg/errors"
	"github.com/matzehuels/tilewire/pkg/graph"
)

// DefaultCollection holds one document per board.
const DefaultCollection = "boards"

// boardDocument is the stored shape of a board.
type boardDocument struct {
	ID        string        `bson:"_id"`
	Diagram   graph.Diagram `bson:"diagram"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

// MongoStore keeps boards in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	owned  bool
}

// NewMongoStore connects to uri and uses database.boards.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongo")
	}
	s := NewMongoStoreFromClient(client, database, DefaultCollection)
	s.owned = true
	return s, nil
}

// NewMongoStoreFromClient uses an existing client. Close leaves the client
// connected.
func NewMongoStoreFromClient(client *mongo.Client, database, collection string) *MongoStore {
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
}

// Load reads a board.
func (s *MongoStore) Load(ctx context.Context, id string) (graph.Diagram, error) {
	if err := checkID(id); err != nil {
		return graph.Diagram{}, err
	}
	var doc boardDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return graph.Diagram{}, notFound(id)
	}
	if err != nil {
		return graph.Diagram{}, errors.Wrap(errors.ErrCodeStorage, err, "load board %q", id)
	}
	return doc.Diagram, nil
}

// Save upserts a board.
func (s *MongoStore) Save(ctx context.Context, id string, d graph.Diagram) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}
	doc := boardDocument{ID: id, Diagram: d, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save board %q", id)
	}
	return nil
}

// Delete removes a board.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete board %q", id)
	}
	return nil
}

// List returns the stored board ids in lexical order.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list boards")
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "list boards")
		}
		ids = append(ids, doc.ID)
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list boards")
	}
	return ids, nil
}

// Close disconnects the client if the store created it.
func (s *MongoStore) Close() error {
	if !s.owned {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
