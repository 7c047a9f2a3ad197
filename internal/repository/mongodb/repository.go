// Package mongodb stores workclock records as documents keyed by _id.
package mongodb

import (
	"context"
	stderrors "errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"workclock/internal/errors"
	"workclock/internal/storage"
)

// DefaultCollection is used when Options.Collection is empty.
const DefaultCollection = "kv_store"

// Options configures the target collection and per-call timeouts.
type Options struct {
	Database     string
	Collection   string
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

type kvDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Repository implements storage.Store on a MongoDB collection.
type Repository struct {
	client     *mongo.Client
	collection *mongo.Collection
	options    Options
	now        func() time.Time
}

// New connects to uri and verifies the connection.
func New(ctx context.Context, uri string, opts Options) (*Repository, error) {
	if opts.Database == "" {
		return nil, errors.NewInvalidInputError("database", opts.Database, "mongo database name is required")
	}
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.NewStorageError("connect to mongo", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, errors.NewStorageError("ping mongo", err)
	}

	return &Repository{
		client:     client,
		collection: client.Database(opts.Database).Collection(opts.Collection),
		options:    opts,
		now:        time.Now,
	}, nil
}

func (r *Repository) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := withTimeout(ctx, r.options.QueryTimeout)
	defer cancel()

	var doc kvDocument
	if err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&doc); err != nil {
		return nil, translate("get "+key, key, err)
	}
	return []byte(doc.Value), nil
}

func (r *Repository) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := withTimeout(ctx, r.options.WriteTimeout)
	defer cancel()

	doc := kvDocument{Key: key, Value: string(value), UpdatedAt: r.now().UTC()}
	_, err := r.collection.ReplaceOne(ctx, bson.D{{Key: "_id", Value: key}}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return translate("set "+key, key, err)
	}
	return nil
}

func (r *Repository) GetByPrefix(ctx context.Context, prefix string) ([]storage.Record, error) {
	ctx, cancel := withTimeout(ctx, r.options.QueryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, prefixFilter(prefix), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, translate("get by prefix "+prefix, prefix, err)
	}

	var docs []kvDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translate("decode records", prefix, err)
	}

	records := make([]storage.Record, len(docs))
	for i, doc := range docs {
		records[i] = storage.Record{Key: doc.Key, Value: []byte(doc.Value)}
	}
	return records, nil
}

func (r *Repository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}

// prefixFilter matches _id values starting with prefix. An anchored regex
// lets the server use the _id index.
func prefixFilter(prefix string) bson.D {
	return bson.D{{Key: "_id", Value: bson.D{{Key: "$regex", Value: "^" + regexp.QuoteMeta(prefix)}}}}
}

func translate(operation, key string, err error) error {
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return errors.NewNotFoundError("key", key)
	}
	return errors.NewStorageError(operation, err)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

var _ storage.Store = (*Repository)(nil)
