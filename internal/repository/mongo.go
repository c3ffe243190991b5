package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/stinex/backend/internal/model"
)

// NewMongoClient connects to MongoDB and verifies the connection with a ping.
func NewMongoClient(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}

// MongoCollection is the MongoDB implementation of Collection. Documents are
// addressed by their "id" field; the native _id is left to the server.
type MongoCollection[T Document] struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoCollection creates a MongoCollection over db.name.
func NewMongoCollection[T Document](db *mongo.Database, name string) *MongoCollection[T] {
	return &MongoCollection[T]{
		coll: db.Collection(name),
		now:  storeNow,
	}
}

// Ensure MongoCollection implements Collection at compile time.
var _ Collection[model.Service] = (*MongoCollection[model.Service])(nil)

func (c *MongoCollection[T]) FindMany(ctx context.Context, q Query) ([]T, error) {
	opts := options.Find().SetLimit(int64(q.limit()))
	if q.Sort.Field != "" {
		dir := 1
		if q.Sort.Desc {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.Sort.Field, Value: dir}})
	}

	cur, err := c.coll.Find(ctx, toBSON(q.Filter), opts)
	if err != nil {
		return nil, storeError("find "+c.coll.Name(), err)
	}
	defer cur.Close(ctx)

	docs := make([]T, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storeError("decode "+c.coll.Name(), err)
	}
	return docs, nil
}

func (c *MongoCollection[T]) FindOne(ctx context.Context, id string) (T, error) {
	var doc T
	err := c.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, storeError("find_one "+c.coll.Name(), err)
	}
	return doc, nil
}

func (c *MongoCollection[T]) Insert(ctx context.Context, doc T) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return storeError("insert "+c.coll.Name(), err)
	}
	return nil
}

// Update applies fields with $set together with a fresh updated_at.
func (c *MongoCollection[T]) Update(ctx context.Context, id string, fields Fields) error {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	set["updated_at"] = c.now()

	res, err := c.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return storeError("update "+c.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *MongoCollection[T]) Delete(ctx context.Context, id string) error {
	res, err := c.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return storeError("delete "+c.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *MongoCollection[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	n, err := c.coll.CountDocuments(ctx, toBSON(filter))
	if err != nil {
		return 0, storeError("count "+c.coll.Name(), err)
	}
	return n, nil
}

// ensureIndexes creates the unique id index plus the secondary indexes.
func (c *MongoCollection[T]) ensureIndexes(ctx context.Context, fields []string) error {
	models := []mongo.IndexModel{{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}}
	for _, f := range fields {
		models = append(models, mongo.IndexModel{Keys: bson.D{{Key: f, Value: 1}}})
	}
	if _, err := c.coll.Indexes().CreateMany(ctx, models); err != nil {
		return storeError("create indexes "+c.coll.Name(), err)
	}
	return nil
}

func (c *MongoCollection[T]) drop(ctx context.Context) error {
	if err := c.coll.Drop(ctx); err != nil {
		return storeError("drop "+c.coll.Name(), err)
	}
	return nil
}

func toBSON(f Filter) bson.M {
	m := bson.M{}
	for k, v := range f {
		m[k] = v
	}
	return m
}

type mongoBackend struct {
	client       *mongo.Client
	contacts     *MongoCollection[model.Contact]
	services     *MongoCollection[model.Service]
	testimonials *MongoCollection[model.Testimonial]
}

func (b *mongoBackend) Ping(ctx context.Context) error {
	if err := b.client.Ping(ctx, readpref.Primary()); err != nil {
		return storeError("ping", err)
	}
	return nil
}

func (b *mongoBackend) Migrate(ctx context.Context) error {
	if err := b.contacts.ensureIndexes(ctx, indexedFields[ContactsCollection]); err != nil {
		return err
	}
	if err := b.services.ensureIndexes(ctx, indexedFields[ServicesCollection]); err != nil {
		return err
	}
	return b.testimonials.ensureIndexes(ctx, indexedFields[TestimonialsCollection])
}

func (b *mongoBackend) Drop(ctx context.Context) error {
	if err := b.contacts.drop(ctx); err != nil {
		return err
	}
	if err := b.services.drop(ctx); err != nil {
		return err
	}
	return b.testimonials.drop(ctx)
}

func (b *mongoBackend) Close(ctx context.Context) error {
	return b.client.Disconnect(ctx)
}

// OpenMongo connects to MongoDB and returns a Store over database dbName.
func OpenMongo(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := NewMongoClient(ctx, uri)
	if err != nil {
		return nil, storeError("connect", err)
	}
	db := client.Database(dbName)
	b := &mongoBackend{
		client:       client,
		contacts:     NewMongoCollection[model.Contact](db, ContactsCollection),
		services:     NewMongoCollection[model.Service](db, ServicesCollection),
		testimonials: NewMongoCollection[model.Testimonial](db, TestimonialsCollection),
	}
	return &Store{
		Contacts:     b.contacts,
		Services:     b.services,
		Testimonials: b.testimonials,
		backend:      b,
	}, nil
}
