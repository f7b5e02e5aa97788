package database

import (
	"context"
	"log"
	"time"

	"jubetech/config"
	"jubetech/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names. Mongoose pluralized the originals; kept as stored on disk.
const (
	ColUsers      = "users"
	ColRoles      = "roles"
	ColCategories = "categories"
	ColGroups     = "groups"
	ColCourses    = "courses"
	ColSections   = "sections"
	ColLessons    = "lessons"
	ColPromotions = "promotions"
	ColTokens     = "tokens"
)

// ConnectDb establishes a connection to MongoDB and prepares the database:
// unique indexes and the default role set.
func ConnectDb(cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.DatabaseURL))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(cfg.DBName)

	if err := ensureIndexes(ctx, db); err != nil {
		return nil, err
	}
	if err := seedRoles(ctx, db); err != nil {
		return nil, err
	}

	log.Println("database connected successfully")
	return db, nil
}

// Disconnect closes the underlying client. Called on shutdown.
func Disconnect(db *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Client().Disconnect(ctx); err != nil {
		log.Printf("Error disconnecting from MongoDB: %v", err)
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		ColUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		ColCourses: {
			{Keys: bson.D{{Key: "title", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		},
		ColCategories: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		},
		ColGroups: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		},
		ColPromotions: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
		},
	}
	for col, models := range indexes {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

// seedRoles inserts the three default roles on an empty roles collection.
func seedRoles(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(ColRoles)
	count, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	var docs []interface{}
	for _, name := range []string{models.RoleAdmin, models.RoleStudent, models.RoleTutor} {
		docs = append(docs, models.Role{RoleName: name, CreatedAt: now, UpdatedAt: now})
	}
	if _, err := col.InsertMany(ctx, docs); err != nil {
		return err
	}
	log.Println("Default roles added successfully.")
	return nil
}

// IsOwner reports whether the document in the given collection was created by
// actorID. Shared ownership predicate for Course/Section/Lesson mutation.
func IsOwner(ctx context.Context, db *mongo.Database, collection string, docID, actorID primitive.ObjectID) (bool, error) {
	n, err := db.Collection(collection).CountDocuments(ctx, bson.M{
		"_id":       docID,
		"createdBy": actorID,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IsDuplicate reports whether another document (excluding excludeID when
// non-nil) already holds the given field value.
func IsDuplicate(ctx context.Context, db *mongo.Database, collection, field, value string, excludeID *primitive.ObjectID) (bool, error) {
	filter := bson.M{field: value}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}
	n, err := db.Collection(collection).CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
