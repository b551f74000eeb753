package application

import (
	"context"

	"github.com/example/studenthustle/domain/marketplace"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

// Store persists applications. Both list methods return newest first.
type Store interface {
	Insert(ctx context.Context, app *marketplace.Application) error
	ListByTask(ctx context.Context, taskID string) ([]marketplace.Application, error)
	// List returns all applications, or only those whose applicant name
	// equals applicantName when it is non-empty.
	List(ctx context.Context, applicantName string) ([]marketplace.Application, error)
}

// Repository handles application persistence using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the applications table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&marketplace.Application{})
}

// Insert stores a new application.
func (r *Repository) Insert(ctx context.Context, app *marketplace.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// ListByTask returns the applications for one task.
func (r *Repository) ListByTask(ctx context.Context, taskID string) ([]marketplace.Application, error) {
	apps := make([]marketplace.Application, 0)
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at desc").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// List returns applications, optionally filtered by applicant name.
func (r *Repository) List(ctx context.Context, applicantName string) ([]marketplace.Application, error) {
	query := r.db.WithContext(ctx).Order("created_at desc")
	if applicantName != "" {
		query = query.Where("applicant_name = ?", applicantName)
	}

	apps := make([]marketplace.Application, 0)
	if err := query.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// MongoStore keeps applications in the "applications" collection.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore returns an application store over db.
func NewMongoStore(ctx context.Context, db *mongo.Database) (*MongoStore, error) {
	coll := db.Collection("applications")
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "task_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "applicant_name", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return nil, err
	}
	return &MongoStore{coll: coll}, nil
}

// Insert stores a new application.
func (s *MongoStore) Insert(ctx context.Context, app *marketplace.Application) error {
	_, err := s.coll.InsertOne(ctx, app)
	return err
}

// ListByTask returns the applications for one task.
func (s *MongoStore) ListByTask(ctx context.Context, taskID string) ([]marketplace.Application, error) {
	return s.find(ctx, bson.M{"task_id": taskID})
}

// List returns applications, optionally filtered by applicant name.
func (s *MongoStore) List(ctx context.Context, applicantName string) ([]marketplace.Application, error) {
	filter := bson.M{}
	if applicantName != "" {
		filter["applicant_name"] = applicantName
	}
	return s.find(ctx, filter)
}

func (s *MongoStore) find(ctx context.Context, filter bson.M) ([]marketplace.Application, error) {
	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	apps := make([]marketplace.Application, 0)
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}
