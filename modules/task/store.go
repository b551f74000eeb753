package task

import (
	"context"
	"errors"

	"github.com/example/studenthustle/domain/marketplace"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

// Store persists tasks.
type Store interface {
	Insert(ctx context.Context, task *marketplace.Task) error
	FindByID(ctx context.Context, id string) (*marketplace.Task, error)
	// List returns every task, oldest first.
	List(ctx context.Context) ([]marketplace.Task, error)
}

// Repository handles task persistence using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the tasks table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&marketplace.Task{})
}

// Insert stores a new task.
func (r *Repository) Insert(ctx context.Context, task *marketplace.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by ID.
func (r *Repository) FindByID(ctx context.Context, id string) (*marketplace.Task, error) {
	var task marketplace.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// List returns every task ordered by creation time.
func (r *Repository) List(ctx context.Context) ([]marketplace.Task, error) {
	tasks := make([]marketplace.Task, 0)
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// MongoStore keeps tasks in the "tasks" collection.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore returns a task store over db.
func NewMongoStore(ctx context.Context, db *mongo.Database) (*MongoStore, error) {
	coll := db.Collection("tasks")
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: 1}},
	})
	if err != nil {
		return nil, err
	}
	return &MongoStore{coll: coll}, nil
}

// Insert stores a new task.
func (s *MongoStore) Insert(ctx context.Context, task *marketplace.Task) error {
	_, err := s.coll.InsertOne(ctx, task)
	return err
}

// FindByID finds a task by ID.
func (s *MongoStore) FindByID(ctx context.Context, id string) (*marketplace.Task, error) {
	var task marketplace.Task
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&task); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// List returns every task ordered by creation time.
func (s *MongoStore) List(ctx context.Context) ([]marketplace.Task, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	tasks := make([]marketplace.Task, 0)
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}
