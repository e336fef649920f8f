package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/projecthub/projects-api/internal/core/domain"
	"github.com/projecthub/projects-api/internal/core/ports"
)

const collectionTasks = "tasks"

type TaskRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{db: db, col: db.Collection(collectionTasks)}
}

// Create inserts a new task document with a repo-assigned monotonic id.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	id, err := nextID(ctx, r.db, collectionTasks)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *task
	created.ID = id
	if _, err := r.col.InsertOne(ctx, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var task domain.Task
	err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFound(fmt.Sprintf("Task not found by id: %d", id))
		}
		return nil, err
	}
	return &task, nil
}

// FindPage runs the dynamic filtered query: each of status, priority and
// projectId narrows the document filter only when set.
func (r *TaskRepository) FindPage(ctx context.Context, filter ports.TaskFilter) (domain.Page[domain.Task], error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var empty domain.Page[domain.Task]

	match := bson.M{}
	if filter.Status != nil {
		match["status"] = *filter.Status
	}
	if filter.Priority != nil {
		match["priority"] = *filter.Priority
	}
	if filter.ProjectID != nil {
		match["project_id"] = *filter.ProjectID
	}

	total, err := r.col.CountDocuments(ctx, match)
	if err != nil {
		return empty, err
	}

	opts := options.Find().
		SetSort(sortSpec(filter.PageQuery, taskSortFields)).
		SetSkip(int64(filter.Page) * int64(filter.Size)).
		SetLimit(int64(filter.Size))

	cursor, err := r.col.Find(ctx, match, opts)
	if err != nil {
		return empty, err
	}
	defer cursor.Close(ctx)

	var tasks []domain.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return empty, err
	}

	return domain.NewPage(tasks, filter.Page, filter.Size, total), nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.col.ReplaceOne(ctx, bson.M{"id": task.ID}, task)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.NewNotFound(fmt.Sprintf("Task not found by id: %d", task.ID))
	}
	return nil
}

func (r *TaskRepository) DeleteByID(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.NewNotFound(fmt.Sprintf("Task not found by id: %d", id))
	}
	return nil
}

func (r *TaskRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *TaskRepository) CountByProjectID(ctx context.Context, projectID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"project_id": projectID})
}

// EnsureIndexes creates the indexes used by the filter paths.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}},
		{Keys: bson.D{{Key: "project_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "priority", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

var taskSortFields = map[string]string{
	"id":        "id",
	"title":     "title",
	"status":    "status",
	"priority":  "priority",
	"dueDate":   "due_date",
	"projectId": "project_id",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}
