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
)

const collectionProjects = "projects"

type ProjectRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{db: db, col: db.Collection(collectionProjects)}
}

// Create inserts a new project document with a repo-assigned monotonic id.
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	id, err := nextID(ctx, r.db, collectionProjects)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *project
	created.ID = id
	if _, err := r.col.InsertOne(ctx, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id int64) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var project domain.Project
	err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFound(fmt.Sprintf("Project not found by id: %d", id))
		}
		return nil, err
	}
	return &project, nil
}

// FindPage returns one page of projects sorted by the query's field and
// direction, together with the pagination bookkeeping.
func (r *ProjectRepository) FindPage(ctx context.Context, query domain.PageQuery) (domain.Page[domain.Project], error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var empty domain.Page[domain.Project]

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return empty, err
	}

	opts := options.Find().
		SetSort(sortSpec(query, projectSortFields)).
		SetSkip(int64(query.Page) * int64(query.Size)).
		SetLimit(int64(query.Size))

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return empty, err
	}
	defer cursor.Close(ctx)

	var projects []domain.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return empty, err
	}

	return domain.NewPage(projects, query.Page, query.Size, total), nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.col.ReplaceOne(ctx, bson.M{"id": project.ID}, project)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.NewNotFound(fmt.Sprintf("Project not found by id: %d", project.ID))
	}
	return nil
}

func (r *ProjectRepository) DeleteByID(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.NewNotFound(fmt.Sprintf("Project not found by id: %d", id))
	}
	return nil
}

func (r *ProjectRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// EnsureIndexes creates the indexes used by the lookup paths.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// projectSortFields whitelists the wire-level sort fields against their
// document fields; anything else falls back to id.
var projectSortFields = map[string]string{
	"id":        "id",
	"name":      "name",
	"startDate": "start_date",
	"endDate":   "end_date",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// sortSpec translates a normalized PageQuery into a Mongo sort document.
func sortSpec(query domain.PageQuery, fields map[string]string) bson.D {
	field, ok := fields[query.SortBy]
	if !ok {
		field = "id"
	}
	order := 1
	if query.Direction == domain.DirectionDesc {
		order = -1
	}
	return bson.D{{Key: field, Value: order}}
}
