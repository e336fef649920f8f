package domain

// Sort directions accepted by paged queries.
const (
	DirectionAsc  = "ASC"
	DirectionDesc = "DESC"
)

// PageQuery captures pagination and sorting for listing endpoints.
// Defaults: page 0, size 10, sorted ascending by id.
type PageQuery struct {
	Page      int
	Size      int
	SortBy    string
	Direction string
}

// Normalize applies the documented defaults and clamps negative values.
// An unknown direction is a caller error and reported as BAD_PARAMETER.
func (q PageQuery) Normalize() (PageQuery, error) {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size <= 0 {
		q.Size = 10
	}
	if q.SortBy == "" {
		q.SortBy = "id"
	}
	switch q.Direction {
	case "":
		q.Direction = DirectionAsc
	case DirectionAsc, DirectionDesc:
	default:
		return q, NewBadParameter("Invalid sort direction '" + q.Direction + "', expected ASC or DESC")
	}
	return q, nil
}

// Page is one slice of a paged result set.
type Page[T any] struct {
	Content       []T   `json:"content"`
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	Size          int   `json:"size"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewPage assembles a Page from one slice of content plus the total count.
func NewPage[T any](content []T, page, size int, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := int((total + int64(size) - 1) / int64(size))
	return Page[T]{
		Content:       content,
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalElements: total,
		Size:          size,
		First:         page == 0,
		Last:          page >= totalPages-1,
	}
}

// MapPage converts a Page's content while preserving pagination metadata.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	content := make([]U, 0, len(p.Content))
	for _, item := range p.Content {
		content = append(content, fn(item))
	}
	return Page[U]{
		Content:       content,
		CurrentPage:   p.CurrentPage,
		TotalPages:    p.TotalPages,
		TotalElements: p.TotalElements,
		Size:          p.Size,
		First:         p.First,
		Last:          p.Last,
	}
}
