package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/projecthub/projects-api/internal/api/middleware"
	"github.com/projecthub/projects-api/internal/core/domain"
)

// actor returns the authenticated username injected by the Auth middleware.
// Empty on public routes.
func actor(c echo.Context) string {
	username, _ := c.Get(middleware.ContextUsername).(string)
	return username
}

// bindBody decodes the JSON body into v, converting decode failures into a
// MALFORMED_BODY domain error. Date parse failures get the format hint the
// wire contract documents.
func bindBody(c echo.Context, v any) error {
	err := c.Bind(v)
	if err == nil {
		return nil
	}
	if strings.Contains(errString(err), "yyyy-MM-ddTHH:mm") {
		return domain.NewMalformedBody("Invalid date format. Use 'yyyy-MM-ddTHH:mm' (e.g., 2025-10-16T14:30)")
	}
	return domain.NewMalformedBody("Request body is invalid or malformed")
}

func errString(err error) string {
	var full string
	for e := err; e != nil; e = unwrap(e) {
		full += e.Error()
	}
	return full
}

func unwrap(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}

// pathID parses the {id} path parameter.
func pathID(c echo.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.NewBadParameter(fmt.Sprintf("Parameter 'id' has invalid value '%s', expected integer", raw))
	}
	return id, nil
}

// queryInt parses an optional integer query parameter.
func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewBadParameter(fmt.Sprintf("Parameter '%s' has invalid value '%s', expected integer", name, raw))
	}
	return v, nil
}

// queryInt64Ptr parses an optional int64 query parameter, nil when absent.
func queryInt64Ptr(c echo.Context, name string) (*int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, domain.NewBadParameter(fmt.Sprintf("Parameter '%s' has invalid value '%s', expected integer", name, raw))
	}
	return &v, nil
}

// pageQuery extracts the shared pagination parameters. Defaults are applied
// later by PageQuery.Normalize.
func pageQuery(c echo.Context) (domain.PageQuery, error) {
	page, err := queryInt(c, "page", 0)
	if err != nil {
		return domain.PageQuery{}, err
	}
	size, err := queryInt(c, "size", 0)
	if err != nil {
		return domain.PageQuery{}, err
	}
	return domain.PageQuery{
		Page:      page,
		Size:      size,
		SortBy:    c.QueryParam("sortBy"),
		Direction: c.QueryParam("direction"),
	}, nil
}
