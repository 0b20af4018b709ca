package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	coursesQuery = `SELECT id, course_name, course_price FROM courses ORDER BY id`

	loadTimeout = 5 * time.Second
)

var ErrEmptyCatalog = errors.New("course catalog is empty")

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// LoadFromDatabase reads the courses table through the pgx stdlib driver.
func LoadFromDatabase(ctx context.Context, databaseURL string) (Catalog, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to open catalog database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return Catalog{}, fmt.Errorf("failed to ping catalog database: %w", err)
	}

	courses, err := queryCourses(ctx, db)
	if err != nil {
		return Catalog{}, err
	}

	return New(courses), nil
}

func queryCourses(ctx context.Context, q queryer) ([]Course, error) {
	rows, err := q.QueryContext(ctx, coursesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []Course
	for rows.Next() {
		var course Course
		if err := rows.Scan(&course.ID, &course.CourseName, &course.CoursePrice); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}

	if len(courses) == 0 {
		return nil, ErrEmptyCatalog
	}

	return courses, nil
}

// Load returns the database catalog when databaseURL is set and reachable,
// otherwise the built-in list.
func Load(ctx context.Context, databaseURL string, logger *slog.Logger) Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "catalog"))

	if databaseURL == "" {
		logger.Info("using built-in course catalog", slog.Int("courses", len(defaultCourses)))
		return Default()
	}

	cat, err := LoadFromDatabase(ctx, databaseURL)
	if err != nil {
		logger.Warn("falling back to built-in course catalog", slog.Any("err", err))
		return Default()
	}

	logger.Info("loaded course catalog from database", slog.Int("courses", cat.Len()))
	return cat
}
