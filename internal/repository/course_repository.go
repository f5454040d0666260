package repository

//go:generate mockgen -source=course_repository.go -destination=mocks/mock_course_repository.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"courses-api/internal/entities"
)

// CourseRepository defines the interface for course database operations.
// Reads return courses with Creator populated.
type CourseRepository interface {
	FindAll(ctx context.Context) ([]*entities.Course, error)
	FindByID(ctx context.Context, id int64) (*entities.Course, error)
	Create(ctx context.Context, course *entities.Course) (*entities.Course, error)
	Update(ctx context.Context, course *entities.Course) error
	Delete(ctx context.Context, id int64) error
}

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) CourseRepository {
	return &courseRepository{db: db}
}

const courseWithCreatorQuery = `
	SELECT c.id, c.title, c.description, c.estimated_time, c.materials_needed,
	       c.user_id, c.created_at, c.updated_at,
	       u.id, u.first_name, u.last_name, u.email_address
	FROM courses c
	JOIN users u ON u.id = c.user_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourseWithCreator(row rowScanner) (*entities.Course, error) {
	var course entities.Course
	var creator entities.User
	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.EstimatedTime,
		&course.MaterialsNeeded,
		&course.UserID,
		&course.CreatedAt,
		&course.UpdatedAt,
		&creator.ID,
		&creator.FirstName,
		&creator.LastName,
		&creator.EmailAddress,
	)
	if err != nil {
		return nil, err
	}
	course.Creator = &creator
	return &course, nil
}

// FindAll retrieves every course together with its creator
func (r *courseRepository) FindAll(ctx context.Context) ([]*entities.Course, error) {
	rows, err := r.db.QueryContext(ctx, courseWithCreatorQuery+` ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get courses: %w", err)
	}
	defer rows.Close()

	courses := []*entities.Course{}
	for rows.Next() {
		course, err := scanCourseWithCreator(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}

	return courses, nil
}

func (r *courseRepository) FindByID(ctx context.Context, id int64) (*entities.Course, error) {
	course, err := scanCourseWithCreator(r.db.QueryRowContext(ctx, courseWithCreatorQuery+` WHERE c.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find course: %w", err)
	}

	return course, nil
}

// Create inserts a new course owned by course.UserID
func (r *courseRepository) Create(ctx context.Context, course *entities.Course) (*entities.Course, error) {
	query := `
		INSERT INTO courses (title, description, estimated_time, materials_needed, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, description, estimated_time, materials_needed, user_id, created_at, updated_at
	`

	var created entities.Course
	err := r.db.QueryRowContext(ctx, query,
		course.Title, course.Description, course.EstimatedTime, course.MaterialsNeeded, course.UserID,
	).Scan(
		&created.ID,
		&created.Title,
		&created.Description,
		&created.EstimatedTime,
		&created.MaterialsNeeded,
		&created.UserID,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	return &created, nil
}

// Update rewrites the editable fields of a course. The owner is never changed.
func (r *courseRepository) Update(ctx context.Context, course *entities.Course) error {
	query := `
		UPDATE courses
		SET title = $1, description = $2, estimated_time = $3, materials_needed = $4, updated_at = NOW()
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		course.Title, course.Description, course.EstimatedTime, course.MaterialsNeeded, course.ID)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
