package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"cineasta-server/internal/model"
)

// Compile-time check to ensure pgClassroomRepository implements ClassroomRepository
var _ ClassroomRepository = (*pgClassroomRepository)(nil)

type pgClassroomRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPgClassroomRepository creates a new PostgreSQL-backed ClassroomRepository.
func NewPgClassroomRepository(pool *pgxpool.Pool, logger *zap.Logger) ClassroomRepository {
	return &pgClassroomRepository{
		pool:   pool,
		logger: logger.Named("PgClassroomRepo"),
	}
}

// Create inserts a new classroom.
func (r *pgClassroomRepository) Create(ctx context.Context, classroom *model.Classroom) error {
	query := `INSERT INTO classrooms (teacher_id, name, description, grade_level)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, is_active, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		classroom.TeacherID, classroom.Name, classroom.Description, classroom.GradeLevel,
	).Scan(&classroom.ID, &classroom.IsActive, &classroom.CreatedAt, &classroom.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create classroom", zap.Error(err), zap.Int64("teacherID", classroom.TeacherID))
		return fmt.Errorf("failed to create classroom: %w", err)
	}
	r.logger.Info("Classroom created", zap.Int64("classroomID", classroom.ID), zap.Int64("teacherID", classroom.TeacherID))
	return nil
}

// GetByID retrieves a classroom by ID.
func (r *pgClassroomRepository) GetByID(ctx context.Context, id int64) (*model.Classroom, error) {
	query := `SELECT id, teacher_id, name, description, grade_level, is_active, created_at, updated_at
	          FROM classrooms WHERE id = $1`
	var classroom model.Classroom
	if err := pgxscan.Get(ctx, r.pool, &classroom, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		r.logger.Error("Failed to get classroom", zap.Error(err), zap.Int64("classroomID", id))
		return nil, fmt.Errorf("failed to get classroom %d: %w", id, err)
	}
	return &classroom, nil
}

// ListByTeacherID returns the teacher's classrooms, newest first.
func (r *pgClassroomRepository) ListByTeacherID(ctx context.Context, teacherID int64) ([]model.Classroom, error) {
	query := `SELECT id, teacher_id, name, description, grade_level, is_active, created_at, updated_at
	          FROM classrooms WHERE teacher_id = $1 ORDER BY created_at DESC`
	var classrooms []model.Classroom
	if err := pgxscan.Select(ctx, r.pool, &classrooms, query, teacherID); err != nil {
		r.logger.Error("Failed to list classrooms", zap.Error(err), zap.Int64("teacherID", teacherID))
		return nil, fmt.Errorf("failed to list classrooms for teacher %d: %w", teacherID, err)
	}
	return classrooms, nil
}

// AddStudent adds a student to a classroom.
func (r *pgClassroomRepository) AddStudent(ctx context.Context, student *model.ClassroomStudent) error {
	query := `INSERT INTO classroom_students (classroom_id, student_name, student_code)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query, student.ClassroomID, student.StudentName, student.StudentCode).
		Scan(&student.ID, &student.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to add classroom student", zap.Error(err), zap.Int64("classroomID", student.ClassroomID))
		return fmt.Errorf("failed to add student to classroom %d: %w", student.ClassroomID, err)
	}
	return nil
}

// ListStudents returns the students of a classroom in insertion order.
func (r *pgClassroomRepository) ListStudents(ctx context.Context, classroomID int64) ([]model.ClassroomStudent, error) {
	query := `SELECT id, classroom_id, student_name, student_code, created_at
	          FROM classroom_students WHERE classroom_id = $1 ORDER BY id ASC`
	var students []model.ClassroomStudent
	if err := pgxscan.Select(ctx, r.pool, &students, query, classroomID); err != nil {
		r.logger.Error("Failed to list classroom students", zap.Error(err), zap.Int64("classroomID", classroomID))
		return nil, fmt.Errorf("failed to list students of classroom %d: %w", classroomID, err)
	}
	return students, nil
}

// ShareStory records a story shared into a classroom.
func (r *pgClassroomRepository) ShareStory(ctx context.Context, share *model.ClassroomStory) error {
	query := `INSERT INTO classroom_stories (classroom_id, story_id)
	          VALUES ($1, $2)
	          RETURNING id, shared_at`
	err := r.pool.QueryRow(ctx, query, share.ClassroomID, share.StoryID).Scan(&share.ID, &share.SharedAt)
	if err != nil {
		r.logger.Error("Failed to share story", zap.Error(err), zap.Int64("classroomID", share.ClassroomID), zap.Int64("storyID", share.StoryID))
		return fmt.Errorf("failed to share story %d to classroom %d: %w", share.StoryID, share.ClassroomID, err)
	}
	r.logger.Info("Story shared to classroom", zap.Int64("classroomID", share.ClassroomID), zap.Int64("storyID", share.StoryID))
	return nil
}
