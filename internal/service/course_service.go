package service

//go:generate mockgen -source=course_service.go -destination=mocks/mock_course_service.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"courses-api/internal/cache"
	"courses-api/internal/entities"
	"courses-api/internal/logging"
	"courses-api/internal/models"
	"courses-api/internal/repository"
	"courses-api/internal/validation"
)

// CourseService defines the interface for course business logic
type CourseService interface {
	List(ctx context.Context) ([]*entities.Course, error)
	Get(ctx context.Context, id int64) (*entities.Course, error)
	Create(ctx context.Context, owner *entities.User, req *models.CourseRequest) (*entities.Course, error)
	Update(ctx context.Context, requester *entities.User, id int64, req *models.CourseRequest) error
	Delete(ctx context.Context, requester *entities.User, id int64) error
}

type courseService struct {
	repo     repository.CourseRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewCourseService creates a new course service. cacheClient may be nil.
func NewCourseService(repo repository.CourseRepository, cacheClient cache.Cache, cacheTTL time.Duration) CourseService {
	return &courseService{
		repo:     repo,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
	}
}

func courseGenerationKey(id int64) string {
	return fmt.Sprintf("course:%d:generation", id)
}

func courseCacheKey(id, generation int64) string {
	return fmt.Sprintf("course:%d:v%d", id, generation)
}

// authorize allows a mutation only when the requester owns the course.
func authorize(requester *entities.User, course *entities.Course) error {
	if requester.ID != course.UserID {
		return ErrForbidden
	}
	return nil
}

func (s *courseService) List(ctx context.Context) ([]*entities.Course, error) {
	return s.repo.FindAll(ctx)
}

// Get returns (nil, nil) when the course does not exist.
func (s *courseService) Get(ctx context.Context, id int64) (*entities.Course, error) {
	var cacheKey string
	if s.cache != nil {
		generation, err := s.generation(ctx, id)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int64("course_id", id).Msg("Course cache generation read failed")
		} else {
			cacheKey = courseCacheKey(id, generation)

			var cached entities.Course
			err := s.cache.GetJSON(ctx, cacheKey, &cached)
			if err == nil {
				return &cached, nil
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				logging.Ctx(ctx).Warn().Err(err).Int64("course_id", id).Msg("Course cache read failed")
			}
		}
	}

	course, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if err := s.cache.SetJSON(ctx, cacheKey, course, s.cacheTTL); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int64("course_id", id).Msg("Course cache write failed")
		}
	}

	return course, nil
}

func (s *courseService) Create(ctx context.Context, owner *entities.User, req *models.CourseRequest) (*entities.Course, error) {
	if verr := validation.Validate(req.Fields(), validation.CourseRules); verr != nil {
		return nil, verr
	}

	course, err := s.repo.Create(ctx, &entities.Course{
		Title:           req.Title,
		Description:     req.Description,
		EstimatedTime:   req.EstimatedTime,
		MaterialsNeeded: req.MaterialsNeeded,
		UserID:          owner.ID,
	})
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Int64("course_id", course.ID).Int64("user_id", owner.ID).Msg("Course created")
	return course, nil
}

// Update validates, loads, authorizes, then writes. A missing course is not
// mapped to a domain error and surfaces as an unexpected failure.
func (s *courseService) Update(ctx context.Context, requester *entities.User, id int64, req *models.CourseRequest) error {
	if verr := validation.Validate(req.Fields(), validation.CourseRules); verr != nil {
		return verr
	}

	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load course %d: %w", id, err)
	}

	if err := authorize(requester, course); err != nil {
		return err
	}

	course.Title = req.Title
	course.Description = req.Description
	course.EstimatedTime = req.EstimatedTime
	course.MaterialsNeeded = req.MaterialsNeeded

	if err := s.repo.Update(ctx, course); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *courseService) Delete(ctx context.Context, requester *entities.User, id int64) error {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load course %d: %w", id, err)
	}

	if err := authorize(requester, course); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	logging.Ctx(ctx).Info().Int64("course_id", id).Int64("user_id", requester.ID).Msg("Course deleted")
	return nil
}

// generation returns the cache generation of a course. Entries are keyed by
// it, so a Get that loaded a row before invalidate bumped the generation
// writes to a key no later Get reads.
func (s *courseService) generation(ctx context.Context, id int64) (int64, error) {
	value, err := s.cache.Get(ctx, courseGenerationKey(id))
	if errors.Is(err, cache.ErrCacheMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(value, 10, 64)
}

func (s *courseService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}

	generation, err := s.cache.Incr(ctx, courseGenerationKey(id))
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int64("course_id", id).Msg("Course cache invalidation failed")
		return
	}

	if err := s.cache.Delete(ctx, courseCacheKey(id, generation-1)); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int64("course_id", id).Msg("Stale course cache entry not removed")
	}
}
