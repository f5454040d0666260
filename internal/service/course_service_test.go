package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"courses-api/internal/cache"
	"courses-api/internal/entities"
	"courses-api/internal/models"
	"courses-api/internal/repository"
	"courses-api/internal/repository/mocks"
	"courses-api/internal/validation"
)

// memoryCache is an in-process cache.Cache for tests
type memoryCache struct {
	mu    sync.Mutex
	items map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string]string{}}
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return v, nil
}

func (m *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func (m *memoryCache) Incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, _ := strconv.ParseInt(m.items[key], 10, 64)
	n++
	m.items[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (m *memoryCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[key]
	return ok
}

func (m *memoryCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return m.Set(ctx, key, string(data), ttl)
}

func (m *memoryCache) GetJSON(ctx context.Context, key string, dest any) error {
	v, err := m.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(v), dest)
}

func (m *memoryCache) Close() error { return nil }

var (
	owner    = &entities.User{ID: 1, FirstName: "Joe", LastName: "Smith", EmailAddress: "joe@smith.com"}
	stranger = &entities.User{ID: 2, FirstName: "Sally", LastName: "Jones", EmailAddress: "sally@jones.com"}
)

func ownedCourse() *entities.Course {
	return &entities.Course{ID: 10, Title: "Go", Description: "Learn Go", UserID: owner.ID, Creator: owner}
}

func validCourseRequest() *models.CourseRequest {
	return &models.CourseRequest{Title: "Go 2", Description: "Learn more Go"}
}

func TestAuthorize(t *testing.T) {
	course := ownedCourse()
	assert.NoError(t, authorize(owner, course))
	assert.ErrorIs(t, authorize(stranger, course), ErrForbidden)
}

func TestCourseService_Create_SetsOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCourseRepository(ctrl)
	svc := NewCourseService(repo, nil, 0)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *entities.Course) (*entities.Course, error) {
			assert.Equal(t, owner.ID, c.UserID)
			created := *c
			created.ID = 42
			return &created, nil
		})

	course, err := svc.Create(context.Background(), owner, validCourseRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(42), course.ID)
}

func TestCourseService_Create_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCourseRepository(ctrl)
	svc := NewCourseService(repo, nil, 0)

	_, err := svc.Create(context.Background(), owner, &models.CourseRequest{Title: "only title"})

	var verr *validation.Errors
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{`Please provide a value for "description"`}, verr.Messages())
}

func TestCourseService_Update(t *testing.T) {
	tests := []struct {
		name      string
		requester *entities.User
		req       *models.CourseRequest
		setup     func(repo *mocks.MockCourseRepository)
		check     func(t *testing.T, err error)
	}{
		{
			name:      "owner updates",
			requester: owner,
			req:       validCourseRequest(),
			setup: func(repo *mocks.MockCourseRepository) {
				repo.EXPECT().FindByID(gomock.Any(), int64(10)).Return(ownedCourse(), nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *entities.Course) error {
						assert.Equal(t, "Go 2", c.Title)
						assert.Equal(t, owner.ID, c.UserID)
						return nil
					})
			},
			check: func(t *testing.T, err error) { assert.NoError(t, err) },
		},
		{
			name:      "non-owner is forbidden and nothing is written",
			requester: stranger,
			req:       validCourseRequest(),
			setup: func(repo *mocks.MockCourseRepository) {
				repo.EXPECT().FindByID(gomock.Any(), int64(10)).Return(ownedCourse(), nil)
			},
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrForbidden) },
		},
		{
			name:      "invalid body is rejected before lookup",
			requester: owner,
			req:       &models.CourseRequest{},
			check: func(t *testing.T, err error) {
				var verr *validation.Errors
				require.ErrorAs(t, err, &verr)
				assert.Len(t, verr.Messages(), 2)
			},
		},
		{
			name:      "missing course is an unexpected failure",
			requester: owner,
			req:       validCourseRequest(),
			setup: func(repo *mocks.MockCourseRepository) {
				repo.EXPECT().FindByID(gomock.Any(), int64(10)).Return(nil, repository.ErrNotFound)
			},
			check: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.NotErrorIs(t, err, ErrForbidden)
				var verr *validation.Errors
				assert.False(t, errors.As(err, &verr))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockCourseRepository(ctrl)
			if tt.setup != nil {
				tt.setup(repo)
			}
			svc := NewCourseService(repo, nil, 0)

			tt.check(t, svc.Update(context.Background(), tt.requester, 10, tt.req))
		})
	}
}

func TestCourseService_Delete(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockCourseRepository(ctrl)
		repo.EXPECT().FindByID(gomock.Any(), int64(10)).Return(ownedCourse(), nil)
		repo.EXPECT().Delete(gomock.Any(), int64(10)).Return(nil)

		err := NewCourseService(repo, nil, 0).Delete(context.Background(), owner, 10)

		assert.NoError(t, err)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockCourseRepository(ctrl)
		repo.EXPECT().FindByID(gomock.Any(), int64(10)).Return(ownedCourse(), nil)

		err := NewCourseService(repo, nil, 0).Delete(context.Background(), stranger, 10)

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("missing course", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockCourseRepository(ctrl)
		repo.EXPECT().FindByID(gomock.Any(), int64(10)).Return(nil, repository.ErrNotFound)

		err := NewCourseService(repo, nil, 0).Delete(context.Background(), owner, 10)

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestCourseService_Get_AbsentReturnsNil(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCourseRepository(ctrl)
	repo.EXPECT().FindByID(gomock.Any(), int64(77)).Return(nil, repository.ErrNotFound)

	course, err := NewCourseService(repo, nil, 0).Get(context.Background(), 77)

	assert.NoError(t, err)
	assert.Nil(t, course)
}

func TestCourseService_Get_ReadThroughCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCourseRepository(ctrl)
	mem := newMemoryCache()
	svc := NewCourseService(repo, mem, time.Minute)

	repo.EXPECT().FindByID(gomock.Any(), int64(10)).Return(ownedCourse(), nil).Times(1)

	first, err := svc.Get(context.Background(), 10)
	require.NoError(t, err)
	second, err := svc.Get(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.Creator.EmailAddress, second.Creator.EmailAddress)
}

func TestCourseService_Get_DoesNotCacheAbsent(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCourseRepository(ctrl)
	mem := newMemoryCache()
	svc := NewCourseService(repo, mem, time.Minute)

	repo.EXPECT().FindByID(gomock.Any(), int64(5)).Return(nil, repository.ErrNotFound).Times(2)

	_, _ = svc.Get(context.Background(), 5)
	_, _ = svc.Get(context.Background(), 5)

	assert.Empty(t, mem.items)
}

func TestCourseService_MutationsInvalidateCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCourseRepository(ctrl)
	mem := newMemoryCache()
	svc := NewCourseService(repo, mem, time.Minute)
	ctx := context.Background()

	repo.EXPECT().FindByID(gomock.Any(), int64(10)).Return(ownedCourse(), nil).Times(4)
	repo.EXPECT().FindByID(gomock.Any(), int64(10)).Return(nil, repository.ErrNotFound)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().Delete(gomock.Any(), int64(10)).Return(nil)

	_, err := svc.Get(ctx, 10)
	require.NoError(t, err)
	require.True(t, mem.has("course:10:v0"))
	_, err = svc.Get(ctx, 10)
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, owner, 10, validCourseRequest()))
	assert.False(t, mem.has("course:10:v0"))
	assert.Equal(t, "1", mem.items["course:10:generation"])

	_, err = svc.Get(ctx, 10)
	require.NoError(t, err)
	assert.True(t, mem.has("course:10:v1"))

	require.NoError(t, svc.Delete(ctx, owner, 10))
	assert.False(t, mem.has("course:10:v1"))

	course, err := svc.Get(ctx, 10)
	require.NoError(t, err)
	assert.Nil(t, course)
}

func TestCourseService_GetRacingDeleteDoesNotRestoreCourse(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCourseRepository(ctrl)
	mem := newMemoryCache()
	svc := NewCourseService(repo, mem, time.Minute)
	ctx := context.Background()

	loaded := make(chan struct{})
	release := make(chan struct{})
	gomock.InOrder(
		repo.EXPECT().FindByID(gomock.Any(), int64(10)).
			DoAndReturn(func(context.Context, int64) (*entities.Course, error) {
				close(loaded)
				<-release
				return ownedCourse(), nil
			}),
		repo.EXPECT().FindByID(gomock.Any(), int64(10)).Return(ownedCourse(), nil),
		repo.EXPECT().FindByID(gomock.Any(), int64(10)).Return(nil, repository.ErrNotFound),
	)
	repo.EXPECT().Delete(gomock.Any(), int64(10)).Return(nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.Get(ctx, 10)
	}()

	<-loaded
	require.NoError(t, svc.Delete(ctx, owner, 10))
	close(release)
	<-done

	course, err := svc.Get(ctx, 10)
	require.NoError(t, err)
	assert.Nil(t, course)
}

func TestCourseService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCourseRepository(ctrl)
	repo.EXPECT().FindAll(gomock.Any()).Return([]*entities.Course{ownedCourse()}, nil)

	courses, err := NewCourseService(repo, nil, 0).List(context.Background())

	require.NoError(t, err)
	assert.Len(t, courses, 1)
}
