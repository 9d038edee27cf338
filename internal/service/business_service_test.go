package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"business-directory/internal/domain"
	"business-directory/internal/feature/business"
	"business-directory/internal/service"
)

type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) Create(ctx context.Context, b *domain.Business) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBusinessRepository) FindByID(ctx context.Context, id string) (*domain.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *MockBusinessRepository) Search(ctx context.Context, q business.Query) ([]domain.Business, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Business), args.Get(1).(int64), args.Error(2)
}

func (m *MockBusinessRepository) Update(ctx context.Context, id string, changes map[string]any) (*domain.Business, error) {
	args := m.Called(ctx, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *MockBusinessRepository) Delete(ctx context.Context, id string) (*domain.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

var fixedNow = time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)

func newService(repo *MockBusinessRepository) *service.BusinessService {
	return service.NewBusinessService(repo, business.NewBuilder(10, 100),
		service.WithClock(func() time.Time { return fixedNow }),
		service.WithIDGen(func() string { return "fixed-id" }),
	)
}

func validInput() *domain.BusinessInput {
	return &domain.BusinessInput{
		Name:     business.Ptr("Acme"),
		Email:    business.Ptr("hi@acme.com"),
		Phone:    business.Ptr("01234567890"),
		Category: business.Ptr("Technology"),
		Address:  business.Ptr("1 Road"),
		City:     business.Ptr("Leeds"),
		Postcode: business.Ptr("LS1 1AA"),
	}
}

func TestBusinessService_Search(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBusinessRepository)
	svc := newService(repo)

	want := business.Query{
		Where:  business.Predicate{Clauses: []business.Clause{business.Equals{Field: business.FieldCategory, Value: "Technology"}}},
		Window: business.Window{Page: 2, Limit: 5},
	}
	rows := []domain.Business{{ID: "a"}, {ID: "b"}}
	repo.On("Search", ctx, want).Return(rows, int64(7), nil).Once()

	page, err := svc.Search(ctx, business.Params{Category: "Technology", Page: business.Ptr(2), Limit: business.Ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, &business.Page{Total: 7, Page: 2, Pages: 2, Data: rows}, page)
	repo.AssertExpectations(t)
}

func TestBusinessService_SearchRejectsBadWindow(t *testing.T) {
	repo := new(MockBusinessRepository)
	svc := newService(repo)

	_, err := svc.Search(context.Background(), business.Params{Limit: business.Ptr(0)})
	assert.True(t, domain.IsValidation(err))
	repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestBusinessService_Create(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBusinessRepository)
	svc := newService(repo)

	repo.On("Create", ctx, mock.MatchedBy(func(b *domain.Business) bool {
		return b.ID == "fixed-id" && b.Name == "Acme" && b.CreatedAt.Equal(fixedNow) && b.Image == domain.DefaultImage
	})).Return(nil).Once()

	b, err := svc.Create(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", b.ID)
	assert.Equal(t, fixedNow, b.UpdatedAt)
	repo.AssertExpectations(t)
}

func TestBusinessService_CreateInvalid(t *testing.T) {
	repo := new(MockBusinessRepository)
	svc := newService(repo)

	in := validInput()
	in.Phone = business.Ptr("12")
	_, err := svc.Create(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, "Business validation failed: phone: Please provide a valid phone number", err.Error())
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBusinessService_CreateStoreFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBusinessRepository)
	svc := newService(repo)

	storeErr := &domain.StoreError{Op: "create business", Err: errors.New("disk full")}
	repo.On("Create", ctx, mock.Anything).Return(storeErr).Once()

	_, err := svc.Create(ctx, validInput())
	assert.ErrorIs(t, err, storeErr)
}

func TestBusinessService_Get(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBusinessRepository)
	svc := newService(repo)

	repo.On("FindByID", ctx, "a").Return(&domain.Business{ID: "a"}, nil).Once()
	repo.On("FindByID", ctx, "zz").Return(nil, &domain.NotFoundError{Resource: "Business", ID: "zz"}).Once()

	b, err := svc.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", b.ID)

	_, err = svc.Get(ctx, "zz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertExpectations(t)
}

func TestBusinessService_Update(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBusinessRepository)
	svc := newService(repo)

	changes := map[string]any{"city": "York", "city_fold": "york", "updated_at": fixedNow}
	repo.On("Update", ctx, "a", changes).Return(&domain.Business{ID: "a", City: "York"}, nil).Once()

	b, err := svc.Update(ctx, "a", &domain.BusinessInput{City: business.Ptr("York")})
	require.NoError(t, err)
	assert.Equal(t, "York", b.City)
	repo.AssertExpectations(t)
}

func TestBusinessService_UpdateValidatesFirst(t *testing.T) {
	repo := new(MockBusinessRepository)
	svc := newService(repo)

	_, err := svc.Update(context.Background(), "unknown", &domain.BusinessInput{Email: business.Ptr("nope")})
	assert.True(t, domain.IsValidation(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestBusinessService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBusinessRepository)
	svc := newService(repo)

	repo.On("Delete", ctx, "a").Return(&domain.Business{ID: "a", Name: "Gone"}, nil).Once()
	repo.On("Delete", ctx, "a").Return(nil, &domain.NotFoundError{Resource: "Business", ID: "a"}).Once()

	b, err := svc.Delete(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Gone", b.Name)

	_, err = svc.Delete(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertExpectations(t)
}

func TestBusinessService_Categories(t *testing.T) {
	svc := newService(new(MockBusinessRepository))
	assert.Equal(t, domain.CategoryOptions(), svc.Categories())
	assert.Equal(t, "All", svc.Categories()[0])
}
