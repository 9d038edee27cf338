package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"business-directory/internal/domain"
	"business-directory/internal/feature/business"
	"business-directory/pkg/utils"
)

// BusinessRepository is the store the service reads and writes.
type BusinessRepository interface {
	Create(ctx context.Context, b *domain.Business) error
	FindByID(ctx context.Context, id string) (*domain.Business, error)
	Search(ctx context.Context, q business.Query) ([]domain.Business, int64, error)
	Update(ctx context.Context, id string, changes map[string]any) (*domain.Business, error)
	Delete(ctx context.Context, id string) (*domain.Business, error)
}

type BusinessService struct {
	repo      BusinessRepository
	builder   business.Builder
	validator *business.Validator
	log       *zap.Logger
	now       func() time.Time
	newID     func() string
}

type Option func(*BusinessService)

func WithLogger(l *zap.Logger) Option { return func(s *BusinessService) { s.log = l } }

func WithClock(now func() time.Time) Option { return func(s *BusinessService) { s.now = now } }

func WithIDGen(gen func() string) Option { return func(s *BusinessService) { s.newID = gen } }

func NewBusinessService(repo BusinessRepository, builder business.Builder, opts ...Option) *BusinessService {
	s := &BusinessService{
		repo:      repo,
		builder:   builder,
		validator: business.NewValidator(),
		log:       zap.NewNop(),
		now:       time.Now,
		newID:     utils.NewID,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Search runs a filtered, paginated listing.
func (s *BusinessService) Search(ctx context.Context, p business.Params) (*business.Page, error) {
	q, err := s.builder.Build(p)
	if err != nil {
		return nil, err
	}
	items, total, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return &business.Page{
		Total: total,
		Page:  q.Window.Page,
		Pages: q.Window.Pages(total),
		Data:  items,
	}, nil
}

func (s *BusinessService) Get(ctx context.Context, id string) (*domain.Business, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BusinessService) Create(ctx context.Context, in *domain.BusinessInput) (*domain.Business, error) {
	if err := s.validator.ValidateCreate(in); err != nil {
		return nil, err
	}
	b := business.NewBusiness(in, s.newID(), s.now())
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	mutations.WithLabelValues("create").Inc()
	s.log.Info("business created", zap.String("id", b.ID), zap.String("category", b.Category))
	return b, nil
}

// Update validates the supplied fields before touching the store, so an
// invalid patch is rejected even for an unknown id.
func (s *BusinessService) Update(ctx context.Context, id string, in *domain.BusinessInput) (*domain.Business, error) {
	if err := s.validator.ValidatePatch(in); err != nil {
		return nil, err
	}
	b, err := s.repo.Update(ctx, id, business.Changes(in, s.now()))
	if err != nil {
		return nil, err
	}
	mutations.WithLabelValues("update").Inc()
	s.log.Info("business updated", zap.String("id", id))
	return b, nil
}

func (s *BusinessService) Delete(ctx context.Context, id string) (*domain.Business, error) {
	b, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	mutations.WithLabelValues("delete").Inc()
	s.log.Info("business deleted", zap.String("id", id))
	return b, nil
}

// Categories lists the filter options: "All" followed by the closed set.
func (s *BusinessService) Categories() []string { return domain.CategoryOptions() }
