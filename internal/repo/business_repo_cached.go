package repo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"business-directory/internal/core/cache"
	"business-directory/internal/domain"
)

// DefaultRedeleteDelay is how long after a write the cached copy is dropped a
// second time. It covers a reader that loaded the old row before the write and
// stored it after the first delete.
const DefaultRedeleteDelay = 500 * time.Millisecond

// CachedBusinessRepo serves FindByID from redis and drops the cached copy
// after every successful write. List queries always hit the database.
type CachedBusinessRepo struct {
	*BusinessRepo
	cache         *cache.Cache
	ttl           time.Duration
	log           *zap.Logger
	redeleteDelay time.Duration
}

type CachedOption func(*CachedBusinessRepo)

// WithRedeleteDelay 写后二次删除的延迟；<=0 关闭二次删除
func WithRedeleteDelay(d time.Duration) CachedOption {
	return func(r *CachedBusinessRepo) { r.redeleteDelay = d }
}

func NewCachedBusinessRepo(inner *BusinessRepo, c *cache.Cache, ttl time.Duration, l *zap.Logger, opts ...CachedOption) *CachedBusinessRepo {
	if l == nil {
		l = zap.NewNop()
	}
	r := &CachedBusinessRepo{BusinessRepo: inner, cache: c, ttl: ttl, log: l, redeleteDelay: DefaultRedeleteDelay}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *CachedBusinessRepo) key(id string) string { return r.cache.Key("business", id) }

func (r *CachedBusinessRepo) FindByID(ctx context.Context, id string) (*domain.Business, error) {
	return cache.GetOrLoadJSON(r.cache, ctx, r.key(id), r.ttl, func(ctx context.Context) (*domain.Business, error) {
		return r.BusinessRepo.FindByID(ctx, id)
	})
}

func (r *CachedBusinessRepo) Update(ctx context.Context, id string, changes map[string]any) (*domain.Business, error) {
	b, err := r.BusinessRepo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, id)
	return b, nil
}

func (r *CachedBusinessRepo) Delete(ctx context.Context, id string) (*domain.Business, error) {
	b, err := r.BusinessRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, id)
	return b, nil
}

func (r *CachedBusinessRepo) Truncate(ctx context.Context) (int64, error) {
	n, err := r.BusinessRepo.Truncate(ctx)
	if err != nil {
		return 0, err
	}
	if err := r.cache.InvalidatePrefix(ctx); err != nil {
		r.log.Warn("cache flush failed", zap.Error(err))
	}
	r.later(ctx, func(ctx context.Context) error { return r.cache.InvalidatePrefix(ctx) })
	return n, nil
}

func (r *CachedBusinessRepo) invalidate(ctx context.Context, id string) {
	drop := func(ctx context.Context) error { return r.cache.Invalidate(ctx, r.key(id)) }
	if err := drop(ctx); err != nil {
		r.log.Warn("cache invalidate failed", zap.String("id", id), zap.Error(err))
	}
	r.later(ctx, drop)
}

// later 延迟再删一次，请求结束后仍执行
func (r *CachedBusinessRepo) later(ctx context.Context, drop func(context.Context) error) {
	if r.redeleteDelay <= 0 {
		return
	}
	bg := context.WithoutCancel(ctx)
	time.AfterFunc(r.redeleteDelay, func() {
		ctx, cancel := context.WithTimeout(bg, 2*time.Second)
		defer cancel()
		if err := drop(ctx); err != nil {
			r.log.Warn("delayed cache invalidate failed", zap.Error(err))
		}
	})
}
