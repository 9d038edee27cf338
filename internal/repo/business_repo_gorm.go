package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"business-directory/internal/domain"
	"business-directory/internal/feature/business"
)

const resourceBusiness = "Business"

// Migrate creates or updates the businesses table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Business{}); err != nil {
		return err
	}
	return backfillFolds(db)
}

// backfillFolds 为影子列出现前写入的旧行补齐小写检索列
func backfillFolds(db *gorm.DB) error {
	var batch []domain.Business
	return db.Model(&domain.Business{}).
		Where("name_fold = ? AND name <> ?", "", "").
		FindInBatches(&batch, 200, func(_ *gorm.DB, _ int) error {
			for i := range batch {
				b := &batch[i]
				b.Refold()
				err := db.Model(&domain.Business{}).Where("id = ?", b.ID).UpdateColumns(map[string]any{
					"name_fold":        b.NameFold,
					"description_fold": b.DescriptionFold,
					"city_fold":        b.CityFold,
				}).Error
				if err != nil {
					return err
				}
			}
			return nil
		}).Error
}

type BusinessRepo struct{ db *gorm.DB }

func NewBusinessRepo(db *gorm.DB) *BusinessRepo { return &BusinessRepo{db: db} }

func (r *BusinessRepo) Create(ctx context.Context, b *domain.Business) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return storeErr("create business", err)
	}
	return nil
}

func (r *BusinessRepo) FindByID(ctx context.Context, id string) (*domain.Business, error) {
	var b domain.Business
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, mapErr("find business", id, err)
	}
	return &b, nil
}

// Search counts every match of q and returns the requested window, newest
// first. Ties on created_at fall back to id, which is time-ordered.
func (r *BusinessRepo) Search(ctx context.Context, q business.Query) ([]domain.Business, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.Business{}).Scopes(wherePredicate(q.Where))
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, storeErr("count businesses", err)
	}

	items := make([]domain.Business, 0, q.Window.Limit)
	err := base().
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true}).
		Limit(q.Window.Limit).
		Offset(q.Window.Offset()).
		Find(&items).Error
	if err != nil {
		return nil, 0, storeErr("list businesses", err)
	}
	return items, total, nil
}

// Update applies column changes to an existing record and returns it.
func (r *BusinessRepo) Update(ctx context.Context, id string, changes map[string]any) (*domain.Business, error) {
	var b domain.Business
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&b, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Business{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&b, "id = ?", id).Error
	})
	if err != nil {
		return nil, mapErr("update business", id, err)
	}
	return &b, nil
}

// Delete removes the record and returns what was stored.
func (r *BusinessRepo) Delete(ctx context.Context, id string) (*domain.Business, error) {
	var b domain.Business
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&b, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Business{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, mapErr("delete business", id, err)
	}
	return &b, nil
}

// Truncate removes every business.
func (r *BusinessRepo) Truncate(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.Business{})
	if res.Error != nil {
		return 0, storeErr("truncate businesses", res.Error)
	}
	return res.RowsAffected, nil
}

type CategoryCount struct {
	Category string
	Count    int64
}

// CountByCategory groups all records by category, sorted by name.
func (r *BusinessRepo) CountByCategory(ctx context.Context) ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.db.WithContext(ctx).Model(&domain.Business{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("category").
		Scan(&rows).Error
	if err != nil {
		return nil, storeErr("count by category", err)
	}
	return rows, nil
}

func mapErr(op, id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &domain.NotFoundError{Resource: resourceBusiness, ID: id}
	}
	return storeErr(op, err)
}

func storeErr(op string, err error) error { return &domain.StoreError{Op: op, Err: err} }
