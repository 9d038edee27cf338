package business

import (
	"strings"
	"time"

	"business-directory/internal/domain"
)

// NewBusiness builds the record to persist from a validated create input.
func NewBusiness(in *domain.BusinessInput, id string, now time.Time) *domain.Business {
	b := &domain.Business{
		ID:        id,
		Image:     domain.DefaultImage,
		CreatedAt: now,
		UpdatedAt: now,
	}
	apply(b, in)
	b.Refold()
	return b
}

// Changes maps the supplied fields of a validated patch to column values.
// updated_at is always refreshed, and so is the search column of every
// searchable field that changes.
func Changes(in *domain.BusinessInput, now time.Time) map[string]any {
	m := map[string]any{"updated_at": now}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		m["name"] = name
		m["name_fold"] = domain.Fold(name)
	}
	setStr(m, "email", in.Email)
	setStr(m, "phone", in.Phone)
	setStr(m, "category", in.Category)
	setStr(m, "address", in.Address)
	setFolded(m, "city", in.City)
	setStr(m, "postcode", in.Postcode)
	setFolded(m, "description", in.Description)
	setStr(m, "website", in.Website)
	setStr(m, "image", in.Image)
	if in.Rating != nil {
		m["rating"] = *in.Rating
	}
	if in.Reviews != nil {
		m["reviews"] = *in.Reviews
	}
	if in.IsVerified != nil {
		m["is_verified"] = *in.IsVerified
	}
	return m
}

func setStr(m map[string]any, col string, p *string) {
	if p != nil {
		m[col] = *p
	}
}

func setFolded(m map[string]any, col string, p *string) {
	if p != nil {
		m[col] = *p
		m[col+"_fold"] = domain.Fold(*p)
	}
}

func apply(b *domain.Business, in *domain.BusinessInput) {
	if in.Name != nil {
		b.Name = strings.TrimSpace(*in.Name)
	}
	copyStr(&b.Email, in.Email)
	copyStr(&b.Phone, in.Phone)
	copyStr(&b.Category, in.Category)
	copyStr(&b.Address, in.Address)
	copyStr(&b.City, in.City)
	copyStr(&b.Postcode, in.Postcode)
	copyStr(&b.Description, in.Description)
	copyStr(&b.Website, in.Website)
	copyStr(&b.Image, in.Image)
	if in.Rating != nil {
		b.Rating = *in.Rating
	}
	if in.Reviews != nil {
		b.Reviews = *in.Reviews
	}
	if in.IsVerified != nil {
		b.IsVerified = *in.IsVerified
	}
}

func copyStr(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// Ptr returns a pointer to v. Handy for building inputs.
func Ptr[T any](v T) *T { return &v }
