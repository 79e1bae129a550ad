package services

import (
	"database/sql"
	"errors"
	"time"

	"adboard/internal/domain"
	"adboard/internal/repos"
)

type AdService struct {
	Ads *repos.AdRepo
	Now func() time.Time
}

func NewAdService(ads *repos.AdRepo) *AdService {
	return &AdService{Ads: ads}
}

func (s *AdService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create records an advertisement owned by the acting identity. Creation
// needs authentication but no guard: you always own what you post.
func (s *AdService) Create(actor *domain.User, title, description string, price float64, statusOpen bool) (int64, error) {
	ad := &domain.Advertisement{
		Title:       title,
		Description: description,
		Price:       price,
		UserID:      actor.ID,
		StatusOpen:  statusOpen,
		CreatedAt:   s.now().Unix(),
	}
	return s.Ads.Create(ad)
}

func (s *AdService) Get(id int64) (domain.Advertisement, error) {
	ad, err := s.Ads.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return ad, ErrNotFound
	}
	return ad, err
}

func (s *AdService) Search(f repos.AdFilter, page, pageSize int) ([]domain.Advertisement, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return s.Ads.Search(f, pageSize, offset)
}

// Update applies the guard against the ad's owner before touching anything.
func (s *AdService) Update(actor *domain.User, id int64, patch repos.AdPatch) error {
	ad, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := Authorize(actor, ad.UserID); err != nil {
		return err
	}
	return s.Ads.Update(id, patch)
}

func (s *AdService) Delete(actor *domain.User, id int64) error {
	ad, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := Authorize(actor, ad.UserID); err != nil {
		return err
	}
	return s.Ads.Delete(id)
}
