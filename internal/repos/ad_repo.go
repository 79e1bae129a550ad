package repos

import (
	"strings"

	"adboard/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AdRepo struct{ db *sqlx.DB }

func NewAdRepo(db *sqlx.DB) *AdRepo { return &AdRepo{db: db} }

func (r *AdRepo) Create(ad *domain.Advertisement) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO advertisements(title,description,price,user_id,status_open,created_at)
	  VALUES(?,?,?,?,?,?)`,
		ad.Title, ad.Description, ad.Price, ad.UserID, ad.StatusOpen, ad.CreatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *AdRepo) Get(id int64) (domain.Advertisement, error) {
	var ad domain.Advertisement
	err := r.db.Get(&ad, `
	  SELECT id, title, description, price, user_id, status_open, created_at
	  FROM advertisements
	  WHERE id = ?`, id)
	return ad, err
}

// AdPatch carries the fields of a partial update; nil means keep.
type AdPatch struct {
	Title       *string
	Description *string
	Price       *float64
	StatusOpen  *bool
}

func (r *AdRepo) Update(id int64, p AdPatch) error {
	set := []string{}
	args := []any{}
	if p.Title != nil {
		set = append(set, "title=?")
		args = append(args, *p.Title)
	}
	if p.Description != nil {
		set = append(set, "description=?")
		args = append(args, *p.Description)
	}
	if p.Price != nil {
		set = append(set, "price=?")
		args = append(args, *p.Price)
	}
	if p.StatusOpen != nil {
		set = append(set, "status_open=?")
		args = append(args, *p.StatusOpen)
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db.Exec(`UPDATE advertisements SET `+strings.Join(set, ",")+` WHERE id=?`, args...)
	return err
}

func (r *AdRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM advertisements WHERE id=?`, id)
	return err
}

// AdFilter narrows a search; zero values mean "no filter".
type AdFilter struct {
	Title       string
	Description string
	Price       *float64
	UserID      *int64
	StatusOpen  *bool
}

func (r *AdRepo) Search(f AdFilter, limit, offset int) ([]domain.Advertisement, error) {
	where := `1=1`
	args := []any{}
	if f.Title != "" {
		where += ` AND LOWER(title) LIKE ?`
		args = append(args, "%"+strings.ToLower(f.Title)+"%")
	}
	if f.Description != "" {
		where += ` AND LOWER(description) LIKE ?`
		args = append(args, "%"+strings.ToLower(f.Description)+"%")
	}
	if f.Price != nil {
		where += ` AND price = ?`
		args = append(args, *f.Price)
	}
	if f.UserID != nil {
		where += ` AND user_id = ?`
		args = append(args, *f.UserID)
	}
	if f.StatusOpen != nil {
		where += ` AND status_open = ?`
		args = append(args, *f.StatusOpen)
	}

	sql := `
	  SELECT id, title, description, price, user_id, status_open, created_at
	  FROM advertisements
	  WHERE ` + where + `
	  ORDER BY created_at DESC, id DESC
	  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []domain.Advertisement
	err := r.db.Select(&out, sql, args...)
	return out, err
}
