package domain

type Advertisement struct {
	ID          int64   `db:"id"`
	Title       string  `db:"title"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	UserID      int64   `db:"user_id"`
	StatusOpen  bool    `db:"status_open"`
	CreatedAt   int64   `db:"created_at"`
}
