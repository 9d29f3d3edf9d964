package repository

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Conn hands out a database handle scoped to one operation. The handle must
// not be used after fn returns.
type Conn interface {
	Do(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type Repository struct {
	conn       Conn
	now        func() time.Time
	bcryptCost int
}

type Option func(*Repository)

// WithClock replaces time.Now for timestamps and the "today" of daily goals.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

func WithBcryptCost(cost int) Option {
	return func(r *Repository) {
		r.bcryptCost = cost
	}
}

func New(conn Conn, opts ...Option) *Repository {
	r := &Repository{
		conn:       conn,
		now:        time.Now,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return classify(r.conn.Do(ctx, fn))
}
