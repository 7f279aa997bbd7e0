package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Storefront/pkg/db"
)

// SQLStore reads and edits the products table. The storefront only reads
// it; inserts and deletes serve the catalogdb admin tool.
type SQLStore struct {
	db     *sql.DB
	driver string
}

func NewSQLStore(conn *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: conn, driver: driver}
}

// identityResync returns the statement that moves the id generator past the
// largest stored id, or "" when the backend already does so on its own.
func identityResync(driver string) string {
	if driver != db.DriverPostgres {
		return ""
	}
	return `SELECT setval(pg_get_serial_sequence('products', 'id'), COALESCE((SELECT MAX(id) FROM products), 1))`
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return db.WithTimeout(ctx, db.PingTimeout, s.db.PingContext)
}

func (s *SQLStore) Products(ctx context.Context) ([]Product, error) {
	var out []Product

	err := db.WithTimeout(ctx, db.QueryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, name, COALESCE(description, ''), price, image_path, category
			FROM products
			ORDER BY id ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Product, 0, 16)
		for rows.Next() {
			var p Product
			if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImagePath, &p.Category); err != nil {
				return err
			}
			out = append(out, p)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLStore) Get(ctx context.Context, id int64) (Product, bool, error) {
	var p Product

	err := db.WithTimeout(ctx, db.QueryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT id, name, COALESCE(description, ''), price, image_path, category
			FROM products
			WHERE id = $1
		`, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImagePath, &p.Category)
	})

	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, err
	}
	return p, true, nil
}

// Insert stores p and returns it with its id. A zero ID lets the database
// assign one; an explicit ID that already exists yields ErrDuplicateID.
func (s *SQLStore) Insert(ctx context.Context, p Product) (Product, error) {
	if p.Name == "" || p.Category == "" || p.Description == "" || p.ImagePath == "" {
		return Product{}, fmt.Errorf("%w: name, category, description and image path are required", ErrInvalidProduct)
	}
	if p.Price.IsNegative() {
		return Product{}, fmt.Errorf("%w: negative price %s", ErrInvalidProduct, p.Price)
	}

	err := db.WithTimeout(ctx, db.QueryTimeout, func(ctx context.Context) error {
		if p.ID != 0 {
			_, err := s.db.ExecContext(ctx, `
				INSERT INTO products (id, name, description, price, image_path, category)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, p.ID, p.Name, p.Description, p.Price, p.ImagePath, p.Category)
			if err != nil {
				return err
			}
			if q := identityResync(s.driver); q != "" {
				_, err = s.db.ExecContext(ctx, q)
			}
			return err
		}
		return s.db.QueryRowContext(ctx, `
			INSERT INTO products (name, description, price, image_path, category)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, p.Name, p.Description, p.Price, p.ImagePath, p.Category).Scan(&p.ID)
	})

	if db.IsUniqueViolation(err) {
		if p.ID == 0 {
			return Product{}, fmt.Errorf("%w: generated id already taken", ErrDuplicateID)
		}
		return Product{}, fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	var affected int64

	err := db.WithTimeout(ctx, db.QueryTimeout, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

// SeedIfEmpty inserts records when the table has no rows and reports how
// many were written.
func (s *SQLStore) SeedIfEmpty(ctx context.Context, records []Product) (int, error) {
	var n int
	err := db.WithTimeout(ctx, db.QueryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	})
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	for i, p := range records {
		p.ID = 0
		if _, err := s.Insert(ctx, p); err != nil {
			return i, err
		}
	}
	return len(records), nil
}
