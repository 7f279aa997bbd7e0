package receipt

import (
	"context"
	"database/sql"
	"errors"

	"Storefront/internal/cart"
	"Storefront/pkg/db"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(conn *sql.DB) *SQLStore {
	return &SQLStore{db: conn}
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return db.WithTimeout(ctx, db.PingTimeout, s.db.PingContext)
}

func (s *SQLStore) Save(ctx context.Context, r cart.Receipt) error {
	err := db.WithTimeout(ctx, db.QueryTimeout, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		_, err = tx.ExecContext(ctx, `
			INSERT INTO receipts (id, issued_at, tax_rate, subtotal, tax, total,
				cardholder_name, card_number, expiration,
				street_address, city, state, zip)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`, r.ID, r.IssuedAt, r.Rate, r.Subtotal, r.Tax, r.Total,
			r.Payment.CardholderName, r.Payment.CardNumber, r.Payment.Expiration,
			r.Shipping.StreetAddress, r.Shipping.City, r.Shipping.State, r.Shipping.Zip)
		if err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO receipt_lines (receipt_id, position, product_id, name, unit_price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, ln := range r.Lines {
			if _, err := stmt.ExecContext(ctx, r.ID, i, ln.ProductID, ln.Name, ln.UnitPrice, ln.Quantity); err != nil {
				return err
			}
		}

		return tx.Commit()
	})

	if db.IsUniqueViolation(err) {
		return ErrDuplicateReceipt
	}
	return err
}

func (s *SQLStore) Get(ctx context.Context, id string) (cart.Receipt, bool, error) {
	var (
		r     cart.Receipt
		found bool
	)

	err := db.WithTimeout(ctx, db.QueryTimeout, func(ctx context.Context) error {
		err := s.db.QueryRowContext(ctx, `
			SELECT id, issued_at, tax_rate, subtotal, tax, total,
				cardholder_name, card_number, expiration,
				street_address, city, state, zip
			FROM receipts
			WHERE id = $1
		`, id).Scan(&r.ID, &r.IssuedAt, &r.Rate, &r.Subtotal, &r.Tax, &r.Total,
			&r.Payment.CardholderName, &r.Payment.CardNumber, &r.Payment.Expiration,
			&r.Shipping.StreetAddress, &r.Shipping.City, &r.Shipping.State, &r.Shipping.Zip)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true

		r.Lines, err = s.lines(ctx, id)
		return err
	})

	if err != nil || !found {
		return cart.Receipt{}, false, err
	}
	return r, true, nil
}

func (s *SQLStore) List(ctx context.Context) ([]cart.Receipt, error) {
	var ids []string

	err := db.WithTimeout(ctx, db.QueryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `SELECT id FROM receipts ORDER BY issued_at ASC, id ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	out := make([]cart.Receipt, 0, len(ids))
	for _, id := range ids {
		r, ok, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *SQLStore) lines(ctx context.Context, id string) ([]cart.Line, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, name, unit_price, quantity
		FROM receipt_lines
		WHERE receipt_id = $1
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]cart.Line, 0, 8)
	for rows.Next() {
		var ln cart.Line
		if err := rows.Scan(&ln.ProductID, &ln.Name, &ln.UnitPrice, &ln.Quantity); err != nil {
			return nil, err
		}
		out = append(out, ln)
	}
	return out, rows.Err()
}
