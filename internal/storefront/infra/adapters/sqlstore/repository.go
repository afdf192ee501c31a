package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront/internal/storefront/core/domain/entity"
)

const productColumns = `p.id, p.name, p.price, p.description, p.image, p.category, p.features, p.in_stock, p.rating`

func (s *Store) ListProducts(ctx context.Context) ([]entity.Product, error) {
	rows, err := s.query(ctx, `SELECT `+productColumns+` FROM products p ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: list products: %w", err)
	}
	defer rows.Close()

	var out []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := s.scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("sqlstore: list products: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SeedProducts inserts products that are not present yet. Existing rows are
// left untouched.
func (s *Store) SeedProducts(ctx context.Context, products []entity.Product) error {
	const q = `
		INSERT INTO products (id, name, price, description, image, category, features, in_stock, rating)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`

	for _, p := range products {
		features, err := s.featuresValue(p.Features)
		if err != nil {
			return fmt.Errorf("sqlstore: seed product %d: %w", p.ID, err)
		}
		if _, err := s.exec(ctx, q,
			p.ID, p.Name, p.Price, p.Description, p.Image, p.Category, features, p.InStock, p.Rating,
		); err != nil {
			return fmt.Errorf("sqlstore: seed product %d: %w", p.ID, err)
		}
	}
	return nil
}

func (s *Store) ListCartLines(ctx context.Context, session string) ([]entity.CartLine, error) {
	const q = `
		SELECT ` + productColumns + `, c.quantity
		FROM   cart_items c
		JOIN   products p ON p.id = c.product_id
		WHERE  c.user_session = ?
		ORDER  BY c.id`

	rows, err := s.query(ctx, q, session)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: list cart lines: %w", err)
	}
	defer rows.Close()

	var out []entity.CartLine
	for rows.Next() {
		var line entity.CartLine
		if err := s.scanProduct(rows, &line.Product, &line.Quantity); err != nil {
			return nil, fmt.Errorf("sqlstore: list cart lines: %w", err)
		}
		out = append(out, line)
	}
	return out, rows.Err()
}

func (s *Store) UpsertCartLine(ctx context.Context, session string, productID int64, quantity int) error {
	const q = `
		INSERT INTO cart_items (product_id, quantity, user_session)
		VALUES (?, ?, ?)
		ON CONFLICT (product_id, user_session) DO UPDATE SET quantity = excluded.quantity`

	if _, err := s.exec(ctx, q, productID, quantity, session); err != nil {
		return fmt.Errorf("sqlstore: upsert cart line %d: %w", productID, err)
	}
	return nil
}

func (s *Store) UpdateCartLineQuantity(ctx context.Context, session string, productID int64, quantity int) error {
	const q = `UPDATE cart_items SET quantity = ? WHERE product_id = ? AND user_session = ?`

	if _, err := s.exec(ctx, q, quantity, productID, session); err != nil {
		return fmt.Errorf("sqlstore: update cart line %d: %w", productID, err)
	}
	return nil
}

func (s *Store) DeleteCartLine(ctx context.Context, session string, productID int64) error {
	const q = `DELETE FROM cart_items WHERE product_id = ? AND user_session = ?`

	if _, err := s.exec(ctx, q, productID, session); err != nil {
		return fmt.Errorf("sqlstore: delete cart line %d: %w", productID, err)
	}
	return nil
}

func (s *Store) DeleteCart(ctx context.Context, session string) error {
	if _, err := s.exec(ctx, `DELETE FROM cart_items WHERE user_session = ?`, session); err != nil {
		return fmt.Errorf("sqlstore: delete cart: %w", err)
	}
	return nil
}

func (s *Store) InsertOrder(ctx context.Context, order *entity.Order) (int64, error) {
	const q = `
		INSERT INTO orders (user_session, total_amount, status, customer_name, customer_email, customer_phone)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`

	status := order.Status
	if status == "" {
		status = entity.StatusPending
	}

	var id int64
	err := s.queryRow(ctx, q,
		order.Session,
		order.TotalAmount,
		string(status),
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("sqlstore: insert order: %w", err)
	}
	return id, nil
}

// InsertOrderLines writes all lines in one transaction.
func (s *Store) InsertOrderLines(ctx context.Context, lines []entity.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlstore: insert order lines: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, s.rebind(
		`INSERT INTO order_items (order_id, product_id, quantity, price) VALUES (?, ?, ?, ?)`,
	))
	if err != nil {
		return fmt.Errorf("sqlstore: insert order lines: prepare: %w", err)
	}
	defer stmt.Close()

	for _, l := range lines {
		if _, err := stmt.ExecContext(ctx, l.OrderID, l.ProductID, l.Quantity, l.Price); err != nil {
			return fmt.Errorf("sqlstore: insert order line for product %d: %w", l.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlstore: insert order lines: commit: %w", err)
	}
	return nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, orderID int64, status entity.Status) error {
	res, err := s.exec(ctx, `UPDATE orders SET status = ? WHERE id = ?`, string(status), orderID)
	if err != nil {
		return fmt.Errorf("sqlstore: update order %d status: %w", orderID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("sqlstore: update order %d status: %w", orderID, sql.ErrNoRows)
	}
	return nil
}

func (s *Store) InsertBooking(ctx context.Context, b *entity.Booking) error {
	const q = `
		INSERT INTO bookings
			(customer_name, customer_email, customer_phone, service_type, description,
			 preferred_date, preferred_time, address, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	status := b.Status
	if status == "" {
		status = entity.StatusPending
	}

	_, err := s.exec(ctx, q,
		b.CustomerName,
		b.CustomerEmail,
		b.CustomerPhone,
		b.ServiceType,
		nullableString(b.Description),
		b.PreferredDate,
		b.PreferredTime,
		b.Address,
		string(status),
	)
	if err != nil {
		return fmt.Errorf("sqlstore: insert booking: %w", err)
	}
	return nil
}

func (s *Store) InsertFeedback(ctx context.Context, f *entity.Feedback) error {
	const q = `
		INSERT INTO feedback (customer_name, customer_email, message, rating)
		VALUES (?, ?, ?, ?)`

	if _, err := s.exec(ctx, q, f.CustomerName, f.CustomerEmail, f.Message, f.Rating); err != nil {
		return fmt.Errorf("sqlstore: insert feedback: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanProduct reads productColumns followed by any extra columns.
func (s *Store) scanProduct(row scanner, p *entity.Product, extra ...any) error {
	var (
		price    decimal.Decimal
		features []string
		rawJSON  string
	)

	var featuresDest any = &rawJSON
	if s.dialect == DialectPostgres {
		featuresDest = pq.Array(&features)
	}

	dest := []any{&p.ID, &p.Name, &price, &p.Description, &p.Image, &p.Category, featuresDest, &p.InStock, &p.Rating}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}

	if s.dialect != DialectPostgres && rawJSON != "" {
		if err := json.Unmarshal([]byte(rawJSON), &features); err != nil {
			return fmt.Errorf("decode features of product %d: %w", p.ID, err)
		}
	}
	p.Price = price
	p.Features = features
	return nil
}

func (s *Store) featuresValue(features []string) (any, error) {
	if features == nil {
		features = []string{}
	}
	if s.dialect == DialectPostgres {
		return pq.Array(features), nil
	}
	b, err := json.Marshal(features)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
