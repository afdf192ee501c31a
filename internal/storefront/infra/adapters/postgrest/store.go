package postgrest

import (
	"context"
	"fmt"
	"strconv"

	postgrestgo "github.com/supabase-community/postgrest-go"

	"github.com/jcmexdev/storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/storefront/core/ports"
)

var _ ports.RemoteStore = (*Client)(nil)

func (c *Client) Ping(ctx context.Context) error {
	q, err := c.from(ports.TableProducts)
	if err != nil {
		return err
	}
	if _, _, err := q.Select("id", "", false).Limit(1, "").ExecuteWithContext(ctx); err != nil {
		return fmt.Errorf("postgrest: ping: %w", err)
	}
	return nil
}

func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	q, err := c.from(ports.TableProducts)
	if err != nil {
		return nil, err
	}

	var rows []productRow
	_, err = q.Select("*", "", false).
		Order("id", &postgrestgo.OrderOpts{Ascending: true}).
		ExecuteToWithContext(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("postgrest: list products: %w", err)
	}

	out := make([]entity.Product, len(rows))
	for i, r := range rows {
		out[i] = r.toEntity()
	}
	return out, nil
}

// ListCartLines returns the session's rows joined with their products. Rows
// whose product no longer exists are skipped.
func (c *Client) ListCartLines(ctx context.Context, session string) ([]entity.CartLine, error) {
	q, err := c.from(ports.TableCartItems)
	if err != nil {
		return nil, err
	}

	var rows []cartRow
	_, err = q.Select("*,products(*)", "", false).
		Eq("user_session", session).
		Order("created_at", &postgrestgo.OrderOpts{Ascending: true}).
		ExecuteToWithContext(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("postgrest: list cart lines: %w", err)
	}

	out := make([]entity.CartLine, 0, len(rows))
	for _, r := range rows {
		if r.Products == nil {
			continue
		}
		out = append(out, entity.CartLine{Product: r.Products.toEntity(), Quantity: r.Quantity})
	}
	return out, nil
}

func (c *Client) UpsertCartLine(ctx context.Context, session string, productID int64, quantity int) error {
	q, err := c.from(ports.TableCartItems)
	if err != nil {
		return err
	}
	row := cartRow{ProductID: productID, Quantity: quantity, UserSession: session}
	_, _, err = q.Upsert(row, "product_id,user_session", returnMinimal, "").ExecuteWithContext(ctx)
	if err != nil {
		return fmt.Errorf("postgrest: upsert cart line %d: %w", productID, err)
	}
	return nil
}

func (c *Client) UpdateCartLineQuantity(ctx context.Context, session string, productID int64, quantity int) error {
	q, err := c.from(ports.TableCartItems)
	if err != nil {
		return err
	}
	_, _, err = q.Update(map[string]int{"quantity": quantity}, returnMinimal, "").
		Eq("product_id", id(productID)).
		Eq("user_session", session).
		ExecuteWithContext(ctx)
	if err != nil {
		return fmt.Errorf("postgrest: update cart line %d: %w", productID, err)
	}
	return nil
}

func (c *Client) DeleteCartLine(ctx context.Context, session string, productID int64) error {
	q, err := c.from(ports.TableCartItems)
	if err != nil {
		return err
	}
	_, _, err = q.Delete(returnMinimal, "").
		Eq("product_id", id(productID)).
		Eq("user_session", session).
		ExecuteWithContext(ctx)
	if err != nil {
		return fmt.Errorf("postgrest: delete cart line %d: %w", productID, err)
	}
	return nil
}

func (c *Client) DeleteCart(ctx context.Context, session string) error {
	q, err := c.from(ports.TableCartItems)
	if err != nil {
		return err
	}
	if _, _, err := q.Delete(returnMinimal, "").Eq("user_session", session).ExecuteWithContext(ctx); err != nil {
		return fmt.Errorf("postgrest: delete cart: %w", err)
	}
	return nil
}

func (c *Client) InsertOrder(ctx context.Context, order *entity.Order) (int64, error) {
	q, err := c.from(ports.TableOrders)
	if err != nil {
		return 0, err
	}

	row := orderRow{
		UserSession:   order.Session,
		TotalAmount:   order.TotalAmount,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
		Status:        order.Status,
	}
	var rows []orderRow
	if _, err := q.Insert(row, false, "", returnRepresentation, "").ExecuteToWithContext(ctx, &rows); err != nil {
		return 0, fmt.Errorf("postgrest: insert order: %w", err)
	}
	if len(rows) != 1 || rows[0].ID == 0 {
		return 0, fmt.Errorf("postgrest: insert order: expected one row with an id, got %d", len(rows))
	}
	return rows[0].ID, nil
}

func (c *Client) InsertOrderLines(ctx context.Context, lines []entity.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	q, err := c.from(ports.TableOrderItems)
	if err != nil {
		return err
	}

	rows := make([]orderItemRow, len(lines))
	for i, l := range lines {
		rows[i] = orderItemRow{OrderID: l.OrderID, ProductID: l.ProductID, Quantity: l.Quantity, Price: l.Price}
	}
	if _, _, err := q.Insert(rows, false, "", returnMinimal, "").ExecuteWithContext(ctx); err != nil {
		return fmt.Errorf("postgrest: insert order lines: %w", err)
	}
	return nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status entity.Status) error {
	q, err := c.from(ports.TableOrders)
	if err != nil {
		return err
	}
	_, _, err = q.Update(map[string]entity.Status{"status": status}, returnMinimal, "").
		Eq("id", id(orderID)).
		ExecuteWithContext(ctx)
	if err != nil {
		return fmt.Errorf("postgrest: update order %d status: %w", orderID, err)
	}
	return nil
}

func (c *Client) InsertBooking(ctx context.Context, b *entity.Booking) error {
	q, err := c.from(ports.TableBookings)
	if err != nil {
		return err
	}

	row := bookingRow{
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		ServiceType:   b.ServiceType,
		PreferredDate: b.PreferredDate,
		PreferredTime: b.PreferredTime,
		Address:       b.Address,
		Status:        b.Status,
	}
	if b.Description != "" {
		row.Description = &b.Description
	}
	if _, _, err := q.Insert([]bookingRow{row}, false, "", returnMinimal, "").ExecuteWithContext(ctx); err != nil {
		return fmt.Errorf("postgrest: insert booking: %w", err)
	}
	return nil
}

func (c *Client) InsertFeedback(ctx context.Context, f *entity.Feedback) error {
	q, err := c.from(ports.TableFeedback)
	if err != nil {
		return err
	}

	row := feedbackRow{
		CustomerName:  f.CustomerName,
		CustomerEmail: f.CustomerEmail,
		Message:       f.Message,
		Rating:        f.Rating,
	}
	if _, _, err := q.Insert([]feedbackRow{row}, false, "", returnMinimal, "").ExecuteWithContext(ctx); err != nil {
		return fmt.Errorf("postgrest: insert feedback: %w", err)
	}
	return nil
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}
