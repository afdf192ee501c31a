package postgrest_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/storefront/infra/adapters/postgrest"
)

type captured struct {
	Method string
	Path   string
	Query  map[string][]string
	Prefer string
	APIKey string
	Auth   string
	Body   string
}

func newServer(t *testing.T, status int, response string) (*postgrest.Client, *[]captured) {
	t.Helper()
	var reqs []captured
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		reqs = append(reqs, captured{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Prefer: r.Header.Get("Prefer"),
			APIKey: r.Header.Get("apikey"),
			Auth:   r.Header.Get("Authorization"),
			Body:   string(body),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return postgrest.New(srv.URL+"/", "anon-key"), &reqs
}

func TestListCartLinesJoinsProducts(t *testing.T) {
	t.Parallel()
	c, reqs := newServer(t, http.StatusOK, `[
		{"id":1,"product_id":1,"quantity":2,"user_session":"s1","products":{"id":1,"name":"SmartPhone X Pro","price":899.99,"category":"smartphones","features":["5G"],"in_stock":true,"rating":4.5}},
		{"id":2,"product_id":9,"quantity":1,"user_session":"s1","products":null}
	]`)

	lines, err := c.ListCartLines(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "SmartPhone X Pro", lines[0].Name)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, lines[0].Price.Equal(decimal.RequireFromString("899.99")))
	assert.True(t, lines[0].InStock)

	got := (*reqs)[0]
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/rest/v1/cart_items", got.Path)
	assert.Equal(t, []string{"*,products(*)"}, got.Query["select"])
	assert.Equal(t, []string{"eq.s1"}, got.Query["user_session"])
	assert.Equal(t, "anon-key", got.APIKey)
	assert.Equal(t, "Bearer anon-key", got.Auth)
}

func TestUpsertCartLine(t *testing.T) {
	t.Parallel()
	c, reqs := newServer(t, http.StatusCreated, "")

	require.NoError(t, c.UpsertCartLine(context.Background(), "s1", 3, 4))

	got := (*reqs)[0]
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, []string{"product_id,user_session"}, got.Query["on_conflict"])
	assert.Contains(t, got.Prefer, "resolution=merge-duplicates")
	assert.JSONEq(t, `{"product_id":3,"quantity":4,"user_session":"s1"}`, got.Body)
}

func TestCartMutationsFilterBySessionAndProduct(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c, reqs := newServer(t, http.StatusNoContent, "")

	require.NoError(t, c.UpdateCartLineQuantity(ctx, "s1", 3, 5))
	require.NoError(t, c.DeleteCartLine(ctx, "s1", 3))
	require.NoError(t, c.DeleteCart(ctx, "s1"))

	require.Len(t, *reqs, 3)
	assert.Equal(t, http.MethodPatch, (*reqs)[0].Method)
	assert.Equal(t, []string{"eq.3"}, (*reqs)[0].Query["product_id"])
	assert.JSONEq(t, `{"quantity":5}`, (*reqs)[0].Body)

	assert.Equal(t, http.MethodDelete, (*reqs)[1].Method)
	assert.Equal(t, []string{"eq.s1"}, (*reqs)[1].Query["user_session"])
	assert.Equal(t, []string{"eq.3"}, (*reqs)[1].Query["product_id"])

	assert.Equal(t, http.MethodDelete, (*reqs)[2].Method)
	assert.Empty(t, (*reqs)[2].Query["product_id"])
}

func TestInsertOrderReturnsID(t *testing.T) {
	t.Parallel()
	c, reqs := newServer(t, http.StatusCreated, `[{"id":42}]`)

	id, err := c.InsertOrder(context.Background(), &entity.Order{
		Session:       "s1",
		TotalAmount:   decimal.RequireFromString("899.99"),
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		CustomerPhone: "0800",
		Status:        entity.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	got := (*reqs)[0]
	assert.Equal(t, "/rest/v1/orders", got.Path)
	assert.Contains(t, got.Prefer, "return=representation")

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(got.Body), &body))
	assert.Equal(t, "s1", body["user_session"])
	assert.Equal(t, "899.99", body["total_amount"])
	assert.Equal(t, "pending", body["status"])
	assert.NotContains(t, body, "id")
}

func TestInsertOrderWithoutRow(t *testing.T) {
	t.Parallel()
	c, _ := newServer(t, http.StatusCreated, `[]`)

	_, err := c.InsertOrder(context.Background(), &entity.Order{Status: entity.StatusPending})
	assert.Error(t, err)
}

func TestInsertOrderLines(t *testing.T) {
	t.Parallel()
	c, reqs := newServer(t, http.StatusCreated, "")

	err := c.InsertOrderLines(context.Background(), []entity.OrderLine{
		{OrderID: 42, ProductID: 1, Quantity: 1, Price: decimal.RequireFromString("899.99")},
		{OrderID: 42, ProductID: 2, Quantity: 2, Price: decimal.RequireFromString("1299.99")},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"order_id":42,"product_id":1,"quantity":1,"price":"899.99"},
		{"order_id":42,"product_id":2,"quantity":2,"price":"1299.99"}
	]`, (*reqs)[0].Body)

	require.NoError(t, c.InsertOrderLines(context.Background(), nil))
	assert.Len(t, *reqs, 1, "no request for an empty batch")
}

func TestInsertBookingSendsNullDescription(t *testing.T) {
	t.Parallel()
	c, reqs := newServer(t, http.StatusCreated, "")

	require.NoError(t, c.InsertBooking(context.Background(), &entity.Booking{
		CustomerName:  "Ada",
		ServiceType:   "Other",
		PreferredDate: "2026-11-02",
		PreferredTime: "09:30",
		Status:        entity.StatusPending,
	}))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte((*reqs)[0].Body), &rows))
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0], "description")
	assert.Nil(t, rows[0]["description"])
	assert.Equal(t, "/rest/v1/bookings", (*reqs)[0].Path)
}

func TestErrorBody(t *testing.T) {
	t.Parallel()
	c, _ := newServer(t, http.StatusNotFound,
		`{"code":"42P01","message":"relation \"public.cart_items\" does not exist","details":null,"hint":null}`)

	_, err := c.ListCartLines(context.Background(), "s1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "42P01")
	assert.True(t, postgrest.IsUndefinedTable(err))
}

func TestSchemaCacheMiss(t *testing.T) {
	t.Parallel()
	c, _ := newServer(t, http.StatusNotFound,
		`{"code":"PGRST205","message":"Could not find the table 'public.feedback' in the schema cache","details":null,"hint":null}`)

	err := c.InsertFeedback(context.Background(), &entity.Feedback{Rating: 4})
	require.Error(t, err)
	assert.True(t, postgrest.IsUndefinedTable(err))
}

func TestPlainTextError(t *testing.T) {
	t.Parallel()
	c, _ := newServer(t, http.StatusBadGateway, "upstream down")

	err := c.InsertFeedback(context.Background(), &entity.Feedback{Rating: 4})
	require.Error(t, err)
	assert.False(t, postgrest.IsUndefinedTable(err))
	assert.False(t, postgrest.IsUndefinedTable(nil))
}

func TestListProductsOrdersByID(t *testing.T) {
	t.Parallel()
	c, reqs := newServer(t, http.StatusOK, `[{"id":1,"name":"SmartPhone X Pro","price":"899.99","features":null}]`)

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "/rest/v1/products", (*reqs)[0].Path)
	require.NotEmpty(t, (*reqs)[0].Query["order"])
	assert.Contains(t, (*reqs)[0].Query["order"][0], "id.asc")
}
