// Package postgrest talks to a hosted PostgREST backend (Supabase and
// compatible services) through the supabase-community PostgREST client.
package postgrest

import (
	"fmt"
	"strings"

	postgrestgo "github.com/supabase-community/postgrest-go"
)

const (
	restPath = "/rest/v1"
	schema   = "public"

	// returnMinimal asks PostgREST not to echo written rows back.
	returnMinimal        = "minimal"
	returnRepresentation = "representation"
)

// undefinedTableCodes are the error codes PostgREST uses when the target
// relation is missing: the raw Postgres code and the schema-cache miss.
var undefinedTableCodes = []string{"42P01", "PGRST205"}

// IsUndefinedTable reports whether err means the target table does not exist.
// The library flattens error bodies into "(code) message", so the check works
// on the rendered text.
func IsUndefinedTable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, code := range undefinedTableCodes {
		if strings.Contains(msg, "("+code+")") {
			return true
		}
	}
	return strings.Contains(msg, "does not exist")
}

// Client is the hosted backend's implementation of ports.RemoteStore. Every
// call authenticates with the anonymous key, sent both as the apikey header
// and as a bearer token.
type Client struct {
	rest *postgrestgo.Client
}

// New returns a client for the service at serviceURL authenticated with the
// anonymous key.
func New(serviceURL, anonKey string) *Client {
	endpoint := strings.TrimRight(serviceURL, "/") + restPath
	rest := postgrestgo.NewClient(endpoint, schema, map[string]string{"apikey": anonKey}).
		SetAuthToken(anonKey)
	return &Client{rest: rest}
}

// from starts a query on table, surfacing a malformed service URL as an
// error on the first call instead of at construction.
func (c *Client) from(table string) (*postgrestgo.QueryBuilder, error) {
	if c.rest.ClientError != nil {
		return nil, fmt.Errorf("postgrest: client: %w", c.rest.ClientError)
	}
	return c.rest.From(table), nil
}
