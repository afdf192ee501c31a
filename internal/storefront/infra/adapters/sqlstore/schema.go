package sqlstore

// sqliteSchema mirrors the hosted tables. Prices are TEXT so decimal values
// round-trip exactly; features is a JSON array; timestamps are RFC3339 TEXT.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS products (
    id          INTEGER PRIMARY KEY,
    name        TEXT    NOT NULL,
    price       TEXT    NOT NULL,
    description TEXT    NOT NULL DEFAULT '',
    image       TEXT    NOT NULL DEFAULT '',
    category    TEXT    NOT NULL DEFAULT '',
    features    TEXT    NOT NULL DEFAULT '[]',
    in_stock    INTEGER NOT NULL DEFAULT 1,
    rating      REAL    NOT NULL DEFAULT 0,
    created_at  TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);

CREATE TABLE IF NOT EXISTS cart_items (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    product_id   INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
    quantity     INTEGER NOT NULL CHECK (quantity >= 1),
    user_session TEXT    NOT NULL,
    created_at   TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now')),
    UNIQUE (product_id, user_session)
);

CREATE TABLE IF NOT EXISTS orders (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    user_session   TEXT NOT NULL,
    total_amount   TEXT NOT NULL,
    status         TEXT NOT NULL DEFAULT 'pending'
                   CHECK (status IN ('pending', 'confirmed', 'completed', 'cancelled')),
    customer_name  TEXT NOT NULL,
    customer_email TEXT NOT NULL,
    customer_phone TEXT NOT NULL,
    created_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);

CREATE TABLE IF NOT EXISTS order_items (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id   INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    product_id INTEGER NOT NULL,
    quantity   INTEGER NOT NULL CHECK (quantity >= 1),
    price      TEXT    NOT NULL,
    created_at TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);

CREATE TABLE IF NOT EXISTS bookings (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    customer_name  TEXT NOT NULL,
    customer_email TEXT NOT NULL,
    customer_phone TEXT NOT NULL,
    service_type   TEXT NOT NULL,
    description    TEXT,
    preferred_date TEXT NOT NULL,
    preferred_time TEXT NOT NULL,
    address        TEXT NOT NULL,
    status         TEXT NOT NULL DEFAULT 'pending',
    created_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);

CREATE TABLE IF NOT EXISTS feedback (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    customer_name  TEXT    NOT NULL,
    customer_email TEXT    NOT NULL,
    message        TEXT    NOT NULL,
    rating         INTEGER CHECK (rating BETWEEN 1 AND 5),
    created_at     TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_cart_items_session ON cart_items(user_session);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS products (
    id          BIGINT PRIMARY KEY,
    name        TEXT          NOT NULL,
    price       NUMERIC(12,2) NOT NULL CHECK (price >= 0),
    description TEXT          NOT NULL DEFAULT '',
    image       TEXT          NOT NULL DEFAULT '',
    category    TEXT          NOT NULL DEFAULT '',
    features    TEXT[]        NOT NULL DEFAULT '{}',
    in_stock    BOOLEAN       NOT NULL DEFAULT TRUE,
    rating      NUMERIC(2,1)  NOT NULL DEFAULT 0,
    created_at  TIMESTAMPTZ   NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS cart_items (
    id           BIGSERIAL PRIMARY KEY,
    product_id   BIGINT      NOT NULL REFERENCES products(id) ON DELETE CASCADE,
    quantity     INTEGER     NOT NULL CHECK (quantity >= 1),
    user_session TEXT        NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (product_id, user_session)
);

CREATE TABLE IF NOT EXISTS orders (
    id             BIGSERIAL PRIMARY KEY,
    user_session   TEXT          NOT NULL,
    total_amount   NUMERIC(12,2) NOT NULL,
    status         TEXT          NOT NULL DEFAULT 'pending'
                   CHECK (status IN ('pending', 'confirmed', 'completed', 'cancelled')),
    customer_name  TEXT          NOT NULL,
    customer_email TEXT          NOT NULL,
    customer_phone TEXT          NOT NULL,
    created_at     TIMESTAMPTZ   NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS order_items (
    id         BIGSERIAL PRIMARY KEY,
    order_id   BIGINT        NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    product_id BIGINT        NOT NULL,
    quantity   INTEGER       NOT NULL CHECK (quantity >= 1),
    price      NUMERIC(12,2) NOT NULL,
    created_at TIMESTAMPTZ   NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bookings (
    id             BIGSERIAL PRIMARY KEY,
    customer_name  TEXT        NOT NULL,
    customer_email TEXT        NOT NULL,
    customer_phone TEXT        NOT NULL,
    service_type   TEXT        NOT NULL,
    description    TEXT,
    preferred_date DATE        NOT NULL,
    preferred_time TIME        NOT NULL,
    address        TEXT        NOT NULL,
    status         TEXT        NOT NULL DEFAULT 'pending',
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS feedback (
    id             BIGSERIAL PRIMARY KEY,
    customer_name  TEXT        NOT NULL,
    customer_email TEXT        NOT NULL,
    message        TEXT        NOT NULL,
    rating         INTEGER     CHECK (rating BETWEEN 1 AND 5),
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_cart_items_session ON cart_items(user_session);
`

// The journal tables can live next to the store tables or alone in their own
// file when the remote store is the hosted backend.
const sqliteJournalSchema = `
-- Append-only: one row per checkout step transition.
CREATE TABLE IF NOT EXISTS checkout_journal (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id         TEXT NOT NULL,
    status         TEXT NOT NULL,
    current_step   TEXT NOT NULL DEFAULT '',
    payload        TEXT,
    error_messages TEXT NOT NULL DEFAULT '[]',
    trace_id       TEXT NOT NULL DEFAULT '',
    span_id        TEXT NOT NULL DEFAULT '',
    updated_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_checkout_journal_run ON checkout_journal(run_id, updated_at);
CREATE INDEX IF NOT EXISTS idx_checkout_journal_trace ON checkout_journal(trace_id);
`

const postgresJournalSchema = `
CREATE TABLE IF NOT EXISTS checkout_journal (
    id             BIGSERIAL PRIMARY KEY,
    run_id         TEXT        NOT NULL,
    status         TEXT        NOT NULL,
    current_step   TEXT        NOT NULL DEFAULT '',
    payload        TEXT,
    error_messages TEXT        NOT NULL DEFAULT '[]',
    trace_id       TEXT        NOT NULL DEFAULT '',
    span_id        TEXT        NOT NULL DEFAULT '',
    updated_at     TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_checkout_journal_run ON checkout_journal(run_id, updated_at);
CREATE INDEX IF NOT EXISTS idx_checkout_journal_trace ON checkout_journal(trace_id);
`
