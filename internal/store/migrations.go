package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    spot REAL NOT NULL,
    risk_free_rate REAL NOT NULL,
    volatility REAL NOT NULL,
    days_to_expiry INTEGER NOT NULL,
    grid_samples INTEGER NOT NULL,
    position_count INTEGER NOT NULL,
    net_premium TEXT NOT NULL,
    breakevens TEXT NOT NULL,
    max_profit REAL NOT NULL,
    max_profit_price REAL NOT NULL,
    max_loss REAL NOT NULL,
    max_loss_price REAL NOT NULL,
    computed_at TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_runs_computed_at ON runs(computed_at);

CREATE TABLE IF NOT EXISTS run_positions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL REFERENCES runs(id),
    option_type TEXT NOT NULL,
    side TEXT NOT NULL,
    strike REAL NOT NULL,
    quantity INTEGER NOT NULL,
    entry_premium REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_run_positions_run ON run_positions(run_id);
`
