package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS transactions (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    type          TEXT NOT NULL CHECK (type IN ('income', 'expense')),
    amount        TEXT NOT NULL,
    category      TEXT NOT NULL,
    description   TEXT NOT NULL DEFAULT '',
    date          TEXT NOT NULL,
    is_recurring  INTEGER NOT NULL DEFAULT 0,
    created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    id            INTEGER PRIMARY KEY CHECK (id = 1),
    savings_goal  TEXT NOT NULL DEFAULT '1000000',
    goal_date     TEXT,
    currency      TEXT NOT NULL DEFAULT 'N$'
);

INSERT OR IGNORE INTO settings (id) VALUES (1);

CREATE TABLE IF NOT EXISTS goals (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    title           TEXT NOT NULL,
    type            TEXT NOT NULL,
    target_amount   TEXT NOT NULL,
    current_amount  TEXT NOT NULL DEFAULT '0',
    deadline        TEXT,
    created_at      TEXT NOT NULL,
    completed       INTEGER NOT NULL DEFAULT 0,
    archived        INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_goals_archived ON goals(archived);
`
