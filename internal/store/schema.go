package store

const schemaSQL = `
-- Amounts are stored as exact decimal text.
CREATE TABLE IF NOT EXISTS results (
    result_id            TEXT PRIMARY KEY,
    created_at           TEXT NOT NULL,
    income               TEXT NOT NULL,
    daily_total          TEXT NOT NULL,
    monthly_total        TEXT NOT NULL,
    percentage           TEXT NOT NULL,
    category             TEXT NOT NULL,
    severity             TEXT NOT NULL,
    currency_code        TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS result_expenses (
    result_id            TEXT NOT NULL REFERENCES results(result_id) ON DELETE CASCADE,
    position             INTEGER NOT NULL,
    label                TEXT NOT NULL,
    daily_amount         TEXT NOT NULL,
    PRIMARY KEY (result_id, position)
);

CREATE INDEX IF NOT EXISTS idx_results_created ON results(created_at);
`
