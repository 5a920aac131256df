package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Amounts are stored as decimal text so they round-trip exactly.
// Every child row carries a position column; snapshots are ordered lists.
const schema = `
CREATE TABLE IF NOT EXISTS bills (
    name TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS participants (
    bill_name TEXT NOT NULL,
    position INTEGER NOT NULL,
    id TEXT NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (bill_name, id),
    FOREIGN KEY (bill_name) REFERENCES bills(name) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expenses (
    bill_name TEXT NOT NULL,
    position INTEGER NOT NULL,
    id TEXT NOT NULL,
    description TEXT NOT NULL,
    amount TEXT NOT NULL,
    paid_by TEXT NOT NULL,
    PRIMARY KEY (bill_name, id),
    FOREIGN KEY (bill_name) REFERENCES bills(name) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expense_splits (
    bill_name TEXT NOT NULL,
    expense_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    participant_id TEXT NOT NULL,
    amount TEXT NOT NULL,
    is_equal INTEGER NOT NULL,
    PRIMARY KEY (bill_name, expense_id, position),
    FOREIGN KEY (bill_name, expense_id) REFERENCES expenses(bill_name, id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_participants_bill_name ON participants(bill_name);
CREATE INDEX IF NOT EXISTS idx_expenses_bill_name ON expenses(bill_name);
CREATE INDEX IF NOT EXISTS idx_expense_splits_bill_name ON expense_splits(bill_name);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
