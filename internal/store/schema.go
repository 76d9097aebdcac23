package store

// Schema versions. Bump when the DDL changes and add a migration step.
const (
	schemaVersionV1 = 1
)

const schemaV1 = `
CREATE TABLE schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	test_name   TEXT NOT NULL,
	status      TEXT NOT NULL,
	recorded_at TEXT NOT NULL
);

CREATE INDEX idx_runs_test_name ON runs(test_name);
CREATE INDEX idx_runs_recorded_at ON runs(recorded_at);
`
