package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the audit database schema.
const Schema = `
-- Audit records table
CREATE TABLE IF NOT EXISTS audit (
    id TEXT PRIMARY KEY,
    run_id TEXT NOT NULL,

    -- What was validated
    record_type TEXT NOT NULL,
    record_id TEXT,

    -- Timestamps
    started_at TIMESTAMP NOT NULL,
    recorded_at TIMESTAMP NOT NULL,

    -- Outcome
    valid BOOLEAN NOT NULL,
    violations TEXT,
    violation_count INTEGER NOT NULL,
    duration_us INTEGER NOT NULL
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

-- Indexes for common queries
CREATE INDEX IF NOT EXISTS idx_audit_started_at ON audit(started_at);
CREATE INDEX IF NOT EXISTS idx_audit_record_type ON audit(record_type);
CREATE INDEX IF NOT EXISTS idx_audit_record_id ON audit(record_id);
CREATE INDEX IF NOT EXISTS idx_audit_run_id ON audit(run_id);
CREATE INDEX IF NOT EXISTS idx_audit_valid ON audit(valid);
`

// InsertSchemaVersion inserts the schema version into the schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
