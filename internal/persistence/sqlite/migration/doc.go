// Package migration applies versioned SQL schema changes to a SQLite database.
//
// Migration files follow the naming convention {version}_{description}.sql
// (e.g. "001_accounts.sql") and are read from any fs.FS, which lets the
// sqlite package embed its schema into the binary. Applied versions are
// tracked in a schema_migrations table so each file runs exactly once, inside
// its own transaction.
//
// Example usage:
//
//	manager := NewManager(NewScanner(), NewSQLiteExecutor(db), schemaFS, "migrations", logger)
//	if err := manager.RunMigrations(ctx); err != nil {
//		return err
//	}
package migration
