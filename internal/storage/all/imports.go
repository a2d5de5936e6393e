// Package all registers every built-in storage backend with the storage
// factory. Importing it for side effects keeps the orchestrator free of
// database-driver imports.
package all

import (
	_ "fleximart/internal/storage/mssql"
	_ "fleximart/internal/storage/mysql"
	_ "fleximart/internal/storage/postgres"
	_ "fleximart/internal/storage/sqlite"
)
