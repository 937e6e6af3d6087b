package server

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"intertask/internal/logging"
)

// migrations are additive-only: columns appended to live tables, never
// destructive rewrites.
var migrations = []string{
	`ALTER TABLE tasks ADD COLUMN IF NOT EXISTS explanation TEXT`,
}

func initDBConn(cfg Config) *pgxpool.Pool {
	pool, err := pgxpool.New(
		context.Background(),
		fmt.Sprintf(
			"postgres://%s:%s@%s/%s",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBAddress,
			cfg.DBName,
		),
	)
	if err != nil {
		logging.Logger.Fatalf("could not connect to the database: %v", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		logging.Logger.Fatalf("failed to ping the db: %v", err)
	}

	b, err := os.ReadFile(cfg.InitSQLPath)
	if err != nil {
		logging.Logger.Fatalf("failed to open and read the init sql file: %v", err)
	}
	if _, err := pool.Exec(context.Background(), string(b)); err != nil {
		logging.Logger.Fatalf("failed to execute init sql: %v", err)
	}

	for _, m := range migrations {
		if _, err := pool.Exec(context.Background(), m); err != nil {
			logging.Logger.Fatalf("failed to apply migration %q: %v", m, err)
		}
	}

	return pool
}
