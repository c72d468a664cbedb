package main

import (
	"database/sql"
	"errors"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	portal_config "github.com/carson-networks/payments-portal/internal/config"
)

// Usage: go run ./scripts/db_migrations [up|down|version]
// MIGRATIONS_DIR overrides the default ./migrations source.
func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	env, err := portal_config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}

	source := "file://migrations"
	if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
		source = "file://" + dir
	}

	db, err := sql.Open("postgres", env.PostgresURL())
	if err != nil {
		logrus.WithError(err).Fatal("sql.Open")
		return
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("postgres.WithInstance")
		return
	}

	m, err := migrate.NewWithDatabaseInstance(source, env.PostgresDB, driver)
	if err != nil {
		logrus.WithError(err).Fatal("migrate.NewWithDatabaseInstance")
		return
	}

	before, dirty := version(m)
	if dirty {
		logrus.WithField("version", before).Fatal("database is dirty, fix it with migrate force")
		return
	}

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "version":
	default:
		logrus.WithField("command", command).Fatal("expected up, down or version")
		return
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logrus.WithError(err).WithField("command", command).Fatal("migration failed")
		return
	}

	after, _ := version(m)
	logrus.WithFields(logrus.Fields{
		"command": command,
		"source":  source,
		"before":  before,
		"after":   after,
	}).Info("migration status")
}

func version(m *migrate.Migrate) (uint, bool) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false
	}
	if err != nil {
		logrus.WithError(err).Fatal("m.Version")
	}
	return v, dirty
}
