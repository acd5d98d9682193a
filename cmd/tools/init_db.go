package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/draftly-hq/draftly"
	"github.com/draftly-hq/draftly/internal"
)

type initDBOptions struct {
	host           string
	port           int
	database       string
	user           string
	password       string
	sslMode        string
	templatesTable string
	contractsTable string
}

func runInitDB(args []string) error {
	flags := flag.NewFlagSet("init-db", flag.ContinueOnError)
	flags.SetOutput(os.Stdout)
	flags.Usage = func() {
		fmt.Println("Usage: draftly-tools init-db [options]")
		fmt.Println("")
		fmt.Println("Options:")
		flags.PrintDefaults()
	}

	opts := initDBOptions{}
	flags.StringVar(&opts.host, "db-host", getenvDefault("DB_HOST", "localhost"), "database host")
	flags.IntVar(&opts.port, "db-port", getenvDefaultInt("DB_PORT", 5432), "database port")
	flags.StringVar(&opts.database, "db-name", getenvDefault("DB_NAME", "draftly"), "database name")
	flags.StringVar(&opts.user, "db-user", getenvDefault("DB_USER", "postgres"), "database user")
	flags.StringVar(&opts.password, "db-password", getenvDefault("DB_PASSWORD", "postgres"), "database password")
	flags.StringVar(&opts.sslMode, "db-ssl-mode", getenvDefault("DB_SSL_MODE", "disable"), "database sslmode")
	flags.StringVar(&opts.templatesTable, "templates-table", getenvDefault("TEMPLATES_TABLE", "templates"), "templates table name")
	flags.StringVar(&opts.contractsTable, "contracts-table", getenvDefault("CONTRACTS_TABLE", "contracts"), "contracts table name")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx := context.Background()
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		opts.user, opts.password, opts.host, opts.port, opts.database, opts.sslMode)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	tables := draftly.TableNames{Templates: opts.templatesTable, Contracts: opts.contractsTable}
	if err := internal.EnsureSchema(ctx, pool, tables); err != nil {
		return err
	}
	zap.S().Infow("schema ensured", "templates", tables.Templates, "contracts", tables.Contracts)

	store := internal.NewPostgresTemplateStore(pool, tables.Templates)
	if err := internal.SeedTemplates(ctx, store); err != nil {
		return err
	}

	count, err := store.CountTemplates(ctx)
	if err != nil {
		return err
	}
	zap.S().Infow("template catalog ready", "count", count)
	return nil
}
