package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/k0kubun/pp/v3"
	"github.com/markitect-dev/markitect-liquibase-sub001"
	"github.com/markitect-dev/markitect-liquibase-sub001/change"
	"github.com/markitect-dev/markitect-liquibase-sub001/database"
	"github.com/markitect-dev/markitect-liquibase-sub001/database/mssql"
	"github.com/markitect-dev/markitect-liquibase-sub001/database/offline"
	"github.com/markitect-dev/markitect-liquibase-sub001/database/postgres"
	"github.com/markitect-dev/markitect-liquibase-sub001/precondition"
	"github.com/markitect-dev/markitect-liquibase-sub001/result"
	"github.com/markitect-dev/markitect-liquibase-sub001/sqlgen"
	"github.com/markitect-dev/markitect-liquibase-sub001/statement"
	"github.com/markitect-dev/markitect-liquibase-sub001/util"
	"golang.org/x/term"
)

var version string

type options struct {
	Dialect            string `short:"d" long:"dialect" description:"Target database: h2, hsqldb, mssql or postgres" value-name:"dialect" required:"true"`
	Catalog            string `short:"c" long:"catalog" description:"Catalog holding the schema (drop-schema, schema-exists)" value-name:"catalog_name"`
	Config             string `long:"config" description:"YAML file with quoting and default-name settings" value-name:"config_file"`
	QuoteAll           bool   `long:"quote-all" description:"Quote every object name"`
	PreserveSchemaCase bool   `long:"preserve-schema-case" description:"Keep the case of catalog and schema names"`
	DefaultCatalog     string `long:"default-catalog" description:"Default catalog when not connected" value-name:"catalog_name"`
	DefaultSchema      string `long:"default-schema" description:"Default schema when not connected" value-name:"schema_name"`
	Offline            bool   `long:"offline" description:"Only print SQL, never connect"`
	User               string `short:"U" long:"user" description:"Database user name" value-name:"user_name"`
	Password           string `short:"W" long:"password" description:"Database password, overridden by $MSSQL_PWD or $PGPASSWORD" value-name:"password"`
	Host               string `short:"h" long:"host" description:"Host to connect to" value-name:"host_name" default:"127.0.0.1"`
	Port               uint   `short:"p" long:"port" description:"Port used for the connection, defaults to the product's port" value-name:"port_num"`
	DbName             string `long:"db-name" description:"Database to connect to" value-name:"db_name"`
	Prompt             bool   `long:"password-prompt" description:"Force password prompt"`
	DryRun             bool   `long:"dry-run" description:"Don't run the statements but just show them"`
	Rollback           bool   `long:"rollback" description:"Apply the inverse of the command"`
	Concurrency        int    `long:"concurrency" description:"Number of existence checks run at once, -1 for no limit" default:"0"`
	Debug              bool   `long:"debug" description:"Dump statements and settings to stderr"`
	Help               bool   `long:"help" description:"Show this help"`
	Version            bool   `long:"version" description:"Show this version"`
}

const usage = "[options] (create-schema|drop-schema|drop-database|catalog-exists|schema-exists) name..."

// Return parsed options, the command and its names
func parseOptions(args []string, stdout io.Writer) (*options, string, []string, error) {
	var opts options
	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = usage
	args, err := parser.ParseArgs(args)
	if opts.Help {
		parser.WriteHelp(stdout)
		return &opts, "", nil, nil
	}
	if opts.Version {
		fmt.Fprintln(stdout, version)
		return &opts, "", nil, nil
	}
	if err != nil {
		return nil, "", nil, err
	}
	if len(args) < 2 {
		return nil, "", nil, fmt.Errorf("expected a command and at least one name, got %v", args)
	}
	return &opts, args[0], args[1:], nil
}

func openDatabase(ctx context.Context, kind database.Kind, opts *options) (database.Database, error) {
	defaults := database.ConnectionDefaults{
		DefaultCatalogName: opts.DefaultCatalog,
		DefaultSchemaName:  opts.DefaultSchema,
	}
	if opts.Offline {
		return offline.NewDatabase(kind, defaults), nil
	}

	config := database.Config{
		DbName:   opts.DbName,
		User:     opts.User,
		Password: opts.Password,
		Host:     opts.Host,
		Port:     int(opts.Port),
	}
	if opts.Prompt {
		fmt.Printf("Enter Password: ")
		pass, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return nil, err
		}
		config.Password = string(pass)
	}

	switch kind {
	case database.MSSQL:
		if password, ok := os.LookupEnv("MSSQL_PWD"); ok && !opts.Prompt {
			config.Password = password
		}
		if config.Port == 0 {
			config.Port = 1433
		}
		if config.User == "" {
			config.User = "sa"
		}
		return mssql.NewDatabase(config)
	case database.Postgres:
		if password, ok := os.LookupEnv("PGPASSWORD"); ok && !opts.Prompt {
			config.Password = password
		}
		if config.Port == 0 {
			config.Port = 5432
		}
		if config.User == "" {
			config.User = "postgres"
		}
		return postgres.NewDatabase(config)
	default:
		slog.Info("no driver for dialect, printing SQL only", "dialect", kind)
		return offline.NewDatabase(kind, defaults), nil
	}
}

func buildTarget(ctx context.Context, db database.Database, opts *options) (*database.Target, error) {
	config, err := database.ParseTargetConfig(opts.Config)
	if err != nil {
		return nil, err
	}
	if opts.QuoteAll {
		config.QuotingStrategy = database.QuoteAllObjects.String()
	}
	if opts.PreserveSchemaCase {
		config.PreserveSchemaCase = true
	}
	if opts.DefaultCatalog != "" {
		config.DefaultCatalogName = opts.DefaultCatalog
	}
	if opts.DefaultSchema != "" {
		config.DefaultSchemaName = opts.DefaultSchema
	}

	discovered, err := db.Defaults(ctx)
	if err != nil {
		return nil, err
	}
	return config.Apply(db.Kind(), discovered)
}

func changeSet(command string, names []string, opts *options) (markitect.ChangeSet, error) {
	cs := markitect.ChangeSet{ID: command}
	for _, name := range names {
		switch command {
		case "create-schema":
			cs.Changes = append(cs.Changes, change.CreateSchemaChange{CatalogName: opts.Catalog, SchemaName: name})
		case "drop-schema":
			cs.Changes = append(cs.Changes, change.DropSchemaChange{CatalogName: opts.Catalog, SchemaName: name})
		case "drop-database":
			cs.Changes = append(cs.Changes, change.DropDatabaseChange{DatabaseName: name})
		default:
			return cs, fmt.Errorf("unknown command %q", command)
		}
	}
	if opts.Rollback {
		rollback, ok := cs.Rollback()
		if !ok {
			return cs, fmt.Errorf("%s cannot be rolled back", command)
		}
		return rollback, nil
	}
	return cs, nil
}

func existenceStatement(command, catalog, name string) statement.Statement {
	if command == "catalog-exists" {
		return statement.NewCatalogExistsStatement(name)
	}
	return statement.NewSchemaExistsStatement(catalog, name)
}

func checkExistence(ctx context.Context, db database.Database, target *database.Target, registry *sqlgen.Registry, command string, names []string, opts *options, stdout io.Writer) error {
	preconditions := make([]precondition.Precondition, len(names))
	for i, name := range names {
		if command == "catalog-exists" {
			preconditions[i] = precondition.CatalogExists{CatalogName: name}
		} else {
			preconditions[i] = precondition.SchemaExists{CatalogName: opts.Catalog, SchemaName: name}
		}
	}
	for _, p := range preconditions {
		if errs := p.Validate(target, registry); errs.HasErrors() {
			return errs
		}
	}

	if db.DB() == nil {
		for i, name := range names {
			sqls, err := registry.Generate(existenceStatement(command, opts.Catalog, name), target)
			if err != nil {
				return err
			}
			for _, s := range sqls {
				fmt.Fprintf(stdout, "-- %s %s\n%s;\n", preconditions[i].Name(), name, s)
			}
		}
		return nil
	}

	results, err := database.ConcurrentMap(ctx, preconditions, opts.Concurrency, func(ctx context.Context, p precondition.Precondition) (result.Result[struct{}], error) {
		r := p.Check(ctx, db.DB(), target, registry)
		if r.Status == result.StatusErrored {
			return r, r.Err()
		}
		return r, nil
	})
	if err != nil {
		return err
	}

	failed := false
	for i, r := range results {
		if r.OK() {
			fmt.Fprintf(stdout, "%s: exists\n", names[i])
		} else {
			failed = true
			fmt.Fprintf(stdout, "%s: %s\n", names[i], r.Reason)
		}
	}
	if failed {
		return result.ErrPreconditionFailed
	}
	return nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, command, names, err := parseOptions(args, stdout)
	if err != nil {
		return err
	}
	if command == "" {
		return nil
	}
	util.InitSlog(opts.Debug)

	kind, err := database.ParseKind(opts.Dialect)
	if err != nil {
		return err
	}
	db, err := openDatabase(ctx, kind, opts)
	if err != nil {
		return err
	}
	defer db.Close()

	target, err := buildTarget(ctx, db, opts)
	if err != nil {
		return err
	}
	if opts.Debug {
		pp.Fprintln(os.Stderr, target.Defaults, target.QuotingStrategy.String(), target.PreserveSchemaCase)
	}

	registry := sqlgen.NewDefaultRegistry()
	switch command {
	case "catalog-exists", "schema-exists":
		return checkExistence(ctx, db, target, registry, command, names, opts, stdout)
	}

	cs, err := changeSet(command, names, opts)
	if err != nil {
		return err
	}
	if opts.Debug {
		pp.Fprintln(os.Stderr, cs.Changes)
	}
	r := markitect.Run(ctx, db, target, registry, cs, &markitect.Options{
		DryRun: opts.DryRun,
		Logger: database.WriterLogger{W: stdout},
	})
	return r.Err()
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}
