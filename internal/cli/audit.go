package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"jexam/internal/audit"
)

// runAudit builds the handler for the audit command.
func runAudit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		resultsDir := flags.String("results", "", "Output directory of a completed run")
		dbPath := flags.String("db", "", "DuckDB database path")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if *resultsDir == "" || *dbPath == "" {
			fmt.Fprintln(stderr, "--results and --db are required")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		db, err := sql.Open("duckdb", *dbPath)
		if err != nil {
			fmt.Fprintf(stderr, "Audit failed:\n%v\n", err)
			return ExitError
		}
		defer db.Close()

		if err := audit.EnsureSchema(db); err != nil {
			fmt.Fprintf(stderr, "Audit failed:\n%v\n", err)
			return ExitError
		}
		stats, err := audit.Ingest(context.Background(), db, *resultsDir)
		if err != nil {
			fmt.Fprintf(stderr, "Audit failed:\n%v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Ingested run %s: %d versions, %d assignments, %d key entries\n",
			stats.RunKey[:12], stats.Versions, stats.Choices, stats.KeyEntries)
		return ExitOK
	}
}
