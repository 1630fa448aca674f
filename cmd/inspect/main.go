// Command inspect prints the job journal of a miniraw spool.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"miniraw/domain"
	"miniraw/infrastructure/storage"
	"miniraw/internal"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code once every deferred close has run.
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("inspect", flag.ContinueOnError)
	flags.SetOutput(stderr)
	dbPath := flags.String("db", defaultDBPath(), "Path to the miniraw badger directory")
	limit := flags.Int("limit", 50, "Number of jobs to show, newest first (0 = all)")
	status := flags.String("status", "", "Only show jobs with this status (e.g. FAILED)")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	db, err := openDB(*dbPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error while opening Badger at %s: %v\n", *dbPath, err)
		return 1
	}
	defer db.Close()

	silent := slog.New(slog.NewTextHandler(io.Discard, nil))
	wanted := domain.JobStatus(strings.ToUpper(*status))
	records, err := storage.NewJobRepository(db, silent).FindJobs(wanted, *limit)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	render(stdout, records)
	return 0
}

func render(w io.Writer, records []storage.JobRecord) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Finished", "Job", "Remote", "Status", "Duration", "Destination", "Bytes", "Discarded", "Type", "Error"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, record := range records {
		row := internal.ToInspectRow(record)
		table.Append([]string{
			row.FinishedAt,
			row.JobID,
			row.Remote,
			string(row.Status),
			row.Duration,
			row.Destination,
			strconv.FormatUint(row.Bytes, 10),
			strconv.FormatUint(row.Discarded, 10),
			row.ContentType,
			row.Error,
		})
	}
	table.SetFooter([]string{"", "", "", "", "", "", "", "", "jobs", strconv.Itoa(len(records))})
	table.Render()
}

func defaultDBPath() string {
	if path := os.Getenv("BADGER_FILEPATH"); path != "" {
		return path
	}
	if dir := os.Getenv("OUTPUT_DIR"); dir != "" {
		return filepath.Join(dir, ".miniraw")
	}
	if dir, err := internal.ExecutableDir(); err == nil {
		return filepath.Join(dir, ".miniraw")
	}
	return ".miniraw"
}

// openDB opens the journal read-only so it can be inspected while the
// spooler is running.
func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)
	return badger.Open(opts)
}
