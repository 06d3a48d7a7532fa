package main

import (
	"fmt"

	"github.com/fwojciec/appcat"
	"github.com/fwojciec/appcat/pretty"
)

// errNoDatabase is returned by commands that need the snapshot store.
var errNoDatabase = appcat.Errorf(appcat.EINVALID, "no database configured. Use --db or set APPCAT_DB")

// Run executes the snapshots command.
func (c *SnapshotsCmd) Run(deps *Dependencies) error {
	if deps.Snapshots == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", appcat.ErrorMessage(errNoDatabase))
		return errNoDatabase
	}

	if c.App != "" {
		return c.history(deps)
	}

	snaps, err := deps.Snapshots.FindSnapshots(deps.Ctx, appcat.SnapshotFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", appcat.ErrorMessage(err))
		return err
	}

	if len(snaps) == 0 {
		fmt.Fprintln(deps.Stdout, "No snapshots found. Run a command with --db to store one.")
		return nil
	}

	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		rows = append(rows, []string{
			s.ID,
			s.Label,
			s.Source,
			fmt.Sprint(s.RecordCount),
			s.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		})
	}
	pretty.Rows(deps.Stdout, []string{"ID", "Label", "Source", "Records", "Created"}, rows)

	return nil
}

func (c *SnapshotsCmd) history(deps *Dependencies) error {
	if deps.History == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", appcat.ErrorMessage(errNoDatabase))
		return errNoDatabase
	}

	hashes, err := deps.History.FindRecordHistory(deps.Ctx, c.App)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", appcat.ErrorMessage(err))
		return err
	}

	if len(hashes) == 0 {
		fmt.Fprintf(deps.Stdout, "No stored records for %q.\n", c.App)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "%q has had %d distinct records:\n", c.App, len(hashes))
	for _, h := range hashes {
		fmt.Fprintf(deps.Stdout, "  %s\n", h)
	}
	return nil
}

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	if deps.Snapshots == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", appcat.ErrorMessage(errNoDatabase))
		return errNoDatabase
	}

	records, err := deps.Snapshots.FindRecords(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", appcat.ErrorMessage(err))
		return err
	}

	if err := deps.Writer.WriteRecords(deps.Ctx, c.Output, appcat.Layout(c.Layout), records); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", appcat.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d records to %s\n", len(records), c.Output)
	return nil
}
