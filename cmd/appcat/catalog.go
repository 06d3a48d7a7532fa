package main

import (
	"fmt"

	"github.com/fwojciec/appcat"
	"github.com/fwojciec/appcat/pretty"
)

// saveCatalog writes records to path, stores them as a snapshot when a
// database is configured and prints a summary. An empty catalog is an
// error and nothing is written.
func saveCatalog(deps *Dependencies, path string, layout appcat.Layout, label, source string, records []*appcat.Record) error {
	if len(records) == 0 {
		err := appcat.Errorf(appcat.EINVALID, "no records to write")
		fmt.Fprintf(deps.Stderr, "error: %s\n", appcat.ErrorMessage(err))
		return err
	}

	if err := deps.Writer.WriteRecords(deps.Ctx, path, layout, records); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", appcat.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %d records to %s\n", len(records), path)

	if deps.Snapshots != nil {
		snap := &appcat.Snapshot{Label: label, Source: source}
		if err := deps.Snapshots.CreateSnapshot(deps.Ctx, snap, records); err != nil {
			fmt.Fprintf(deps.Stderr, "error: saving snapshot: %s\n", appcat.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved snapshot %s\n", snap.ID)
	}

	pretty.Render(deps.Stdout, pretty.Summarize(records))
	return nil
}

// readCatalog loads a CSV catalog, printing the error for the user.
func readCatalog(deps *Dependencies, path string) ([]*appcat.Record, error) {
	records, err := deps.Reader.ReadRecords(deps.Ctx, path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s: %s\n", path, appcat.ErrorMessage(err))
		return nil, err
	}
	return records, nil
}
