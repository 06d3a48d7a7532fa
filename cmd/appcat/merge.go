package main

import (
	"fmt"

	"github.com/fwojciec/appcat"
	"github.com/fwojciec/appcat/pretty"
)

// Run executes the merge command.
func (c *MergeCmd) Run(deps *Dependencies) error {
	baseline, err := readCatalog(deps, c.Baseline)
	if err != nil {
		return err
	}
	refresh, err := readCatalog(deps, c.Refresh)
	if err != nil {
		return err
	}

	result := appcat.Reconcile(baseline, refresh)

	fmt.Fprintf(deps.Stdout, "Merged %d baseline and %d refresh records: %d overlapping, %d new, %d carried over, %d descriptions kept\n",
		len(baseline), len(refresh), result.Overlaps, result.Additions, result.Carried, result.DescriptionsKept)

	if c.NearMiss && deps.NearMisses != nil {
		misses := deps.NearMisses.Find(baseline, refresh)
		if len(misses) == 0 {
			fmt.Fprintln(deps.Stdout, "No near-miss names found.")
		} else {
			rows := make([][]string, 0, len(misses))
			for _, m := range misses {
				rows = append(rows, []string{m.Refresh, m.Baseline, fmt.Sprintf("%.3f", m.Similarity)})
			}
			pretty.Rows(deps.Stdout, []string{"Refresh", "Baseline", "Similarity"}, rows)
		}
	}

	return saveCatalog(deps, c.Output, appcat.LayoutFull, "merge", c.Baseline+" + "+c.Refresh, result.Records)
}
