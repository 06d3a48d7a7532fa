package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fwojciec/appcat"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = appcat.Errorf(appcat.ENOTFOUND, "export file %q not found", c.File)
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", appcat.ErrorMessage(err))
		return err
	}

	result, err := deps.Extractor.Extract(deps.Ctx, string(data))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", appcat.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Extracted %d of %d apps (%d skipped)\n",
		len(result.Records), result.Candidates, len(result.Skipped))

	return saveCatalog(deps, c.Output, appcat.Layout(c.Layout), "parse", c.File, result.Records)
}
