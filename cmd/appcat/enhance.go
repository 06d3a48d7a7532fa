package main

import (
	"fmt"

	"github.com/fwojciec/appcat"
)

// Run executes the enhance command.
func (c *EnhanceCmd) Run(deps *Dependencies) error {
	records, err := readCatalog(deps, c.Input)
	if err != nil {
		return err
	}

	result, err := deps.Enhancer.Enhance(deps.Ctx, records)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error enhancing: %s\n", appcat.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Enhanced %d descriptions and %d platform lists (%d pages failed)\n",
		result.Descriptions, result.Platforms, result.Failed)

	return saveCatalog(deps, c.Output, appcat.LayoutFull, "enhance", c.Input, result.Records)
}
