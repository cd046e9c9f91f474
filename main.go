// main is the entry point for the metacheck CLI.
package main

import (
	"github.com/oeg-upm/metacheck/cmd"
	"github.com/oeg-upm/metacheck/internal/contract"
	"github.com/oeg-upm/metacheck/internal/iocache"
)

func main() {
	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
