package main

import (
	"os"

	"github.com/ether/wsclient-go/lib/cli"
	"github.com/ether/wsclient-go/lib/utils"
)

func main() {
	setupLogger := utils.SetupLogger("info")
	defer setupLogger.Sync()

	if err := cli.NewRootCmd(setupLogger).Execute(); err != nil {
		setupLogger.Error(err)
		os.Exit(1)
	}
}
