package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pluglint/pluglint/cmd"
)

func main() {
	app := cli.NewApp()
	app.Name = os.Args[0]
	app.Usage = "Pluggable Source Code Analyzer Driver"
	app.Description = "Pluggable Source Code Analyzer Driver"
	app.Commands = []*cli.Command{
		cmd.RunCommand,
	}
	// cli handles ExitCoder errors itself, so policy exit codes from the
	// run command terminate the process before this check.
	err := app.RunContext(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
