// Command content-creator drives the Content Creator CLI of the
// current project. All functionality lives in internal/cli.
package main

import (
	"log"

	"github.com/oychao1988/content-creator/internal/cli"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("content-creator: ")

	cli.Execute(cli.NewRootCommand())
}
