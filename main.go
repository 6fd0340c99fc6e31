package main

import (
	"os"

	"github.com/naka-gawa/fetgithub/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
