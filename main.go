package main

import (
	"os"

	"github.com/k1LoW/git-hooks/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
