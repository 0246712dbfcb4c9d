package main

import (
	"fmt"
	"os"

	"github.com/Pack3tL0ss/cencli/cmd/cencli/root"
)

func main() {
	if err := root.New().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
