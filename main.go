package main

import (
	"fmt"
	"os"

	"github.com/AdamMil/BirdhouseManor/cmd"
	_ "github.com/AdamMil/BirdhouseManor/internal/extensions/ravenloft"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
