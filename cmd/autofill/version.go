package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is stamped at build time via -ldflags "-X main.Version=...".
var Version = "dev"

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Print the autofill version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("autofill %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCommand)
}
