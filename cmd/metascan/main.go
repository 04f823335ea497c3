package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/youtNa/doris/app"
)

var rootCmd = &cobra.Command{
	Use:   "metascan",
	Short: "Metadata scanner for external table formats",
}

func init() {
	rootCmd.AddCommand(app.Cmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
