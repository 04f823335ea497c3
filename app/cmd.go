package app

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var Cmd = &cobra.Command{
	Use:   "scan",
	Short: "Fetch a remote metadata table and print it",
	Run: func(cmd *cobra.Command, args []string) {
		if err := run(cmd, args); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

const (
	configFlag     = "config"
	clusterFlag    = "cluster"
	catalogFlag    = "catalog"
	databaseFlag   = "database"
	tableFlag      = "table"
	snapshotIDFlag = "snapshot-id"
	limitFlag      = "limit"
)

func init() {
	Cmd.Flags().StringP(configFlag, "c", "", "path to config file")
	Cmd.Flags().String(clusterFlag, "", "cluster name (may be empty)")
	Cmd.Flags().String(catalogFlag, "", "catalog of the target table")
	Cmd.Flags().String(databaseFlag, "", "database of the target table")
	Cmd.Flags().String(tableFlag, "", "name of the target table")
	Cmd.Flags().Int64(snapshotIDFlag, 0, "restrict the history to one snapshot (0 means all)")
	Cmd.Flags().Int64(limitFlag, 0, "maximum number of rows to materialize (0 means no limit)")

	for _, flag := range []string{configFlag, catalogFlag, databaseFlag, tableFlag} {
		if err := Cmd.MarkFlagRequired(flag); err != nil {
			log.Fatal(err)
		}
	}
}
