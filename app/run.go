package app

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/apache/arrow/go/v13/arrow"
	"github.com/apache/arrow/go/v13/arrow/array"
	"github.com/apache/arrow/go/v13/arrow/memory"
	"github.com/spf13/cobra"

	"github.com/youtNa/doris/columnar"
	"github.com/youtNa/doris/config"
	"github.com/youtNa/doris/descriptor"
	"github.com/youtNa/doris/exec"
	"github.com/youtNa/doris/frontend"
	"github.com/youtNa/doris/meta"
	"github.com/youtNa/doris/scan"
	"github.com/youtNa/doris/utils"
)

const snapshotsTupleID = 0

func run(cmd *cobra.Command, _ []string) error {
	configPath, err := cmd.Flags().GetString(configFlag)
	if err != nil {
		return fmt.Errorf("get config flag: %v", err)
	}

	cfg, err := config.NewFromPath(configPath)
	if err != nil {
		return fmt.Errorf("new config: %w", err)
	}

	logger, err := utils.NewLogger(cfg.Logger.Level)
	if err != nil {
		return fmt.Errorf("new logger from config: %w", err)
	}

	params := scan.Params{}
	for flag, dst := range map[string]*string{
		clusterFlag:  &params.Cluster,
		catalogFlag:  &params.Catalog,
		databaseFlag: &params.Database,
		tableFlag:    &params.Table,
	} {
		if *dst, err = cmd.Flags().GetString(flag); err != nil {
			return fmt.Errorf("get %s flag: %v", flag, err)
		}
	}

	snapshotID, err := cmd.Flags().GetInt64(snapshotIDFlag)
	if err != nil {
		return fmt.Errorf("get snapshot-id flag: %v", err)
	}

	limit, err := cmd.Flags().GetInt64(limitFlag)
	if err != nil {
		return fmt.Errorf("get limit flag: %v", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := frontend.NewClient(logger, &frontend.ClientConfig{
		Addr:           cfg.Frontend.Addr,
		ConnectTimeout: cfg.Frontend.ConnectTimeout(),
		RequestTimeout: cfg.Frontend.RequestTimeout(),
		MaxRetries:     cfg.Frontend.MaxRetries,
	})

	state := exec.NewRuntimeState(ctx, "metascan-cli", descriptor.NewTable(meta.SnapshotsTuple(snapshotsTupleID)))

	scanRange := &meta.ScanRange{Snapshots: &meta.SnapshotsParams{SnapshotID: snapshotID}}

	scanner := scan.NewMetaScanner(
		logger, client, memory.DefaultAllocator, params, snapshotsTupleID, scanRange, limit)

	if err := scanner.Open(state); err != nil {
		return fmt.Errorf("open scanner: %w", err)
	}

	defer func() {
		if err := scanner.Close(state); err != nil {
			fmt.Fprintln(os.Stderr, "close scanner:", err)
		}
	}()

	if err := scanner.Prepare(state, nil); err != nil {
		return fmt.Errorf("prepare scanner: %w", err)
	}

	block := columnar.NewBlock()
	defer block.Release()

	for {
		var eof bool

		if err := scanner.GetNext(state, block, &eof); err != nil {
			return fmt.Errorf("get next block: %w", err)
		}

		if eof {
			return nil
		}

		record, err := block.Record()
		if err != nil {
			return fmt.Errorf("block to record: %w", err)
		}

		err = printRecord(os.Stdout, record)
		record.Release()

		if err != nil {
			return fmt.Errorf("print record: %w", err)
		}
	}
}

func printRecord(out io.Writer, record arrow.Record) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	for i := 0; i < int(record.NumCols()); i++ {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}

		fmt.Fprint(w, record.ColumnName(i))
	}

	fmt.Fprintln(w)

	for row := 0; row < int(record.NumRows()); row++ {
		for i := 0; i < int(record.NumCols()); i++ {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}

			switch col := record.Column(i).(type) {
			case *array.Int32:
				fmt.Fprint(w, col.Value(row))
			case *array.Int64:
				fmt.Fprint(w, col.Value(row))
			case *array.Uint64:
				fmt.Fprint(w, col.Value(row))
			case *array.String:
				fmt.Fprint(w, col.Value(row))
			default:
				return fmt.Errorf("column '%s' has unexpected type %T: %w",
					record.ColumnName(i), col, utils.ErrDataTypeNotSupported)
			}
		}

		fmt.Fprintln(w)
	}

	return w.Flush()
}
