package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	labengine "github.com/siemlab/console/internal/lab"
	"github.com/siemlab/console/internal/pkg/logger"
)

func newKQLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kql",
		Short: "Hunt with KQL queries",
	}

	cmd.AddCommand(newKQLRunCmd())
	cmd.AddCommand(newKQLValidateCmd())

	return cmd
}

func newKQLRunCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "run [query]",
		Short: "Run a KQL query against the simulated log tables",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var query string
			switch {
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read query file: %w", err)
				}
				query = string(data)
			case len(args) == 1:
				query = args[0]
			default:
				return fmt.Errorf("provide a query argument or --file")
			}

			ctx := context.Background()
			result, err := apiClient.Hunting().Query(ctx, query)
			if err != nil {
				return fmt.Errorf("query failed: %w", err)
			}

			if result.Failed() {
				fmt.Fprintf(os.Stderr, "Query error: %s\n", result.Error)
				return nil
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(result)
			}

			if result.RowCount == 0 {
				fmt.Println("No rows returned")
				return nil
			}

			table := NewTable(result.Columns...)
			for _, row := range result.Rows {
				cols := make([]string, len(result.Columns))
				for i, col := range result.Columns {
					cols[i] = truncate(fmt.Sprintf("%v", row[col]), 40)
				}
				table.AddRow(cols...)
			}
			table.Render()
			fmt.Printf("\n%d rows\n", result.RowCount)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the query from a file")

	return cmd
}

func newKQLValidateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate <challenge-id> [query]",
		Short: "Submit a query against a KQL challenge",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var query string
			switch {
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read query file: %w", err)
				}
				query = string(data)
			case len(args) == 2:
				query = args[1]
			default:
				return fmt.Errorf("provide a query argument or --file")
			}

			ctx := context.Background()
			log := logger.New(logger.Config{Level: "error", Format: "console"})
			engine := labengine.NewEngine(apiClient.Labs(), log)

			session, err := engine.StartChallenges(ctx)
			if err != nil {
				return err
			}

			res, err := engine.SubmitChallenge(ctx, session, args[0], query)
			if err != nil {
				return err
			}

			if res.Correct {
				fmt.Printf("Correct! +%d points\n", res.PointsAwarded)
			} else {
				fmt.Println("Incorrect")
			}
			if res.Feedback != "" {
				fmt.Println(strings.TrimSpace(res.Feedback))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the query from a file")

	return cmd
}
