package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/siemlab/console/internal/correlation"
	"github.com/siemlab/console/internal/domain/alert"
	"github.com/siemlab/console/internal/filter"
)

func newAlertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Manage security alerts",
	}

	cmd.AddCommand(newAlertListCmd())
	cmd.AddCommand(newAlertGetCmd())

	return cmd
}

func newAlertListCmd() *cobra.Command {
	var severity, status, search string
	var bySeverity bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			all, err := apiClient.Alerts().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list alerts: %w", err)
			}

			alerts := filter.Alerts(all, alert.Filter{
				Severity: severity,
				Status:   status,
				Search:   search,
			})

			if bySeverity {
				sort.SliceStable(alerts, func(i, j int) bool {
					return alert.SeverityRank(alerts[i].Severity) > alert.SeverityRank(alerts[j].Severity)
				})
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(alerts)
			}

			if len(alerts) == 0 {
				fmt.Println("No alerts found")
				return nil
			}

			table := NewTable("ID", "TITLE", "SEVERITY", "STATUS", "PRODUCT", "ENTITY")
			for _, a := range alerts {
				table.AddRow(
					a.ID,
					truncate(a.Title, 45),
					formatSeverity(a.Severity),
					formatStatus(a.Status),
					a.Product,
					truncate(a.Entity, 30),
				)
			}
			table.Render()
			fmt.Printf("\nTotal: %d alerts\n", len(alerts))
			return nil
		},
	}

	cmd.Flags().StringVar(&severity, "severity", "", "filter by severity")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&search, "search", "", "search in title, description and entity")
	cmd.Flags().BoolVar(&bySeverity, "by-severity", false, "sort most severe first")

	return cmd
}

func newAlertGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <alert-id>",
		Short: "Get alert details with MITRE and remediation context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := apiClient.Alerts().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get alert: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(a)
			}

			fmt.Printf("Alert: %s\n", a.Title)
			fmt.Printf("  ID:          %s\n", a.ID)
			fmt.Printf("  Severity:    %s\n", formatSeverity(a.Severity))
			fmt.Printf("  Status:      %s\n", formatStatus(a.Status))
			fmt.Printf("  Product:     %s\n", a.Product)
			fmt.Printf("  Category:    %s\n", a.Category)
			fmt.Printf("  Entity:      %s\n", a.Entity)
			fmt.Printf("  Created:     %s\n", a.CreatedTime)
			if a.Technique != "" {
				fmt.Printf("  Technique:   %s (%s)\n", a.Technique, correlation.TacticFor(a.Technique))
			}
			if a.Description != "" {
				fmt.Printf("\n%s\n", a.Description)
			}

			if desc := correlation.CategoryDescription(a.Category); desc != "" {
				fmt.Printf("\nAbout this category:\n  %s\n", desc)
			}
			fmt.Println("\nRemediation steps:")
			for i, step := range correlation.RemediationSteps(a.Category) {
				fmt.Printf("  %s. %s\n", strconv.Itoa(i+1), step)
			}
			return nil
		},
	}
}
