package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/siemlab/console/internal/correlation"
	"github.com/siemlab/console/internal/domain/incident"
	"github.com/siemlab/console/internal/filter"
	"github.com/siemlab/console/internal/pkg/logger"
	"github.com/siemlab/console/internal/workflow"
)

func newIncidentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "incident",
		Short: "Manage security incidents",
	}

	cmd.AddCommand(newIncidentListCmd())
	cmd.AddCommand(newIncidentGetCmd())
	cmd.AddCommand(newIncidentUpdateCmd())

	return cmd
}

func newIncidentListCmd() *cobra.Command {
	var severity, status, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List incidents",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			all, err := apiClient.Incidents().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list incidents: %w", err)
			}

			incidents := filter.Incidents(all, incident.Filter{
				Severity: severity,
				Status:   status,
				Search:   search,
			})

			format := getOutputFormat()
			if format != "table" {
				return printOutput(incidents)
			}

			if len(incidents) == 0 {
				fmt.Println("No incidents found")
				return nil
			}

			table := NewTable("ID", "TITLE", "SEVERITY", "STATUS", "ALERTS", "ASSIGNED TO")
			for _, inc := range incidents {
				assigned := inc.AssignedTo
				if assigned == "" {
					assigned = "-"
				}
				table.AddRow(
					inc.ID,
					truncate(inc.Title, 45),
					formatSeverity(inc.Severity),
					formatStatus(inc.Status),
					strconv.Itoa(inc.AlertCount),
					assigned,
				)
			}
			table.Render()
			fmt.Printf("\nTotal: %d incidents\n", len(incidents))
			return nil
		},
	}

	cmd.Flags().StringVar(&severity, "severity", "", "filter by severity")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&search, "search", "", "search in title, description and assignee")

	return cmd
}

func newIncidentGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <incident-id>",
		Short: "Get incident details with correlated alerts and entities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			inc, err := apiClient.Incidents().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get incident: %w", err)
			}

			// Fetch the alert collection to correlate against. A failed
			// fetch still renders the incident, just without alert detail.
			alerts, _ := apiClient.Alerts().List(ctx)
			view := correlation.Correlate(*inc, alerts)

			format := getOutputFormat()
			if format != "table" {
				return printOutput(view)
			}

			fmt.Printf("Incident: %s\n", view.Incident.Title)
			fmt.Printf("  ID:          %s\n", view.Incident.ID)
			fmt.Printf("  Severity:    %s\n", formatSeverity(view.Incident.Severity))
			fmt.Printf("  Status:      %s\n", formatStatus(view.Incident.Status))
			if view.Incident.AssignedTo != "" {
				fmt.Printf("  Assigned to: %s\n", view.Incident.AssignedTo)
			}
			fmt.Printf("  Created:     %s\n", view.Incident.CreatedTime)
			if view.Incident.Description != "" {
				fmt.Printf("\n%s\n", view.Incident.Description)
			}

			if len(view.Entities) > 0 {
				fmt.Println("\nEntities:")
				for _, e := range view.Entities {
					kind := e.Kind
					if e.Subtype != "" {
						kind = kind + "/" + e.Subtype
					}
					fmt.Printf("  - %s (%s)\n", e.Name, kind)
				}
			}

			if len(view.Techniques) > 0 {
				fmt.Println("\nMITRE ATT&CK:")
				for _, t := range view.Techniques {
					fmt.Printf("  - %s  %s\n", t.ID, t.Tactic)
				}
			}

			if len(view.Alerts) > 0 {
				fmt.Printf("\nCorrelated alerts (%d):\n", view.AlertCount)
				table := NewTable("ID", "TITLE", "SEVERITY", "STATUS")
				for _, a := range view.Alerts {
					table.AddRow(a.ID, truncate(a.Title, 50), formatSeverity(a.Severity), formatStatus(a.Status))
				}
				table.Render()
			}
			return nil
		},
	}
}

func newIncidentUpdateCmd() *cobra.Command {
	var status, assignTo string

	cmd := &cobra.Command{
		Use:   "update <incident-id>",
		Short: "Update incident status and assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if status == "" {
				return fmt.Errorf("--status is required (one of: %s)", strings.Join(incident.Statuses, ", "))
			}

			ctx := context.Background()
			inc, err := apiClient.Incidents().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get incident: %w", err)
			}

			log := logger.New(logger.Config{Level: "error", Format: "console"})
			ctrl := workflow.NewController(apiClient.Incidents(), log)
			ctrl.Load([]incident.Incident{*inc})

			if assignTo != "" {
				if err := ctrl.StageAssignment(inc.ID, assignTo); err != nil {
					return err
				}
			}

			updated, err := ctrl.UpdateStatus(ctx, inc.ID, status)
			if err != nil {
				return fmt.Errorf("update failed: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(updated)
			}

			fmt.Printf("Incident %s updated\n", updated.ID)
			fmt.Printf("  Status:      %s\n", formatStatus(updated.Status))
			if updated.AssignedTo != "" {
				fmt.Printf("  Assigned to: %s\n", updated.AssignedTo)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "new status")
	cmd.Flags().StringVar(&assignTo, "assign", "", "assign the incident to an analyst")

	return cmd
}
