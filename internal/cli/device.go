package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/siemlab/console/internal/filter"
)

func newDeviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device",
		Short: "Manage onboarded devices",
	}

	cmd.AddCommand(newDeviceListCmd())

	return cmd
}

func newDeviceListCmd() *cobra.Command {
	var risk, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			all, err := apiClient.Devices().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list devices: %w", err)
			}

			devices := filter.Devices(all, filter.DeviceFilter{
				RiskLevel: risk,
				Search:    search,
			})

			format := getOutputFormat()
			if format != "table" {
				return printOutput(devices)
			}

			if len(devices) == 0 {
				fmt.Println("No devices found")
				return nil
			}

			table := NewTable("NAME", "OS", "IP", "RISK", "STATUS", "ALERTS", "TAGS")
			for _, d := range devices {
				table.AddRow(
					d.Name,
					d.OSPlatform,
					d.IPAddress,
					d.RiskLevel,
					formatStatus(d.OnboardingStatus),
					strconv.Itoa(d.ActiveAlerts),
					truncate(strings.Join(d.Tags, ","), 30),
				)
			}
			table.Render()
			fmt.Printf("\nTotal: %d devices\n", len(devices))
			return nil
		},
	}

	cmd.Flags().StringVar(&risk, "risk", "", "filter by risk level")
	cmd.Flags().StringVar(&search, "search", "", "search in name, owner and IP")

	return cmd
}
