package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/siemlab/console/internal/lab"
	"github.com/siemlab/console/internal/pkg/logger"
)

func newLabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lab",
		Short: "Run guided attack scenarios",
	}

	cmd.AddCommand(newLabScenariosCmd())
	cmd.AddCommand(newLabStartCmd())
	cmd.AddCommand(newLabPlayCmd())
	cmd.AddCommand(newLabChallengesCmd())
	cmd.AddCommand(newLabResetCmd())

	return cmd
}

func newLabScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List available attack scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scenarios, err := apiClient.Labs().Scenarios(ctx)
			if err != nil {
				return fmt.Errorf("failed to list scenarios: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(scenarios)
			}

			if len(scenarios) == 0 {
				fmt.Println("No scenarios available")
				return nil
			}

			table := NewTable("ID", "NAME", "DIFFICULTY", "DESCRIPTION")
			for _, s := range scenarios {
				table.AddRow(s.ID, s.Name, s.Difficulty, truncate(s.Description, 60))
			}
			table.Render()
			return nil
		},
	}
}

func newLabStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <scenario-id>",
		Short: "Inject a scenario's alerts and incidents without opening a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			resp, err := apiClient.Labs().StartScenario(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to start scenario: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(resp)
			}

			fmt.Printf("Scenario %s started (run %s)\n", resp.ScenarioID, resp.RunID)
			fmt.Println("Alerts and incidents are being injected. Run 'console alert list' to investigate,")
			fmt.Println("or 'console lab play' to answer the graded questions.")
			return nil
		},
	}
}

func newLabPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <scenario-id>",
		Short: "Start a scenario and answer its questions interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			log := logger.New(logger.Config{Level: "error", Format: "console"})
			engine := lab.NewEngine(apiClient.Labs(), log)

			session, err := engine.Start(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Scenario started (run %s). %d questions, %d points total.\n",
				session.RunID, len(session.Questions), session.TotalPoints)
			fmt.Println("Type your answer, 'hint' for a hint, 'skip' to advance, or 'quit' to stop.")

			reader := bufio.NewReader(os.Stdin)
			for {
				q, ok := session.Current()
				if !ok {
					break
				}

				fmt.Printf("\n[%d/%d] %s (%d pts)\n",
					session.Cursor+1, len(session.Questions), q.Prompt, q.Points)
				if session.ShowHint && q.Hint != "" {
					fmt.Printf("Hint: %s\n", q.Hint)
				}

				fmt.Print("> ")
				line, err := reader.ReadString('\n')
				if err != nil {
					break
				}
				input := strings.TrimSpace(line)

				switch input {
				case "quit":
					engine.Close(session)
					printSummary(lab.Summarize(session))
					return nil
				case "hint":
					session.ShowHint = true
					continue
				case "skip":
					if err := engine.Advance(session); err != nil {
						fmt.Println(err)
					}
					continue
				}

				res, err := engine.Submit(ctx, session, input)
				if err != nil {
					fmt.Println(err)
					continue
				}

				if res.Correct {
					fmt.Printf("Correct! +%d points. %s\n", res.PointsAwarded, res.Feedback)
				} else {
					fmt.Printf("Not quite. %s\n", res.Feedback)
				}

				if session.Cursor+1 >= len(session.Questions) {
					break
				}
				if err := engine.Advance(session); err != nil {
					fmt.Println(err)
				}
			}

			engine.Close(session)
			printSummary(lab.Summarize(session))
			return nil
		},
	}
}

func newLabChallengesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "challenges",
		Short: "List KQL query challenges",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			challenges, err := apiClient.Labs().Challenges(ctx)
			if err != nil {
				return fmt.Errorf("failed to list challenges: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(challenges)
			}

			if len(challenges) == 0 {
				fmt.Println("No challenges available")
				return nil
			}

			table := NewTable("ID", "TITLE", "DIFFICULTY", "POINTS")
			for _, c := range challenges {
				table.AddRow(c.ID, truncate(c.Title, 50), c.Difficulty, strconv.Itoa(c.Points))
			}
			table.Render()
			return nil
		},
	}
}

func newLabResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear all injected scenario data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				answer := promptInput("Reset the training environment? All scenario data will be cleared (y/N): ")
				if strings.ToLower(answer) != "y" {
					fmt.Println("Aborted")
					return nil
				}
			}

			ctx := context.Background()
			log := logger.New(logger.Config{Level: "error", Format: "console"})
			engine := lab.NewEngine(apiClient.Labs(), log)
			if err := engine.Reset(ctx); err != nil {
				return err
			}

			fmt.Println("Training environment reset")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")

	return cmd
}

func printSummary(sum lab.Summary) {
	fmt.Printf("\nScore: %d/%d", sum.Score, sum.TotalPoints)
	if sum.TotalPoints > 0 {
		fmt.Printf(" (%d%%)", sum.Percent)
	}
	fmt.Printf("\nAnswered %d of %d questions\n", sum.Answered, sum.Total)
	fmt.Println(sum.Message)
}
