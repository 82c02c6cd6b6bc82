package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/claude/workoutlog/internal/models"
	"github.com/claude/workoutlog/internal/ui"
	"github.com/spf13/cobra"
)

var (
	logType      string
	logDuration  string
	logIntensity string
	logNotes     string

	deleteYes bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a workout",
	Long:  `Log a workout. The server assigns its id and timestamp; the history is shown afterwards.`,
	Example: `  workoutlog log --type Run --duration 30 --intensity High
  workoutlog log --type Yoga --duration 45 --intensity Low --notes "hip openers"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		a.controller.SetForm(ui.FormInput{
			Type:      logType,
			Duration:  logDuration,
			Intensity: logIntensity,
			Notes:     logNotes,
		})
		if !a.controller.SubmitForm(cmd.Context()) {
			return errReported
		}
		a.term.PrintList(a.controller.State().List)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"history"},
	Short:   "Show logged workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.controller.FetchWorkouts(cmd.Context()) {
			return errReported
		}
		a.term.PrintList(a.controller.State().List)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a logged workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm := stdinConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
		if deleteYes {
			confirm = func(string) bool { return true }
		}

		a, err := newApp(cmd, ui.WithConfirmer(confirm))
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.controller.DeleteWorkout(cmd.Context(), models.ID(args[0])) {
			// A declined prompt leaves no status behind.
			if a.controller.State().Status == nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
				return nil
			}
			return errReported
		}
		a.term.PrintList(a.controller.State().List)
		return nil
	},
}

func init() {
	logCmd.Flags().StringVarP(&logType, "type", "t", "", "workout type (e.g. Run, Strength)")
	logCmd.Flags().StringVarP(&logDuration, "duration", "d", "", "duration in whole minutes")
	logCmd.Flags().StringVarP(&logIntensity, "intensity", "i", "", "intensity (e.g. Low, Medium, High)")
	logCmd.Flags().StringVarP(&logNotes, "notes", "n", "", "optional notes")
	logCmd.MarkFlagRequired("type")
	logCmd.MarkFlagRequired("duration")
	logCmd.MarkFlagRequired("intensity")

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}

// stdinConfirmer asks prompt on out and accepts "y" or "yes" from in.
func stdinConfirmer(in io.Reader, out io.Writer) ui.Confirmer {
	reader := bufio.NewReader(in)
	return func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	}
}
