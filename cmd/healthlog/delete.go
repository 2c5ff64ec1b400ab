// ABOUTME: CLI command for deleting sleep records.
// ABOUTME: Needs the record's date to locate its remote bucket.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/healthlog/internal/models"
	"github.com/spf13/cobra"
)

var deleteDate string

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a sleep record",
	Long: `Delete a sleep record by its ID.

The record's calendar date is required to locate its bucket in the
remote store. Deleting an ID that does not exist succeeds silently.

Only sleep records live authoritatively in the remote store; workout,
water, and meal entries are session-local and have no delete command.

EXAMPLES:

  healthlog delete 4f1c9a02-...
  healthlog rm 4f1c9a02-... --date 2024-01-01

CAUTION:

  This permanently deletes the record. There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid id: %s", args[0])
		}

		date, err := resolveDate(deleteDate)
		if err != nil {
			return err
		}

		if err := eng.DeleteSleep(cmd.Context(), id, date); err != nil {
			return fmt.Errorf("failed to delete sleep record: %w", err)
		}
		// The remote delete does not touch presentation state.
		eng.Cache().RemoveSleep(id)

		color.Yellow("✗ Deleted sleep record")
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(id.String()[:8]),
			models.DateKey(date))
		return nil
	},
}

func init() {
	deleteCmd.Flags().StringVarP(&deleteDate, "date", "d", "", "calendar date (YYYY-MM-DD) of the record, defaults to today")
	rootCmd.AddCommand(deleteCmd)
}
