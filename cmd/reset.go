package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all recorded sessions, events and leaderboards",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("%w: pass --yes to delete all recorded data", errAborted)
		}
		ctx := cmd.Context()

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Reset(ctx); err != nil {
			return err
		}

		rs, closeRedis, err := openRedis(ctx)
		if err != nil {
			return err
		}
		defer closeRedis()
		if rs != nil {
			if err := rs.Reset(ctx); err != nil {
				return fmt.Errorf("reset leaderboards: %w", err)
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), "All recorded data deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
