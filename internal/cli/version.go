package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/rosterview/pkg/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(ver string) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), ver)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.Long())
			if !version.IsRelease() {
				fmt.Fprintln(cmd.OutOrStdout(), "development build")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")
	return cmd
}
