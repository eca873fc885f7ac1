package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/askiada/go-sourcechain/internal/hoststep"
)

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the step types known by the host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, stepType := range hoststep.NewFactory().Types() {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), stepType)
				if err != nil {
					return err
				}
			}

			return nil
		},
	}
}
