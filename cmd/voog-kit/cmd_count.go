/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print how many layouts and assets the site has",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := requireSite()
		if err != nil {
			return err
		}

		a := newApp()
		defer a.Close()

		count, err := a.runner.GetTotalFileCount(cmd.Context(), site, syncOptions())
		if err != nil {
			return fmt.Errorf("count: %w", err)
		}

		fmt.Println(count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countCmd)
}
