/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toothbrush/voog-kit/localsync"
)

var removeUsage = strings.TrimSpace(`
Delete files from the site, and from the local directory unless --remote-only is given.
`)

var removeCmd = &cobra.Command{
	Use:     "remove <path>...",
	Aliases: []string{"rm"},
	Short:   "Delete files from the site",
	Long:    removeUsage,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := requireSite()
		if err != nil {
			return err
		}

		a := newApp()
		defer a.Close()

		remove := a.engine.RemoveFile
		if RemoteOnly {
			remove = a.engine.DeleteFile
		}

		results := []localsync.Result{}
		for _, relativePath := range args {
			result, err := remove(cmd.Context(), site, relativePath, syncOptions())
			if err != nil {
				return fmt.Errorf("remove: %w", err)
			}
			results = append(results, result)
		}

		return printResults(os.Stdout, "removed", results)
	},
}

var RemoteOnly bool

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().BoolVar(&RemoteOnly, "remote-only", false, "keep the local file")
}
