/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toothbrush/voog-kit/localsync"
)

var pushUsage = strings.TrimSpace(`
Upload local files over their counterparts on the site.  Without arguments every file the site
knows about is pushed.  Images and other non-editable assets can only be replaced by deleting
and re-uploading them, which only happens with --overwrite.
`)

var pushCmd = &cobra.Command{
	Use:   "push [path or folder...]",
	Short: "Upload files to the site",
	Long:  pushUsage,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := requireSite()
		if err != nil {
			return err
		}

		a := newApp()
		defer a.Close()

		opts := syncOptions()
		opts.Overwrite = Overwrite

		var results []localsync.Result
		if len(args) == 0 {
			results, err = a.runner.PushAllFiles(cmd.Context(), site, opts)
		} else {
			results, err = eachTarget(cmd.Context(), args,
				func(ctx context.Context, folder string) ([]localsync.Result, error) {
					return a.runner.PushFolder(ctx, site, folder, opts)
				},
				func(ctx context.Context, relativePath string) (localsync.Result, error) {
					return a.engine.Push(ctx, site, relativePath, opts)
				})
		}
		if err != nil {
			return fmt.Errorf("push: %w", err)
		}

		return printResults(os.Stdout, "pushed", results)
	},
}

var Overwrite bool

func init() {
	rootCmd.AddCommand(pushCmd)

	pushCmd.Flags().BoolVarP(&Overwrite, "overwrite", "f", false, "replace non-editable assets by deleting and re-uploading them")
}
