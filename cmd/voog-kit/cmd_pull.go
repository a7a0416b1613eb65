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

var pullUsage = strings.TrimSpace(`
Download layouts, components and assets from the site into its directory.  Without arguments
everything is pulled; otherwise give file paths like components/header.tpl, or whole folders
like stylesheets.
`)

var pullCmd = &cobra.Command{
	Use:   "pull [path or folder...]",
	Short: "Download files from the site",
	Long:  pullUsage,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := requireSite()
		if err != nil {
			return err
		}

		a := newApp()
		defer a.Close()

		opts := syncOptions()
		opts.WriteManifest = WriteManifest

		var results []localsync.Result
		if len(args) == 0 {
			debugLog("pulling everything from %s\n", site)
			results, err = a.runner.PullAllFiles(cmd.Context(), site, opts)
		} else {
			results, err = eachTarget(cmd.Context(), args,
				func(ctx context.Context, folder string) ([]localsync.Result, error) {
					return a.runner.PullFolder(ctx, site, folder, opts)
				},
				func(ctx context.Context, relativePath string) (localsync.Result, error) {
					return a.engine.Pull(ctx, site, relativePath, opts)
				})
		}
		if err != nil {
			return fmt.Errorf("pull: %w", err)
		}

		return printResults(os.Stdout, "pulled", results)
	},
}

var WriteManifest bool

func init() {
	rootCmd.AddCommand(pullCmd)

	pullCmd.Flags().BoolVar(&WriteManifest, "manifest", false, "also write "+localsync.ManifestName+" when pulling everything")
}
