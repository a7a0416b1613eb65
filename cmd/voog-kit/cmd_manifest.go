/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toothbrush/voog-kit/localsync"
)

var manifestUsage = strings.TrimSpace(`
Write a snapshot of the site's layouts and assets to manifest2.json in the site directory.  It's
only there for you to look at; voog-kit never reads it.
`)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Write " + localsync.ManifestName,
	Long:  manifestUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := requireSite()
		if err != nil {
			return err
		}

		a := newApp()
		defer a.Close()

		manifest, err := a.runner.WriteManifest(cmd.Context(), site, syncOptions())
		if err != nil {
			return fmt.Errorf("manifest: %w", err)
		}

		fmt.Printf("Wrote %s with %d layouts and %d assets.\n", localsync.ManifestName, len(manifest.Layouts), len(manifest.Assets))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(manifestCmd)
}
