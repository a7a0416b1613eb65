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

var addUsage = strings.TrimSpace(`
Create new files on the site.  A file that doesn't exist locally yet is created empty.  Give a
path like layouts/blog.tpl, or just a filename and let the extension pick the folder.
`)

var addCmd = &cobra.Command{
	Use:   "add <path>...",
	Short: "Create files locally and on the site",
	Long:  addUsage,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := requireSite()
		if err != nil {
			return err
		}

		a := newApp()
		defer a.Close()

		opts := syncOptions()
		opts.Title = AddTitle
		opts.ContentType = AddContentType
		opts.ParentID = AddParentID
		opts.ParentTitle = AddParentTitle

		results := []localsync.Result{}
		for _, name := range args {
			result, err := a.engine.AddFile(cmd.Context(), site, name, opts)
			if err != nil {
				return fmt.Errorf("add: %w", err)
			}
			results = append(results, result)
		}

		return printResults(os.Stdout, "added", results)
	},
}

var (
	AddTitle       string
	AddContentType string
	AddParentID    int
	AddParentTitle string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&AddTitle, "title", "", "layout title (default: derived from the filename)")
	addCmd.Flags().StringVar(&AddContentType, "content-type", "", "layout content type, e.g. page, blog, elastic_page (default: page, or component)")
	addCmd.Flags().IntVar(&AddParentID, "parent-id", 0, "id of the parent layout")
	addCmd.Flags().StringVar(&AddParentTitle, "parent-title", "", "title of the parent layout")
}
