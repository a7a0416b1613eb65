/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/toothbrush/voog-kit/config"
)

// whichCmd represents the which command
var whichCmd = &cobra.Command{
	Use:   "which",
	Short: "Tell me the resolved config paths",
	Long: `
Output the filenames that are being used for your defaults and for the site store.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.NewStore(afero.NewOsFs())
		path, err := store.Path(configScope())
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}

		fmt.Printf("Defaults: %s\n", Config)
		fmt.Printf("Site store: %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(whichCmd)
}
