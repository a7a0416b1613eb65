/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/toothbrush/voog-kit/config"
	"gopkg.in/yaml.v3"
)

var sitesUsage = strings.TrimSpace(`
Commands in this namespace manage the site store: the .voog file in the current directory, or
~/.voog.  Sites are looked up by name or by host.
`)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Commands to manage registered sites",
	Long:  sitesUsage,
}

var sitesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print registered sites",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.NewStore(afero.NewOsFs())
		sites, err := store.Sites(configScope())
		if errors.Is(err, config.ErrConfigNotFound) {
			fmt.Println("No sites registered yet.  Add one with `voog-kit sites add`.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("sites: %w", err)
		}

		return writeSites(os.Stdout, sites)
	},
}

// writeSites prints sites as YAML, without their tokens.
func writeSites(w io.Writer, sites []config.Site) error {
	masked := make([]config.Site, 0, len(sites))
	for _, site := range sites {
		site.Token = maskToken(site.Token)
		masked = append(masked, site)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]config.Site{"sites": masked}); err != nil {
		return fmt.Errorf("sites: couldn't encode sites: %w", err)
	}
	return enc.Close()
}

func maskToken(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}

var sitesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a site, replacing any with the same name or host",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.NewStore(afero.NewOsFs())
		added, err := store.AddSite(config.Site{
			Name:  args[0],
			Host:  Host,
			Token: Token,
			Dir:   Dir,
		}, configScope())
		if err != nil {
			return fmt.Errorf("sites: %w", err)
		}
		if !added {
			return fmt.Errorf("sites: --host and --token are required")
		}

		path, err := store.Path(configScope())
		if err != nil {
			return fmt.Errorf("sites: %w", err)
		}
		fmt.Printf("Added %s to %s.\n", args[0], path)
		return nil
	},
}

var sitesRemoveCmd = &cobra.Command{
	Use:   "remove <name or host>",
	Short: "Forget a site",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.NewStore(afero.NewOsFs())
		removed, err := store.RemoveSite(args[0], configScope())
		if err != nil {
			return fmt.Errorf("sites: %w", err)
		}
		if !removed {
			return fmt.Errorf("sites: no site called %q", args[0])
		}

		fmt.Printf("Removed %s.\n", args[0])
		return nil
	},
}

var sitesUpdateCmd = &cobra.Command{
	Use:   "update <name or host>",
	Short: "Change a registered site's host, token or directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.NewStore(afero.NewOsFs())
		patch := config.Site{Host: Host, Token: Token, Dir: Dir}
		if err := store.UpdateSite(args[0], patch, configScope()); err != nil {
			return fmt.Errorf("sites: %w", err)
		}

		fmt.Printf("Updated %s.\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sitesCmd)
	sitesCmd.AddCommand(sitesListCmd)
	sitesCmd.AddCommand(sitesAddCmd)
	sitesCmd.AddCommand(sitesRemoveCmd)
	sitesCmd.AddCommand(sitesUpdateCmd)
}
