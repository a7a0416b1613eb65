/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var configUsage = strings.TrimSpace(`
voog-kit reads two files: a YAML defaults file for flags (~/.config/voog-kit.yaml) and a .voog
site store with hosts and tokens, either in the current directory or in your home directory.
Use these commands to see what was picked up and from where.
`)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the defaults file and the site store",
	Long:  configUsage,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
