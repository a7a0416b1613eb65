/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return fmt.Errorf("version: could not read build info")
		}
		fmt.Printf("voog-kit version %s\n", shortVersion(info))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Version is set at build time with -ldflags "-X main.Version=...".  Otherwise the module
// version from the build info is used, which is "(devel)" for local builds.
var Version = "unknown"

// shortVersion is "<version>-rev-<revision>[-dirty]", or as much of it as we know.
func shortVersion(info *debug.BuildInfo) string {
	version := Version
	if version == "unknown" {
		version = info.Main.Version
	}

	revision := ""
	dirty := false
	for _, kv := range info.Settings {
		switch kv.Key {
		case "vcs.revision":
			revision = kv.Value
		case "vcs.modified":
			dirty = kv.Value == "true"
		}
	}

	parts := []string{}
	if version != "" && version != "unknown" && version != "(devel)" {
		parts = append(parts, version)
	}
	if revision != "" {
		parts = append(parts, "rev", revision)
		if dirty {
			parts = append(parts, "dirty")
		}
	}
	if len(parts) == 0 {
		return "devel"
	}
	return strings.Join(parts, "-")
}
