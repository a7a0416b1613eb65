/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"reflect"

	"github.com/fatih/structs"
	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/toothbrush/voog-kit/internal/termfmt"
	"gopkg.in/yaml.v2"
)

var (
	// Store the result of binding cobra flags
	Config string
	Debug  bool

	// Which site to work on, and overrides for what the site store says about it.
	SiteName string
	Host     string
	Token    string
	Dir      string

	// Which site store (.voog file) to use.
	Global     bool
	Local      bool
	ConfigPath string

	WithVCR     bool
	Concurrency int
	PageSize    int

	ParsedConfig YamlConfig
)

// Build the cobra command that handles our command line tool.
var rootCmd = &cobra.Command{
	Use:   "voog-kit",
	Short: "Keep a local directory in sync with a Voog site's layouts and assets",
	Long: `
Edit your Voog site's templates, stylesheets and javascripts with your own editor.  voog-kit maps
layouts, components and layout assets onto a directory tree, and pulls and pushes them by path.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(cmd); err != nil {
			return fmt.Errorf("voog-kit: failed to initialise config: %w", err)
		}

		if Debug {
			logger.SetLevel(logrus.DebugLevel)
		}
		termfmt.Detect(os.Stdout)
		return nil
	},
}

func init() {
	// Define cobra flags, the default value has the lowest (least significant) precedence
	rootCmd.PersistentFlags().StringVar(&Config, "config", "", "defaults file location (default: ~/.config/voog-kit.yaml, respects VOOG_KIT_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "display debug output")

	rootCmd.PersistentFlags().StringVarP(&SiteName, "site", "s", "", "name or host of the site to work on")
	rootCmd.PersistentFlags().StringVar(&Host, "host", "", "site host, e.g. mysite.voog.com (overrides the site store)")
	rootCmd.PersistentFlags().StringVar(&Token, "token", "", "Voog API token (overrides the site store)")
	rootCmd.PersistentFlags().StringVar(&Dir, "dir", "", "local directory of the site (overrides the site store)")

	rootCmd.PersistentFlags().BoolVar(&Global, "global", false, "use the global site store, ~/.voog")
	rootCmd.PersistentFlags().BoolVar(&Local, "local", false, "use the site store in the current directory, ./.voog")
	rootCmd.PersistentFlags().StringVar(&ConfigPath, "config-path", "", "use this site store file instead")

	rootCmd.PersistentFlags().BoolVar(&WithVCR, "with-vcr", false, "use go-vcr to record and replay API responses")
	rootCmd.PersistentFlags().IntVarP(&Concurrency, "concurrency", "j", 0, "maximum number of files in flight (0 is unlimited)")
	rootCmd.PersistentFlags().IntVar(&PageSize, "page-size", 0, "items per page when listing (default 250)")
}

func initializeConfig(cmd *cobra.Command) error {
	if Config == "" {
		// Did the user provide an ENV?
		envConfig := os.Getenv("VOOG_KIT_CONFIG")
		if envConfig != "" {
			Config = envConfig
		} else {
			// As fallback, search for config in home XDG-ish directory
			Config = "~/.config/voog-kit.yaml"
		}
	}
	config, err := homedir.Expand(Config)
	if err != nil {
		return fmt.Errorf("voog-kit: unable to expand homedir: %w", err)
	}
	Config = config

	// Everything can come from flags and the site store, so a missing file is fine.
	yamlFile, err := os.ReadFile(Config)
	if errors.Is(err, os.ErrNotExist) {
		debugLog("no defaults file at %s\n", Config)
		return nil
	}
	if err != nil {
		return fmt.Errorf("voog-kit: error reading config file: %w", err)
	}

	// I'd like to bark if a user sets a flag we don't recognise:
	if err := yaml.UnmarshalStrict(yamlFile, &ParsedConfig); err != nil {
		return fmt.Errorf("voog-kit: issue parsing config file: %w", err)
	}

	if err := bindFlags(cmd, ParsedConfig); err != nil {
		return fmt.Errorf("voog-kit: failed to bind flags: %w", err)
	}

	return nil
}

type YamlConfig struct {
	Debug     *bool `yaml:"debug"`
	WithVCR   *bool `yaml:"with-vcr"`
	Overwrite *bool `yaml:"overwrite"`
	Global    *bool `yaml:"global"`
	Local     *bool `yaml:"local"`

	Concurrency *int `yaml:"concurrency"`
	PageSize    *int `yaml:"page-size"`

	Site       string `yaml:"site"`
	Host       string `yaml:"host"`
	Dir        string `yaml:"dir"`
	ConfigPath string `yaml:"config-path"`
}

// Bind each cobra flag to its value from the YAML defaults, unless it was given on the command
// line.
func bindFlags(cmd *cobra.Command, v YamlConfig) error {
	for _, field := range structs.Fields(v) {
		key := field.Tag("yaml")
		if key == "" {
			return fmt.Errorf("voog-kit: could not retrieve struct tag 'yaml'")
		}
		if flag := cmd.Flag(key); flag == nil {
			// the flag is unknown, which is legit: `sites list` has no --overwrite, but your
			// YAML file may well set it.
			continue
		}
		if cmd.Flags().Changed(key) {
			continue
		}

		var value string
		switch field.Kind() {
		case reflect.Ptr:
			switch p := field.Value().(type) {
			case *bool:
				if p == nil {
					continue
				}
				value = fmt.Sprintf("%v", *p)
			case *int:
				if p == nil {
					continue
				}
				value = fmt.Sprintf("%d", *p)
			default:
				return fmt.Errorf("voog-kit: found unrecognised field: %+v", field)
			}

		case reflect.String:
			s, ok := field.Value().(string)
			if !ok {
				return fmt.Errorf("voog-kit: found unrecognised field: %+v", field)
			}
			if s == "" {
				continue
			}
			value = s

		default:
			return fmt.Errorf("voog-kit: found unrecognised field: %+v", field)
		}

		if err := cmd.Flags().Set(key, value); err != nil {
			return fmt.Errorf("voog-kit: couldn't set --%s from config: %w", key, err)
		}
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("voog-kit: execution error: %w", err)
	}

	return nil
}
