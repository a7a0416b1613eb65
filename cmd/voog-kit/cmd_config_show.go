/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// resolvedConfig is what config show prints.  Only persistent flags are visible here.
type resolvedConfig struct {
	Config      string     `yaml:"config"`
	Debug       bool       `yaml:"debug"`
	Site        string     `yaml:"site,omitempty"`
	Host        string     `yaml:"host,omitempty"`
	Token       string     `yaml:"token,omitempty"`
	Dir         string     `yaml:"dir,omitempty"`
	Global      bool       `yaml:"global"`
	Local       bool       `yaml:"local"`
	ConfigPath  string     `yaml:"config-path,omitempty"`
	WithVCR     bool       `yaml:"with-vcr"`
	Concurrency int        `yaml:"concurrency"`
	PageSize    int        `yaml:"page-size,omitempty"`
	Parsed      YamlConfig `yaml:"parsed-yaml"`
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Output current config",
	Long: `
Is something not working for you?  Have a look whether your config is as you expect.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		err := enc.Encode(resolvedConfig{
			Config:      Config,
			Debug:       Debug,
			Site:        SiteName,
			Host:        Host,
			Token:       maskToken(Token),
			Dir:         Dir,
			Global:      Global,
			Local:       Local,
			ConfigPath:  ConfigPath,
			WithVCR:     WithVCR,
			Concurrency: Concurrency,
			PageSize:    PageSize,
			Parsed:      ParsedConfig,
		})
		if err != nil {
			return fmt.Errorf("config: couldn't encode config: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	configCmd.AddCommand(showCmd)
}
