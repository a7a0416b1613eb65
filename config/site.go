package config

import (
	"encoding/json"
	"strings"
)

// Site is a registered Voog site.  Either Name or Host identifies it within a config file.
type Site struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Host  string `json:"host" yaml:"host"`
	Token string `json:"token" yaml:"token"`
	Dir   string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// older config files spell a couple of these differently.
type siteAliases struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Token    string `json:"token"`
	APIToken string `json:"api_token"`
	Dir      string `json:"dir"`
	Path     string `json:"path"`
}

func (s *Site) UnmarshalJSON(b []byte) error {
	var raw siteAliases
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*s = Site{
		Name:  raw.Name,
		Host:  raw.Host,
		Token: raw.Token,
		Dir:   raw.Dir,
	}
	if s.Token == "" {
		s.Token = raw.APIToken
	}
	if s.Dir == "" {
		s.Dir = raw.Path
	}
	return nil
}

// Matches reports whether key names this site, by name or by host.
func (s Site) Matches(key string) bool {
	if key == "" {
		return false
	}
	return s.Name == key || strings.EqualFold(s.Host, key)
}

// Key is how we refer to the site in messages.
func (s Site) Key() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Host
}

// Merge returns s with every non-empty field of patch applied.
func (s Site) Merge(patch Site) Site {
	if patch.Name != "" {
		s.Name = patch.Name
	}
	if patch.Host != "" {
		s.Host = patch.Host
	}
	if patch.Token != "" {
		s.Token = patch.Token
	}
	if patch.Dir != "" {
		s.Dir = patch.Dir
	}
	return s
}
