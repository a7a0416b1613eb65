package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
)

const (
	// LocalConfigName is looked up in the working directory.
	LocalConfigName = ".voog"

	// GlobalConfigPath is the per-user config, used when there's no local one.
	GlobalConfigPath = "~/.voog"

	sitesKey = "sites"
)

var ErrConfigNotFound = errors.New("config: config file does not exist")

// Scope picks which config file an operation reads and writes.  ConfigPath wins over the
// flags; with neither flag set, a local config is preferred if one exists.
type Scope struct {
	Global     bool
	Local      bool
	ConfigPath string
}

// Store is a small key-value JSON file holding, mostly, the list of registered sites.
type Store struct {
	Fs afero.Fs

	// WorkDir is where the local config lives.  Empty means the process working directory.
	WorkDir string

	homedirExpand func(string) (string, error)
}

func NewStore(fs afero.Fs) *Store {
	return &Store{
		Fs:            fs,
		homedirExpand: homedir.Expand,
	}
}

// Path resolves the config file for scope.  The path is expanded, so it can be handed straight
// to file operations.
func (s *Store) Path(scope Scope) (string, error) {
	if scope.ConfigPath != "" {
		p, err := s.homedirExpand(scope.ConfigPath)
		if err != nil {
			return "", fmt.Errorf("config: unable to expand homedir: %w", err)
		}
		return p, nil
	}

	workDir := s.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("config: couldn't determine working directory: %w", err)
		}
		workDir = wd
	}
	local := filepath.Join(workDir, LocalConfigName)

	global, err := s.homedirExpand(GlobalConfigPath)
	if err != nil {
		return "", fmt.Errorf("config: unable to expand homedir: %w", err)
	}

	switch {
	case scope.Local:
		return local, nil
	case scope.Global:
		return global, nil
	}

	if ok, _ := afero.Exists(s.Fs, local); ok {
		return local, nil
	}
	return global, nil
}

// Read returns the raw top-level keys of the config file.
func (s *Store) Read(scope Scope) (map[string]json.RawMessage, error) {
	path, err := s.Path(scope)
	if err != nil {
		return nil, err
	}

	contents, err := afero.ReadFile(s.Fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("config: error reading config file: %w", err)
	}

	values := map[string]json.RawMessage{}
	if len(contents) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(contents, &values); err != nil {
		return nil, fmt.Errorf("config: issue parsing config file %s: %w", path, err)
	}

	return values, nil
}

// Write sets key to value, creating the config file if needed.  Other keys are kept as-is.
func (s *Store) Write(key string, value any, scope Scope) (bool, error) {
	values, err := s.Read(scope)
	if errors.Is(err, ErrConfigNotFound) {
		values = map[string]json.RawMessage{}
	} else if err != nil {
		return false, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("config: couldn't encode %s: %w", key, err)
	}
	values[key] = encoded

	contents, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return false, fmt.Errorf("config: couldn't encode config: %w", err)
	}

	path, err := s.Path(scope)
	if err != nil {
		return false, err
	}
	if err := s.Fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("config: couldn't create directory for %s: %w", path, err)
	}
	if err := afero.WriteFile(s.Fs, path, append(contents, '\n'), 0600); err != nil {
		return false, fmt.Errorf("config: couldn't write %s: %w", path, err)
	}

	return true, nil
}

// Sites lists the registered sites.  A missing config file is an error here: callers that
// are happy to start from scratch should check for ErrConfigNotFound.
func (s *Store) Sites(scope Scope) ([]Site, error) {
	values, err := s.Read(scope)
	if err != nil {
		return nil, err
	}

	sites := []Site{}
	raw, ok := values[sitesKey]
	if !ok {
		return sites, nil
	}
	if err := json.Unmarshal(raw, &sites); err != nil {
		return nil, fmt.Errorf("config: couldn't parse sites: %w", err)
	}

	return sites, nil
}

// SiteByName finds a site by name or host.  It returns nil if there's no such site.
func (s *Store) SiteByName(name string, scope Scope) (*Site, error) {
	sites, err := s.Sites(scope)
	if err != nil {
		return nil, err
	}

	for _, site := range sites {
		if site.Matches(name) {
			found := site
			return &found, nil
		}
	}

	return nil, nil
}

// AddSite registers site, replacing any site with the same name or host.  It returns false
// without touching the config if host or token is missing.
func (s *Store) AddSite(site Site, scope Scope) (bool, error) {
	if site.Host == "" || site.Token == "" {
		return false, nil
	}

	sites, err := s.Sites(scope)
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		return false, err
	}

	kept := []Site{}
	for _, existing := range sites {
		if existing.Matches(site.Name) || existing.Matches(site.Host) {
			continue
		}
		kept = append(kept, existing)
	}
	kept = append(kept, site)

	return s.Write(sitesKey, kept, scope)
}

// UpdateSite merges patch into the site called name.
func (s *Store) UpdateSite(name string, patch Site, scope Scope) error {
	sites, err := s.Sites(scope)
	if err != nil {
		return err
	}

	found := false
	for i, site := range sites {
		if site.Matches(name) {
			sites[i] = site.Merge(patch)
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config: no site named %q", name)
	}

	if _, err := s.Write(sitesKey, sites, scope); err != nil {
		return err
	}
	return nil
}

// RemoveSite drops every site matching name.  It returns false if there was nothing to drop.
func (s *Store) RemoveSite(name string, scope Scope) (bool, error) {
	sites, err := s.Sites(scope)
	if err != nil {
		return false, err
	}

	kept := []Site{}
	for _, site := range sites {
		if !site.Matches(name) {
			kept = append(kept, site)
		}
	}
	if len(kept) == len(sites) {
		return false, nil
	}

	return s.Write(sitesKey, kept, scope)
}
