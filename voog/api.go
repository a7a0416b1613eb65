package voog

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

var (
	ErrNotFound     = errors.New("voog: resource not found")
	ErrUnauthorized = errors.New("voog: authentication failed")
)

func NewAPI(host string, token string) (*API, error) {
	if host == "" {
		return nil, fmt.Errorf("voog: configure your site host with --host or `voog-kit sites add`")
	}
	if token == "" {
		return nil, fmt.Errorf("voog: API token is empty, please check the site config")
	}

	// hosts are usually stored bare, e.g. mysite.voog.com
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}

	u, err := url.ParseRequestURI(host)
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't parse site URL: %w", err)
	}

	a := &API{
		BaseURI: u,
		token:   token,
	}
	a.Client = &http.Client{}

	return a, nil
}

type API struct {
	// Where the site lives, e.g. https://mysite.voog.com
	BaseURI *url.URL

	// An HTTP client - you can substitute VCR or whatnot.
	Client *http.Client

	token string
}
