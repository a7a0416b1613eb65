package voog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

func (api *API) ListLayouts(ctx context.Context, opts LayoutsQuery) ([]Layout, error) {
	ep, err := api.layoutsEndpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't get layouts endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodGet, ep, nil, "")
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't perform request: %w", err)
	}

	var layouts []Layout
	if err := json.Unmarshal(body, &layouts); err != nil {
		return nil, fmt.Errorf("voog: couldn't parse json response: %w", err)
	}

	return layouts, nil
}

func (api *API) GetLayout(ctx context.Context, id int) (*Layout, error) {
	ep, err := api.layoutEndpoint(id)
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't get single layout endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodGet, ep, nil, "")
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't perform request: %w", err)
	}

	var layout Layout
	if err := json.Unmarshal(body, &layout); err != nil {
		return nil, fmt.Errorf("voog: couldn't parse json response: %w", err)
	}

	return &layout, nil
}

func (api *API) CreateLayout(ctx context.Context, payload LayoutPayload) (*Layout, error) {
	ep, err := api.layoutsEndpoint(LayoutsQuery{})
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't get layouts endpoint: %w", err)
	}

	var layout Layout
	if err := api.sendJSON(ctx, http.MethodPost, ep, payload, &layout); err != nil {
		return nil, fmt.Errorf("voog: couldn't create layout: %w", err)
	}

	return &layout, nil
}

func (api *API) UpdateLayout(ctx context.Context, id int, payload LayoutPayload) (*Layout, error) {
	ep, err := api.layoutEndpoint(id)
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't get single layout endpoint: %w", err)
	}

	var layout Layout
	if err := api.sendJSON(ctx, http.MethodPut, ep, payload, &layout); err != nil {
		return nil, fmt.Errorf("voog: couldn't update layout %d: %w", id, err)
	}

	return &layout, nil
}

func (api *API) DeleteLayout(ctx context.Context, id int) error {
	ep, err := api.layoutEndpoint(id)
	if err != nil {
		return fmt.Errorf("voog: couldn't get single layout endpoint: %w", err)
	}

	if _, err := api.request(ctx, http.MethodDelete, ep, nil, ""); err != nil {
		return fmt.Errorf("voog: couldn't delete layout %d: %w", id, err)
	}

	return nil
}

func (api *API) ListLayoutAssets(ctx context.Context, opts LayoutAssetsQuery) ([]LayoutAsset, error) {
	ep, err := api.layoutAssetsEndpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't get layout assets endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodGet, ep, nil, "")
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't perform request: %w", err)
	}

	var assets []LayoutAsset
	if err := json.Unmarshal(body, &assets); err != nil {
		return nil, fmt.Errorf("voog: couldn't parse json response: %w", err)
	}

	return assets, nil
}

func (api *API) GetLayoutAsset(ctx context.Context, id int) (*LayoutAsset, error) {
	ep, err := api.layoutAssetEndpoint(id)
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't get single layout asset endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodGet, ep, nil, "")
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't perform request: %w", err)
	}

	var asset LayoutAsset
	if err := json.Unmarshal(body, &asset); err != nil {
		return nil, fmt.Errorf("voog: couldn't parse json response: %w", err)
	}

	return &asset, nil
}

// CreateLayoutAsset creates an editable (text) asset from inline data.
func (api *API) CreateLayoutAsset(ctx context.Context, payload LayoutAssetPayload) (*LayoutAsset, error) {
	ep, err := api.layoutAssetsEndpoint(LayoutAssetsQuery{})
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't get layout assets endpoint: %w", err)
	}

	var asset LayoutAsset
	if err := api.sendJSON(ctx, http.MethodPost, ep, payload, &asset); err != nil {
		return nil, fmt.Errorf("voog: couldn't create layout asset %s: %w", payload.Filename, err)
	}

	return &asset, nil
}

// UploadLayoutAsset creates a binary asset, e.g. an image, from the contents of r.
func (api *API) UploadLayoutAsset(ctx context.Context, filename string, r io.Reader) (*LayoutAsset, error) {
	ep, err := api.layoutAssetsEndpoint(LayoutAssetsQuery{})
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't get layout assets endpoint: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("filename", filename); err != nil {
		return nil, fmt.Errorf("voog: couldn't build upload form: %w", err)
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't build upload form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("voog: couldn't read %s for upload: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("voog: couldn't finish upload form: %w", err)
	}

	body, err := api.request(ctx, http.MethodPost, ep, &buf, mw.FormDataContentType())
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't upload layout asset %s: %w", filename, err)
	}

	var asset LayoutAsset
	if err := json.Unmarshal(body, &asset); err != nil {
		return nil, fmt.Errorf("voog: couldn't parse json response: %w", err)
	}

	return &asset, nil
}

func (api *API) UpdateLayoutAsset(ctx context.Context, id int, payload LayoutAssetPayload) (*LayoutAsset, error) {
	ep, err := api.layoutAssetEndpoint(id)
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't get single layout asset endpoint: %w", err)
	}

	var asset LayoutAsset
	if err := api.sendJSON(ctx, http.MethodPut, ep, payload, &asset); err != nil {
		return nil, fmt.Errorf("voog: couldn't update layout asset %d: %w", id, err)
	}

	return &asset, nil
}

func (api *API) DeleteLayoutAsset(ctx context.Context, id int) error {
	ep, err := api.layoutAssetEndpoint(id)
	if err != nil {
		return fmt.Errorf("voog: couldn't get single layout asset endpoint: %w", err)
	}

	if _, err := api.request(ctx, http.MethodDelete, ep, nil, ""); err != nil {
		return fmt.Errorf("voog: couldn't delete layout asset %d: %w", id, err)
	}

	return nil
}

// Download streams the file at rawURL into w.  Public asset URLs usually live on a CDN, so the
// API token is only sent along if the URL points back at the site itself.
func (api *API) Download(ctx context.Context, rawURL string, w io.Writer) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("voog: couldn't parse download URL %q: %w", rawURL, err)
	}
	u = api.BaseURI.ResolveReference(u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("voog: couldn't instantiate http request: %w", err)
	}
	if u.Host == api.BaseURI.Host {
		req.Header.Set("X-API-TOKEN", api.token)
	}

	response, err := api.Client.Do(req)
	if err != nil {
		return fmt.Errorf("voog: couldn't perform http request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("voog: download of %s failed: %s", u.String(), response.Status)
	}

	if _, err := io.Copy(w, response.Body); err != nil {
		return fmt.Errorf("voog: couldn't stream %s: %w", u.String(), err)
	}

	return nil
}

func (api *API) sendJSON(ctx context.Context, method string, ep *url.URL, payload any, into any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("voog: couldn't encode json payload: %w", err)
	}

	body, err := api.request(ctx, method, ep, bytes.NewReader(encoded), "application/json")
	if err != nil {
		return fmt.Errorf("voog: couldn't perform request: %w", err)
	}

	if into == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("voog: couldn't parse json response: %w", err)
	}

	return nil
}

// request is the one place we talk HTTP to the admin API.
func (api *API) request(ctx context.Context, method string, url *url.URL, payload io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url.String(), payload)
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't instantiate http request: %w", err)
	}

	req.Header.Add("Accept", "application/json, */*")
	req.Header.Set("X-API-TOKEN", api.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	response, err := api.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't perform http request: %w", err)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't read http response body: %w", err)
	}

	if err := response.Body.Close(); err != nil {
		return nil, fmt.Errorf("voog: couldn't close response body: %w", err)
	}

	switch response.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return body, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, response.Status)
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, method, url.Path)
	case http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("voog: rejected by server: %s: %s", response.Status, bytes.TrimSpace(body))
	case http.StatusServiceUnavailable:
		return nil, fmt.Errorf("voog: service is not available: %s", response.Status)
	case http.StatusInternalServerError:
		return nil, fmt.Errorf("voog: internal server error: %s", response.Status)
	}

	return nil, fmt.Errorf("voog: unknown HTTP response status: %s: %s", response.Status, url.String())
}
