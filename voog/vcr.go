package voog

import (
	"fmt"
	"net/http"

	"gopkg.in/dnaeon/go-vcr.v3/cassette"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"
)

// UseRecorder routes all of the API's traffic through a go-vcr recorder, which is handy for
// debugging against a real site without hammering it.  Call the returned func to flush the
// cassette to disk.
func (api *API) UseRecorder(cassetteName string, mode recorder.Mode) (func() error, error) {
	opts := &recorder.Options{
		CassetteName:       cassetteName,
		Mode:               mode,
		SkipRequestLatency: true,
		RealTransport:      http.DefaultTransport,
	}
	r, err := recorder.NewWithOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("voog: couldn't set up go-vcr recording: %w", err)
	}

	// Add a hook which removes our token from all recorded requests
	hook := func(i *cassette.Interaction) error {
		delete(i.Request.Headers, "X-Api-Token")
		return nil
	}
	r.AddHook(hook, recorder.AfterCaptureHook)
	r.SetReplayableInteractions(true)

	api.Client = r.GetDefaultClient()

	return r.Stop, nil
}
