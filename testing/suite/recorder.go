package suite

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/dnaeon/go-vcr.v4/pkg/cassette"
	"gopkg.in/dnaeon/go-vcr.v4/pkg/recorder"
)

// NewRecorder records every exchange made through its client into the cassette,
// with credentials stripped before the cassette is saved.
func NewRecorder(t *testing.T, cassetteName string, transport http.RoundTripper) *recorder.Recorder {
	t.Helper()

	r, err := recorder.New(cassetteName,
		recorder.WithMode(recorder.ModeRecordOnly),
		recorder.WithRealTransport(transport),
		recorder.WithHook(RedactCredentials, recorder.BeforeSaveHook),
	)
	require.NoError(t, err)

	return r
}

// RedactCredentials removes API keys from a recorded interaction.
func RedactCredentials(i *cassette.Interaction) error {
	i.Request.Headers.Del("X-Goog-Api-Key")
	i.Request.Headers.Del("Authorization")

	if i.Request.Form != nil {
		i.Request.Form.Del("key")
	}
	return nil
}
