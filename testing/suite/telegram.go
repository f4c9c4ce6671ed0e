package suite

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// BotRequestForm returns the form fields of a multipart bot API request, ex: chat_id, text, parse_mode.
func BotRequestForm(t *testing.T, request *http.Request) map[string]string {
	t.Helper()

	require.NoError(t, request.ParseMultipartForm(1<<20))

	form := make(map[string]string, len(request.MultipartForm.Value))
	for name, values := range request.MultipartForm.Value {
		if len(values) > 0 {
			form[name] = values[0]
		}
	}

	return form
}
