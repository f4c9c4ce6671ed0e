package suite

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/require"

	"bullion/internal/interaction/gemini"
	"bullion/locales"
)

const (
	TestAPIKey = "test-api-key"
	TestModel  = "gemini-test"
)

type Option func(s *Suite)

type Suite struct {
	T      *testing.T
	Logger *slog.Logger
	Bundle *i18n.Bundle
	Loc    *time.Location

	Gemini *httptest.Server
}

func New(t *testing.T, opts ...Option) (context.Context, *Suite) {
	ctx := context.Background()

	bundle, err := locales.GetBundle()
	require.NoError(t, err)

	s := &Suite{T: t, Bundle: bundle, Loc: time.UTC}
	s.Logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	for _, opt := range opts {
		opt(s)
	}
	return ctx, s
}

// WithGemini starts a fake generative API served by handler.
func WithGemini(handler http.HandlerFunc) Option {
	return func(s *Suite) {
		s.Gemini = httptest.NewServer(handler)
		s.T.Cleanup(s.Gemini.Close)
	}
}

// GeminiInteraction returns an Interaction talking to the fake API through client.
func (s *Suite) GeminiInteraction(client *http.Client) *gemini.Interaction {
	s.T.Helper()

	if s.Gemini == nil {
		s.T.Fatal("Gemini server is not initialized! Use suite.New(t, suite.WithGemini(handler)) option.")
		return nil
	}

	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	return gemini.NewInteraction(s.Logger, client, s.Gemini.URL, TestAPIKey, TestModel)
}
