package syncclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/qboard/internal/config"
	"github.com/stemsi/qboard/internal/handler"
	"github.com/stemsi/qboard/internal/model"
	"github.com/stemsi/qboard/internal/repository"
	"github.com/stemsi/qboard/internal/router"
	"github.com/stemsi/qboard/internal/service"
	"github.com/stemsi/qboard/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Setup()

	cfg := &config.Config{
		GinMode:      gin.TestMode,
		StoreDriver:  config.StoreDriverMemory,
		MaxBodyBytes: 1 << 20,
	}
	repo := repository.NewMemoryRepository()
	log := zerolog.Nop()
	svc := service.NewQuestionService(repo, log)
	engine := router.SetupRouter(&router.Handlers{
		Question: handler.NewQuestionHandler(svc, cfg.MaxBodyBytes, log),
		Health:   handler.NewHealthHandler(repo.Driver()),
	}, cfg, log)

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPRemote_RoundTripAgainstBackend(t *testing.T) {
	srv := newBackend(t)
	remote := NewHTTPRemote(srv.URL, 5*time.Second)
	ctx := context.Background()

	empty, err := remote.Load(ctx)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	want := model.QuestionSet{Questions: []string{"Q1", "Q2"}, Revealed: []bool{false, true}}
	require.NoError(t, remote.Save(ctx, want))

	got, err := remote.Load(ctx)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}

func TestHTTPRemote_SaveNormalizesFlags(t *testing.T) {
	srv := newBackend(t)
	remote := NewHTTPRemote(srv.URL, 5*time.Second)

	require.NoError(t, remote.Save(context.Background(), model.QuestionSet{Questions: []string{"a", "b"}}))

	got, err := remote.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false}, got.Revealed)
}

func TestHTTPRemote_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to retrieve questions"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPRemote(srv.URL, time.Second).Load(context.Background())

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "Failed to retrieve questions", statusErr.Message)
	assert.Equal(t, "HTTP 500: Failed to retrieve questions", statusErr.Error())
}

func TestHTTPRemote_MalformedBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
		save bool
	}{
		{name: "not json", body: `<html>`},
		{name: "missing questions", body: `{"revealed":[]}`},
		{name: "unacknowledged save", body: `{"success":false}`, save: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			remote := NewHTTPRemote(srv.URL, time.Second)
			var err error
			if tt.save {
				err = remote.Save(context.Background(), model.EmptyQuestionSet())
			} else {
				_, err = remote.Load(context.Background())
			}
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestHTTPRemote_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPRemote(url, time.Second).Load(context.Background())
	assert.Error(t, err)
}

func TestClient_EndToEndWithBackend(t *testing.T) {
	srv := newBackend(t)
	remote := NewHTTPRemote(srv.URL, 5*time.Second)

	c := New(remote, NewMemoryMirror(), WithDebounce(10*time.Millisecond))
	defer c.Close()
	c.Start(context.Background())

	require.NoError(t, c.Add("Q1"))
	require.NoError(t, c.Add("Q2"))
	require.NoError(t, c.Reveal(0))
	require.NoError(t, c.Flush(context.Background()))

	got, err := remote.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Q1", "Q2"}, got.Questions)
	assert.Equal(t, []bool{true, false}, got.Revealed)
}
