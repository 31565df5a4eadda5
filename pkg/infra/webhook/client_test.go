package webhook_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/relwatch/pkg/domain/model"
	"github.com/m-mizutani/relwatch/pkg/domain/types"
	"github.com/m-mizutani/relwatch/pkg/infra/webhook"
)

func TestClient_DeliverContent(t *testing.T) {
	var gotBody string
	var gotHeader string
	var gotMethod string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		gotHeader = r.Header.Get("Authorization")
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink := &model.WebhookSink{
		URL: srv.URL,
		Headers: map[string]string{
			"Authorization": "Bearer secret",
		},
	}

	client := webhook.New()
	gt.NoError(t, client.Deliver(context.Background(), sink, `{"text": "Release v2"}`))

	gt.Value(t, gotMethod).Equal(http.MethodPost)
	gt.Value(t, gotBody).Equal(`{"text": "Release v2"}`)
	gt.Value(t, gotHeader).Equal("Bearer secret")
}

func TestClient_DeliverFormData(t *testing.T) {
	var gotContentType string
	var gotValue string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotValue = r.PostFormValue("channel")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := &model.WebhookSink{
		URL: srv.URL,
		Data: map[string]string{
			"channel": "releases",
		},
	}

	client := webhook.New()
	gt.NoError(t, client.Deliver(context.Background(), sink, ""))

	gt.Value(t, gotContentType).Equal("application/x-www-form-urlencoded")
	gt.Value(t, gotValue).Equal("releases")
}

func TestClient_DeliverNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := webhook.New()
	err := client.Deliver(context.Background(), &model.WebhookSink{URL: srv.URL}, "hello")
	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, types.ErrTagBadResponse)).Equal(true)
}

func TestClient_DeliverFollowsRedirect(t *testing.T) {
	var finalHit bool

	mux := http.NewServeMux()
	mux.HandleFunc("/hook", func(w http.ResponseWriter, r *http.Request) {
		// 307 preserves the POST through the redirect.
		http.Redirect(w, r, "/final", http.StatusTemporaryRedirect)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		finalHit = true
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := webhook.New()
	gt.NoError(t, client.Deliver(context.Background(), &model.WebhookSink{URL: srv.URL + "/hook"}, "hello"))
	gt.Value(t, finalHit).Equal(true)
}

func TestClient_DeliverTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := webhook.New(webhook.WithTimeout(20 * time.Millisecond))
	err := client.Deliver(context.Background(), &model.WebhookSink{URL: srv.URL}, "hello")
	gt.Error(t, err)
}

func TestClient_DeliverConnectionError(t *testing.T) {
	// Reserve a port and close it so nothing is listening.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := webhook.New()
	err := client.Deliver(context.Background(), &model.WebhookSink{URL: url}, "hello")
	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, types.ErrTagBadResponse)).Equal(false)
}
