package chat_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emotion-sanctuary/sanctum/pkg/service/chat"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

type stubTransport struct {
	name  string
	reply string
	err   error
	calls int
}

func (t *stubTransport) Name() string { return t.name }

func (t *stubTransport) Complete(ctx context.Context, systemPrompt, message string) (string, error) {
	t.calls++
	if t.err != nil {
		return "", t.err
	}
	return t.reply, nil
}

func TestClientEmptyMessage(t *testing.T) {
	primary := &stubTransport{name: "primary", reply: "hi"}
	client, err := chat.New([]chat.Transport{primary})
	gt.NoError(t, err).Required()

	_, err = client.Complete(context.Background(), "be kind", "  ")
	gt.Error(t, err).Is(chat.ErrInvalidInput)
	gt.Number(t, primary.calls).Equal(0)
}

func TestClientFallback(t *testing.T) {
	primary := &stubTransport{name: "primary", err: goerr.New("worker down")}
	fallback := &stubTransport{name: "fallback", reply: "I hear you"}
	client, err := chat.New([]chat.Transport{primary, fallback})
	gt.NoError(t, err).Required()

	reply, err := client.Complete(context.Background(), "be kind", "rough day")
	gt.NoError(t, err).Required()
	gt.Value(t, reply).Equal("I hear you")
	gt.Number(t, primary.calls).Equal(1)
	gt.Number(t, fallback.calls).Equal(1)
}

func TestClientAllFail(t *testing.T) {
	primary := &stubTransport{name: "primary", err: goerr.New("down")}
	fallback := &stubTransport{name: "fallback", err: goerr.New("also down")}
	client, err := chat.New([]chat.Transport{primary, fallback})
	gt.NoError(t, err).Required()

	_, err = client.Complete(context.Background(), "", "hello")
	gt.Error(t, err).Is(chat.ErrUnavailable)
}

func TestClientEmptyReplyTreatedAsFailure(t *testing.T) {
	primary := &stubTransport{name: "primary", reply: "   "}
	fallback := &stubTransport{name: "fallback", reply: "real reply"}
	client, err := chat.New([]chat.Transport{primary, fallback})
	gt.NoError(t, err).Required()

	reply, err := client.Complete(context.Background(), "", "hello")
	gt.NoError(t, err).Required()
	gt.Value(t, reply).Equal("real reply")
}

func TestWorkerTransport(t *testing.T) {
	t.Run("response key", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.Value(t, r.URL.Path).Equal("/chat")

			var body struct {
				Message      string `json:"message"`
				SystemPrompt string `json:"systemPrompt"`
			}
			gt.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			gt.Value(t, body.Message).Equal("rough day")
			gt.Value(t, body.SystemPrompt).Equal("be gentle")

			_ = json.NewEncoder(w).Encode(map[string]string{"response": "I hear you"})
		}))
		defer srv.Close()

		transport, err := chat.NewWorkerTransport(srv.URL)
		gt.NoError(t, err).Required()

		reply, err := transport.Complete(context.Background(), "be gentle", "rough day")
		gt.NoError(t, err).Required()
		gt.Value(t, reply).Equal("I hear you")
	})

	t.Run("legacy message key", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "hello there"})
		}))
		defer srv.Close()

		transport, err := chat.NewWorkerTransport(srv.URL)
		gt.NoError(t, err).Required()

		reply, err := transport.Complete(context.Background(), "", "hi")
		gt.NoError(t, err).Required()
		gt.Value(t, reply).Equal("hello there")
	})

	t.Run("non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		transport, err := chat.NewWorkerTransport(srv.URL)
		gt.NoError(t, err).Required()

		_, err = transport.Complete(context.Background(), "", "hi")
		gt.Error(t, err)
	})

	t.Run("missing reply", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		}))
		defer srv.Close()

		transport, err := chat.NewWorkerTransport(srv.URL)
		gt.NoError(t, err).Required()

		_, err = transport.Complete(context.Background(), "", "hi")
		gt.Error(t, err)
	})
}
