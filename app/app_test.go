package app

import (
	"context"
	"net/http"
	"testing"
	"time"

	"varal-dos-sonhos/config"
	"varal-dos-sonhos/handler"
	"varal-dos-sonhos/notify"
)

func testConfig() *config.Config {
	return &config.Config{
		Store:          config.StoreAirtable,
		Airtable:       config.Airtable{Endpoint: "http://127.0.0.1:1/v0"},
		Tables:         config.Tables{Users: "usuarios", Events: "eventos", Donations: "doacoes"},
		RequestTimeout: time.Second,
		NotifyTimeout:  time.Second,
	}
}

func TestNewServesHealth(t *testing.T) {
	a, err := New(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	resp := a.Dispatcher.Dispatch(context.Background(), &handler.Request{Method: http.MethodGet, Path: "/api/health"})
	if resp.Status != http.StatusOK {
		t.Errorf("Expected 200, got %d %s", resp.Status, resp.Body)
	}
}

func TestNewStoreFailureIsInternalError(t *testing.T) {
	a, err := New(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	resp := a.Dispatcher.Dispatch(context.Background(), &handler.Request{Method: http.MethodGet, Path: "/api/eventos"})
	if resp.Status != http.StatusInternalServerError {
		t.Errorf("Expected 500 from an unreachable store, got %d", resp.Status)
	}
}

func TestBackendSelection(t *testing.T) {
	a := &App{}

	next, err := a.backend(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("backend failed: %v", err)
	}
	if _, ok := next.(notify.LogNotifier); !ok {
		t.Errorf("Expected LogNotifier, got %T", next)
	}

	cfg := testConfig()
	cfg.Mail = config.Mail{SMTPHost: "smtp.example.com", SMTPPort: 587, From: "varal@example.com"}
	next, err = a.backend(context.Background(), cfg)
	if err != nil {
		t.Fatalf("backend failed: %v", err)
	}
	if _, ok := next.(*notify.Mailer); !ok {
		t.Errorf("Expected Mailer, got %T", next)
	}
}

func TestFlushWaitsForNotifications(t *testing.T) {
	done := make(chan struct{})
	a := &App{notifier: notify.NewAsync(notify.Func(func(ctx context.Context, msg notify.Message) error {
		time.Sleep(20 * time.Millisecond)
		close(done)
		return nil
	}), time.Second)}

	a.notifier.Send(context.Background(), notify.Message{To: "x@y.com"})
	a.Flush()

	select {
	case <-done:
	default:
		t.Error("Expected the notification to be handled after Flush")
	}
}
