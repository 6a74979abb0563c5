package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

func TestObservabilityServer_ServesHealth(t *testing.T) {
	server := NewObservabilityServer("127.0.0.1:0")
	if err := server.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Stop(ctx)
	}()

	resp, err := http.Get("http://" + server.Addr() + "/health")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "up" {
		t.Fatalf("unexpected health body: %v", body)
	}
}

func TestObservabilityServer_StartReportsBindFailure(t *testing.T) {
	first := NewObservabilityServer("127.0.0.1:0")
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer first.Stop(context.Background())

	second := NewObservabilityServer(first.Addr())
	if err := second.Start(context.Background()); err == nil {
		_ = second.Stop(context.Background())
		t.Fatal("expected bind error for an address in use")
	}
}
