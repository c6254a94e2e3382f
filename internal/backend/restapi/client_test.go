package restapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"gtodo/internal/backend/restapi"
	"gtodo/internal/service"
)

func newServer(t *testing.T, handler http.HandlerFunc) *restapi.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := restapi.New(srv.URL+"/", srv.Client())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestNew_InvalidURL(t *testing.T) {
	if _, err := restapi.New("ftp://example.com", nil); err == nil {
		t.Error("expected error for non-http scheme")
	}
}

func TestClient_ListTasks_Array(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/todos" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `[{"id":1,"todo":"Buy milk","completed":false},{"id":"abc","todo":"Walk dog","completed":true}]`)
	})

	tasks, err := client.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []service.Task{
		{ID: "1", Text: "Buy milk"},
		{ID: "abc", Text: "Walk dog", Completed: true},
	}
	if len(tasks) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(tasks))
	}
	for i := range want {
		if tasks[i] != want[i] {
			t.Errorf("task %d: expected %+v, got %+v", i, want[i], tasks[i])
		}
	}
}

func TestClient_ListTasks_Envelope(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"todos":[{"id":7,"todo":"Read","completed":false}],"total":1}`)
	})

	tasks, err := client.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "7" {
		t.Errorf("unexpected tasks %+v", tasks)
	}
}

func TestClient_ListTasks_RejectsBadShape(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":1,"title":"wrong field"}]`)
	})

	_, err := client.ListTasks(context.Background())
	if err == nil {
		t.Fatal("expected schema error")
	}
	if !strings.Contains(err.Error(), "unexpected response shape") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestClient_CreateTask(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/todos" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
			return
		}
		if _, ok := body["id"]; ok {
			t.Error("create request should not carry an id")
		}
		if body["todo"] != "Buy milk" || body["completed"] != false {
			t.Errorf("unexpected body %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":42,"todo":"Buy milk","completed":false}`)
	})

	task, err := client.CreateTask(context.Background(), "Buy milk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task != (service.Task{ID: "42", Text: "Buy milk"}) {
		t.Errorf("unexpected task %+v", task)
	}
}

func TestClient_UpdateTask(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			io.WriteString(w, `[{"id":42,"todo":"Buy milk","completed":false}]`)
			return
		}
		if r.Method != http.MethodPut || r.URL.Path != "/todos/42" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["id"] != float64(42) {
			t.Errorf("expected numeric id 42, got %v", body["id"])
		}
		io.WriteString(w, `{"id":42,"todo":"Buy oat milk","completed":true}`)
	})

	if _, err := client.ListTasks(context.Background()); err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	task, err := client.UpdateTask(context.Background(), service.Task{ID: "42", Text: "Buy oat milk", Completed: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !task.Completed || task.Text != "Buy oat milk" {
		t.Errorf("unexpected task %+v", task)
	}
}

// String ids must go back as strings even when they look like numbers.
func TestClient_UpdateTask_StringIDsKeepTheirType(t *testing.T) {
	ids := []string{"007", "42", "+5", "abc"}

	var mu sync.Mutex
	sent := make(map[string]any)
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			records := make([]map[string]any, 0, len(ids))
			for _, id := range ids {
				records = append(records, map[string]any{"id": id, "todo": "task " + id, "completed": false})
			}
			_ = json.NewEncoder(w).Encode(records)
			return
		}
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Errorf("invalid request body %q: %v", raw, err)
			return
		}
		mu.Lock()
		sent[strings.TrimPrefix(r.URL.Path, "/todos/")] = body["id"]
		mu.Unlock()
		_ = json.NewEncoder(w).Encode(body)
	})

	ctx := context.Background()
	if _, err := client.ListTasks(ctx); err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	for _, id := range ids {
		task, err := client.UpdateTask(ctx, service.Task{ID: id, Text: "edited", Completed: true})
		if err != nil {
			t.Fatalf("update %q: unexpected error: %v", id, err)
		}
		if task.ID != id {
			t.Errorf("update %q: expected id back, got %q", id, task.ID)
		}
		// A second update must keep the type learned from the response.
		if _, err := client.UpdateTask(ctx, service.Task{ID: id, Text: "again"}); err != nil {
			t.Fatalf("second update %q: unexpected error: %v", id, err)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	for _, id := range ids {
		got, ok := sent[id].(string)
		if !ok || got != id {
			t.Errorf("expected id %q sent as a JSON string, got %#v", id, sent[id])
		}
	}
}

func TestClient_UpdateTask_NotFound(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.UpdateTask(context.Background(), service.Task{ID: "9", Text: "x"})
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_DeleteTask(t *testing.T) {
	var gotPath string
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("unexpected method %s", r.Method)
		}
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.DeleteTask(context.Background(), "abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/todos/abc" {
		t.Errorf("unexpected path %q", gotPath)
	}
}

func TestClient_ServerError(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := client.DeleteTask(context.Background(), "1")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("expected status in error, got %v", err)
	}
}
