package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cateringlab/checklist/pkg/checklist"
)

func TestCreateSendsWireShape(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 41}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithToken("secret"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	draft := checklist.New(checklist.TypeCatering)
	draft.Set(checklist.FieldContactName, "Олена")
	draft.Set(checklist.FieldLocationElevator, true)

	id, err := c.Create(context.Background(), draft)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != 41 {
		t.Fatalf("id = %d, want 41", id)
	}
	if gotPath != "POST /checklists" {
		t.Fatalf("request = %q, want POST /checklists", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	if gotBody["checklist_type"] != "catering" || gotBody["status"] != "draft" {
		t.Fatalf("discriminants missing from payload: %v", gotBody)
	}
	if gotBody[checklist.FieldContactName] != "Олена" {
		t.Fatalf("field missing from payload: %v", gotBody)
	}
}

func TestUpdateTargetsRecord(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	draft := checklist.New(checklist.TypeBox)
	if err := c.Update(context.Background(), 17, draft); err != nil {
		t.Fatalf("update: %v", err)
	}
	if gotPath != "PUT /checklists/17" {
		t.Fatalf("request = %q, want PUT /checklists/17", gotPath)
	}
}

func TestGetHydratesDraft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 9,
			"checklist_type": "catering",
			"status": "in_progress",
			"contact_name": "Олена",
			"guest_count": 24,
			"location_elevator": true
		}`))
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	draft, err := c.Get(context.Background(), 9)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if draft.ID != 9 || draft.Type != checklist.TypeCatering || draft.Status != checklist.StatusInProgress {
		t.Fatalf("header mismatch: %+v", draft)
	}
	if draft.Text(checklist.FieldContactName) != "Олена" {
		t.Fatal("contact name not hydrated")
	}
	if draft.Int(checklist.FieldGuestCount) != 24 {
		t.Fatal("guest count not hydrated")
	}
	if !draft.Bool(checklist.FieldLocationElevator) {
		t.Fatal("elevator flag not hydrated")
	}
}

func TestStatusCodeMapping(t *testing.T) {
	status := http.StatusNotFound
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer srv.Close()

	c, _ := New(srv.URL)

	if _, err := c.Get(context.Background(), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("404 error = %v, want ErrNotFound", err)
	}

	status = http.StatusUnauthorized
	if _, err := c.Get(context.Background(), 1); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("401 error = %v, want ErrUnauthorized", err)
	}

	status = http.StatusTeapot
	if _, err := c.Get(context.Background(), 1); err == nil {
		t.Fatal("unexpected status should error")
	}
}

type countingTransport struct {
	calls int
	next  http.RoundTripper
}

func (t *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.calls++
	return t.next.RoundTrip(req)
}

func TestWithHTTPClientOverridesTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 3, "checklist_type": "box"}`))
	}))
	defer srv.Close()

	transport := &countingTransport{next: http.DefaultTransport}
	c, err := New(srv.URL, WithHTTPClient(&http.Client{Transport: transport}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := c.Get(context.Background(), 3); err != nil {
		t.Fatalf("get: %v", err)
	}
	if transport.calls != 1 {
		t.Fatalf("transport calls = %d, want 1", transport.calls)
	}
}

func TestNewRejectsRelativeURL(t *testing.T) {
	if _, err := New("not a url"); err == nil {
		t.Fatal("expected error for relative base url")
	}
}
