package check

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmaher/bmorganize/internal/domain"
)

const testUA = "bmorganize-test/0.1"

func TestChecker_WorkingAndDead(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/dead", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx := context.Background()
	chk := New(2*time.Second, true, testUA)

	ok := chk.Check(ctx, srv.URL+"/ok")
	if ok.Err != nil || ok.StatusCode != 200 || ok.Outcome != domain.OutcomeWorking {
		t.Fatalf("expected working, got %+v", ok)
	}

	dead := chk.Check(ctx, srv.URL+"/dead")
	if dead.Err != nil || dead.StatusCode != 404 || dead.Outcome != domain.OutcomeDead {
		t.Fatalf("expected dead, got %+v", dead)
	}
	if !dead.IsDead() {
		t.Fatalf("404 should report IsDead")
	}
}

func TestChecker_RedirectIsWorking(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/redir", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ok", http.StatusMovedPermanently)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	chk := New(2*time.Second, true, testUA)

	// net/http follows redirects by default, so expect 200 here.
	res := chk.Check(context.Background(), srv.URL+"/redir")
	if res.Err != nil || res.StatusCode != 200 || res.Outcome != domain.OutcomeWorking {
		t.Fatalf("redir: got %+v", res)
	}
}

func TestChecker_TimeoutIsError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/slow", func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	chk := New(50*time.Millisecond, false, testUA)

	res := chk.Check(context.Background(), srv.URL+"/slow")
	if res.Err == nil {
		t.Fatalf("expected timeout error, got nil")
	}
	if res.Outcome != domain.OutcomeError {
		t.Fatalf("expected error outcome, got %s", res.Outcome)
	}
	if res.ErrText == "" {
		t.Fatalf("expected error text to be recorded")
	}
}

func TestChecker_ConnectionRefusedIsDead(t *testing.T) {
	// Unused local port to force a refused connection.
	ln, _ := net.Listen("tcp", "127.0.0.1:0")
	addr := ln.Addr().String()
	ln.Close()

	chk := New(1*time.Second, false, testUA)

	res := chk.Check(context.Background(), "http://"+addr)
	if res.Err == nil {
		t.Fatalf("expected network error, got nil")
	}
	if res.Outcome != domain.OutcomeDead {
		t.Fatalf("refused connection should classify dead, got %s", res.Outcome)
	}
}

func TestChecker_HeadFallsBackToGet(t *testing.T) {
	var sawGet bool
	mux := http.NewServeMux()
	mux.HandleFunc("/picky", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sawGet = true
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	chk := New(2*time.Second, true, testUA)

	res := chk.Check(context.Background(), srv.URL+"/picky")
	if res.Err != nil || res.StatusCode != 200 || res.Outcome != domain.OutcomeWorking {
		t.Fatalf("expected fallback GET to succeed, got %+v", res)
	}
	if !sawGet {
		t.Fatalf("expected a GET after rejected HEAD")
	}
}

func TestChecker_UserAgentSet(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	chk := New(2*time.Second, false, testUA)
	_ = chk.Check(context.Background(), srv.URL)

	if gotUA != testUA {
		t.Fatalf("expected User-Agent %q, got %q", testUA, gotUA)
	}
}
