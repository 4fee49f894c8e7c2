package ratings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	libclient "github.com/bisonvert/bv.libclient"
)

func newTestService(t *testing.T, handler http.Handler) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := libclient.New(libclient.Config{ServerURL: srv.URL, HTTPClient: srv.Client()})
	return NewService(client)
}

func TestGivenReceived(t *testing.T) {
	cases := []struct {
		name string
		call func(*Service) ([]*Rating, error)
		path string
	}{
		{"given", func(s *Service) ([]*Rating, error) { return s.Given(context.Background()) }, "/api/ratings/given/"},
		{"received", func(s *Service) ([]*Rating, error) { return s.Received(context.Background()) }, "/api/ratings/received/"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			var gotPath string
			svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.Write([]byte(`[{"id":1,"mark":4,"comment":"nice ride","from_user":{"id":2,"username":"bob"}}]`))
			}))

			rs, err := c.call(svc)
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if gotPath != c.path {
				t.Fatalf("path = %q, want %q", gotPath, c.path)
			}
			if len(rs) != 1 || rs[0].Mark != 4 || rs[0].FromUser.Username != "bob" {
				t.Fatalf("got %+v", rs[0])
			}
		})
	}
}

func TestPending(t *testing.T) {
	var gotPath string
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[{"id":9,"opened":"True","user1":{"id":1},"user2":{"id":2}}]`))
	}))

	trs, err := svc.Pending(context.Background())
	if err != nil {
		t.Fatalf("Pending error: %v", err)
	}
	if gotPath != "/api/temp-ratings/" {
		t.Fatalf("path = %q", gotPath)
	}
	if len(trs) != 1 || !trs[0].Opened.Bool() || trs[0].User2.ID != 2 {
		t.Fatalf("got %+v", trs[0])
	}
}

func TestGet_AbsoluteID(t *testing.T) {
	var gotPath string
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"id":3,"mark":5}`))
	}))

	rating, err := svc.Get(context.Background(), -3)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if gotPath != "/api/ratings/3/" {
		t.Fatalf("path = %q", gotPath)
	}
	if rating.Mark != 5 {
		t.Fatalf("got %+v", rating)
	}
}

func TestGetTemp_AbsoluteID(t *testing.T) {
	var gotPath string
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"id":9}`))
	}))

	if _, err := svc.GetTemp(context.Background(), -9); err != nil {
		t.Fatalf("GetTemp error: %v", err)
	}
	if gotPath != "/api/temp-ratings/9/" {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestRate(t *testing.T) {
	var gotForm string
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/ratings/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		r.ParseForm()
		gotForm = r.PostForm.Encode()
		w.Write([]byte(`{}`))
	}))

	if err := svc.Rate(context.Background(), 9, 1, "ok"); err != nil {
		t.Fatalf("Rate error: %v", err)
	}
	if gotForm != "comment=ok&mark=1&temprating_id=9" {
		t.Fatalf("form = %q", gotForm)
	}
}

func TestRate_CoercesNegativeMark(t *testing.T) {
	var gotMark string
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotMark = r.PostForm.Get("mark")
		w.Write([]byte(`{}`))
	}))

	if err := svc.Rate(context.Background(), 9, -4, ""); err != nil {
		t.Fatalf("Rate error: %v", err)
	}
	if gotMark != "4" {
		t.Fatalf("mark = %q, want 4", gotMark)
	}
}

func TestRate_OutOfRange(t *testing.T) {
	for _, mark := range []int{20, -20, 6} {
		mark := mark
		svc := newTestService(t, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			t.Errorf("mark %d: no request must go out", mark)
		}))

		err := svc.Rate(context.Background(), 9, mark, "")
		if !errors.Is(err, libclient.ErrInvalidArgument) {
			t.Fatalf("mark %d: expected ErrInvalidArgument, got %v", mark, err)
		}
		if !libclient.IsKind(err, libclient.KindInvalidArgument) {
			t.Fatalf("mark %d: wrong error kind: %v", mark, err)
		}
	}
}

func TestRate_BoundsInclusive(t *testing.T) {
	for _, mark := range []int{MinMark, MaxMark} {
		mark := mark
		svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{}`))
		}))

		if err := svc.Rate(context.Background(), 9, mark, ""); err != nil {
			t.Fatalf("mark %d must be accepted: %v", mark, err)
		}
	}
}
