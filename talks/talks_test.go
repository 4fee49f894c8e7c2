package talks

import (
	"context"
	"encoding/json"
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

const talkBody = `{
	"id": 5,
	"trip": {"id": 7, "user": {"id": 1, "username": "owner"}},
	"from_user": {"id": 2, "username": "rider"},
	"cancelled": "False",
	"validated": "True"
}`

func mustTalk(t *testing.T) *Talk {
	t.Helper()
	var talk Talk
	if err := json.Unmarshal([]byte(talkBody), &talk); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	return &talk
}

func TestMessage_SenderRecipient(t *testing.T) {
	talk := mustTalk(t)

	fromRider := &Message{Talk: talk, Text: "hello"}
	fromRider.FromUser.UnmarshalJSON([]byte(`true`))
	if got := fromRider.Sender(); got == nil || got.Username != "rider" {
		t.Fatalf("sender = %+v, want rider", got)
	}
	if got := fromRider.Recipient(); got == nil || got.Username != "owner" {
		t.Fatalf("recipient = %+v, want owner", got)
	}

	fromOwner := &Message{Talk: talk, Text: "hi"}
	if got := fromOwner.Sender(); got == nil || got.Username != "owner" {
		t.Fatalf("sender = %+v, want owner", got)
	}
	if got := fromOwner.Recipient(); got == nil || got.Username != "rider" {
		t.Fatalf("recipient = %+v, want rider", got)
	}

	orphan := &Message{Text: "lost"}
	if orphan.Sender() != nil || orphan.Recipient() != nil {
		t.Fatal("a message without a talk has no participants")
	}
}

func TestList(t *testing.T) {
	var gotPath, gotQuery string
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[` + talkBody + `]`))
	}))

	talks, err := svc.List(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if gotPath != "/api/talks/" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotQuery != "count=10&start=10" {
		t.Fatalf("query = %q", gotQuery)
	}
	if len(talks) != 1 || talks[0].ID != 5 || !talks[0].Validated.Bool() {
		t.Fatalf("got %+v", talks)
	}
}

func TestCount(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/talks/count/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`"3"`))
	}))

	n, err := svc.Count(context.Background())
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if n != 3 {
		t.Fatalf("Count = %d", n)
	}
}

func TestByTrip(t *testing.T) {
	var gotPath string
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(talkBody))
	}))

	talk, err := svc.ByTrip(context.Background(), 7)
	if err != nil {
		t.Fatalf("ByTrip error: %v", err)
	}
	if gotPath != "/api/talks/trip/7/" {
		t.Fatalf("path = %q", gotPath)
	}
	if talk.Trip == nil || talk.Trip.ID != 7 {
		t.Fatalf("got %+v", talk)
	}
}

func TestCreate_NewTalk(t *testing.T) {
	var posted string
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/talks/trip/7/":
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPost && r.URL.Path == "/api/talks/":
			r.ParseForm()
			posted = r.PostForm.Encode()
			w.Write([]byte(talkBody))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))

	talk, err := svc.Create(context.Background(), 7, "any seat left?")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if posted != "message=any+seat+left%3F&trip_id=7" {
		t.Fatalf("posted form = %q", posted)
	}
	if talk.ID != 5 {
		t.Fatalf("got %+v", talk)
	}
}

func TestCreate_ExistingTalk(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			t.Error("an existing talk must not be re-created")
		}
		w.Write([]byte(talkBody))
	}))

	talk, err := svc.Create(context.Background(), 7, "ignored")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if talk.ID != 5 {
		t.Fatalf("got %+v", talk)
	}
}

func TestValidate(t *testing.T) {
	var gotMethod, gotForm string
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		r.ParseForm()
		gotForm = r.PostForm.Encode()
		w.Write([]byte(`{}`))
	}))

	if err := svc.Validate(context.Background(), 5); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if gotMethod != http.MethodPut || gotForm != "validate=true" {
		t.Fatalf("%s %q", gotMethod, gotForm)
	}
}

func TestCancel(t *testing.T) {
	var gotMethod, gotPath, gotForm string
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		r.ParseForm()
		gotForm = r.PostForm.Encode()
		w.Write([]byte(`{}`))
	}))

	if err := svc.Cancel(context.Background(), 5, "plans changed"); err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/talks/5/" {
		t.Fatalf("%s %s", gotMethod, gotPath)
	}
	if gotForm != "cancel=true&message=plans+changed" {
		t.Fatalf("form = %q", gotForm)
	}
}

func TestCancel_PropagatesStatus(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	err := svc.Cancel(context.Background(), 5, "oops")
	if !libclient.IsKind(err, libclient.KindAPI) {
		t.Fatalf("expected an API error, got %v", err)
	}
}

func TestMessages(t *testing.T) {
	var gotPath string
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[{"id":1,"message":"hello","from_user":true}]`))
	}))

	msgs, err := svc.Messages(context.Background(), 5)
	if err != nil {
		t.Fatalf("Messages error: %v", err)
	}
	if gotPath != "/api/talks/5/messages/" {
		t.Fatalf("path = %q", gotPath)
	}
	if len(msgs) != 1 || msgs[0].Text != "hello" || !msgs[0].FromUser.Bool() {
		t.Fatalf("got %+v", msgs[0])
	}
}

func TestCountMessages(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/talks/5/messages/count/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`8`))
	}))

	n, err := svc.CountMessages(context.Background(), 5)
	if err != nil {
		t.Fatalf("CountMessages error: %v", err)
	}
	if n != 8 {
		t.Fatalf("CountMessages = %d", n)
	}
}

func TestAddMessage(t *testing.T) {
	var gotPath, gotForm string
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		r.ParseForm()
		gotForm = r.PostForm.Encode()
		w.Write([]byte(`{}`))
	}))

	if err := svc.AddMessage(context.Background(), 5, "see you at six"); err != nil {
		t.Fatalf("AddMessage error: %v", err)
	}
	if gotPath != "/api/talks/5/messages/" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotForm != "message=see+you+at+six" {
		t.Fatalf("form = %q", gotForm)
	}
}
