package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etnz/advisor"
	"google.golang.org/genai"
)

// fakeModels returns a canned response or error, and records the last request.
type fakeModels struct {
	resp   *genai.GenerateContentResponse
	err    error
	model  string
	prompt string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.prompt = contents[0].Parts[0].Text
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: "model"}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestGenerate(t *testing.T) {
	f := &fakeModels{resp: textResponse("\n  Put 60% in index funds", " and 40% in bonds.  \n")}
	c := &Client{model: DefaultModel, models: f}

	got, err := c.Generate(context.Background(), "allocate")
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if want := "Put 60% in index funds and 40% in bonds."; got != want {
		t.Errorf("Generate() = %q want %q", got, want)
	}
	if f.model != DefaultModel || f.prompt != "allocate" {
		t.Errorf("Generate() sent model %q prompt %q", f.model, f.prompt)
	}
}

func TestGenerateErrors(t *testing.T) {
	testCases := []struct {
		name   string
		models *fakeModels
		prompt advisor.Prompt
		want   advisor.Kind
	}{
		{"unauthorized", &fakeModels{err: genai.APIError{Code: 401, Status: "UNAUTHENTICATED"}}, "p", advisor.Unauthenticated},
		{"forbidden", &fakeModels{err: genai.APIError{Code: 403}}, "p", advisor.Unauthenticated},
		{"invalid key", &fakeModels{err: genai.APIError{Code: 400, Message: "API key not valid. Please pass a valid API key."}}, "p", advisor.Unauthenticated},
		{"bad request", &fakeModels{err: genai.APIError{Code: 400, Message: "contents is empty"}}, "p", advisor.InvalidInput},
		{"quota", &fakeModels{err: genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}}, "p", advisor.Unavailable},
		{"overloaded", &fakeModels{err: genai.APIError{Code: 503}}, "p", advisor.Unavailable},
		{"wrapped api error", &fakeModels{err: fmt.Errorf("send: %w", genai.APIError{Code: 500})}, "p", advisor.Unavailable},
		{"network", &fakeModels{err: errors.New("dial tcp: connection refused")}, "p", advisor.Unavailable},
		{"deadline", &fakeModels{err: context.DeadlineExceeded}, "p", advisor.Unavailable},
		{"no candidates", &fakeModels{resp: &genai.GenerateContentResponse{}}, "p", advisor.NoData},
		{"empty text", &fakeModels{resp: textResponse("   ")}, "p", advisor.NoData},
		{"blocked", &fakeModels{resp: &genai.GenerateContentResponse{PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety}}}, "p", advisor.NoData},
		{"empty prompt", &fakeModels{resp: textResponse("never sent")}, "  ", advisor.InvalidInput},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := &Client{model: DefaultModel, models: tc.models}
			_, err := c.Generate(context.Background(), tc.prompt)
			if err == nil {
				t.Fatal("Generate() expected an error")
			}
			if got := advisor.KindOf(err); got != tc.want {
				t.Errorf("Generate() kind = %v want %v (err: %v)", got, tc.want, err)
			}
		})
	}
}

func TestReplyOnFailure(t *testing.T) {
	c := &Client{model: DefaultModel, models: &fakeModels{err: errors.New("forced failure")}}
	r := c.Reply(context.Background(), "p")
	if r.OK() {
		t.Fatal("Reply().OK() = true on a failing provider")
	}
	if !strings.HasPrefix(r.String(), "Error generating response:") {
		t.Errorf("Reply().String() = %q want the error prefix", r.String())
	}
	if !strings.Contains(r.String(), "forced failure") {
		t.Errorf("Reply().String() = %q does not contain the cause", r.String())
	}
}

func TestNewWithoutKey(t *testing.T) {
	c, err := New(context.Background(), Config{})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	if c.Model() != DefaultModel {
		t.Errorf("Model() = %q want %q", c.Model(), DefaultModel)
	}
	_, err = c.Generate(context.Background(), "p")
	if advisor.KindOf(err) != advisor.Unauthenticated {
		t.Errorf("Generate() without key kind = %v want %v", advisor.KindOf(err), advisor.Unauthenticated)
	}
}

func TestNewAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-test:generateContent") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("x-goog-api-key") == "bad" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":{"code":401,"message":"invalid credentials","status":"UNAUTHENTICATED"}}`)
			return
		}
		fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":" 50% equity \n"}]}}]}`)
	}))
	defer srv.Close()

	ctx := context.Background()
	c, err := New(ctx, Config{APIKey: "good", Model: "gemini-test", BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	got, err := c.Generate(ctx, "allocate")
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if got != "50% equity" {
		t.Errorf("Generate() = %q want %q", got, "50% equity")
	}

	bad, err := New(ctx, Config{APIKey: "bad", Model: "gemini-test", BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	if _, err := bad.Generate(ctx, "allocate"); advisor.KindOf(err) != advisor.Unauthenticated {
		t.Errorf("Generate() with a rejected key kind = %v want %v (err: %v)", advisor.KindOf(err), advisor.Unauthenticated, err)
	}
}
