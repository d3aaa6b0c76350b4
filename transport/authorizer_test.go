package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// staticTokens is a minimal core.TokenReader for these tests.
type staticTokens struct {
	token string
}

func (s *staticTokens) AccessToken() string { return s.token }

// Requirement: with a token present every outbound request carries
// "Authorization: Bearer <token>" with the exact stored value; without one
// the request is forwarded with no Authorization header at all.
func TestAuthorizer_RoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		wantHeader string
		wantSet    bool
	}{
		{
			name:       "stamps bearer header when token present",
			token:      "T1",
			wantHeader: "Bearer T1",
			wantSet:    true,
		},
		{
			name:    "leaves request untouched when signed out",
			token:   "",
			wantSet: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var gotHeader string
			var headerPresent bool
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotHeader = r.Header.Get("Authorization")
				_, headerPresent = r.Header["Authorization"]
			}))
			defer server.Close()

			client := &http.Client{
				Transport: NewAuthorizer(nil, &staticTokens{token: test.token}),
			}
			resp, err := client.Get(server.URL)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			resp.Body.Close()

			if headerPresent != test.wantSet {
				t.Fatalf("Authorization header present = %v, want %v", headerPresent, test.wantSet)
			}
			if test.wantSet && gotHeader != test.wantHeader {
				t.Errorf("Authorization = %q, want %q", gotHeader, test.wantHeader)
			}
		})
	}
}

// Requirement: the authorizer clones rather than mutates the caller's
// request.
func TestAuthorizer_DoesNotMutateRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatal(err)
	}

	client := &http.Client{Transport: NewAuthorizer(nil, &staticTokens{token: "T1"})}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	resp.Body.Close()

	if got := req.Header.Get("Authorization"); got != "" {
		t.Errorf("original request mutated: Authorization = %q", got)
	}
}

// Requirement: the token is re-read per request, so a rotation is picked up
// by the very next call.
func TestAuthorizer_ReadsTokenPerRequest(t *testing.T) {
	var headers []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = append(headers, r.Header.Get("Authorization"))
	}))
	defer server.Close()

	tokens := &staticTokens{token: "T1"}
	client := &http.Client{Transport: NewAuthorizer(nil, tokens)}

	for _, token := range []string{"T1", "T2"} {
		tokens.token = token
		resp, err := client.Get(server.URL)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		resp.Body.Close()
	}

	want := []string{"Bearer T1", "Bearer T2"}
	for i, header := range headers {
		if header != want[i] {
			t.Errorf("request %d Authorization = %q, want %q", i, header, want[i])
		}
	}
}
