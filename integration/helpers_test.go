package integration_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/onsi/gomega/gexec"

	"github.com/mimosa-flytrap/flytrap/test"
)

const (
	expectedToken = "valid-api-key"
	gitCommit     = "some-git-commit"
	gitVersion    = "some-git-version"

	completionsPath     = "/v1/completions"
	chatCompletionsPath = "/v1/chat/completions"
	chatPath            = "/api/chat"

	// Tasks containing these markers get a reply without an action list, or
	// a server error.
	unstructuredMarker = "chit-chat"
	outageMarker       = "during-outage"
)

var (
	onceBuild  sync.Once
	binaryPath string
	buildErr   error
)

func buildBinary() error {
	onceBuild.Do(func() {
		binaryPath, buildErr = gexec.Build(
			"github.com/mimosa-flytrap/flytrap/cmd/flytrap",
			"-ldflags",
			fmt.Sprintf("-X main.GitCommit=%s -X main.GitVersion=%s", gitCommit, gitVersion))
	})
	return buildErr
}

// newMockServer stands in for an Ollama instance: the completions and native
// chat endpoints take no credentials, the OpenAI-compatible route wants the
// bearer token.
func newMockServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc(completionsPath, postCompletions)
	mux.HandleFunc(chatCompletionsPath, postChatCompletions)
	mux.HandleFunc(chatPath, postChat)
	return httptest.NewServer(mux)
}

func postCompletions(w http.ResponseWriter, r *http.Request) {
	if !allowed(w, r) {
		return
	}

	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch {
	case strings.Contains(body.Prompt, outageMarker):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		serveFixture(w, "overloaded.json")
	case strings.Contains(body.Prompt, unstructuredMarker):
		serveFixture(w, "unstructured.json")
	default:
		serveFixture(w, "completions.json")
	}
}

func postChat(w http.ResponseWriter, r *http.Request) {
	if !allowed(w, r) {
		return
	}
	serveFixture(w, "chat.json")
}

func postChatCompletions(w http.ResponseWriter, r *http.Request) {
	if !allowed(w, r) {
		return
	}

	if err := checkBearerToken(r, expectedToken); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		serveFixture(w, "error.json")
		return
	}
	serveFixture(w, "openai_chat.json")
}

func allowed(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func serveFixture(w http.ResponseWriter, name string) {
	response, err := test.FileToBytes(name)
	if err != nil {
		fmt.Printf("error reading %s: %s\n", name, err.Error())
		return
	}
	w.Write(response)
}

func checkBearerToken(r *http.Request, expectedToken string) error {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing Authorization header")
	}

	splitToken := strings.Split(authHeader, "Bearer ")
	if len(splitToken) != 2 {
		return errors.New("malformed Authorization header")
	}

	if splitToken[1] != expectedToken {
		return errors.New("invalid token")
	}

	return nil
}
