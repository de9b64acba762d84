// Package fake provides a fake server mocking a Discord webhook endpoint. It can be used with [httptest] to test the
// webhook transport and the logging adapters end to end.
package fake

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/loggord/discord-logger/pkg/discord"
)

// Server is a [http.Handler] that mocks a Discord webhook endpoint. It stores all of the payloads posted to it in
// memory along with the headers of each request. It can safely handle multiple concurrent requests.
type Server struct {
	payloads []discord.WebhookPayload
	headers  []http.Header
	lock     *sync.RWMutex
	// sendError is the count of errors to return before succeeding. It is decremented each time a payload is
	// posted.
	sendError uint
}

// NewServer creates a new Server that fails the first sendError posts with an internal server error. It is safe to
// call concurrently from multiple goroutines.
func NewServer(sendError uint) *Server {
	return &Server{
		payloads:  []discord.WebhookPayload{},
		lock:      &sync.RWMutex{},
		sendError: sendError,
	}
}

// Payloads locks the server for reading and returns the payloads that have been posted to it. It should be paired
// with a call to [Server.Close] to unlock the server.
func (server *Server) Payloads() []discord.WebhookPayload {
	server.lock.RLock()

	return server.payloads
}

// Headers locks the server for reading and returns the request headers of every post, in order. It should be paired
// with a call to [Server.Close] to unlock the server.
func (server *Server) Headers() []http.Header {
	server.lock.RLock()

	return server.headers
}

// Close unlocks the server from reading.
func (server *Server) Close() {
	server.lock.RUnlock()
}

// Start starts the server and returns a [httptest.Server] that can be used to get the URL of the server. It should not
// be called multiple times.
func (server *Server) Start() *httptest.Server {
	testServer := httptest.NewServer(server)

	return testServer
}

var _ http.Handler = (*Server)(nil)

func (server *Server) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodPost {
		writer.Header().Add("Allow", http.MethodPost)
		writer.Header().Add("Content-Type", "text/plain")
		writer.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = writer.Write([]byte("Method Not Allowed"))

		return
	}

	server.lock.Lock()
	defer server.lock.Unlock()

	server.headers = append(server.headers, request.Header.Clone())

	if server.sendError > 0 {
		server.sendError--

		writeError(writer, "Internal Server Error")

		return
	}

	payload := discord.WebhookPayload{}

	err := json.NewDecoder(request.Body).Decode(&payload)
	if err != nil {
		writeError(writer, "Failed to decode request body")

		return
	}

	server.payloads = append(server.payloads, payload)

	writer.WriteHeader(http.StatusNoContent)
}

func writeError(writer http.ResponseWriter, message string) {
	writer.Header().Add("Content-Type", "text/plain")
	writer.WriteHeader(http.StatusInternalServerError)
	_, _ = writer.Write([]byte(message))
}
