package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"coursedesk/internal/repository"
)

// envelope is the uniform response wrapper: {"success": true, "data": ...}
// on success, {"success": false, "error": "..."} on failure.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: true, Message: message})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Error: message})
}

// serverError logs the cause and answers a generic 500; internals never
// reach the client.
func (s *Server) serverError(w http.ResponseWriter, op string, err error) {
	s.log.Errorf("%s: %v", op, err)
	writeError(w, http.StatusInternalServerError, "Database error occurred")
}

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(out)
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// listOptions pulls the search/sort/order query values; whitelisting happens
// in the repository next to the SQL.
func listOptions(r *http.Request) repository.ListOptions {
	q := r.URL.Query()
	return repository.ListOptions{
		Search: strings.TrimSpace(q.Get("search")),
		Sort:   q.Get("sort"),
		Order:  q.Get("order"),
	}
}

// queryID reads a numeric identifier from the query string, falling back to
// an {"id": n} JSON body for DELETE requests.
func queryID(r *http.Request) (int64, bool) {
	if raw := r.URL.Query().Get("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		return id, err == nil
	}
	var body struct {
		ID int64 `json:"id"`
	}
	if err := decodeJSON(r, &body); err == nil && body.ID != 0 {
		return body.ID, true
	}
	return 0, false
}
