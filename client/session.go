// Package client is the Go client for the DevTracker API: a persisted
// session, an HTTP client that attaches the identity token to every call,
// and the board view model backing the Kanban view.
package client

import (
	"encoding/json"
	"fmt"
	"os"
)

// Session holds the identity token for the current user. It is persisted to
// disk so the session survives restarts, and passed explicitly to whatever
// needs it rather than living in a package-level singleton.
type Session struct {
	path   string
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// LoadSession reads a previously saved session from path. A missing or
// unreadable file yields an empty, unauthenticated session.
func LoadSession(path string) *Session {
	s := &Session{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, s); err != nil {
		s.Token = ""
		s.UserID = ""
	}
	return s
}

func (s *Session) Authenticated() bool {
	return s.Token != ""
}

// Save stores the credentials and writes them through to disk.
func (s *Session) Save(token, userID string) error {
	s.Token = token
	s.UserID = userID

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Clear logs out: credentials are dropped and the persisted file removed.
func (s *Session) Clear() error {
	s.Token = ""
	s.UserID = ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
