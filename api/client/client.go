// Package client is a typed HTTP client for driving a running web server,
// used by scripts and remotes that want to control a session.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/acarlisle/figuredraw/api/models"
	"github.com/acarlisle/figuredraw/store"
)

type SessionClient struct {
	baseURL string
	client  *http.Client
}

func NewSessionClient(baseURL string) *SessionClient {
	return &SessionClient{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

func (sc *SessionClient) do(method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, sc.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := sc.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp models.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("server error: %s", errResp.Error)
		}
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

func (sc *SessionClient) sessionOp(path string, body any) (*models.SessionStatusResponse, error) {
	var status models.SessionStatusResponse
	if err := sc.do(http.MethodPost, path, body, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// StartSession starts a session. Fields left unset in req fall back to the
// persisted settings.
func (sc *SessionClient) StartSession(req models.StartSessionRequest) (*models.SessionStatusResponse, error) {
	return sc.sessionOp("/session/start", req)
}

func (sc *SessionClient) StopSession() (*models.SessionStatusResponse, error) {
	return sc.sessionOp("/session/stop", nil)
}

func (sc *SessionClient) PauseSession() (*models.SessionStatusResponse, error) {
	return sc.sessionOp("/session/pause", nil)
}

func (sc *SessionClient) ResumeSession() (*models.SessionStatusResponse, error) {
	return sc.sessionOp("/session/resume", nil)
}

func (sc *SessionClient) NextImage() (*models.SessionStatusResponse, error) {
	return sc.sessionOp("/session/next", nil)
}

func (sc *SessionClient) PreviousImage() (*models.SessionStatusResponse, error) {
	return sc.sessionOp("/session/previous", nil)
}

func (sc *SessionClient) RestartSession() (*models.SessionStatusResponse, error) {
	return sc.sessionOp("/session/restart", nil)
}

// Status retrieves the current session state without changing anything.
func (sc *SessionClient) Status() (*models.SessionStatusResponse, error) {
	var status models.SessionStatusResponse
	if err := sc.do(http.MethodGet, "/session/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (sc *SessionClient) GetSettings() (*models.SettingsResponse, error) {
	var settings models.SettingsResponse
	if err := sc.do(http.MethodGet, "/settings", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (sc *SessionClient) UpdateSettings(req models.UpdateSettingsRequest) (*store.AppSettings, error) {
	var settings store.AppSettings
	if err := sc.do(http.MethodPut, "/settings", req, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (sc *SessionClient) ListPacks() (*models.PackListResponse, error) {
	var packs models.PackListResponse
	if err := sc.do(http.MethodGet, "/packs", nil, &packs); err != nil {
		return nil, err
	}
	return &packs, nil
}

func (sc *SessionClient) ListSessions(limit int) ([]store.SessionRecord, error) {
	var sessions models.SessionListResponse
	if err := sc.do(http.MethodGet, fmt.Sprintf("/sessions?limit=%d", limit), nil, &sessions); err != nil {
		return nil, err
	}
	return sessions.Sessions, nil
}
