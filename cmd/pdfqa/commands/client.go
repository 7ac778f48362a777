package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

// client is a thin wrapper over the server's HTTP routes.
type client struct {
	baseURL string
	http    *http.Client
}

type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

func newClient(baseURL string) *client {
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Generation can take minutes on local models.
		http: &http.Client{Timeout: 10 * time.Minute},
	}
}

func (c *client) uploadPDF(path string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filepath.Base(path)))
	header.Set("Content-Type", "application/pdf")
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/upload_pdf", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp struct {
		Message string `json:"message"`
	}
	if err := c.doJSON(req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *client) ask(question string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/qa?q="+url.QueryEscape(question), nil)
	if err != nil {
		return "", err
	}
	var resp struct {
		Answer string `json:"answer"`
	}
	if err := c.doJSON(req, &resp); err != nil {
		return "", err
	}
	return resp.Answer, nil
}

type historyEntry struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *client) history() ([]historyEntry, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/history", nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		History []historyEntry `json:"history"`
	}
	if err := c.doJSON(req, &resp); err != nil {
		return nil, err
	}
	return resp.History, nil
}

// artifact fetches route and returns the value stored under field.
func (c *client) artifact(route, field string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+route, nil)
	if err != nil {
		return "", err
	}
	var resp map[string]string
	if err := c.doJSON(req, &resp); err != nil {
		return "", err
	}
	return resp[field], nil
}

func (c *client) download(route string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+route, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, decodeError(res)
	}
	return io.ReadAll(res.Body)
}

func (c *client) doJSON(req *http.Request, out interface{}) error {
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return decodeError(res)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeError(res *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
		body.Message = strings.TrimSpace(string(raw))
	}
	return &apiError{Status: res.StatusCode, Message: body.Message}
}
