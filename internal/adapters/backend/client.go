package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/secreport-cli/internal/domain"
	"github.com/bnema/secreport-cli/internal/ports"
)

const (
	maxResponseBytes      = 1 << 20
	defaultRequestTimeout = 30 * time.Second

	loginPath         = "/api/v1/auth/login"
	signupPath        = "/api/v1/auth/signup"
	logoutPath        = "/api/v1/auth/logout"
	submitFormPath    = "/api/submit-form"
	getFilePath       = "/api/get"
	processStatusPath = "/api/process-status/"
	chatPath          = "/api/v1/chat/"
)

type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	UserAgent      string
}

var (
	_ ports.AuthGateway   = Client{}
	_ ports.ReportGateway = Client{}
	_ ports.ChatGateway   = Client{}
)

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authBody struct {
	Email       string `json:"email"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type submitBody struct {
	WebsiteURL *string `json:"website_url"`
	GithubURL  *string `json:"github_url"`
	Email      string  `json:"email"`
	Prompt     string  `json:"prompt"`
}

type submitResponseBody struct {
	ID   json.RawMessage `json:"id"`
	Data struct {
		Token string `json:"token"`
	} `json:"data"`
}

type fileResponseBody struct {
	Content *string `json:"content"`
}

type processStatusBody struct {
	Status  string `json:"status"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

type chatRequestBody struct {
	Message string `json:"message"`
}

type chatResponseBody struct {
	Response string `json:"response"`
}

func (c Client) Authenticate(ctx context.Context, mode domain.AuthMode, creds domain.Credentials) (ports.AuthResponse, error) {
	path := loginPath
	if mode == domain.AuthModeSignup {
		path = signupPath
	}
	op := string(mode)

	var body authBody
	if err := c.doJSON(ctx, op, http.MethodPost, path, nil, "", credentialsBody{Email: creds.Email, Password: creds.Password}, &body); err != nil {
		return ports.AuthResponse{}, err
	}

	return ports.AuthResponse{
		Email:       strings.TrimSpace(body.Email),
		AccessToken: body.AccessToken,
		TokenType:   body.TokenType,
	}, nil
}

func (c Client) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return errors.New("access token is required")
	}

	return c.doJSON(ctx, "logout", http.MethodPost, logoutPath, nil, accessToken, nil, nil)
}

func (c Client) SubmitForm(ctx context.Context, accessToken string, payload domain.SubmissionPayload) (ports.SubmissionResponse, error) {
	var raw json.RawMessage
	err := c.doJSON(ctx, "submit form", http.MethodPost, submitFormPath, nil, accessToken, submitBody{
		WebsiteURL: payload.WebsiteURL,
		GithubURL:  payload.GithubURL,
		Email:      payload.Email,
		Prompt:     payload.Prompt,
	}, &raw)
	if err != nil {
		return ports.SubmissionResponse{}, err
	}

	var body submitResponseBody
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			return ports.SubmissionResponse{}, fmt.Errorf("decode submit form response: %w", err)
		}
	}

	id := rawScalar(body.ID)
	if id == "" {
		id = strings.TrimSpace(body.Data.Token)
	}

	return ports.SubmissionResponse{ID: id, Raw: raw}, nil
}

func (c Client) GetFile(ctx context.Context, accessToken string, query ports.SummaryQuery) (string, bool, error) {
	values := url.Values{}
	values.Set("user_id", query.UserID)
	values.Set("filename", query.Filename)
	values.Set("process_id", query.ProcessID)

	var body fileResponseBody
	if err := c.doJSON(ctx, "get summary", http.MethodGet, getFilePath, values, accessToken, nil, &body); err != nil {
		return "", false, err
	}
	if body.Content == nil {
		return "", false, nil
	}

	return *body.Content, true, nil
}

func (c Client) ProcessStatus(ctx context.Context, processID string) (domain.ProcessStatus, error) {
	if strings.TrimSpace(processID) == "" {
		return domain.ProcessStatus{}, errors.New("process id is required")
	}

	var body processStatusBody
	if err := c.doJSON(ctx, "process status", http.MethodGet, processStatusPath+url.PathEscape(processID), nil, "", nil, &body); err != nil {
		return domain.ProcessStatus{}, err
	}

	return domain.ProcessStatus{Status: body.Status, Token: body.Token, Message: body.Message}, nil
}

func (c Client) SendMessage(ctx context.Context, accessToken string, message string) (string, error) {
	var body chatResponseBody
	if err := c.doJSON(ctx, "chat", http.MethodPost, chatPath, nil, accessToken, chatRequestBody{Message: message}, &body); err != nil {
		return "", err
	}

	return body.Response, nil
}

func (c Client) doJSON(ctx context.Context, op, method, path string, query url.Values, accessToken string, in any, out any) error {
	endpoint, err := buildAPIURL(c.BaseURL, path)
	if err != nil {
		return err
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return &domain.NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &domain.NetworkError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &domain.RequestError{Op: op, StatusCode: resp.StatusCode, Detail: decodeDetail(body)}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], body...)
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}

	return nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	timeout := c.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return context.WithTimeout(ctx, timeout)
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("backend base url is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse backend base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("backend base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("backend base url host is required")
	}

	return strings.TrimRight(parsed.String(), "/") + path, nil
}

// rawScalar renders a JSON string or number as plain text.
func rawScalar(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err == nil {
		return n.String()
	}

	return ""
}
