package wecom

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"respush/internal/common"
	"respush/internal/domain/push"
)

var _ push.Provider = (*WebhookProvider)(nil)

// DefaultTimeout bounds a single webhook call.
const DefaultTimeout = 20 * time.Second

// textEnvelope is the group robot "text" message body.
type textEnvelope struct {
	MsgType string      `json:"msgtype"`
	Text    textPayload `json:"text"`
}

type textPayload struct {
	Content             string   `json:"content"`
	MentionedList       []string `json:"mentioned_list"`
	MentionedMobileList []string `json:"mentioned_mobile_list"`
}

// webhookResponse is the robot's reply. ErrCode is a pointer so an absent field
// (or a null body) is a failure rather than an implicit zero.
type webhookResponse struct {
	ErrCode *int   `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// WebhookProvider sends text messages to a WeCom group robot webhook.
type WebhookProvider struct {
	url        string
	httpClient *http.Client
}

// NewWebhookProvider creates a new webhook provider. A non-positive timeout selects
// DefaultTimeout. insecureSkipVerify disables TLS certificate checks.
func NewWebhookProvider(url string, timeout time.Duration, insecureSkipVerify bool) *WebhookProvider {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via config
	}

	return &WebhookProvider{
		url: url,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Channel returns the WeCom channel identifier.
func (p *WebhookProvider) Channel() push.Channel {
	return push.ChannelWeCom
}

// Send posts msg to the webhook once. There are no retries.
func (p *WebhookProvider) Send(ctx context.Context, msg *push.Message) error {
	if p.url == "" {
		return common.NewConfigError("webhook.url", "is empty")
	}
	if msg == nil || msg.Content == "" {
		return common.NewConfigError("", "message content is empty")
	}

	payload := textEnvelope{
		MsgType: "text",
		Text: textPayload{
			Content:             msg.Content,
			MentionedList:       []string{},
			MentionedMobileList: []string{},
		},
	}

	// Keep CJK text and emoji as literal UTF-8
	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("marshaling webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, &body)
	if err != nil {
		return common.NewTransportError("creating request", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return common.NewTransportError("executing request", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max
	if err != nil {
		return common.NewTransportError("reading response", err)
	}

	var result webhookResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return common.NewTransportError("parsing response",
			fmt.Errorf("status %d: %w", resp.StatusCode, err))
	}

	if result.ErrCode == nil {
		code := 0
		if resp.StatusCode >= 400 {
			code = resp.StatusCode
		}
		detail := "missing errcode"
		if result.ErrMsg != "" {
			detail += ": " + result.ErrMsg
		} else if code != 0 {
			detail += ": " + http.StatusText(code)
		}
		return common.NewDeliveryError(code, detail)
	}

	if *result.ErrCode != 0 {
		return common.NewDeliveryError(*result.ErrCode, result.ErrMsg)
	}

	return nil
}
