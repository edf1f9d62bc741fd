package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// MailboxConfig is the validated connection config of a mailbox
// registration. The mailbox is a read-side fetch API, not SMTP.
type MailboxConfig struct {
	BaseURL string `validate:"required,url"`
	APIKey  string `validate:"required"`
	Folder  string `validate:"required"`
}

// MailboxProvider pulls new mail, ordered by ascending message uid.
type MailboxProvider struct {
	cfg    MailboxConfig
	client *http.Client
}

var _ ContentProvider = &MailboxProvider{}

func NewMailboxProvider(cfg MailboxConfig) (*MailboxProvider, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid mailbox config: %w", err)
	}
	return &MailboxProvider{
		cfg: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (p *MailboxProvider) Category() string { return "mailbox" }

type mailboxMessage struct {
	Uid        int64  `json:"uid"`
	Subject    string `json:"subject"`
	From       string `json:"from"`
	ReceivedAt string `json:"received_at"`
	Body       string `json:"body"`
}

type mailboxListResponse struct {
	Messages []mailboxMessage `json:"messages"`
	HasMore  bool             `json:"has_more"`
}

func (p *MailboxProvider) Fetch(ctx context.Context, cursor Cursor, limit int) (*FetchResult, error) {
	mc, err := cursor.AsMailbox()
	if err != nil {
		return nil, err
	}

	folder := mc.Folder
	if folder == "" {
		folder = p.cfg.Folder
	}

	q := url.Values{}
	q.Set("folder", folder)
	q.Set("after_uid", strconv.FormatInt(mc.LastMessageUid, 10))
	q.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, "GET", p.cfg.BaseURL+"/v1/messages?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mailbox request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mailbox error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var listResp mailboxListResponse
	if err := json.Unmarshal(bodyBytes, &listResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	result := &FetchResult{
		NewCursor: Cursor{Kind: CursorKindMailbox, Mailbox: &MailboxCursor{
			LastMessageUid: mc.LastMessageUid,
			Folder:         folder,
		}},
		HasMore: listResp.HasMore,
	}

	for _, m := range listResp.Messages {
		receivedAt, err := time.Parse(time.RFC3339, m.ReceivedAt)
		if err != nil {
			receivedAt = time.Now()
		}
		result.Items = append(result.Items, ContentItem{
			SourceId:   strconv.FormatInt(m.Uid, 10),
			SourceType: "email",
			SourceDate: receivedAt,
			Content:    m.Body,
			Metadata: map[string]string{
				"subject": m.Subject,
				"from":    m.From,
			},
		})
		if m.Uid > result.NewCursor.Mailbox.LastMessageUid {
			result.NewCursor.Mailbox.LastMessageUid = m.Uid
		}
	}

	return result, nil
}
