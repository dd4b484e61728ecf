package delivery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yegebere/gebeya-auth/internal/domain/phone"
)

// SMSGateway sends texts through the Twilio Messages API. The REST endpoint
// is called directly with a bounded-timeout client.
type SMSGateway struct {
	AccountSID string
	AuthToken  string
	Sender     string
	BaseURL    string
	Client     *http.Client
	Logger     *logrus.Logger
}

func NewSMSGateway(accountSID, authToken, sender, baseURL string, timeout time.Duration, logger *logrus.Logger) *SMSGateway {
	return &SMSGateway{
		AccountSID: accountSID,
		AuthToken:  authToken,
		Sender:     sender,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Client:     &http.Client{Timeout: timeout},
		Logger:     logger,
	}
}

func (g *SMSGateway) Name() string { return "sms" }

func (g *SMSGateway) Send(ctx context.Context, to phone.Number, message string) error {
	if g.AccountSID == "" || g.AuthToken == "" || g.Sender == "" {
		return errors.New("sms gateway not configured")
	}

	form := url.Values{}
	form.Set("To", to.String())
	form.Set("From", g.Sender)
	form.Set("Body", message)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", g.BaseURL, g.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(g.AccountSID, g.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.Client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if g.Logger != nil {
			g.Logger.WithFields(logrus.Fields{"status": resp.StatusCode, "to": to.Masked()}).Warn("sms gateway rejected message")
		}
		return fmt.Errorf("sms gateway status %d", resp.StatusCode)
	}
	return nil
}

var _ Channel = (*SMSGateway)(nil)
