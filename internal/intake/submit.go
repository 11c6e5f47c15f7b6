package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/domain/lead"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/platform/logger"
)

// Mode selects how much of the router's reply the submitter may observe.
type Mode int

const (
	// ModeOpaque never reads the reply. Only failures before a response
	// arrives are reported.
	ModeOpaque Mode = iota
	// ModeAcknowledged decodes the reply envelope and reports rejections.
	ModeAcknowledged
)

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "opaque":
		return ModeOpaque, nil
	case "ack", "acknowledged":
		return ModeAcknowledged, nil
	}
	return ModeOpaque, fmt.Errorf("unknown submit mode %q", s)
}

type Submitter interface {
	Submit(ctx context.Context, rec *lead.Record) error
	Mode() Mode
}

type HTTPSubmitterConfig struct {
	Endpoint string
	Mode     Mode
	Timeout  time.Duration
}

type httpSubmitter struct {
	log        *logger.Logger
	cfg        HTTPSubmitterConfig
	httpClient *http.Client
}

func NewHTTPSubmitter(log *logger.Logger, cfg HTTPSubmitterConfig) (Submitter, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, fmt.Errorf("missing INTAKE_ENDPOINT")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &httpSubmitter{
		log:        log.With("client", "IntakeSubmitter"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (s *httpSubmitter) Mode() Mode { return s.cfg.Mode }

type envelope struct {
	Result  string `json:"result"`
	Message string `json:"message"`
}

func (s *httpSubmitter) Submit(ctx context.Context, rec *lead.Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", lead.ErrTransport, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", lead.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", lead.ErrTransport, err)
	}
	defer resp.Body.Close()

	if s.cfg.Mode == ModeOpaque {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read reply: %v", lead.ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: http %d", lead.ErrRejected, resp.StatusCode)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: unreadable reply: %v", lead.ErrRejected, err)
	}
	if env.Result != "success" {
		s.log.Warn("Lead rejected by router", "message", env.Message)
		return fmt.Errorf("%w: %s", lead.ErrRejected, env.Message)
	}
	return nil
}
