package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/data/sheets"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/domain/lead"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/observability"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/platform/ctxutil"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/platform/logger"
)

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Envelope is the router's reply body.
type Envelope struct {
	Result  string `json:"result"`
	Message string `json:"message,omitempty"`
}

func (e Envelope) OK() bool { return e.Result == ResultSuccess }

type LeadService interface {
	// Handle parses, stores and notifies. Failures are reported in the
	// envelope, never returned.
	Handle(ctx context.Context, body []byte) Envelope
	Process(ctx context.Context, rec *lead.Record) error
	SaveToSheet(ctx context.Context, rec *lead.Record) error
	Notify(ctx context.Context, rec *lead.Record) (Recipients, error)
}

type LeadServiceConfig struct {
	// ExtendHeader appends keys missing from the header instead of dropping
	// them from the row.
	ExtendHeader bool
}

type leadService struct {
	log      *logger.Logger
	table    sheets.Table
	rules    *RoutingRules
	composer *Composer
	notifier Notifier
	cfg      LeadServiceConfig
	tracer   trace.Tracer

	// serializes header creation and append within this process
	mu sync.Mutex
}

func NewLeadService(
	log *logger.Logger,
	table sheets.Table,
	rules *RoutingRules,
	composer *Composer,
	notifier Notifier,
	cfg LeadServiceConfig,
) LeadService {
	if composer == nil {
		composer = NewComposer(ComposerConfig{})
	}
	if notifier == nil {
		notifier = NewLogNotifier(log)
	}
	return &leadService{
		log:      log.With("service", "LeadService"),
		table:    table,
		rules:    rules,
		composer: composer,
		notifier: notifier,
		cfg:      cfg,
		tracer:   observability.Tracer("lead-router"),
	}
}

func (s *leadService) logWith(ctx context.Context) *logger.Logger {
	if td := ctxutil.GetTraceData(ctx); td != nil {
		return s.log.With("trace_id", td.TraceID, "request_id", td.RequestID)
	}
	return s.log
}

func (s *leadService) Handle(ctx context.Context, body []byte) Envelope {
	log := s.logWith(ctx)
	rec, err := lead.ParseRecord(body)
	if err != nil {
		log.Error("Error processing request", "stage", "parse", "error", err)
		return Envelope{Result: ResultError, Message: fmt.Sprintf("parse lead: %v", err)}
	}
	if err := s.Process(ctx, rec); err != nil {
		log.Error("Error processing request", "error", err)
		return Envelope{Result: ResultError, Message: err.Error()}
	}
	return Envelope{Result: ResultSuccess}
}

func (s *leadService) Process(ctx context.Context, rec *lead.Record) error {
	ctx, span := s.tracer.Start(ctx, "lead.process", trace.WithAttributes(
		attribute.String("lead.service_type", string(rec.ServiceType())),
		attribute.Int("lead.fields", rec.Len()),
	))
	defer span.End()

	if err := s.SaveToSheet(ctx, rec); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist")
		return err
	}
	if _, err := s.Notify(ctx, rec); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "notify")
		return err
	}
	return nil
}

// SaveToSheet appends rec as one row. An empty table first gets a header
// row built from rec's keys; the row is then projected onto the stored
// header.
func (s *leadService) SaveToSheet(ctx context.Context, rec *lead.Record) error {
	ctx, span := s.tracer.Start(ctx, "lead.persist")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	header, err := s.table.Header(ctx)
	if err != nil {
		return fmt.Errorf("%w: read header: %v", lead.ErrPersistence, err)
	}
	if len(header) == 0 {
		if !hasNamedKey(rec.Keys()) {
			return fmt.Errorf("%w: record has no fields", lead.ErrPersistence)
		}
		if err := s.table.Append(ctx, rec.Keys()); err != nil {
			return fmt.Errorf("%w: write header: %v", lead.ErrPersistence, err)
		}
		if header, err = s.table.Header(ctx); err != nil {
			return fmt.Errorf("%w: re-read header: %v", lead.ErrPersistence, err)
		}
	}

	if s.cfg.ExtendHeader {
		if extended, grew := extendHeader(header, rec.Keys()); grew {
			if err := s.table.SetHeader(ctx, extended); err != nil {
				return fmt.Errorf("%w: extend header: %v", lead.ErrPersistence, err)
			}
			header = extended
		}
	}

	row := rec.Project(header)
	if err := s.table.Append(ctx, row); err != nil {
		return fmt.Errorf("%w: append row: %v", lead.ErrPersistence, err)
	}
	span.SetAttributes(attribute.Int("lead.columns", len(header)))
	s.logWith(ctx).Info("Data saved to sheet", "columns", len(header), "service_type", string(rec.ServiceType()))
	return nil
}

// hasNamedKey reports whether keys can form a header row. Blank names are
// dropped when the header is read back.
func hasNamedKey(keys []string) bool {
	for _, k := range keys {
		if strings.TrimSpace(k) != "" {
			return true
		}
	}
	return false
}

func extendHeader(header, keys []string) ([]string, bool) {
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		seen[h] = true
	}
	out := append([]string(nil), header...)
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out, len(out) > len(header)
}

// Notify routes rec and sends the email. No recipients is not an error.
func (s *leadService) Notify(ctx context.Context, rec *lead.Record) (Recipients, error) {
	ctx, span := s.tracer.Start(ctx, "lead.notify")
	defer span.End()
	log := s.logWith(ctx)

	if s.rules == nil {
		return Recipients{}, fmt.Errorf("%w: no routing rules configured", lead.ErrRouting)
	}
	t := rec.ServiceType()
	to := s.rules.Route(t, rec.Value(lead.FieldDistrict), rec.Value(lead.FieldProvince))
	span.SetAttributes(attribute.Int("lead.recipients", len(to.To)), attribute.Int("lead.cc", len(to.CC)))
	if to.Empty() {
		if !t.Valid() {
			log.Warn("Unrecognized service type", "service_type", string(t))
		}
		log.Info("No recipients determined for email notification", "service_type", string(t))
		return to, nil
	}

	email, err := s.composer.Compose(rec)
	if err != nil {
		return to, fmt.Errorf("%w: %v", lead.ErrRouting, err)
	}
	if err := s.notifier.Notify(ctx, to, email); err != nil {
		return to, fmt.Errorf("%w: %w", lead.ErrRouting, err)
	}
	log.Info("Email notification sent", "recipients", len(to.To), "cc", len(to.CC))
	return to, nil
}
