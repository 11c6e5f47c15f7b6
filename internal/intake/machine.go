package intake

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/language"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/domain/lead"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/platform/logger"
)

type State int

const (
	StateServiceSelection State = iota
	StateServiceForm
	StateContactForm
	StateSubmitting
	StateSuccess
	StateFailure
)

func (s State) String() string {
	switch s {
	case StateServiceSelection:
		return "ServiceSelection"
	case StateServiceForm:
		return "ServiceForm"
	case StateContactForm:
		return "ContactForm"
	case StateSubmitting:
		return "Submitting"
	case StateSuccess:
		return "Success"
	case StateFailure:
		return "Failure"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// DefaultSettleDelay is how long an opaque submit waits before it is
// presumed delivered.
const DefaultSettleDelay = 2000 * time.Millisecond

// Clock is the session's time source.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

var ErrInvalidTransition = errors.New("invalid transition")

type SessionConfig struct {
	Drafts      DraftStore
	Submitter   Submitter
	Clock       Clock
	SettleDelay time.Duration
	Language    language.Tag
	// OnTransition observes every state change.
	OnTransition func(from, to State)
}

// Session is one customer's pass through the intake flow. It is driven by
// one caller at a time.
type Session struct {
	id    string
	log   *logger.Logger
	cfg   SessionConfig
	state State

	service lead.ServiceType
	forms   map[string]*Form
	alert   string
}

func NewSession(log *logger.Logger, id string, cfg SessionConfig) (*Session, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.Submitter == nil {
		return nil, fmt.Errorf("submitter required")
	}
	if cfg.Drafts == nil {
		cfg.Drafts = NewMemoryDraftStore()
	}
	if cfg.Clock == nil {
		cfg.Clock = realClock{}
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = DefaultSettleDelay
	}
	if cfg.Language == language.Und {
		cfg.Language = language.Thai
	}
	s := &Session{
		id:  id,
		log: log.With("component", "IntakeSession", "session_id", id),
		cfg: cfg,
	}
	s.resetForms()
	return s, nil
}

func (s *Session) State() State { return s.state }

func (s *Session) Service() lead.ServiceType { return s.service }

// Alert is the message to show after a failed submit, or "".
func (s *Session) Alert() string { return s.alert }

// Form returns the form of the current screen, or nil when no form is shown.
func (s *Session) Form() *Form {
	switch s.state {
	case StateServiceForm:
		return s.forms[s.service.FormID()]
	case StateContactForm, StateFailure:
		return s.forms[lead.FormContact]
	}
	return nil
}

func (s *Session) resetForms() {
	s.forms = map[string]*Form{lead.FormContact: ContactForm()}
	for _, t := range lead.ServiceTypes {
		f, _ := ServiceForm(t)
		s.forms[f.ID] = f
	}
}

func (s *Session) transition(to State) {
	from := s.state
	s.state = to
	s.log.Debug("Intake transition", "from", from.String(), "to", to.String())
	if s.cfg.OnTransition != nil {
		s.cfg.OnTransition(from, to)
	}
}

// SelectService opens the questionnaire of t.
func (s *Session) SelectService(t lead.ServiceType) error {
	if s.state != StateServiceSelection {
		return fmt.Errorf("%w: select service from %s", ErrInvalidTransition, s.state)
	}
	if !t.Valid() {
		return fmt.Errorf("unknown service type %q", t)
	}
	s.service = t
	s.transition(StateServiceForm)
	return nil
}

// CompleteServiceForm validates the questionnaire, stores it as the draft
// and moves to the contact form.
func (s *Session) CompleteServiceForm(ctx context.Context) error {
	if s.state != StateServiceForm {
		return fmt.Errorf("%w: complete service form from %s", ErrInvalidTransition, s.state)
	}
	f := s.Form()
	if err := f.Validate(); err != nil {
		return err
	}
	if err := s.cfg.Drafts.Save(ctx, s.id, Draft{Record: Extract(f), FormID: f.ID}); err != nil {
		return err
	}
	s.transition(StateContactForm)
	return nil
}

// Submit merges the draft with the contact form, stamps it and sends it
// once. A failure returns the session to the contact form with its values
// kept; success clears the draft and starts over.
func (s *Session) Submit(ctx context.Context) error {
	if s.state != StateContactForm {
		return fmt.Errorf("%w: submit from %s", ErrInvalidTransition, s.state)
	}
	contact := s.forms[lead.FormContact]
	if err := contact.Validate(); err != nil {
		return err
	}
	draft, _, err := s.cfg.Drafts.Load(ctx, s.id)
	if err != nil {
		return err
	}
	rec := lead.Merge(draft.Record, Extract(contact))
	rec.Stamp(s.cfg.Clock.Now())

	s.alert = ""
	s.transition(StateSubmitting)
	if err := s.cfg.Submitter.Submit(ctx, rec); err != nil {
		s.log.Error("Error submitting form", "error", err)
		s.alert = SubmitFailedMessage(s.cfg.Language)
		s.transition(StateFailure)
		s.transition(StateContactForm)
		return err
	}
	if s.cfg.Submitter.Mode() == ModeOpaque {
		<-s.cfg.Clock.After(s.cfg.SettleDelay)
	}
	s.transition(StateSuccess)
	s.clear(ctx)
	s.transition(StateServiceSelection)
	return nil
}

// Back returns to the previous screen. From the contact form that is the
// questionnaire which produced the draft.
func (s *Session) Back(ctx context.Context) {
	switch s.state {
	case StateServiceForm:
		s.transition(StateServiceSelection)
	case StateContactForm:
		d, ok, err := s.cfg.Drafts.Load(ctx, s.id)
		if err != nil {
			s.log.Warn("Draft unavailable on back", "error", err)
		}
		if t, known := lead.ServiceForForm(d.FormID); ok && known {
			s.service = t
			s.transition(StateServiceForm)
			return
		}
		s.transition(StateServiceSelection)
	}
}

// Reset clears every form and the draft and returns to service selection.
func (s *Session) Reset(ctx context.Context) {
	s.clear(ctx)
	s.alert = ""
	if s.state != StateServiceSelection {
		s.transition(StateServiceSelection)
	}
}

func (s *Session) clear(ctx context.Context) {
	if err := s.cfg.Drafts.Clear(ctx, s.id); err != nil {
		s.log.Warn("Draft clear failed", "error", err)
	}
	s.service = ""
	s.resetForms()
}
