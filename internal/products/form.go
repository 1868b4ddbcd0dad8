package products

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/odyssey-erp/catalog-admin/internal/catalog"
)

// Status is the submission state of a Form.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

const (
	// MsgCreated is shown after the API accepted a draft.
	MsgCreated = "Product added successfully!"
	// MsgSubmitFailed is the fallback when the server gave no message.
	MsgSubmitFailed = "An error occurred while sending data."
)

// Creator submits drafts to the catalog.
type Creator interface {
	Create(ctx context.Context, draft catalog.Draft) (int, error)
}

// Form holds the entered values and submission state of one product form.
type Form struct {
	creator Creator
	logger  *slog.Logger

	values  RawInput
	errors  FieldErrors
	status  Status
	message string
}

// NewForm returns an idle, empty form.
func NewForm(creator Creator, logger *slog.Logger) *Form {
	if logger == nil {
		logger = slog.Default()
	}
	return &Form{creator: creator, logger: logger, errors: FieldErrors{}}
}

// Values returns what the form currently displays.
func (f *Form) Values() RawInput { return f.values }

// Errors returns the inline field messages of the last validation.
func (f *Form) Errors() FieldErrors { return f.errors }

// Status returns the submission state.
func (f *Form) Status() Status { return f.status }

// Message returns the success or failure banner text.
func (f *Form) Message() string { return f.message }

// Submitting reports whether a create call is outstanding.
func (f *Form) Submitting() bool { return f.status == StatusSubmitting }

// Reset clears entered values and field errors. Status and message are kept.
func (f *Form) Reset() {
	f.values = RawInput{}
	f.errors = FieldErrors{}
}

// Submit validates in and, when valid, sends it to the catalog. Invalid input
// never reaches the API and leaves the status untouched. A failed submission
// keeps the entered values so they can be corrected.
func (f *Form) Submit(ctx context.Context, in RawInput) Status {
	f.values = in

	draft, errs := Validate(in)
	if len(errs) > 0 {
		f.errors = errs
		return f.status
	}
	f.errors = FieldErrors{}

	f.status = StatusSubmitting
	f.message = ""
	defer func() {
		if f.status == StatusSubmitting {
			f.fail(MsgSubmitFailed)
		}
	}()

	code, err := f.creator.Create(ctx, draft)
	switch {
	case err != nil:
		f.logger.Error("submit product", slog.Any("error", err))
		msg, ok := catalog.ServerMessage(err)
		if !ok {
			msg = MsgSubmitFailed
		}
		f.fail(msg)
	case code == http.StatusOK || code == http.StatusCreated:
		f.status = StatusSucceeded
		f.message = MsgCreated
		f.Reset()
	default:
		f.logger.Warn("submit product unexpected status", slog.Int("status", code))
		f.fail(MsgSubmitFailed)
	}
	return f.status
}

func (f *Form) fail(msg string) {
	f.status = StatusFailed
	f.message = msg
}
