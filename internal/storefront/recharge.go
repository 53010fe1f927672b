package storefront

import (
	"context"
	"errors"
	"time"

	"github.com/rechargehub/storefront/internal/domain/plan"
	"github.com/rechargehub/storefront/internal/domain/recharge"
	"github.com/rechargehub/storefront/internal/pkg/logger"
	"github.com/rechargehub/storefront/pkg/client"
)

// Step is a state of the payment confirmation flow. Transitions are
// strictly forward: CONFIRM -> PROCESSING -> SUCCESS. The only way back
// is a full reset (reopen or persistence failure).
type Step string

const (
	StepConfirm    Step = "CONFIRM"
	StepProcessing Step = "PROCESSING"
	StepSuccess    Step = "SUCCESS"
)

// ProcessingDelay is the simulated payment-processing time between the
// pay action (and any persistence) and the success screen.
const ProcessingDelay = 2 * time.Second

// ErrNotConfirming is returned when Pay is called outside CONFIRM.
var ErrNotConfirming = errors.New("payment flow is not awaiting confirmation")

// ConfirmationFlow simulates the payment for one plan. The processing
// delay is wall-clock based so the flow works the same whether a web
// handler polls it or a CLI blocks on it; tests inject the clock.
type ConfirmationFlow struct {
	backend Backend
	log     *logger.Logger
	delay   time.Duration
	now     func() time.Time

	step        Step
	plan        client.Plan
	mobile      string
	operator    plan.Operator
	referenceID string
	doneAt      time.Time
}

// NewConfirmationFlow creates a flow in CONFIRM state for the given
// plan selection.
func NewConfirmationFlow(backend Backend, log *logger.Logger) *ConfirmationFlow {
	return &ConfirmationFlow{
		backend: backend,
		log:     log,
		delay:   ProcessingDelay,
		now:     time.Now,
		step:    StepConfirm,
	}
}

// Open resets the flow to CONFIRM for a newly selected plan, discarding
// any previous transient state.
func (f *ConfirmationFlow) Open(p client.Plan, mobileNumber string, op plan.Operator) {
	f.step = StepConfirm
	f.plan = p
	f.mobile = mobileNumber
	f.operator = op
	f.referenceID = ""
	f.doneAt = time.Time{}
}

// Plan returns the checkout target shown on the confirm screen.
func (f *ConfirmationFlow) Plan() client.Plan {
	return f.plan
}

// ReferenceID returns the stored or generated transaction reference;
// empty until persistence ran.
func (f *ConfirmationFlow) ReferenceID() string {
	return f.referenceID
}

// Step returns the current state, promoting PROCESSING to SUCCESS once
// the simulated delay has elapsed.
func (f *ConfirmationFlow) Step() Step {
	if f.step == StepProcessing && !f.now().Before(f.doneAt) {
		f.step = StepSuccess
	}
	return f.step
}

// Remaining returns how much of the processing delay is left.
func (f *ConfirmationFlow) Remaining() time.Duration {
	if f.step != StepProcessing {
		return 0
	}
	if d := f.doneAt.Sub(f.now()); d > 0 {
		return d
	}
	return 0
}

// Pay runs the pay action: transition to PROCESSING and, when a session
// exists, synchronously persist the recharge record (status SUCCESS,
// client-generated reference, plan snapshot embedded) before the delay
// starts. A persistence failure aborts the delay and resets the flow to
// CONFIRM with nothing retained; the caller surfaces the error as a
// blocking message. A guest checkout still reaches SUCCESS after the
// delay, just without a persisted record.
func (f *ConfirmationFlow) Pay(ctx context.Context, sess *Session) error {
	if f.step != StepConfirm {
		return ErrNotConfirming
	}
	f.step = StepProcessing

	if sess != nil {
		req := recharge.NewRequest(sess.User, f.plan, f.mobile, f.operator)
		rec, err := f.backend.CreateRecharge(ctx, req)
		if err != nil {
			f.log.WithError(err).Error("recharge persistence failed")
			f.step = StepConfirm
			f.referenceID = ""
			f.doneAt = time.Time{}
			return err
		}
		f.referenceID = req.ReferenceID
		if rec.ReferenceID != "" {
			f.referenceID = rec.ReferenceID
		}
	}

	f.doneAt = f.now().Add(f.delay)
	return nil
}
