package storefront

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rechargehub/storefront/internal/domain/plan"
	"github.com/rechargehub/storefront/internal/domain/user"
	"github.com/rechargehub/storefront/internal/testutil"
	"github.com/rechargehub/storefront/pkg/client"
)

// fakeClock lets tests drive the processing delay.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestFlow(backend Backend) (*ConfirmationFlow, *fakeClock) {
	f := NewConfirmationFlow(backend, testLogger())
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	f.now = clock.Now
	return f, clock
}

func testPlan() client.Plan {
	return client.Plan{
		ID: "p1", Operator: "JIO", Price: 299,
		Data: "2GB/Day", Validity: "28 Days", Calls: "Unlimited",
	}
}

func testSession() *Session {
	return &Session{User: user.User{ID: "u1", Email: "a@b.com"}, Token: "tok"}
}

func TestConfirmationFlow_HappyPath(t *testing.T) {
	backend := testutil.NewMockBackend()
	f, clock := newTestFlow(backend)
	f.Open(testPlan(), "9876543210", plan.OperatorJio)

	if f.Step() != StepConfirm {
		t.Fatalf("step = %v, want CONFIRM", f.Step())
	}

	if err := f.Pay(context.Background(), testSession()); err != nil {
		t.Fatalf("Pay() error = %v", err)
	}

	// Persistence happens before the delay.
	if len(backend.CreatedRecharges) != 1 {
		t.Fatalf("recharges persisted = %d, want 1", len(backend.CreatedRecharges))
	}
	rec := backend.CreatedRecharges[0]
	if rec.Status != "SUCCESS" {
		t.Errorf("status = %q, want SUCCESS", rec.Status)
	}
	if rec.PlanDetails != (client.PlanSnapshot{Data: "2GB/Day", Validity: "28 Days", Calls: "Unlimited"}) {
		t.Errorf("snapshot = %+v", rec.PlanDetails)
	}
	if !strings.HasPrefix(rec.ReferenceID, "TXN") {
		t.Errorf("referenceId = %q", rec.ReferenceID)
	}

	if f.Step() != StepProcessing {
		t.Fatalf("step = %v, want PROCESSING during delay", f.Step())
	}

	clock.Advance(ProcessingDelay / 2)
	if f.Step() != StepProcessing {
		t.Fatalf("step flipped early")
	}

	clock.Advance(ProcessingDelay)
	if f.Step() != StepSuccess {
		t.Fatalf("step = %v, want SUCCESS after delay", f.Step())
	}
	if f.ReferenceID() != rec.ReferenceID {
		t.Errorf("ReferenceID() = %q, want %q", f.ReferenceID(), rec.ReferenceID)
	}
}

func TestConfirmationFlow_PersistenceFailureResets(t *testing.T) {
	backend := testutil.NewMockBackend()
	backend.CreateRechargeErr = testutil.ErrBackendDown
	f, clock := newTestFlow(backend)
	f.Open(testPlan(), "9876543210", plan.OperatorJio)

	err := f.Pay(context.Background(), testSession())
	if err == nil {
		t.Fatalf("Pay() succeeded despite persistence failure")
	}

	if f.Step() != StepConfirm {
		t.Errorf("step = %v, want reset to CONFIRM", f.Step())
	}
	if f.ReferenceID() != "" {
		t.Errorf("referenceId retained: %q", f.ReferenceID())
	}
	if len(backend.CreatedRecharges) != 0 {
		t.Errorf("record created despite failure")
	}

	// SUCCESS is never reached, even after the would-be delay.
	clock.Advance(2 * ProcessingDelay)
	if f.Step() == StepSuccess {
		t.Errorf("flow reached SUCCESS after a failed persistence")
	}
}

func TestConfirmationFlow_GuestStillSucceeds(t *testing.T) {
	backend := testutil.NewMockBackend()
	f, clock := newTestFlow(backend)
	f.Open(testPlan(), "9876543210", plan.OperatorJio)

	if err := f.Pay(context.Background(), nil); err != nil {
		t.Fatalf("Pay() error = %v", err)
	}
	if len(backend.CreatedRecharges) != 0 {
		t.Errorf("guest checkout persisted a record")
	}

	clock.Advance(ProcessingDelay)
	if f.Step() != StepSuccess {
		t.Errorf("step = %v, want SUCCESS without a persisted record", f.Step())
	}
	if f.ReferenceID() != "" {
		t.Errorf("guest checkout has a reference id: %q", f.ReferenceID())
	}
}

func TestConfirmationFlow_PayOutsideConfirm(t *testing.T) {
	backend := testutil.NewMockBackend()
	f, _ := newTestFlow(backend)
	f.Open(testPlan(), "9876543210", plan.OperatorJio)

	if err := f.Pay(context.Background(), testSession()); err != nil {
		t.Fatalf("first Pay() error = %v", err)
	}
	if err := f.Pay(context.Background(), testSession()); err != ErrNotConfirming {
		t.Errorf("second Pay() error = %v, want ErrNotConfirming", err)
	}
	if len(backend.CreatedRecharges) != 1 {
		t.Errorf("double pay persisted twice")
	}
}

func TestConfirmationFlow_ReopenResets(t *testing.T) {
	backend := testutil.NewMockBackend()
	f, clock := newTestFlow(backend)
	f.Open(testPlan(), "9876543210", plan.OperatorJio)
	_ = f.Pay(context.Background(), testSession())
	clock.Advance(ProcessingDelay)
	if f.Step() != StepSuccess {
		t.Fatalf("setup: step = %v", f.Step())
	}

	other := testPlan()
	other.ID = "p2"
	f.Open(other, "9876543210", plan.OperatorJio)

	if f.Step() != StepConfirm {
		t.Errorf("step after reopen = %v, want CONFIRM", f.Step())
	}
	if f.ReferenceID() != "" {
		t.Errorf("stale reference id retained")
	}
	if f.Plan().ID != "p2" {
		t.Errorf("plan = %+v, want the newly selected one", f.Plan())
	}
}
