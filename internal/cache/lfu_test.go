package cache

import (
	"testing"

	stderr "errors"

	tcerrors "github.com/tiercache/tiercache/pkg/errors"
)

func TestLFU_TieBreakByAdmissionOrder(t *testing.T) {
	t.Parallel()

	p := NewLFU[string]()
	p.Admit("A")
	p.Admit("B")

	// Both have frequency 1; the earlier admission loses.
	victim, err := p.SelectVictim()
	if err != nil {
		t.Fatalf("SelectVictim() error = %v", err)
	}
	if victim != "A" {
		t.Errorf("victim = %q, want %q (earliest admission)", victim, "A")
	}
}

func TestLFU_TouchIncrementsFrequency(t *testing.T) {
	t.Parallel()

	p := NewLFU[string]()
	p.Admit("A")
	p.Admit("B")
	p.Touch("A")

	victim, err := p.SelectVictim()
	if err != nil {
		t.Fatalf("SelectVictim() error = %v", err)
	}
	if victim != "B" {
		t.Errorf("victim = %q, want %q (lower frequency)", victim, "B")
	}
}

func TestLFU_TouchDoesNotRefreshAdmissionTime(t *testing.T) {
	t.Parallel()

	p := NewLFU[string]()
	p.Admit("A")
	p.Admit("B")

	// Equal frequencies after one touch each. B was touched last, but
	// ties are broken by admission order, never by last access.
	p.Touch("A")
	p.Touch("B")

	victim, err := p.SelectVictim()
	if err != nil {
		t.Fatalf("SelectVictim() error = %v", err)
	}
	if victim != "A" {
		t.Errorf("victim = %q, want %q (admission order decides ties)", victim, "A")
	}
}

func TestLFU_ReadmitResetsMetadata(t *testing.T) {
	t.Parallel()

	p := NewLFU[string]()
	p.Admit("A")
	p.Touch("A")
	p.Touch("A") // frequency 3
	p.Admit("B") // frequency 1

	// Re-admitting A resets its frequency to 1 and stamps a fresh tick,
	// so B becomes both tied on frequency and older.
	p.Admit("A")

	victim, err := p.SelectVictim()
	if err != nil {
		t.Fatalf("SelectVictim() error = %v", err)
	}
	if victim != "B" {
		t.Errorf("victim = %q, want %q (A's metadata was reset)", victim, "B")
	}
}

func TestLFU_TouchUntrackedIsNoop(t *testing.T) {
	t.Parallel()

	p := NewLFU[int]()
	p.Touch(7)

	if p.Contains(7) {
		t.Error("touching an untracked key must not admit it")
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
}

func TestLFU_SelectVictimEmpty(t *testing.T) {
	t.Parallel()

	p := NewLFU[int]()
	_, err := p.SelectVictim()
	if err == nil {
		t.Fatal("SelectVictim() on empty policy should fail")
	}

	var tcErr *tcerrors.TierCacheError
	if !stderr.As(err, &tcErr) {
		t.Fatalf("error type = %T, want *TierCacheError", err)
	}
	if tcErr.Code != tcerrors.ErrCodeEmptyPolicy {
		t.Errorf("error code = %s, want %s", tcErr.Code, tcerrors.ErrCodeEmptyPolicy)
	}
}

func TestLFU_FrequencyBeatsRecency(t *testing.T) {
	t.Parallel()

	p := NewLFU[int]()
	p.Admit(1)
	p.Touch(1)
	p.Touch(1)
	p.Admit(2)
	p.Touch(2)
	p.Admit(3) // frequency 1, newest

	victim, err := p.SelectVictim()
	if err != nil {
		t.Fatalf("SelectVictim() error = %v", err)
	}
	if victim != 3 {
		t.Errorf("victim = %d, want 3 (lowest frequency wins regardless of age)", victim)
	}
}
