package cache

import (
	"testing"

	stderr "errors"

	tcerrors "github.com/tiercache/tiercache/pkg/errors"
)

func TestLRU_VictimOrder(t *testing.T) {
	t.Parallel()

	p := NewLRU[int]()
	p.Admit(1)
	p.Admit(2)
	p.Admit(3)

	// Touch 1 so the least recently used key becomes 2.
	p.Touch(1)

	victim, err := p.SelectVictim()
	if err != nil {
		t.Fatalf("SelectVictim() error = %v", err)
	}
	if victim != 2 {
		t.Errorf("victim = %d, want 2 (least recently used)", victim)
	}

	if p.Contains(2) {
		t.Error("victim should no longer be tracked")
	}
	if !p.Contains(1) || !p.Contains(3) {
		t.Error("remaining keys should still be tracked")
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
}

func TestLRU_TouchUntrackedIsNoop(t *testing.T) {
	t.Parallel()

	p := NewLRU[int]()
	p.Admit(1)
	p.Touch(99)

	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
	if p.Contains(99) {
		t.Error("touching an untracked key must not admit it")
	}
}

func TestLRU_ReadmitResetsPosition(t *testing.T) {
	t.Parallel()

	p := NewLRU[int]()
	p.Admit(1)
	p.Admit(2)
	p.Admit(3)

	// Re-admitting 1 makes it the most recent again.
	p.Admit(1)

	victim, err := p.SelectVictim()
	if err != nil {
		t.Fatalf("SelectVictim() error = %v", err)
	}
	if victim != 2 {
		t.Errorf("victim = %d, want 2", victim)
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (re-admission must not duplicate)", p.Len())
	}
}

func TestLRU_SelectVictimEmpty(t *testing.T) {
	t.Parallel()

	p := NewLRU[string]()
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

func TestLRU_DrainInRecencyOrder(t *testing.T) {
	t.Parallel()

	p := NewLRU[int]()
	for _, key := range []int{10, 20, 30, 40} {
		p.Admit(key)
	}
	p.Touch(10)
	p.Touch(30)

	// Expected eviction order: 20, 40, 10, 30.
	want := []int{20, 40, 10, 30}
	for i, expected := range want {
		victim, err := p.SelectVictim()
		if err != nil {
			t.Fatalf("SelectVictim() #%d error = %v", i, err)
		}
		if victim != expected {
			t.Errorf("victim #%d = %d, want %d", i, victim, expected)
		}
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after draining", p.Len())
	}
}
