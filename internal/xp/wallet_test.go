package xp

import "testing"

func TestWallet_AwardAndSpend(t *testing.T) {
	w := NewWallet(20, 10)

	if got := w.AwardCorrect(); got != 10 {
		t.Errorf("AwardCorrect() = %d, want 10", got)
	}
	if got := w.Spend(5); got != 5 {
		t.Errorf("Spend(5) = %d, want 5", got)
	}
	if got := w.Balance(); got != 25 {
		t.Errorf("Balance() = %d, want 25", got)
	}
	if w.SessionEarned() != 10 || w.SessionSpent() != 5 {
		t.Errorf("session earned/spent = %d/%d, want 10/5", w.SessionEarned(), w.SessionSpent())
	}
}

func TestWallet_SpendFloorsAtZero(t *testing.T) {
	w := NewWallet(7, 10)

	if got := w.Spend(10); got != 7 {
		t.Errorf("Spend(10) = %d, want 7", got)
	}
	if got := w.Balance(); got != 0 {
		t.Errorf("Balance() = %d, want 0", got)
	}
	if got := w.Spend(5); got != 0 {
		t.Errorf("Spend on empty wallet = %d, want 0", got)
	}
	if got := w.Spend(-3); got != 0 {
		t.Errorf("Spend(-3) = %d, want 0", got)
	}
}

func TestWallet_ResetSession(t *testing.T) {
	w := NewWallet(0, 10)
	w.AwardCorrect()
	w.Spend(5)

	w.ResetSession()

	if w.SessionEarned() != 0 || w.SessionSpent() != 0 {
		t.Errorf("after reset earned/spent = %d/%d, want 0/0", w.SessionEarned(), w.SessionSpent())
	}
	if got := w.Balance(); got != 5 {
		t.Errorf("Balance() = %d, want 5", got)
	}
}

func TestNewWallet_ClampsNegative(t *testing.T) {
	w := NewWallet(-10, -1)
	if w.Balance() != 0 {
		t.Errorf("Balance() = %d, want 0", w.Balance())
	}
	if got := w.AwardCorrect(); got != 0 {
		t.Errorf("AwardCorrect() = %d, want 0", got)
	}
}
