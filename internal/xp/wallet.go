// Package xp tracks the learner's XP balance for the running process.
package xp

// Wallet holds an XP balance. Correct answers credit it and charged hint
// steps debit it. The balance never goes below zero.
type Wallet struct {
	balance    int
	perCorrect int

	// Earned and Spent accumulate since the last ResetSession.
	earned int
	spent  int
}

// NewWallet creates a wallet with a starting balance that credits
// perCorrect XP for each correct answer.
func NewWallet(start, perCorrect int) *Wallet {
	return &Wallet{balance: max(0, start), perCorrect: max(0, perCorrect)}
}

// Balance returns the current XP.
func (w *Wallet) Balance() int {
	return w.balance
}

// AwardCorrect credits one correct answer and returns the amount.
func (w *Wallet) AwardCorrect() int {
	w.balance += w.perCorrect
	w.earned += w.perCorrect
	return w.perCorrect
}

// Spend debits up to xp and returns the amount actually taken.
func (w *Wallet) Spend(xp int) int {
	if xp <= 0 {
		return 0
	}
	taken := min(xp, w.balance)
	w.balance -= taken
	w.spent += taken
	return taken
}

// SessionEarned returns XP credited since the last ResetSession.
func (w *Wallet) SessionEarned() int { return w.earned }

// SessionSpent returns XP debited since the last ResetSession.
func (w *Wallet) SessionSpent() int { return w.spent }

// ResetSession zeroes the per-session counters and keeps the balance.
func (w *Wallet) ResetSession() {
	w.earned = 0
	w.spent = 0
}
