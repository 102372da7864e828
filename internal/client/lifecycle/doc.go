// Package lifecycle keeps one user's property set current for the length of
// an authenticated session.
//
// On Start the Manager loads the set from the store, runs the stale-payment
// reconciliation, stamps overdue days and starts two timers: a daily
// refresher that recomputes overdue days and a scheduler that resets every
// paid flag at the first midnight of each month. Stop cancels both.
//
// The set is published as an immutable snapshot behind an atomic pointer.
// Writers are serialized and swap in a whole new snapshot, so readers never
// see a half-applied change.
package lifecycle
