// Package cli is the interactive RentKeeper client.
//
// App wires local storage, the store client and the lifecycle manager, then
// runs a read-eval-print loop. Each input line is dispatched through a cobra
// command tree (see rootCmd). Store failures are logged with their kind and
// shown as a short notice; they never end the session.
//
// A stored session is resumed on start, otherwise the user logs in. While a
// session is open the lifecycle manager keeps overdue counts fresh and
// resets payments at the start of every month.
package cli
