// Package exports keeps a local log of report uploads in SQLite so the user
// can find the object key of an earlier export. A row is written as pending
// before the upload starts and moved to uploaded or failed afterwards.
package exports
