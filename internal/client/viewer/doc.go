// Package viewer holds the browsing state of a diary session: the day
// cursor used while writing, the cursor over loaded entries, and the mode
// that selects between them. All values are immutable; moves return a new
// value.
package viewer
