// Package services contains the diary workflows of the daybook client:
// submitting an entry, deleting an entry together with its image, and the
// read-only listings shown by the REPL.
package services
