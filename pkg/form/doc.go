// Package form implements the project input controller: it mounts the input
// form and the project list under a page root, handles submit events, and
// turns valid input into list entries.
package form
