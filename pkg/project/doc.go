// Package project holds the project entry domain: the element templates the
// page is built from, the validated Draft, list items, and the list that
// owns them.
package project
