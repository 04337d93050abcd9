// Package programs serves the program catalog as JSON for form inputs and
// API clients.
//
// The handler responds to GET and HEAD. With a code parameter it resolves
// that one program, so clients can tell a catalog entry from the "Unknown
// Program" fallback through the known flag. Without one, q matches codes and
// names case-insensitively with prefix matches first, and limit caps the
// result count.
package programs
