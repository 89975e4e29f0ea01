// Package logging builds the slog logger the program shares. Because a
// full-screen terminal UI owns stdout, log output only ever goes to a
// file (or nowhere), in text or JSON form with ts/level/msg keys.
package logging
