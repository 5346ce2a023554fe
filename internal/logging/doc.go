// Package logging configures named loggers that write one log file per run.
//
// A Registry holds loggers by name. The Initializer derives a file path
// (./logs/<script>_<YYYYMMDD_HHMMSS>.log by default), creates missing
// directories, never reuses an existing file, and attaches a file sink and an
// optional console sink, each with its own threshold. Recoverable surprises
// along the way are reported as Advisory events instead of errors.
//
// Every sink renders records as
//
//	<timestamp> - <logger-name> - <LEVEL> - <message>
//
// and the Viewer reads that format back for the logexec logs command.
package logging
