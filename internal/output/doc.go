// Package output provides structured output handling for the treedump CLI.
//
// This package handles both human-readable and JSON output formats, so a run
// can be read by a person at a terminal or parsed by a script.
//
// # Printer
//
// The Printer is the primary interface for command output. It handles format
// switching based on the --json flag and TTY detection:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//
//	// Per-file progress (human mode only)
//	printer.Exported("src/Main.java")             // [OK] src/Main.java
//	printer.Failed("secret.txt", err)             // [ERRO] secret.txt: <reason>
//
//	// Errors and warnings (stderr in human mode)
//	printer.Error(err)
//	printer.Warn("skipping unreadable directory %s: %v", dir, err)
//
// Printer implements export.Reporter, so it can be passed straight to a run.
//
// # JSON Mode
//
// When JSON mode is enabled (via --json flag), per-file lines are suppressed
// and commands print a single structured document:
//
//	// Success: {"count": N, "output": "...", "files": [...], ...}
//	// Error: {"error": "message", "code": N}
//
// # Styling
//
// For human-readable output, the package provides lipgloss-based styling
// that automatically disables when output is piped or --color never is set.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: Success, even if some files were skipped
//	output.ExitUserError   // 1: User error (bad flags or arguments)
//	output.ExitSystemError // 2: System error (root unreadable, output not writable)
package output
