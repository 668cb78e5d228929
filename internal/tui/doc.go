// Package tui provides terminal user interface components for forage-portfwd.
//
// This package uses the Bubble Tea framework for the interactive rule
// browser and lipgloss tables for the check and inspect summaries.
//
// # Rule Browser
//
// The browser lists every compiled forward grouped by interface and
// container:
//
//	result, err := tui.RunBrowser(report)
//	switch result.Action {
//	case tui.ActionSelect:
//	    // Print result.Entry.Forward.Line()
//	case tui.ActionQuit, tui.ActionNone:
//	    // Exit
//	}
//
// # Browser Features
//
//   - Forwards grouped under "interface / container" headers, auto-skipped
//   - Keyboard navigation (j/k or arrows) and fuzzy filtering with /
//   - d toggles a view of disabled forwards only
//   - Status icons: ✓ active, ⚠ port conflict, ✗ out of bounds
//
// # Tables
//
// Summary renders per-interface totals of a compile report; RuleTable
// renders rules parsed back from a generated file.
package tui
