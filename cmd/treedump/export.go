package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gorewood/treedump/internal/export"
	"github.com/gorewood/treedump/internal/output"
	"github.com/gorewood/treedump/internal/rules"
)

// runExport exports the working directory with the compiled-in rules.
// Unreadable files do not fail the command; only root or output failures do.
func runExport(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	root, err := os.Getwd()
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("resolving working directory", err)
		printer.Error(sysErr)
		return sysErr
	}

	printer.Title(fmt.Sprintf("--- Iniciando varredura em: %s ---", root))

	summary, err := export.Run(export.Options{
		Root:      root,
		Rules:     rules.Default(),
		SelfNames: selfNames(),
		Reporter:  printer,
		Logger:    newLogger(cmd),
	})
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("export failed", err)
		printer.Error(sysErr)
		return sysErr
	}

	return printSummary(printer, summary)
}

// printSummary prints the run summary, or the whole summary as JSON.
func printSummary(printer *output.Printer, summary *export.Summary) error {
	if printer.IsJSON() {
		return printer.WriteJSON(summary)
	}

	printer.Println()
	printer.Title("--- Concluído! ---")
	printer.KeyValue("Total de arquivos exportados", fmt.Sprint(summary.Count))
	printer.KeyValue("Arquivo gerado", summary.Output)
	return nil
}
