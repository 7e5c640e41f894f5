package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/imagerelay/api/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Show the provider table in fallback order",
	Args:  cobra.NoArgs,
	RunE:  runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	relay, err := newRelay(cfg, zap.NewNop())
	if err != nil {
		return err
	}

	registry := relay.Registry()
	def := registry.Default()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tENABLED\tDEFAULT\tMODELS")
	for _, p := range registry.Providers() {
		fmt.Fprintf(w, "%s\t%t\t%t\t%s\n", p.Name, p.Enabled(), p == def, strings.Join(p.Models, ", "))
	}
	return w.Flush()
}
