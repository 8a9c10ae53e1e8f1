package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/remeenemee/pos-vodootliv/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "pitinflow",
		Short:         "Groundwater inflow into an excavation pit and pump selection",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.FileName, "configuration file (TOML)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(calculateCmd(a))
	rootCmd.AddCommand(validateCmd(a))
	rootCmd.AddCommand(reportCmd(a))
	rootCmd.AddCommand(methodCmd())
	rootCmd.AddCommand(initCmd(a))
	rootCmd.AddCommand(serveCmd(a))
	return rootCmd
}

func calculateCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "calculate [project-path]",
		Short: "Calculate the inflow and print the report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCalculate(cmd.OutOrStdout(), projectArg(args), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a pit project without writing a report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(cmd.OutOrStdout(), projectArg(args))
		},
	}
}

func reportCmd(a *app) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "report [project-path]",
		Short: "Export the calculation report as text, Markdown, JSON or XLSX",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReport(cmd.OutOrStdout(), projectArg(args), format, out)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "report format: text, md, json or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", `output file ("-" for stdout; default pit-inflow.<ext> in the configured output dir)`)
	return cmd
}

func methodCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "method",
		Short: "Print the calculation method",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMethod(cmd.OutOrStdout())
		},
	}
}

func initCmd(a *app) *cobra.Command {
	var perfect, force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a pit.yaml with the form defaults",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd.OutOrStdout(), projectArg(args), perfect, force)
		},
	}

	cmd.Flags().BoolVar(&perfect, "perfect", false, "start from a perfect pit with the default aquiclude elevation")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing pit.yaml")
	return cmd
}

func serveCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API for the input form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			return a.runServe(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port (overrides the config file)")
	return cmd
}

func projectArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
