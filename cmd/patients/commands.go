package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"patients/internal/audit"
	"patients/internal/patient"
	"patients/internal/patient/store"
	"patients/internal/platform/config"
	"patients/internal/platform/logger"
	dErrors "patients/pkg/domain-errors"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgBlue, color.Bold)
)

type rootOptions struct {
	noColor     bool
	showMetrics bool
	app         *app
}

// newRootCmd builds the command tree. The app created for the invocation is left
// in opts so the caller can close it whether or not the command succeeded.
func newRootCmd(opts *rootOptions) *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "patients",
		Short:         "Record and list validated patient records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.noColor {
				color.NoColor = true
			}
			cfg, err := config.Load(v)
			if err != nil {
				return report(cmd, "configuration", err)
			}
			log := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Level())
			a, err := newApp(cfg, log)
			if err != nil {
				return report(cmd, "audit logs", err)
			}
			opts.app = a
			log.Debug("patients initialized", "file", cfg.File, "success_log", cfg.SuccessLog, "error_log", cfg.ErrorLog)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !opts.showMetrics {
				return nil
			}
			return printMetrics(cmd.OutOrStdout(), opts.app)
		},
	}

	flags := root.PersistentFlags()
	flags.String("file", config.DefaultFile, "patient store file")
	flags.String("success-log", config.DefaultSuccessLog, "audit log for accepted operations")
	flags.String("error-log", config.DefaultErrorLog, "audit log for rejected operations")
	flags.String("log-level", config.DefaultLogLevel, "application log level (debug, info, warn, error)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&opts.showMetrics, "metrics", false, "print counters after the command")
	_ = v.BindPFlag("file", flags.Lookup("file"))
	_ = v.BindPFlag("success_log", flags.Lookup("success-log"))
	_ = v.BindPFlag("error_log", flags.Lookup("error-log"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))

	root.AddCommand(newAddCmd(opts), newListCmd(opts))
	return root
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "add FIRST LAST BIRTH PHONE DOCTYPE DOCID",
		Short: "Validate a patient and append it to the store",
		Long: `Validate the six fields of a patient, print the normalized record and
append it to the store. Every accepted and rejected field is written to the
audit logs.`,
		Args: cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			out := cmd.OutOrStdout()
			defer func() {
				if verbose {
					printTrail(out, a.trail)
				}
			}()

			p, err := patient.Create(a.sink, args[0], args[1], args[2], args[3], args[4], args[5])
			if err != nil {
				return reject(cmd, a, "rejected", err)
			}
			if err := a.store.Save(cmd.Context(), p); err != nil {
				return reject(cmd, a, "not saved", err)
			}
			successColor.Fprint(out, "saved ")
			fmt.Fprintln(out, p.String())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the audit trail of this run")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print stored patients, re-validating each line",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			it := a.store.Open()
			if cmd.Flags().Changed("limit") {
				var err error
				if it, err = a.store.Limit(limit); err != nil {
					return reject(cmd, a, "invalid limit", err)
				}
			}
			return listPatients(cmd.Context(), cmd.OutOrStdout(), it)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "print at most n patients")
	return cmd
}

func listPatients(ctx context.Context, out io.Writer, it *store.Iterator) error {
	if ctx == nil {
		ctx = context.Background()
	}
	headerColor.Fprintln(out, strings.Join(patient.FieldNames(), ", "))
	count := 0
	for p, err := range it.All(ctx) {
		if err != nil {
			errorColor.Fprint(out, "corrupted record: ")
			fmt.Fprintln(out, err)
			return err
		}
		fmt.Fprintln(out, p.String())
		count++
	}
	fmt.Fprintf(out, "%d patient(s)\n", count)
	return nil
}

func reject(cmd *cobra.Command, a *app, label string, err error) error {
	a.log.Debug(label, "code", string(dErrors.CodeOf(err)), "error", err)
	return report(cmd, label, err)
}

// reportedError marks an error already printed to the user.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

func report(cmd *cobra.Command, label string, err error) error {
	errorColor.Fprint(cmd.ErrOrStderr(), label+": ")
	fmt.Fprintln(cmd.ErrOrStderr(), err)
	return reportedError{err}
}

func printTrail(out io.Writer, trail *audit.Publisher) {
	events, err := trail.List()
	if err != nil {
		return
	}
	for _, e := range events {
		c := successColor
		if e.Channel == audit.ChannelError {
			c = errorColor
		}
		c.Fprintf(out, "%-7s ", e.Channel)
		fmt.Fprintf(out, "%-16s %s\n", e.Subject, e.Message)
	}
}

// printMetrics writes every counter gathered from the app's registry.
func printMetrics(out io.Writer, a *app) error {
	if a == nil {
		return nil
	}
	families, err := a.registry.Gather()
	if err != nil {
		return errors.Join(errors.New("failed to gather metrics"), err)
	}
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	return nil
}
