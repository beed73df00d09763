package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/pagecomplete/internal/csvimport"
	"github.com/vmunix/pagecomplete/internal/tracker"
)

var (
	errInvalidSource   = errors.New("File format is invalid.")
	errInvalidEncoding = errors.New("Invalid encoding specified")
)

func newUploadCmd(opts *globalOptions) *cobra.Command {
	var (
		source    string
		delimiter string
		encoding  string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Parse a file and mark its page completions",
		Long: `Parse a file and execute it in one step.

Each data row names a course by idnumber and a user by username. The
course page activity is marked viewed for the user, who is enrolled as a
student first when needed.`,
		Example: `  pagecomplete upload --source=./completions.csv
  pagecomplete upload -s ./completions.csv -d semicolon -e ISO-8859-1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Upload running ...")

			if source == "" {
				return errInvalidSource
			}
			f, err := os.Open(source)
			if err != nil {
				return fmt.Errorf("%w: %w", errInvalidSource, err)
			}
			defer func() { _ = f.Close() }()

			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if !cmd.Flags().Changed("delimiter") {
				delimiter = a.cfg.Import.Delimiter
			}
			if !cmd.Flags().Changed("encoding") {
				encoding = a.cfg.Import.Encoding
			}
			if !csvimport.SupportedEncoding(encoding) {
				return fmt.Errorf("%w: %s", errInvalidEncoding, encoding)
			}
			mode, err := tracker.ParseMode(format)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			parsed, err := a.parser.Parse(ctx, f, csvimport.Options{
				Encoding:  encoding,
				Delimiter: delimiter,
				Mapping:   a.mapping(),
			})
			if err != nil {
				return fmt.Errorf("import file is invalid: %w", err)
			}

			// Execute from the stored rows, as a separate execute phase would.
			session, err := a.parser.Reopen(ctx, parsed.ImportID, a.mapping())
			if err != nil {
				return err
			}

			tr := tracker.New(out, mode)
			if _, err := a.importer.Execute(ctx, session, tr); err != nil {
				return err
			}
			return tr.Err()
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "CSV file")
	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", "comma",
		"CSV delimiter: "+strings.Join(csvimport.DelimiterNames(), ", "))
	cmd.Flags().StringVarP(&encoding, "encoding", "e", csvimport.DefaultEncoding, "CSV file encoding")
	cmd.Flags().StringVar(&format, "format", "plain", "Report format: plain, html, json, silent")
	return cmd
}
