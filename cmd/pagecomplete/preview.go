package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/pagecomplete/internal/csvimport"
)

type previewResult struct {
	ImportID  int64                   `json:"import_id"`
	Headers   []string                `json:"headers"`
	Records   int                     `json:"records"`
	Suggested csvimport.ColumnMapping `json:"suggested_mapping"`
}

func newPreviewCmd(opts *globalOptions) *cobra.Command {
	var delimiter, encoding string

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Parse a file and store it for a later execute",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("%w: %w", errInvalidSource, err)
			}
			defer func() { _ = f.Close() }()

			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if delimiter == "" {
				delimiter = a.cfg.Import.Delimiter
			}
			if encoding == "" {
				encoding = a.cfg.Import.Encoding
			}

			s, err := a.parser.Parse(cmd.Context(), f, csvimport.Options{
				Encoding:  encoding,
				Delimiter: delimiter,
				Mapping:   a.mapping(),
			})
			if err != nil {
				return fmt.Errorf("import file is invalid: %w", err)
			}

			res := previewResult{
				ImportID:  s.ImportID,
				Headers:   s.Headers(),
				Records:   s.Len(),
				Suggested: csvimport.SuggestMapping(s.Headers()),
			}
			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, res)
			}

			fmt.Fprintf(out, "Import ID: %d\n", res.ImportID)
			fmt.Fprintf(out, "Records:   %d\n", res.Records)
			fmt.Fprintf(out, "Headers:   %s\n", strings.Join(res.Headers, ", "))
			fmt.Fprintf(out, "Suggested mapping: %s=%s %s=%s\n",
				csvimport.ColumnCourseIDNumber, columnLabel(res.Suggested.CourseIDNumber),
				csvimport.ColumnUserUsername, columnLabel(res.Suggested.UserUsername))
			fmt.Fprintf(out, "\nRun: pagecomplete execute %d --course-col %d --user-col %d\n",
				res.ImportID, res.Suggested.CourseIDNumber, res.Suggested.UserUsername)
			return nil
		},
	}

	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", "", "CSV delimiter (default from config)")
	cmd.Flags().StringVarP(&encoding, "encoding", "e", "", "CSV file encoding (default from config)")
	return cmd
}
