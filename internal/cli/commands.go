package cli

import (
	"io"

	"github.com/spf13/cobra"

	"osmclean/internal/audit"
	"osmclean/internal/logger"
	"osmclean/internal/pipeline"
)

func cleanCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "clean <in.osm> <out.osm>",
		Short: "Write a copy of an OSM file with cleaned address tags",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			log := e.log.With("command", "clean", "input", args[0])
			reporter := logger.NewChangeReporter(log)

			proc, err := e.processor(reporter)
			if err != nil {
				return err
			}

			var stats pipeline.Stats

			digest, err := e.withFiles(args[0], args[1], func(in io.Reader, out io.Writer) error {
				var runErr error
				stats, runErr = pipeline.Clean(in, out, pipeline.CleanOptions{
					Processor: proc,
					Kinds:     e.cfg.Cleaning.PassthroughKinds,
				})

				return runErr
			})
			if err != nil {
				return err
			}

			log.Info("clean finished",
				"output", args[1],
				"sha256", digest.Hash(),
				"bytes", digest.Bytes(),
				"read", stats.Read,
				"written", stats.Written,
				"changes", reporter.Changes(),
				"warnings", reporter.Warnings(),
			)

			return nil
		},
	}
}

func shapeCmd(e *env) *cobra.Command {
	var pretty, noClean bool

	cmd := &cobra.Command{
		Use:   "shape <in.osm> <out.jsonl>",
		Short: "Convert the nodes and ways of an OSM file to JSON records",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := e.log.With("command", "shape", "input", args[0])
			reporter := logger.NewChangeReporter(log)

			if !cmd.Flags().Changed("pretty") {
				pretty = e.cfg.Output.PrettyPrint
			}

			opts := pipeline.ShapeOptions{Pretty: pretty}

			if !noClean {
				proc, err := e.processor(reporter)
				if err != nil {
					return err
				}

				opts.Processor = proc
			}

			var stats pipeline.Stats

			digest, err := e.withFiles(args[0], args[1], func(in io.Reader, out io.Writer) error {
				var runErr error
				stats, runErr = pipeline.Shape(in, out, opts)

				return runErr
			})
			if err != nil {
				return err
			}

			log.Info("shape finished",
				"output", args[1],
				"sha256", digest.Hash(),
				"bytes", digest.Bytes(),
				"read", stats.Read,
				"records", stats.Written,
				"changes", reporter.Changes(),
				"warnings", reporter.Warnings(),
			)

			return nil
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent each JSON record")
	cmd.Flags().BoolVar(&noClean, "no-clean", false, "Shape the raw tags without cleaning them")

	return cmd
}

func auditCmd(e *env) *cobra.Command {
	var (
		only   []string
		format string
	)

	cmd := &cobra.Command{
		Use:   "audit <in.osm>",
		Short: "Report irregular street names, postcodes, coordinates and tag counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = e.cfg.Output.Format
			}

			var rep *audit.Report

			err := e.withInput(args[0], func(in io.Reader) error {
				var runErr error
				rep, runErr = audit.Run(in, only...)

				return runErr
			})
			if err != nil {
				return err
			}

			e.log.Debug("audit finished", "input", args[0], "audits", only)

			return audit.Render(e.app.Stdout, rep, format)
		},
	}

	cmd.Flags().StringSliceVar(&only, "only", nil, "Audits to run: street, postcode, position, tags (default all)")
	cmd.Flags().StringVar(&format, "format", audit.FormatTable, "Report format: table or yaml")

	return cmd
}

func sampleCmd(e *env) *cobra.Command {
	var every int

	cmd := &cobra.Command{
		Use:   "sample <in.osm> <out.osm>",
		Short: "Copy every nth node, way and relation into a smaller OSM file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("every") {
				every = e.cfg.Sample.Every
			}

			var stats pipeline.Stats

			digest, err := e.withFiles(args[0], args[1], func(in io.Reader, out io.Writer) error {
				var runErr error
				stats, runErr = pipeline.Sample(in, out, every)

				return runErr
			})
			if err != nil {
				return err
			}

			e.log.Info("sample finished",
				"input", args[0],
				"output", args[1],
				"every", every,
				"sha256", digest.Hash(),
				"read", stats.Read,
				"written", stats.Written,
			)

			return nil
		},
	}

	cmd.Flags().IntVar(&every, "every", 80, "Keep one element out of this many")

	return cmd
}
