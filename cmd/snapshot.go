package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/doxybind/doxybind/pkg/action/snapshot"
	"github.com/doxybind/doxybind/pkg/generator"
)

func init() {
	rootCmd.AddCommand(NewSnapshotCommand())
}

func NewSnapshotCommand() *cobra.Command {
	var manifestPath string

	var snapshotCmd = &cobra.Command{
		Use:   "snapshot",
		Short: "manage docstring table snapshots",
	}
	snapshotCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "doxybind.manifest.yaml", "manifest file tracking snapshots")

	options := generator.NewOptions()
	var name, version string

	var createCmd = &cobra.Command{
		Use:   "create [xml-dir] [out-dir]",
		Short: "generate and record a snapshot",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) > 0 {
				options.XMLDir = args[0]
			}
			if len(args) > 1 {
				options.OutDir = args[1]
			}
			file, err := snapshot.Generate(options, manifestPath, name, version)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "recorded %s %s -> %s\n", name, version, file)
			return nil
		},
	}
	createCmd.Flags().StringVarP(&name, "name", "n", "", "snapshot name")
	createCmd.Flags().StringVarP(&version, "snapshot-version", "v", "", "snapshot version")
	createCmd.Flags().StringVarP(&options.Dialect, "dialect", "d", options.Dialect, "binding dialect (boost or pybind11)")
	createCmd.Flags().StringVarP(&options.Module, "module", "m", "", "top-level namespace to bind (inferred when omitted)")
	createCmd.Flags().BoolVar(&options.NamedIterators, "named-iterators", false, "extract named begin*/end* iterator pairs")
	createCmd.Flags().IntVar(&options.MaxDepth, "max-depth", options.MaxDepth, "maximum namespace nesting depth to bind")
	createCmd.Flags().StringVar(&options.LocationPrefix, "location-prefix", "", "source path prefix to strip (computed when omitted)")
	createCmd.Flags().StringVar(&options.DocstringsFile, "docstrings-file", options.DocstringsFile, "relative path of the generated docstring table")

	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "list recorded snapshots",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			m, err := snapshot.List(manifestPath)
			if err != nil {
				return err
			}

			data := make([][]string, 0, len(m.Snapshots))
			for _, s := range m.Snapshots {
				current := ""
				if s.Version == m.CurrentVersion {
					current = "*"
				}
				data = append(data, []string{s.Name, s.Version, s.Dialect, s.File, current})
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"NAME", "VERSION", "DIALECT", "FILE", "CURRENT"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetNoWhiteSpace(true)
			table.SetTablePadding("    ")
			table.AppendBulk(data)
			table.Render()
			return nil
		},
	}

	var diffCmd = &cobra.Command{
		Use:   "diff",
		Short: "diff the current snapshot against the previous one",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			d, err := snapshot.DiffCurrentWithPrevious(manifestPath)
			if err != nil {
				return err
			}
			if d == "" {
				fmt.Fprintln(os.Stdout, "no differences")
				return nil
			}
			fmt.Fprint(os.Stdout, d)
			return nil
		},
	}

	snapshotCmd.AddCommand(createCmd, listCmd, diffCmd)
	return snapshotCmd
}
