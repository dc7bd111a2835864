package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/doxybind/doxybind/pkg/action/generate"
	"github.com/doxybind/doxybind/pkg/diag"
	"github.com/doxybind/doxybind/pkg/generator"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

func NewGenerateCommand() *cobra.Command {
	options := generator.NewOptions()

	var genCmd = &cobra.Command{
		Use:   "generate [xml-dir] [out-dir]",
		Short: "generate binding sources",
		Long:  "Generate python binding sources and a docstring table from a doxygen xml directory",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) > 0 {
				options.XMLDir = args[0]
			}
			if len(args) > 1 {
				options.OutDir = args[1]
			}

			result, err := generate.Generate(options)
			if err != nil {
				return err
			}

			data := make([][]string, 0, len(result.Files))
			for _, f := range result.Files {
				data = append(data, []string{f.Path, strconv.Itoa(f.Size)})
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"FILE", "SIZE"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetNoWhiteSpace(true)
			table.SetTablePadding("    ")
			table.AppendBulk(data)
			table.Render()

			if n := result.Diags.Count(diag.SeverityWarn); n > 0 {
				fmt.Fprintf(os.Stdout, "\n%d warning(s), see log output\n", n)
			}

			return nil
		},
	}
	genCmd.Flags().StringVarP(&options.Dialect, "dialect", "d", options.Dialect, "binding dialect (boost or pybind11)")
	genCmd.Flags().StringVarP(&options.Module, "module", "m", "", "top-level namespace to bind (inferred when omitted)")
	genCmd.Flags().BoolVar(&options.NamedIterators, "named-iterators", false, "extract named begin*/end* iterator pairs")
	genCmd.Flags().IntVar(&options.MaxDepth, "max-depth", options.MaxDepth, "maximum namespace nesting depth to bind")
	genCmd.Flags().StringVar(&options.LocationPrefix, "location-prefix", "", "source path prefix to strip (computed when omitted)")
	genCmd.Flags().StringVar(&options.DocstringsFile, "docstrings-file", options.DocstringsFile, "relative path of the generated docstring table")

	return genCmd
}
