package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"orgchart/internal/service"

	"github.com/spf13/cobra"
)

type reportOptions struct {
	node   string
	format string
}

// NewReportCommand 创建 report 命令：加载配置中的组织树，输出结构和汇总。
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the structure, budget and headcount of the configured org tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "text" && opts.format != "json" {
				return fmt.Errorf("invalid format %q: must be text or json", opts.format)
			}
			a, err := openApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()
			return writeReport(cmd.OutOrStdout(), a.OrgService, opts)
		},
	}

	cmd.Flags().StringVar(&opts.node, "node", "", "report on the first node with this name (default: the root)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format (text|json)")
	return cmd
}

func writeReport(w io.Writer, svc service.OrgService, opts *reportOptions) error {
	if opts.format == "json" {
		tree, err := svc.Tree(opts.node)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tree)
	}

	summary, err := svc.Summary(opts.node)
	if err != nil {
		return err
	}
	if err := svc.Details(opts.node, w); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Budget: %d\nHeadcount: %d\n", summary.Budget, summary.Headcount)
	return err
}
