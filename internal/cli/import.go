package cli

import (
	"errors"
	"fmt"
	"os"

	"orgchart/internal/seed"

	"github.com/spf13/cobra"
)

// NewImportCommand 创建 import 命令：用 YAML 种子文件整体替换数据库中的组织树。
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the stored org tree with the contents of a YAML seed file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := seed.LoadFile(file)
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()
			if a.DB == nil {
				return errors.New("database.driver is not configured, nothing to import into")
			}
			if err := a.OrgService.Replace(root); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %s: %d members, budget %d\n",
				root.Name(), root.EmployeeCount(), root.Budget())
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML seed file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// NewExportCommand 创建 export 命令：把当前组织树导出为 YAML 种子文件。
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current org tree as a YAML seed file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()

			data, err := seed.Marshal(a.OrgService.Root())
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(out, data, 0644)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")
	return cmd
}
