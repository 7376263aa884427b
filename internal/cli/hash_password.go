package cli

import (
	"fmt"

	"orgchart/internal/service"

	"github.com/spf13/cobra"
)

// NewHashPasswordCommand 创建 hash-password 命令，输出可以直接填入 auth.admin_password_hash 的 bcrypt 哈希。
func NewHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash of a password for auth.admin_password_hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := service.HashPassword(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
}
