package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/qualityrs/internal/auth"
	"github.com/jask/qualityrs/internal/config"
)

// NewHashPasswordCmd creates the hash-password command. The password is
// read from the first line of stdin so it stays out of shell history.
func NewHashPasswordCmd() *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Hash the dashboard password read from stdin for auth.password_hash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("reading password: %w", err)
			}
			pw := strings.TrimRight(line, "\r\n")
			if pw == "" {
				return fmt.Errorf("empty password")
			}
			hash, err := auth.Hash(pw)
			if err != nil {
				return err
			}
			if !save {
				fmt.Fprintln(cmd.OutOrStdout(), hash)
				return nil
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.Auth.PasswordHash = hash
			cfg.Auth.Password = ""
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "auth.password_hash saved to %s\n", config.Path())
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "write the hash into the config file")
	return cmd
}
