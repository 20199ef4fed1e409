package cli

import (
	"errors"
	"fmt"

	"github.com/lightprotocol/light-mcp/internal/installer"
	"github.com/spf13/cobra"
)

// NewInstallCmd creates the 'install' command
func NewInstallCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install light-mcp in Cursor",
		Long: `Add a light-mcp entry to the Cursor MCP configuration (~/.cursor/mcp.json).
Other entries are kept and the previous file is saved as mcp.json.bak.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := installer.DefaultEntry()
			if err != nil {
				return err
			}

			out := cmd.ErrOrStderr()
			fmt.Fprintln(out, "Installing Light MCP for ZK Compression documentation...")

			inst := installer.New(opts.cfg.CursorConfigPath, opts.log)
			if installed, err := inst.Installed(); err == nil && installed {
				fmt.Fprintln(out, "Existing Light MCP entry found, updating it.")
			}
			if err := inst.Install(entry); err != nil {
				return fmt.Errorf("failed to install: %w", err)
			}

			fmt.Fprintln(out, "✓ Light MCP installed successfully.")
			fmt.Fprintf(out, "Configuration saved to: %s\n", inst.Path())
			fmt.Fprintln(out, "Please restart Cursor to load the MCP server.")
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.cfg.CursorConfigPath, "cursor-config", opts.cfg.CursorConfigPath, "Path of the Cursor MCP configuration (env LIGHT_MCP_CURSOR_CONFIG)")
	return cmd
}

// NewUninstallCmd creates the 'uninstall' command
func NewUninstallCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove light-mcp from Cursor",
		Long:  `Remove the light-mcp entry from the Cursor MCP configuration.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.ErrOrStderr()
			fmt.Fprintln(out, "Uninstalling Light MCP...")

			err := installer.New(opts.cfg.CursorConfigPath, opts.log).Uninstall()
			switch {
			case errors.Is(err, installer.ErrNoConfig):
				fmt.Fprintln(out, "No Cursor MCP configuration found.")
				return nil
			case errors.Is(err, installer.ErrNotInstalled):
				fmt.Fprintln(out, "Light MCP was not found in configuration.")
				return nil
			case err != nil:
				return fmt.Errorf("failed to uninstall: %w", err)
			}

			fmt.Fprintln(out, "✓ Light MCP removed from Cursor configuration.")
			fmt.Fprintln(out, "Please restart Cursor to apply changes.")
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.cfg.CursorConfigPath, "cursor-config", opts.cfg.CursorConfigPath, "Path of the Cursor MCP configuration (env LIGHT_MCP_CURSOR_CONFIG)")
	return cmd
}
