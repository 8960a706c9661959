package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/evanorsouw/thin-edge.io/internal/config"
	"github.com/evanorsouw/thin-edge.io/internal/steps"
	"github.com/evanorsouw/thin-edge.io/internal/system"
	"github.com/evanorsouw/thin-edge.io/internal/ui"
	"github.com/evanorsouw/thin-edge.io/pkg/version"
)

func newRootCmd() *cobra.Command {
	var (
		modeFlag  string
		userFlag  string
		groupFlag string
		makeDirs  bool
		debug     bool
		configDir string
	)

	rootCmd := &cobra.Command{
		Use:   "tedge-write [flags] <destination-path>",
		Short: "Write standard input to a file across a privilege boundary",
		Long: `A tee-like helper for writing to files the calling user has no write
permissions to, meant to be used with sudo and a rule that limits it to a
path prefix, e.g:

  tedge    ALL = (ALL) NOPASSWD: /usr/bin/tedge-write /etc/*

The file content is passed via standard input and written atomically: readers
of the destination see either the old content or the new content in full,
never a partial write.

The destination path must be absolute and canonical (no '.', '..' or doubled
separators), so a write cannot escape the directory the sudo rule confines it
to. If the destination does not exist it is created with the requested mode
and ownership; if it exists it is overwritten but keeps its mode and
ownership.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // We handle errors manually, but silence usage on error
		SilenceErrors: true, // We format errors ourselves for consistent output
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configDir)
			if err != nil {
				return err
			}
			applyColorMode(cfg.Log.Color)

			out := ui.NewWithWriter(cmd.ErrOrStderr())
			out.SetDebug(debug || cfg.Log.Debug)

			writer := steps.NewFileWrite(system.NewFileSystem(), system.OSResolver{}, out)
			req := &steps.WriteRequest{
				DestinationPath: args[0],
				Mode:            modeFlag,
				User:            userFlag,
				Group:           groupFlag,
				MakeDirs:        makeDirs,
			}
			return writer.Run(cmd.InOrStdin(), req)
		},
	}

	rootCmd.Flags().StringVar(&modeFlag, "mode", "", "Permission mode for the file, in octal form (applied only if the file is created)")
	rootCmd.Flags().StringVar(&userFlag, "user", "", "User which will become the new owner of the file (and of the paths created with --makedirs)")
	rootCmd.Flags().StringVar(&groupFlag, "group", "", "Group which will become the new owner of the file (and of the paths created with --makedirs)")
	rootCmd.Flags().BoolVar(&makeDirs, "makedirs", false, "Create missing parent directories with permission 0755 and owner as specified by --user and --group")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output on stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", config.DefaultDir, "Directory containing the optional "+config.FileName)

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version.Info())
		},
	}
}

// applyColorMode maps the config's log.color setting onto the global color
// switch. "auto" keeps the library's tty detection.
func applyColorMode(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		ui.New().Errorf("%v", err)
		os.Exit(1)
	}
}
