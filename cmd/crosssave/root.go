// Package crosssave wires the workflow packages into a cobra CLI. It
// is deliberately thin: path resolution and output rendering live here,
// every filesystem decision lives in the workflows.
package crosssave

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/internal/version"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/commands/linksaves"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/commands/migrate"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/commands/restore"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/commands/status"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/detect"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/logging"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/platform"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/style"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/types"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/watch"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "crosssave",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			style.Setup()
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newLinkCmd())
	rootCmd.AddCommand(newRestoreCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newDetectCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newSink returns a LogSink that renders tagged workflow lines to the
// command's stdout.
func newSink(cmd *cobra.Command) types.LogSink {
	return func(line string) {
		fmt.Fprintln(cmd.OutOrStdout(), style.RenderLogLine(line))
	}
}

func newMigrateCmd() *cobra.Command {
	var saveDir, cloudRoot string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: MsgMigrateShort,
		Long:  MsgMigrateLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv()
			if err != nil {
				return err
			}
			save, err := env.resolveSaveDir(saveDir)
			if err != nil {
				return err
			}
			target, err := env.resolveCloudTarget(cloudRoot)
			if err != nil {
				return err
			}

			result := migrate.Run(migrate.Options{
				SaveDir:     save,
				CloudTarget: target,
				Log:         newSink(cmd),
			})
			if !result.Success {
				return result.Err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&saveDir, "save-dir", "", "Save directory (default: config, then auto-detect)")
	cmd.Flags().StringVar(&cloudRoot, "cloud-root", "", "Cloud-synced folder the saves are copied into")
	return cmd
}

func newLinkCmd() *cobra.Command {
	var saveDir, cloudRoot string

	cmd := &cobra.Command{
		Use:   "link",
		Short: MsgLinkShort,
		Long:  MsgLinkLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv()
			if err != nil {
				return err
			}
			save, err := env.resolveSaveDir(saveDir)
			if err != nil {
				return err
			}
			target, err := env.resolveCloudTarget(cloudRoot)
			if err != nil {
				return err
			}

			result := linksaves.Run(linksaves.Options{
				SaveDir:     save,
				CloudTarget: target,
				BackupRoot:  env.pth.BackupRoot(),
				Log:         newSink(cmd),
			})
			if !result.Success {
				return result.Err
			}
			fmt.Fprintln(cmd.OutOrStdout(), style.MutedStyle.Sprint("Backup kept at: "+result.BackupPath))
			return nil
		},
	}

	cmd.Flags().StringVar(&saveDir, "save-dir", "", "Save directory (default: config, then auto-detect)")
	cmd.Flags().StringVar(&cloudRoot, "cloud-root", "", "Cloud-synced folder the saves move into")
	return cmd
}

func newRestoreCmd() *cobra.Command {
	var saveDir, backupPath string

	cmd := &cobra.Command{
		Use:   "restore",
		Short: MsgRestoreShort,
		Long:  MsgRestoreLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv()
			if err != nil {
				return err
			}
			save, err := env.resolveSaveDir(saveDir)
			if err != nil {
				return err
			}

			result := restore.Run(restore.Options{
				SaveDir:    save,
				BackupPath: backupPath,
				BackupRoot: env.pth.BackupRoot(),
				Log:        newSink(cmd),
			})
			if !result.Success {
				return result.Err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&saveDir, "save-dir", "", "Save directory (default: config, then auto-detect)")
	cmd.Flags().StringVar(&backupPath, "backup", "", "Backup directory to restore from (default: most recent)")
	return cmd
}

func newStatusCmd() *cobra.Command {
	var saveDir string

	cmd := &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		Long:  MsgStatusLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv()
			if err != nil {
				return err
			}
			save, err := env.resolveSaveDir(saveDir)
			if err != nil {
				return err
			}

			report, err := status.Run(status.Options{
				SaveDir:    save,
				BackupRoot: env.pth.BackupRoot(),
			})
			if err != nil {
				return err
			}
			renderStatus(cmd, report)
			return nil
		},
	}

	cmd.Flags().StringVar(&saveDir, "save-dir", "", "Save directory (default: config, then auto-detect)")
	return cmd
}

func renderStatus(cmd *cobra.Command, report *status.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, style.TitleStyle.Sprint("Save directory"))
	fmt.Fprintln(out, style.Indent(report.SaveDir, 1))

	switch report.State {
	case status.StateLinked:
		fmt.Fprintln(out, style.Indent(style.SuccessStyle.Sprint("linked -> ")+report.LinkTarget, 1))
	case status.StateDirectory:
		fmt.Fprintln(out, style.Indent("real directory (not linked)", 1))
	default:
		fmt.Fprintln(out, style.Indent(style.ErrorStyle.Sprint("missing"), 1))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, style.TitleStyle.Sprint("Backups"))
	if len(report.Backups) == 0 {
		fmt.Fprintln(out, style.Indent(style.MutedStyle.Sprint("none"), 1))
		return
	}
	for _, rec := range report.Backups {
		line := fmt.Sprintf("%s  %s", rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.Path)
		fmt.Fprintln(out, style.Indent(line, 1))
	}
}

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: MsgDetectShort,
		Long:  MsgDetectLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			service := detect.NewService(nil, nil)

			fmt.Fprintln(out, style.TitleStyle.Sprint("Platform: ")+platform.Name())

			savesPath, found := service.FindSavesPath()
			if !found {
				fmt.Fprintln(out, style.WarnStyle.Sprint("No saves directory found."))
				fmt.Fprintln(out, style.MutedStyle.Sprint(service.Hint()))
				return nil
			}
			fmt.Fprintln(out, style.TitleStyle.Sprint("Saves: ")+savesPath)

			if install, ok := service.FindInstallation(); ok {
				fmt.Fprintln(out, style.TitleStyle.Sprint("Game: ")+install)
			}

			saves, err := detect.ListSaveGames(nil, savesPath)
			if err != nil {
				return err
			}
			for _, save := range saves {
				label := save.Name
				if save.FarmerName != "" {
					label = fmt.Sprintf("%s (%s)", save.Name, save.FarmerName)
				}
				fmt.Fprintln(out, style.Indent(label, 1))
			}
			return nil
		},
	}
}

func newWatchCmd() *cobra.Command {
	var saveDir, cloudRoot string
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: MsgWatchShort,
		Long:  MsgWatchLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv()
			if err != nil {
				return err
			}
			save, err := env.resolveSaveDir(saveDir)
			if err != nil {
				return err
			}
			target, err := env.resolveCloudTarget(cloudRoot)
			if err != nil {
				return err
			}

			watcher, err := watch.New(watch.Options{
				SaveDir:     save,
				CloudTarget: target,
				Debounce:    debounce,
				Log:         newSink(cmd),
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintln(cmd.OutOrStdout(), style.MutedStyle.Sprint("Watching "+save+" (Ctrl-C to stop)"))
			return watcher.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&saveDir, "save-dir", "", "Save directory (default: config, then auto-detect)")
	cmd.Flags().StringVar(&cloudRoot, "cloud-root", "", "Cloud-synced folder the saves are copied into")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before a change burst is migrated")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "crosssave version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, "Built:  %s\n", version.Date)
			}
		},
	}
}
