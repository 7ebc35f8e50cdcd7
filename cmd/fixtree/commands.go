package fixtree

import (
	"embed"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/fixtree/internal/version"
	"github.com/arthur-debert/fixtree/pkg/cobrax/topics"
	"github.com/arthur-debert/fixtree/pkg/config"
	"github.com/arthur-debert/fixtree/pkg/errors"
	"github.com/arthur-debert/fixtree/pkg/export"
	"github.com/arthur-debert/fixtree/pkg/filesystem"
	"github.com/arthur-debert/fixtree/pkg/fixture"
	"github.com/arthur-debert/fixtree/pkg/logging"
	"github.com/arthur-debert/fixtree/pkg/ui"
)

const appName = "fixtree"

//go:embed topics
var topicsFS embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity  int
		configPath string
		color      string
	)

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help but report incorrect usage
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&color, "color", ui.FormatAuto.String(), MsgFlagColor)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newMaterializeCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newGreetCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	opts := topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}
	if _, err := topics.InitializeWithOptions(rootCmd, topicsFS, "topics", opts); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// loadConfig loads the configuration, honouring the persistent --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(config.Options{Path: path})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}

// outputFormat resolves the persistent --color flag for w.
func outputFormat(cmd *cobra.Command, w io.Writer) (ui.Format, error) {
	value, _ := cmd.Root().PersistentFlags().GetString("color")
	format, err := ui.ParseFormat(value)
	if err != nil {
		return ui.FormatText, err
	}
	return ui.Resolve(format, w), nil
}

// readFixture parses a fixture file; "-" reads stdin.
func readFixture(cmd *cobra.Command, cfg *config.Config, name string) (fixture.Fixture, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		code := errors.ErrFileRead
		if stderrors.Is(err, fs.ErrNotExist) {
			code = errors.ErrFileNotFound
		}
		return fixture.Fixture{}, errors.Wrapf(err, code, MsgErrReadFixture, name).
			WithDetail("path", name)
	}
	return cfg.Parse(string(data))
}

// readDirectory reads dir into a fixture, failing when it does not exist.
func readDirectory(cfg *config.Config, dir string) (fixture.Fixture, error) {
	f, ok, err := fixture.ReadFromDirectory(dir, cfg.ReadOptions()...)
	if err != nil {
		return fixture.Fixture{}, err
	}
	if !ok {
		return fixture.Fixture{}, errors.Newf(errors.ErrFileNotFound, MsgErrDirNotFound, dir).
			WithDetail("path", dir)
	}
	return f, nil
}

// writeText writes rendered fixture text, ending it with a newline.
func writeText(w io.Writer, text string) error {
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}

func newRenderCmd() *cobra.Command {
	var (
		regexes            []string
		globs              []string
		redact             []int
		redactMessage      string
		normalizeGitHashes bool
		alwaysShowFilepath bool
	)

	cmd := &cobra.Command{
		Use:     "render <dir>",
		Short:   MsgRenderShort,
		Long:    MsgRenderLong,
		Example: MsgRenderExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			f, err := readDirectory(cfg, args[0])
			if err != nil {
				return err
			}

			r := cfg.NewRenderer(f)
			for _, p := range regexes {
				r = r.Regex(p)
			}
			for _, p := range globs {
				r = r.Glob(p)
			}
			if cmd.Flags().Changed("redact-message") {
				r = r.RedactMessage(redactMessage)
			}
			if len(redact) > 0 {
				r = r.RedactLines(redact...)
			}
			if normalizeGitHashes {
				r = r.NormalizeGitHashes()
			}
			if alwaysShowFilepath {
				r = r.AlwaysShowFilepath()
			}

			out, err := r.Render()
			if err != nil {
				return err
			}

			log.Info().
				Str("dir", args[0]).
				Int("files", len(f.Files)).
				Msg("Rendered directory")

			return writeText(cmd.OutOrStdout(), out)
		},
	}

	// StringArray: regexes may contain commas
	cmd.Flags().StringArrayVar(&regexes, "regex", nil, MsgFlagRegex)
	cmd.Flags().StringArrayVar(&globs, "glob", nil, MsgFlagGlob)
	cmd.Flags().IntSliceVar(&redact, "redact", nil, MsgFlagRedact)
	cmd.Flags().StringVar(&redactMessage, "redact-message", fixture.DefaultRedactMessage, MsgFlagRedactMessage)
	cmd.Flags().BoolVar(&normalizeGitHashes, "normalize-git-hashes", false, MsgFlagNormalizeGitHashes)
	cmd.Flags().BoolVar(&alwaysShowFilepath, "always-show-filepath", false, MsgFlagAlwaysShowFilepath)

	return cmd
}

func newParseCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "parse <file>",
		Short:   MsgParseShort,
		Long:    MsgParseLong,
		Example: MsgParseExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exportFormat, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			f, err := readFixture(cmd, cfg, args[0])
			if err != nil {
				return err
			}

			data, err := export.Encode(f, exportFormat)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatText), MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(export.Formats))
		for i, f := range export.Formats {
			names[i] = string(f)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func newMaterializeCmd() *cobra.Command {
	var dir, cwd string

	cmd := &cobra.Command{
		Use:     "materialize <file>",
		Short:   MsgMaterializeShort,
		Long:    MsgMaterializeLong,
		Example: MsgMaterializeExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			f, err := readFixture(cmd, cfg, args[0])
			if err != nil {
				return err
			}

			root := dir
			if root != "" {
				if err := f.WriteTo(filesystem.NewOS(), root); err != nil {
					return err
				}
			} else {
				// Kept on purpose: the caller owns the directory.
				tmp, err := f.WriteToTempDir(cfg.TempOptions()...)
				if err != nil {
					return err
				}
				root = tmp.Root
			}

			log.Info().
				Str("root", root).
				Int("files", len(f.Files)).
				Msg("Materialized fixture")

			if cwd != "" {
				root = filepath.Join(root, filepath.FromSlash(strings.TrimLeft(cwd, "/")))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), root)
			return err
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", MsgFlagDir)
	cmd.Flags().StringVar(&cwd, "cwd", "", MsgFlagCwd)

	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "check <fixture-file> <dir>",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		Example: MsgCheckExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			expected, err := readFixture(cmd, cfg, args[0])
			if err != nil {
				return err
			}
			actual, err := readDirectory(cfg, args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			format, err := outputFormat(cmd, out)
			if err != nil {
				return err
			}

			err = fixture.Compare(expected, actual)
			if err == nil {
				_, err = fmt.Fprintln(out, ui.Styled("Success", fmt.Sprintf(MsgCheckOK, args[1], args[0]), format))
				return err
			}

			diff, ok := errors.Detail[string](err, "diff")
			if !ok {
				return err
			}
			path, _ := errors.Detail[string](err, "path")
			_, _ = fmt.Fprint(out, ui.RenderDiff(diff, format))
			return errors.Newf(errors.ErrFixtureMismatch, MsgCheckFailed+": content of %s differs", args[1], args[0], path).
				WithDetail("path", path)
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := config.Dump(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newGreetCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:     "greet",
		Short:   MsgGreetShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("name") {
				name = cfg.Greeting.Name
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgGreeting, name)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", MsgFlagName)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), version.String(appName))
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
