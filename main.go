package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// scenesDir is where the list command looks for scene files
const scenesDir = "scenes"

// cliFlags holds the raw command line flag values
type cliFlags struct {
	width        int
	height       int
	workers      int
	seed         int64
	radiusJitter bool
	format       string
	configPath   string

	verbose bool
	debug   bool
	quiet   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand(os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newRootCommand builds the raytracer command tree. Logs go to logOut.
func newRootCommand(logOut io.Writer) *cobra.Command {
	flags := &cliFlags{}

	root := &cobra.Command{
		Use:   "raytracer <scene> <output>",
		Short: "Whitted-style ray tracer",
		Long: "Renders a scene file (or a built-in scene name) to an image.\n" +
			"The output format follows the output file extension: png, jpg, gif, bmp or tiff.",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := LevelFromFlags(flags.debug, flags.verbose, flags.quiet)
			slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level})))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(cmd.Flags(), flags)
			if err != nil {
				return err
			}
			return render(cmd.Context(), args[0], args[1], opts)
		},
	}

	f := root.Flags()
	f.IntVar(&flags.width, "width", 300, "output image width in pixels")
	f.IntVar(&flags.height, "height", 300, "output image height in pixels")
	f.IntVar(&flags.workers, "workers", 0, "number of parallel row workers (0 = one per CPU)")
	f.Int64Var(&flags.seed, "seed", 42, "seed for the shadow ray jitter")
	f.BoolVar(&flags.radiusJitter, "radius-jitter", false, "scale the shadow jitter box by each light's radius")
	f.StringVar(&flags.format, "format", "", "output image format (default: from the output extension)")
	f.StringVar(&flags.configPath, "config", "", "TOML file with render options; flags override it")

	pf := root.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log render progress")
	pf.BoolVar(&flags.debug, "vv", false, "log debugging detail")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "only log errors")

	root.AddCommand(newListCommand())
	return root
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in scenes and scene files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listScenes(cmd.OutOrStdout(), scenesDir)
		},
	}
}

// LevelFromFlags returns the log level selected by the verbosity flags.
// Debug wins over info, which wins over quiet. The default is warn.
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// resolveOptions starts from the defaults, applies the config file if one
// was given and then every flag set explicitly on the command line
func resolveOptions(fs *pflag.FlagSet, flags *cliFlags) (config.Options, error) {
	opts := config.Defaults()
	if flags.configPath != "" {
		var err error
		if opts, err = config.Load(flags.configPath); err != nil {
			return opts, err
		}
	}

	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "width":
			opts.Width = flags.width
		case "height":
			opts.Height = flags.height
		case "workers":
			opts.Workers = flags.workers
		case "seed":
			opts.Seed = flags.seed
		case "radius-jitter":
			opts.RadiusJitter = flags.radiusJitter
		case "format":
			opts.Format = flags.format
		}
	})

	return opts, opts.Validate()
}

// loadScene resolves a scene argument. Existing files are parsed as scene
// files; anything else is looked up as a built-in scene name.
func loadScene(arg string) (*scene.Scene, error) {
	if arg == "" {
		return nil, errors.New("scene argument is empty")
	}
	if _, err := os.Stat(arg); err == nil {
		return loaders.LoadScene(arg)
	}
	if s, ok := scene.Builtin(arg); ok {
		return s, nil
	}
	if filepath.Ext(arg) == scene.SceneFileExt {
		return nil, fmt.Errorf("scene file %s not found", arg)
	}
	return nil, fmt.Errorf("unknown scene %q (not a file or built-in scene)", arg)
}

// render loads the scene, traces it and writes the image
func render(ctx context.Context, sceneArg, outputPath string, opts config.Options) error {
	// Fail on a bad output format before spending time on the render
	format, err := opts.ImageFormat(outputPath)
	if err != nil {
		return err
	}

	s, err := loadScene(sceneArg)
	if err != nil {
		return err
	}

	rt := renderer.NewRaytracer(s, opts.RenderConfig())
	raster, stats, err := rt.Render(ctx)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := loaders.SaveImage(raster.ToImage(), outputPath, format); err != nil {
		return err
	}

	slog.Info("image saved",
		"path", outputPath,
		"format", format,
		"elapsed", stats.Elapsed,
		"rays", stats.TotalRays())
	return nil
}

// listScenes prints the built-in scenes followed by the scene files in dir
func listScenes(w io.Writer, dir string) error {
	files, err := scene.ListSceneFiles(dir)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Built-in scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Fprintf(w, "  %-16s %s\n", info.ID, info.Description)
	}

	if len(files) == 0 {
		return nil
	}
	fmt.Fprintf(w, "\nScene files (%s):\n", dir)
	for _, info := range files {
		desc := info.Name
		if info.Description != "" {
			desc = strings.Join([]string{info.Name, info.Description}, ": ")
		}
		fmt.Fprintf(w, "  %-16s %s\n", info.FilePath, desc)
	}
	return nil
}
