package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arunjitsingh/id3/internal/artwork"
	"github.com/arunjitsingh/id3/internal/config"
	"github.com/arunjitsingh/id3/internal/header"
	"github.com/arunjitsingh/id3/internal/options"
	"github.com/arunjitsingh/id3/pkg/id3"
)

type flags struct {
	file       string
	artOut     string
	hexInput   string
	configPath string
	format     string
	logLevel   string
}

func newRootCmd(out io.Writer, log *logrus.Logger) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "id3tags [file]",
		Short: "Print ID3v2 metadata of an MP3 file",
		Long:  "id3tags reads the ID3v2 tag of an MP3 file and prints album, artist, title, year, duration and artwork.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && f.file == "" {
				f.file = args[0]
			}
			return run(cmd.Context(), cmd, out, log, f)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "MP3 file to read")
	cmd.Flags().StringVarP(&f.artOut, "art_out", "a", "", "write artwork to this path prefix (extension is added)")
	cmd.Flags().StringVar(&f.hexInput, "hex", "", "read the tag from a hex dump instead of a file")
	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "config file (default ~/.config/id3tags/config.toml)")
	cmd.Flags().StringVar(&f.format, "format", "", "output format: json or table")
	cmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	cmd.AddCommand(newVersionsCmd(out))
	return cmd
}

func main() {
	log := logrus.StandardLogger()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		DisableColors: !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()),
	})
	ctx := context.Background()
	if err := newRootCmd(os.Stdout, log).ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cobra.Command, out io.Writer, log *logrus.Logger, f flags) error {
	cfg, exists, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, &cfg, f)
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	if exists {
		log.WithField("path", f.configPath).Debug("loaded config")
	}

	if f.file == "" && f.hexInput == "" {
		return errors.New("need an MP3 to work with (pass a file or --file)")
	}

	prefix, err := options.ParseArtOut(cfg.ArtOut)
	if err != nil {
		return err
	}
	opts := id3.Options{}
	var sink *artwork.FileSink
	if prefix != "" {
		sink = artwork.NewFileSink(prefix, log)
		opts.Sink = sink
	}

	ctx = options.WithLogger(ctx, log)
	var result id3.Result
	if f.hexInput != "" {
		result, err = id3.ReadHex(ctx, f.hexInput, opts)
	} else {
		traceHeader(log, f.file)
		result, err = id3.ReadFile(ctx, f.file, opts)
	}
	if sink != nil {
		sink.Wait()
	}
	if errors.Is(err, id3.ErrNoTag) {
		log.Info("no ID3v2 tag found")
		return nil
	}
	if err != nil {
		return err
	}
	if result.Partial {
		log.WithField("stop", result.StopReason).Warn("tag was only partially decoded")
	}
	return render(out, cfg.Format, result)
}

func applyFlags(cmd *cobra.Command, cfg *config.Config, f flags) {
	if cmd.Flags().Changed("art_out") {
		cfg.ArtOut = f.artOut
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = strings.ToLower(f.format)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = strings.ToLower(f.logLevel)
	}
}

// traceHeader dumps the raw tag header when trace logging is enabled.
func traceHeader(log *logrus.Logger, path string) {
	if !log.IsLevelEnabled(logrus.TraceLevel) {
		return
	}
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()
	buf := make([]byte, header.Length)
	if _, err := io.ReadFull(file, buf); err != nil {
		return
	}
	h, err := header.Parse(buf)
	if err != nil {
		return
	}
	log.Trace(spew.Sdump(h))
}

func newVersionsCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List supported ID3v2 versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, major := range id3.SupportedVersions() {
				fmt.Fprintf(out, "2.%d\n", major)
			}
			return nil
		},
	}
}
