package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cognicore/wordfreq/pkg/wordfreq"
	"github.com/cognicore/wordfreq/pkg/wordfreq/blob"
	"github.com/cognicore/wordfreq/pkg/wordfreq/config"
	"github.com/cognicore/wordfreq/pkg/wordfreq/extract"
	"github.com/cognicore/wordfreq/pkg/wordfreq/freq"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store/sqlite"
)

const usage = `usage: wordfreq [-config file] <command> [flags] [args]

commands:
  analyze FILE               rank the vocabulary of a file without storing it
  upload FILE                store a document for a user
  process ID                 extract and rank a stored document
  list                       list a user's documents
  words ID                   show a document's vocabulary with translations
  export ID                  write a csv, excel or pdf report
  translate WORD TEXT        save a translation for a word
  translations               list a user's translations
  suggest WORD               show dictionary suggestions
  delete ID                  remove a document and its vocabulary
`

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("wordfreq", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := global.String("config", "", "YAML config file")
	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}
	cfg = config.FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid config: %v\n", err)
		return 1
	}

	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))

	cmd, rest := global.Arg(0), global.Args()[1:]
	if err := dispatch(ctx, cmd, rest, cfg, logger, stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "wordfreq %s: %v\n", cmd, err)
		return 1
	}
	return 0
}

func dispatch(ctx context.Context, cmd string, args []string, cfg *config.Config, logger *slog.Logger, out io.Writer) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	userID := fs.Int64("user", 1, "owner user id")

	switch cmd {
	case "analyze":
		top := fs.Int("top", 20, "number of words to print (0 for all)")
		contentType := fs.String("type", "", "declared MIME type (default: from extension)")
		exportFmt := fs.String("export", "", "also write a report: csv, excel or pdf")
		outPath := fs.String("out", "", "report path (default: derived from the input name)")
		if err := parseArgs(fs, args, 1); err != nil {
			return err
		}
		engine, cleanup, err := buildEngine(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()
		return analyze(engine, fs.Arg(0), *contentType, *top, *exportFmt, *outPath, out)

	case "upload":
		contentType := fs.String("type", "", "declared MIME type (default: from extension)")
		if err := parseArgs(fs, args, 1); err != nil {
			return err
		}
		return withEngine(ctx, cfg, logger, func(e *wordfreq.Engine) error {
			data, err := os.ReadFile(fs.Arg(0))
			if err != nil {
				return err
			}
			doc, err := e.Upload(ctx, wordfreq.UploadRequest{
				UserID:      *userID,
				Filename:    filepath.Base(fs.Arg(0)),
				ContentType: *contentType,
				Data:        data,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d\t%s\t%s\n", doc.ID, doc.Filename, doc.StoragePath)
			return nil
		})

	case "process":
		if err := parseArgs(fs, args, 1); err != nil {
			return err
		}
		id, err := parseID(fs.Arg(0))
		if err != nil {
			return err
		}
		return withEngine(ctx, cfg, logger, func(e *wordfreq.Engine) error {
			res, err := e.Process(ctx, *userID, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "processed %s: %d characters, %d tokens, %d words stored\n",
				res.Document.Filename, res.TextLength, res.TokenCount, len(res.Vocabulary))
			return nil
		})

	case "list":
		if err := parseArgs(fs, args, 0); err != nil {
			return err
		}
		return withEngine(ctx, cfg, logger, func(e *wordfreq.Engine) error {
			docs, err := e.Documents(ctx, *userID)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tFILENAME\tTYPE\tUPLOADED")
			for _, d := range docs {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", d.ID, d.Filename, d.FileType, d.UploadedAt.Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		})

	case "words":
		top := fs.Int("top", 0, "number of words to print (0 for all)")
		if err := parseArgs(fs, args, 1); err != nil {
			return err
		}
		id, err := parseID(fs.Arg(0))
		if err != nil {
			return err
		}
		return withEngine(ctx, cfg, logger, func(e *wordfreq.Engine) error {
			entries, err := e.Words(ctx, *userID, id)
			if err != nil {
				return err
			}
			return printEntries(out, freq.Truncate(entries, *top))
		})

	case "export":
		format := fs.String("format", "csv", "csv, excel or pdf")
		outPath := fs.String("out", "", "output path (default: <filename>_analysis.<ext>)")
		if err := parseArgs(fs, args, 1); err != nil {
			return err
		}
		id, err := parseID(fs.Arg(0))
		if err != nil {
			return err
		}
		return withEngine(ctx, cfg, logger, func(e *wordfreq.Engine) error {
			doc, err := e.Export(ctx, *userID, id, *format)
			if err != nil {
				return err
			}
			path := *outPath
			if path == "" {
				path = doc.Filename
			}
			if err := os.WriteFile(path, doc.Body, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(out, path)
			return nil
		})

	case "translate":
		if err := parseArgs(fs, args, 2); err != nil {
			return err
		}
		return withEngine(ctx, cfg, logger, func(e *wordfreq.Engine) error {
			tr, err := e.SaveTranslation(ctx, *userID, fs.Arg(0), fs.Arg(1))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s\t%s\n", tr.Word, tr.Translation)
			return nil
		})

	case "translations":
		if err := parseArgs(fs, args, 0); err != nil {
			return err
		}
		return withEngine(ctx, cfg, logger, func(e *wordfreq.Engine) error {
			list, err := e.Translations(ctx, *userID)
			if err != nil {
				return err
			}
			for _, tr := range list {
				fmt.Fprintf(out, "%s\t%s\n", tr.Word, tr.Translation)
			}
			return nil
		})

	case "suggest":
		if err := parseArgs(fs, args, 1); err != nil {
			return err
		}
		comps, err := cfg.Loader().Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		s := comps.Dictionary.Suggest(fs.Arg(0))
		if !s.IsCommon {
			fmt.Fprintf(out, "%s: no suggestions\n", s.Word)
			return nil
		}
		fmt.Fprintf(out, "%s: %s\n", s.Word, strings.Join(s.Suggestions, ", "))
		return nil

	case "delete":
		if err := parseArgs(fs, args, 1); err != nil {
			return err
		}
		id, err := parseID(fs.Arg(0))
		if err != nil {
			return err
		}
		return withEngine(ctx, cfg, logger, func(e *wordfreq.Engine) error {
			if err := e.Delete(ctx, *userID, id); err != nil {
				return err
			}
			fmt.Fprintf(out, "deleted %d\n", id)
			return nil
		})
	}

	return fmt.Errorf("unknown command %q", cmd)
}

func analyze(e *wordfreq.Engine, path, contentType string, top int, exportFmt, outPath string, out io.Writer) error {
	format, err := inputFormat(path, contentType)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := e.Analyze(data, format)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d characters, %d tokens, %d distinct words\n", doc.TextLength, len(doc.Tokens), len(doc.Vocabulary))
	if err := printEntries(out, freq.Truncate(doc.Vocabulary, top)); err != nil {
		return err
	}

	if exportFmt == "" {
		return nil
	}
	rendered, err := e.Report(doc.Vocabulary, filepath.Base(path), exportFmt)
	if err != nil {
		return err
	}
	if outPath == "" {
		outPath = rendered.Filename
	}
	if err := os.WriteFile(outPath, rendered.Body, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(out, outPath)
	return nil
}

func inputFormat(path, contentType string) (extract.Format, error) {
	if contentType != "" {
		return extract.FormatFromMIME(contentType)
	}
	return extract.FormatFromFilename(path)
}

func printEntries(out io.Writer, entries []freq.Entry) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WORD\tFREQUENCY\tTRANSLATION")
	for _, e := range entries {
		tr := e.Translation
		if !e.HasTranslation() {
			tr = "-"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", e.Word, e.Frequency, tr)
	}
	return tw.Flush()
}

func parseArgs(fs *flag.FlagSet, args []string, n int) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != n {
		return fmt.Errorf("expected %d argument(s), got %d", n, fs.NArg())
	}
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid document id %q", s)
	}
	return id, nil
}

func withEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger, fn func(*wordfreq.Engine) error) error {
	engine, cleanup, err := buildEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(engine)
}

func buildEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*wordfreq.Engine, func(), error) {
	components, err := cfg.Loader().Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	blobs, err := blob.NewFS(cfg.BlobDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open blob store: %w", err)
	}

	store, err := sqlite.OpenSQLite(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	engine, err := wordfreq.New(wordfreq.Options{
		Store:       store,
		Blobs:       blobs,
		Pipeline:    components.Pipeline,
		Dictionary:  components.Dictionary,
		Font:        components.Font,
		ReportLimit: cfg.ReportLimit,
		Logger:      logger,
	})
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	cleanup := func() {
		engine.Close()
	}

	return engine, cleanup, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
