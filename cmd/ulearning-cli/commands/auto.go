package commands

import (
	"log/slog"
	"time"

	"ulearning-export/lib/configutil"
	"ulearning-export/lib/export"
	"ulearning-export/lib/exporter"
	"ulearning-export/lib/scrapers/ulearning/page"
	"ulearning-export/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	autoSnapshots *string
	autoOut       *string
	autoFormat    *string
	autoDebug     *bool
)

func init() {
	autoSnapshots = autoCmd.Flags().String("snapshots", "snapshots", "Directory of captured player DOM snapshots (*.html).")
	autoOut = autoCmd.Flags().StringP("out", "o", ".", "Directory to write the export into.")
	autoFormat = autoCmd.Flags().StringP("format", "f", "md", "Output format: md, json, or bank.")
	autoDebug = autoCmd.Flags().Bool("debug", false, "Force debug mode regardless of the stored preference.")
	rootCmd.AddCommand(autoCmd)
}

var autoCmd = &cobra.Command{
	Use:   "auto [--snapshots <dir>]",
	Short: "Replays captured player pages and exports the questions rendered on them.",
	Long: "auto walks a captured course player session the way the in-page exporter " +
		"walks a live one: page by page through the next-page control, dismissing " +
		"overlays, collecting every rendered question once. Answers are resolved " +
		"through the platform API when a config with credentials is present.",
	RunE: func(cmd *cobra.Command, args []string) error {
		debug := *autoDebug || debugEnabled(cmd)
		telemetry.InitSlog(debug)

		format, err := export.ParseFormat(*autoFormat)
		if err != nil {
			return err
		}
		driver, err := newSnapshotDriver(*autoSnapshots)
		if err != nil {
			return err
		}

		iv := &exporter.Interactive{
			Driver: driver,
			// snapshots switch instantly, no need for the live-player
			// poll budget
			PollAttempts: 2,
			PollInterval: 10 * time.Millisecond,
			SettleDelay:  time.Millisecond,
			Progress: func(done, total int, message string) {
				if message != "" {
					slog.Info(message, "questions", done)
				}
			},
		}
		if resolver := answerResolver(debug); resolver != nil {
			iv.Resolver = resolver
		}

		pages, err := iv.Run(cmd.Context())
		if err != nil {
			return err
		}
		if len(pages) == 0 {
			slog.Warn("no questions captured")
			return nil
		}

		doc, err := driver.Document(cmd.Context())
		if err != nil {
			return err
		}
		courseName := page.CourseName(doc)
		exportTime := time.Now().Format("2006-01-02 15:04:05")

		total := 0
		for _, p := range pages {
			total += len(p.Questions)
		}

		var (
			filename string
			data     []byte
		)
		switch format {
		case export.FormatJSON:
			filename = export.Filename(courseName, export.FormatJSON)
			data, err = export.PagesJSON(export.PageDocument{
				CourseName:     courseName,
				ExportTime:     exportTime,
				Pages:          pages,
				TotalQuestions: total,
			})
			if err != nil {
				return err
			}
		case export.FormatBank:
			filename = export.Filename(courseName, export.FormatBank)
			data, err = export.BankJSON(export.PagesBank(pages))
			if err != nil {
				return err
			}
		default:
			filename = export.AutoFilename(courseName)
			data = []byte(export.PagesMarkdown(courseName, exportTime, pages))
		}

		path, err := exporter.DirWriter{Dir: *autoOut}.Write(filename, data)
		if err != nil {
			return err
		}
		slog.Info("export finished", "file", path, "questions", total)
		return nil
	},
}

// answerResolver builds an API-backed resolver when a usable config
// exists; otherwise the export carries only what the DOM shows.
func answerResolver(debug bool) exporter.AnswerResolver {
	cfg, err := configutil.ReadConfig[Config](*rootConfig)
	if err != nil {
		slog.Debug("no config for answer resolution", "error", err)
		return nil
	}
	client, err := createClient(cfg, debug)
	if err != nil {
		slog.Debug("answer resolution unavailable", "error", err)
		return nil
	}
	return exporter.APIResolver{Client: client}
}
