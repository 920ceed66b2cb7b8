package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"ulearning-export/lib/configutil"
	"ulearning-export/lib/export"
	"ulearning-export/lib/exporter"
	"ulearning-export/lib/prefstore"
	"ulearning-export/lib/restyutil"
	"ulearning-export/lib/scrapers/ulearning/core"
	"ulearning-export/lib/telemetry"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	_ "modernc.org/sqlite"
)

// Config is read from config.json5 (with config.local.json5 overrides)
// in the working directory.
type Config struct {
	// BaseUrl is the origin of the platform deployment, e.g.
	// "https://courseapi.ulearning.cn".
	BaseUrl string `json:"base_url"`
	// CourseUrl is the address-bar URL of the opened course; course and
	// class ids are parsed out of it unless given explicitly.
	CourseUrl string `json:"course_url"`
	CourseId  string `json:"course_id"`
	ClassId   string `json:"class_id"`
	// Token is a bearer-style credential. When empty, the environment
	// and the Cookie header are searched for one.
	Token string `json:"token"`
	// Cookie is a raw Cookie request-header line copied from the
	// browser's authenticated session.
	Cookie string `json:"cookie"`
}

var (
	exportFormat *string
	exportOut    *string
	exportDebug  *bool
)

func init() {
	exportFormat = exportCmd.Flags().StringP("format", "f", "md", "Output format: md, json, or bank.")
	exportOut = exportCmd.Flags().StringP("out", "o", ".", "Directory to write the export into.")
	exportDebug = exportCmd.Flags().Bool("debug", false, "Force debug mode regardless of the stored preference.")
	rootCmd.AddCommand(exportCmd)
}

func readConfig() (Config, error) {
	cfg, err := configutil.ReadConfig[Config](*rootConfig)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config file %q not found", *rootConfig)
	}
	return cfg, err
}

func resolveIds(cfg Config) (courseID, classID string, err error) {
	if cfg.CourseId != "" && cfg.ClassId != "" {
		return cfg.CourseId, cfg.ClassId, nil
	}
	if cfg.CourseUrl == "" {
		return "", "", fmt.Errorf("config needs either course_id and class_id or a course_url")
	}
	return core.IDsFromURL(cfg.CourseUrl)
}

// createClient builds the platform client from config: cookies seeded
// from the copied Cookie header, token from config or discovered
// opportunistically. Debug mode dumps every HTTP exchange to disk.
func createClient(cfg Config, debug bool) (*core.Client, error) {
	if cfg.BaseUrl == "" {
		return nil, fmt.Errorf("config needs a base_url")
	}

	cookies := core.ParseCookieHeader(cfg.Cookie)
	token := cfg.Token
	if token == "" {
		token = core.DiscoverToken(cookies)
	}

	client, err := core.NewClient(cfg.BaseUrl, core.WithToken(token))
	if err != nil {
		return nil, err
	}
	client.SetCookies(cookies)

	if debug {
		restyutil.InstrumentClient(client.HTTP(),
			otel.Tracer("cmd/ulearning-cli"),
			restyutil.NewFilesystemOutput(".dev/resty/export"))
	}
	return client, nil
}

func debugEnabled(cmd *cobra.Command) bool {
	prefs, err := prefstore.Open(*rootPrefs)
	if err != nil {
		slog.Warn("preference store unavailable", "error", err)
		return false
	}
	defer prefs.Close()

	debug, err := prefs.GetBool(cmd.Context(), prefstore.KeyDebugMode)
	if err != nil {
		slog.Warn("failed to read debug preference", "error", err)
		return false
	}
	return debug
}

var exportCmd = &cobra.Command{
	Use:   "export [--format md|json|bank] [--out <dir>]",
	Short: "Exports every courseware question of a course through the platform API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		debug := *exportDebug || debugEnabled(cmd)
		telemetry.InitSlog(debug)

		format, err := export.ParseFormat(*exportFormat)
		if err != nil {
			return err
		}
		cfg, err := readConfig()
		if err != nil {
			return err
		}
		courseID, classID, err := resolveIds(cfg)
		if err != nil {
			return err
		}
		client, err := createClient(cfg, debug)
		if err != nil {
			return err
		}

		bulk := &exporter.Bulk{
			Client: client,
			Progress: func(done, total int, message string) {
				if message != "" {
					slog.Info(message, "done", done, "total", total)
				}
			},
		}
		course, err := bulk.Export(cmd.Context(), courseID, classID)
		if err != nil {
			return err
		}

		data, err := serializeCourse(course, format)
		if err != nil {
			return err
		}
		path, err := exporter.DirWriter{Dir: *exportOut}.Write(export.Filename(course.CourseName, format), data)
		if err != nil {
			return err
		}

		slog.Info("export finished",
			"file", path,
			"questions", course.TotalQuestions)
		return nil
	},
}

func serializeCourse(course export.Course, format export.Format) ([]byte, error) {
	switch format {
	case export.FormatJSON:
		return export.CourseJSON(course)
	case export.FormatBank:
		return export.BankJSON(export.CourseBank(course))
	default:
		return []byte(export.CourseMarkdown(course)), nil
	}
}
