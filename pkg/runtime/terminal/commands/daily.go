package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nrs-tools/vendor-atlas/pkg/models/domain"
	"github.com/nrs-tools/vendor-atlas/pkg/runtime/terminal/export"
	"github.com/nrs-tools/vendor-atlas/pkg/services/config"
	"github.com/nrs-tools/vendor-atlas/pkg/services/report"
	"github.com/nrs-tools/vendor-atlas/pkg/services/session"
)

const dateLayout = "01/02/2006"

type DailyCmd struct {
	date         string
	credsPath    string
	profile      string
	settingsPath string
	output       string
	format       string
	reporter     *export.Reporter
}

func NewDailyCmd(reporter *export.Reporter) *cobra.Command {
	dc := &DailyCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Fetch one day's vendor sales feed",
		RunE:  dc.run,
	}

	cmd.Flags().StringVarP(&dc.date, "date", "d", "", "Date (MM/DD/YYYY), default: yesterday")
	cmd.Flags().StringVarP(&dc.credsPath, "creds", "c", "nrscreds.secret", "Credentials file (ini profile or user:password)")
	cmd.Flags().StringVar(&dc.profile, "profile", "DEFAULT", "Profile section inside the credentials file")
	cmd.Flags().StringVar(&dc.settingsPath, "config", "", "Optional scraper settings file")
	cmd.Flags().StringVarP(&dc.output, "output", "o", "", "Output file (default: stdout for json, auto-named for csv)")
	cmd.Flags().StringVarP(&dc.format, "format", "f", "table", "Output format: csv, json or table")

	return cmd
}

func (dc *DailyCmd) run(cmd *cobra.Command, _ []string) error {
	if dc.format != "csv" && dc.format != "json" && dc.format != "table" {
		return fmt.Errorf("unsupported format %q", dc.format)
	}

	date := dc.date
	if date == "" {
		date = time.Now().AddDate(0, 0, -1).Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q, expected MM/DD/YYYY", date)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings, err := config.LoadSettings(dc.settingsPath)
	if err != nil {
		return err
	}
	creds, err := config.LoadCredentials(dc.credsPath, dc.profile)
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	client, err := session.NewClient(settings, creds)
	if err != nil {
		return err
	}
	if err := client.Login(ctx); err != nil {
		return err
	}
	defer client.Logout(ctx)

	ctrl := report.NewController(client, settings.BaseURL, settings.SweepWorkers)
	feed, err := ctrl.DailySales(ctx, date)
	if err != nil {
		return err
	}

	switch dc.format {
	case "json":
		if dc.output != "" {
			f, err := os.Create(dc.output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", dc.output, err)
			}
			defer f.Close()
			return writeDailyJSON(f, feed)
		}
		return writeDailyJSON(os.Stdout, feed)
	case "csv":
		path := dc.output
		if path == "" {
			path = fmt.Sprintf("vendor_sales_%s.csv", strings.ReplaceAll(date, "/", "-"))
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		if err := export.WriteDailyCSV(f, feed); err != nil {
			return err
		}
		logger.Info().Str("file", path).Msg("daily sales saved")
		return nil
	default:
		return dc.reporter.DailyTable(feed)
	}
}

func writeDailyJSON(w io.Writer, d domain.DailySales) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
