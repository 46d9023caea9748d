package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nrs-tools/vendor-atlas/pkg/models/domain"
	"github.com/nrs-tools/vendor-atlas/pkg/runtime/terminal/export"
	"github.com/nrs-tools/vendor-atlas/pkg/services/config"
	"github.com/nrs-tools/vendor-atlas/pkg/services/report"
	"github.com/nrs-tools/vendor-atlas/pkg/services/session"
)

type ReportCmd struct {
	month        int
	year         int
	start        string
	end          string
	detail       bool
	credsPath    string
	profile      string
	settingsPath string
	output       string
	format       string
	reporter     *export.Reporter
}

func NewReportCmd(reporter *export.Reporter) *cobra.Command {
	rc := &ReportCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Fetch the AP Vendor Totals report for a period",
		RunE:  rc.run,
	}

	cmd.Flags().IntVarP(&rc.month, "month", "m", 0, "Month number (1-12), requires --year")
	cmd.Flags().IntVarP(&rc.year, "year", "y", 0, "Year (e.g. 2025); use alone for a full year, or with --month")
	cmd.Flags().StringVarP(&rc.start, "start", "s", "", "Start date (MM/DD/YYYY), requires --end")
	cmd.Flags().StringVarP(&rc.end, "end", "e", "", "End date (MM/DD/YYYY), requires --start")
	cmd.Flags().BoolVarP(&rc.detail, "detail", "d", false, "Also fetch individual item sales per vendor")
	cmd.Flags().StringVarP(&rc.credsPath, "creds", "c", "nrscreds.secret", "Credentials file (ini profile or user:password)")
	cmd.Flags().StringVar(&rc.profile, "profile", "DEFAULT", "Profile section inside the credentials file")
	cmd.Flags().StringVar(&rc.settingsPath, "config", "", "Optional scraper settings file")
	cmd.Flags().StringVarP(&rc.output, "output", "o", "vendor_totals", "Output filename base (without extension)")
	cmd.Flags().StringVarP(&rc.format, "format", "f", "csv", "Output format: csv, json or both")

	return cmd
}

// period validates the mutually exclusive shape flags at the CLI boundary and
// builds the query period. No flags at all defaults to the current month.
func (rc *ReportCmd) period() (domain.Period, error) {
	switch {
	case rc.start != "" && rc.end == "", rc.end != "" && rc.start == "":
		return domain.Period{}, errors.New("--start and --end must be used together")
	case rc.start != "" && (rc.month != 0 || rc.year != 0):
		return domain.Period{}, errors.New("--start/--end cannot be combined with --month/--year")
	case rc.start != "":
		return domain.NewDateRange(rc.start, rc.end), nil
	case rc.month != 0 && rc.year == 0:
		return domain.Period{}, errors.New("--month requires --year")
	case rc.month != 0:
		if rc.month < 1 || rc.month > 12 {
			return domain.Period{}, fmt.Errorf("invalid month %d", rc.month)
		}
		return domain.NewMonthPeriod(rc.month, rc.year), nil
	case rc.year != 0:
		return domain.NewYearPeriod(rc.year), nil
	default:
		now := time.Now()
		return domain.NewMonthPeriod(int(now.Month()), now.Year()), nil
	}
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	if rc.format != "csv" && rc.format != "json" && rc.format != "both" {
		return fmt.Errorf("unsupported format %q", rc.format)
	}

	period, err := rc.period()
	if err != nil {
		return err
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings, err := config.LoadSettings(rc.settingsPath)
	if err != nil {
		return err
	}
	creds, err := config.LoadCredentials(rc.credsPath, rc.profile)
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

	records, index, err := ctrl.Summarize(ctx, period)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		logger.Warn().Msg("no data retrieved")
		return nil
	}

	outputBase := fmt.Sprintf("%s_%s", rc.output, period.Slug())

	if rc.format == "csv" || rc.format == "both" {
		path := outputBase + "_summary.csv"
		if err := export.WriteSummaryCSV(path, records); err != nil {
			return err
		}
		logger.Info().Str("file", path).Int("records", len(records)).Msg("summary saved")
	}
	if rc.format == "json" || rc.format == "both" {
		path := outputBase + "_summary.json"
		err := export.WriteJSONFile(path, export.Envelope{
			Report:      "AP Vendor Totals - Summary",
			Period:      period.Describe(),
			Generated:   time.Now().Format(time.RFC3339),
			RecordCount: len(records),
			Data:        records,
		})
		if err != nil {
			return err
		}
		logger.Info().Str("file", path).Msg("summary saved")
	}

	if err := rc.reporter.Totals(period.Describe(), false, report.SummaryTotals(records)); err != nil {
		return err
	}

	if !rc.detail || index.Len() == 0 {
		return nil
	}

	items := ctrl.SweepDetails(ctx, index, period)
	if len(items) == 0 {
		logger.Warn().Msg("detail sweep returned no items")
		return nil
	}

	if rc.format == "csv" || rc.format == "both" {
		path := outputBase + "_detail.csv"
		if err := export.WriteDetailCSV(path, items); err != nil {
			return err
		}
		logger.Info().Str("file", path).Int("items", len(items)).Msg("detail saved")
	}
	if rc.format == "json" || rc.format == "both" {
		path := outputBase + "_detail.json"
		err := export.WriteJSONFile(path, export.Envelope{
			Report:      "AP Vendor Totals - Item Detail",
			Period:      period.Describe(),
			Generated:   time.Now().Format(time.RFC3339),
			RecordCount: len(items),
			Data:        items,
		})
		if err != nil {
			return err
		}
		logger.Info().Str("file", path).Msg("detail saved")
	}

	return rc.reporter.Totals(period.Describe(), true, report.DetailTotals(items))
}
