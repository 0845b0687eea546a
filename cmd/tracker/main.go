package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spunky-sabin/clash-clone/internal/apimerge"
	"github.com/spunky-sabin/clash-clone/internal/loader"
	"github.com/spunky-sabin/clash-clone/internal/models"
	"github.com/spunky-sabin/clash-clone/internal/progress"
)

var (
	dataDir      string
	snapshotFile string
	playerFile   string
	configFile   string
	villageFlag  string
	buildersFlag int
	nowFlag      string
	quiet        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tracker",
		Short: "Village upgrade progress tracker",
		Long: `Computes how far a village is through its upgrades: weighted
completion per category, remaining cost and time, and the upgrades
left for every building, troop, hero and piece of equipment.`,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&dataDir, "data", "d", "data", "Path to the static catalog directory")
	flags.StringVarP(&snapshotFile, "snapshot", "s", "player.json", "Path to the player export")
	flags.StringVarP(&playerFile, "player", "p", "", "Optional live API player record to merge into the export")
	flags.StringVarP(&configFile, "config", "c", "", "Path to YAML config file")
	flags.StringVar(&villageFlag, "village", "", "Village to analyze (home or builderBase)")
	flags.IntVar(&buildersFlag, "builders", 0, "Builder count, overrides the export and config")
	flags.StringVar(&nowFlag, "now", "", "RFC3339 instant to reconcile timers against")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Minimal output")

	rootCmd.AddCommand(analyzeCmd(), upgradesCmd(), statsCmd(), watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// session is everything a command needs to run an analysis
type session struct {
	catalog  *models.Catalog
	snapshot *models.Snapshot
	options  progress.Options
	tier     int
	now      time.Time
	warnings []string
}

// analyze runs the engine at the given instant. The hall level is detected
// again since a running hall upgrade may have finished by then.
func (s *session) analyze(now time.Time) (*progress.Report, error) {
	tier := progress.DetectTier(s.snapshot, s.options.Village, now)
	return progress.Analyze(s.snapshot, s.catalog, tier, now, s.options)
}

func loadSession() (*session, error) {
	cat, err := loader.LoadCatalog(dataDir)
	if err != nil {
		return nil, err
	}
	snap, err := loader.LoadSnapshot(snapshotFile)
	if err != nil {
		return nil, err
	}

	s := &session{catalog: cat, snapshot: snap, now: time.Now()}
	if nowFlag != "" {
		if s.now, err = time.Parse(time.RFC3339, nowFlag); err != nil {
			return nil, fmt.Errorf("invalid --now: %w", err)
		}
	}

	if playerFile != "" {
		player, err := apimerge.LoadPlayer(playerFile)
		if err != nil {
			return nil, err
		}
		res, err := apimerge.Merge(snap, player, cat, s.now)
		if err != nil {
			return nil, err
		}
		s.snapshot = res.Snapshot
		s.warnings = append(s.warnings, res.Warnings...)
	}

	var cfg *models.Config
	if configFile != "" {
		if cfg, err = models.LoadConfig(configFile); err != nil {
			return nil, err
		}
	}
	s.options = progress.OptionsFromConfig(cfg)

	if villageFlag != "" {
		v, ok := models.ParseVillage(villageFlag)
		if !ok {
			return nil, fmt.Errorf("unknown village %q", villageFlag)
		}
		s.options.Village = v
	}
	if buildersFlag > 0 {
		s.options.Builders = buildersFlag
	}

	s.tier = progress.DetectTier(s.snapshot, s.options.Village, s.now)
	if s.tier == 0 {
		return nil, progress.ErrTierUndetectable
	}
	return s, nil
}

// mustSession loads the session or exits with a red error line
func mustSession() *session {
	s, err := loadSession()
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
	return s
}

// mustReport runs the analysis at the session instant or exits
func mustReport(s *session) *progress.Report {
	report, err := s.analyze(s.now)
	if err != nil {
		color.Red("Error analyzing snapshot: %v", err)
		os.Exit(1)
	}
	return report
}

func printTitle(report *progress.Report) {
	if quiet {
		return
	}
	titleColor := color.New(color.FgCyan, color.Bold)
	infoColor := color.New(color.FgYellow)

	titleColor.Println("\n╭───────────────────────────╮")
	titleColor.Println("│  Village Progress Tracker │")
	titleColor.Println("╰───────────────────────────╯")
	fmt.Println()

	name := report.Name
	if name == "" {
		name = "(unnamed)"
	}
	infoColor.Printf("🏰 %s %s, %s level %d\n", name, report.Tag, hallName(report.Village), report.Tier)
	infoColor.Printf("🔨 %d builders, %s data", report.Builders, report.Source)
	if len(report.APIArrays) > 0 {
		infoColor.Printf(" (live: %v)", report.APIArrays)
	}
	fmt.Println()
	if !report.SnapshotAt.IsZero() {
		infoColor.Printf("🕒 Exported %s, reconciled at %s\n",
			report.SnapshotAt.Format(time.RFC3339), report.GeneratedAt.UTC().Format(time.RFC3339))
	}
	fmt.Println()
}

func printWarnings(s *session, report *progress.Report) {
	if quiet {
		return
	}
	for _, w := range s.warnings {
		color.Yellow("Warning: %s", w)
	}
	for _, w := range report.Warnings {
		color.Yellow("Warning: %s", w)
	}
}

func hallName(v models.Village) string {
	if v == models.BuilderBase {
		return "Builder Hall"
	}
	return "Town Hall"
}
