// Package main provides the CLI entrypoint for parcours.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/parcours/internal/api"
	"github.com/verte-zerg/parcours/internal/catalog"
	"github.com/verte-zerg/parcours/internal/config"
	"github.com/verte-zerg/parcours/internal/journey"
	"github.com/verte-zerg/parcours/internal/logger"
	"github.com/verte-zerg/parcours/internal/model"
	"github.com/verte-zerg/parcours/internal/navigation"
	"github.com/verte-zerg/parcours/internal/questions"
	"github.com/verte-zerg/parcours/internal/report"
	"github.com/verte-zerg/parcours/internal/store"
	"github.com/verte-zerg/parcours/internal/tracker"
	"github.com/verte-zerg/parcours/internal/tui"
)

const (
	defaultSplash          = "2.5s"
	defaultAdvanceDelay    = "500ms"
	defaultQuestionTimeout = "0s"
	defaultReveal          = "always"
	defaultAPITimeout      = "3s"
	defaultLogLevel        = "info"
	defaultServeLogMode    = "prod"
)

var (
	flowSplash          string
	flowAdvanceDelay    string
	flowQuestionTimeout string
	flowReveal          string
	flowAPIURL          string
	flowAPITimeout      string
	flowLogLevel        string

	serveAddr     string
	serveDB       string
	serveOrigins  []string
	serveLogMode  string
	serveLogLevel string

	journeyLevel     string
	journeyIntention string
	journeyRythme    string
	journeyStyle     string
	journeyJSON      bool

	rankClicks  []string
	rankHovers  []string
	rankElapsed int
	rankJSON    bool

	questionsListMode string
	questionsAddMode  string
	questionsDB       string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "parcours",
		Short:         "Adaptive learning journeys in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runFlowCmd,
	}

	rootCmd.Flags().StringVar(&flowSplash, "splash", defaultSplash, "title screen duration (0 to skip)")
	rootCmd.Flags().StringVar(&flowAdvanceDelay, "advance-delay", defaultAdvanceDelay, "delay between a submitted answer and the next step")
	rootCmd.Flags().StringVar(&flowQuestionTimeout, "question-timeout", defaultQuestionTimeout, "skip unanswered questions after this long (0 disables)")
	rootCmd.Flags().StringVar(&flowReveal, "reveal", defaultReveal, "mode visibility policy (always, staged)")
	rootCmd.Flags().StringVar(&flowAPIURL, "api-url", "", "question API base URL (empty uses the built-in bank)")
	rootCmd.Flags().StringVar(&flowAPITimeout, "api-timeout", defaultAPITimeout, "question API request timeout")
	rootCmd.Flags().StringVar(&flowLogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newJourneyCmd())
	rootCmd.AddCommand(newRankCmd())
	rootCmd.AddCommand(newQuestionsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runFlowCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "splash", &flowSplash, fileCfg.Flow.Splash)
	applyStringConfig(cmd, "advance-delay", &flowAdvanceDelay, fileCfg.Flow.AdvanceDelay)
	applyStringConfig(cmd, "question-timeout", &flowQuestionTimeout, fileCfg.Flow.QuestionTimeout)
	applyStringConfig(cmd, "reveal", &flowReveal, fileCfg.Flow.Reveal)
	applyStringConfig(cmd, "api-url", &flowAPIURL, fileCfg.Questions.APIURL)
	applyStringConfig(cmd, "api-timeout", &flowAPITimeout, fileCfg.Questions.Timeout)
	applyStringConfig(cmd, "log-level", &flowLogLevel, fileCfg.Log.Level)

	splash, err := config.ParseDuration("splash", flowSplash)
	if err != nil {
		return err
	}
	advance, err := config.ParseDuration("advance-delay", flowAdvanceDelay)
	if err != nil {
		return err
	}
	questionTimeout, err := config.ParseDuration("question-timeout", flowQuestionTimeout)
	if err != nil {
		return err
	}
	apiTimeout, err := config.ParseDuration("api-timeout", flowAPITimeout)
	if err != nil {
		return err
	}

	logPath := config.DefaultLogPath()
	if fileCfg.Log.File != nil && *fileCfg.Log.File != "" {
		logPath = *fileCfg.Log.File
	}
	log, err := logger.New(logger.Options{Mode: stringOr(fileCfg.Log.Mode, ""), Level: flowLogLevel, File: logPath})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	var source questions.Source = questions.NewStatic(cat.Bank)
	if strings.TrimSpace(flowAPIURL) != "" {
		source = questions.WithFallback(questions.NewRemote(flowAPIURL, apiTimeout), source, log)
	}

	flowModel := tui.NewModel(tui.Options{
		Catalog:         cat,
		Questions:       source,
		Policy:          navigation.PolicyFor(flowReveal),
		Splash:          splash,
		AdvanceDelay:    advance,
		QuestionTimeout: questionTimeout,
		Log:             log,
	})
	program := tea.NewProgram(flowModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the question API",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", api.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&serveDB, "db", "", "question database path (default: XDG data dir)")
	cmd.Flags().StringSliceVar(&serveOrigins, "origin", nil, "allowed CORS origin (repeatable, * for any)")
	cmd.Flags().StringVar(&serveLogMode, "log-mode", defaultServeLogMode, "log encoding (dev, prod)")
	cmd.Flags().StringVar(&serveLogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	envErr := godotenv.Load()
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "addr", &serveAddr, envAddr())
	applyStringConfig(cmd, "db", &serveDB, envString("PARCOURS_DB"))
	applyStringConfig(cmd, "addr", &serveAddr, fileCfg.Server.Addr)
	applyStringConfig(cmd, "db", &serveDB, fileCfg.Server.DB)
	applySliceConfig(cmd, "origin", &serveOrigins, fileCfg.Server.AllowedOrigins)
	applyStringConfig(cmd, "log-mode", &serveLogMode, fileCfg.Log.Mode)
	applyStringConfig(cmd, "log-level", &serveLogLevel, fileCfg.Log.Level)

	log, err := logger.New(logger.Options{Mode: serveLogMode, Level: serveLogLevel})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()
	if envErr != nil && !os.IsNotExist(envErr) {
		log.Warn("failed to load .env", "error", envErr)
	}

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	st, err := openStore(serveDB)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Error("failed to close db", "error", cerr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seeded, err := st.SeedIfEmpty(ctx, cat.Questions)
	if err != nil {
		return fmt.Errorf("failed to seed questions: %w", err)
	}
	if seeded {
		log.Info("question bank seeded", "modes", sortedKeys(cat.Questions))
	}

	srv := api.New(api.Config{
		Addr:           serveAddr,
		AllowedOrigins: serveOrigins,
		Questions:      st,
		Items:          cat.Items(),
		Log:            log,
	})
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("api server failed: %w", err)
	}
	log.Info("api stopped")
	return nil
}

func newJourneyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journey",
		Short: "Print the journey generated for a set of answers",
		Args:  cobra.NoArgs,
		RunE:  runJourneyCmd,
	}
	cmd.Flags().StringVar(&journeyLevel, "level", model.LevelDebutant, "debutant, intermediaire or avance")
	cmd.Flags().StringVar(&journeyIntention, "intention", model.IntentionComprendre, "comprendre, voir, pratiquer or explorer")
	cmd.Flags().StringVar(&journeyRythme, "rythme", model.RythmeAuto, "doucement, rapidement or auto")
	cmd.Flags().StringVar(&journeyStyle, "style", model.StyleExemples, "exemples, explications, videos or pratique")
	cmd.Flags().BoolVar(&journeyJSON, "json", false, "print JSON")
	return cmd
}

func runJourneyCmd(cmd *cobra.Command, _ []string) error {
	j := journey.Generate(model.JourneyAnswers{
		Level:     journeyLevel,
		Intention: journeyIntention,
		Rythme:    journeyRythme,
		Style:     journeyStyle,
	})
	if journeyJSON {
		return writeJSON(cmd.OutOrStdout(), j)
	}
	if err := report.Journey(cmd.OutOrStdout(), j, report.TerminalWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newRankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank the navigation modes for simulated behaviour",
		Args:  cobra.NoArgs,
		RunE:  runRankCmd,
	}
	cmd.Flags().StringArrayVar(&rankClicks, "click", nil, "clicked item id (repeatable, in order)")
	cmd.Flags().StringArrayVar(&rankHovers, "hover", nil, "hover as id=milliseconds (repeatable)")
	cmd.Flags().IntVar(&rankElapsed, "elapsed", 0, "seconds since the session started")
	cmd.Flags().BoolVar(&rankJSON, "json", false, "print JSON")
	return cmd
}

func runRankCmd(cmd *cobra.Command, _ []string) error {
	if rankElapsed < 0 {
		return fmt.Errorf("--elapsed must be >= 0")
	}
	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	hovers, err := parseHovers(rankHovers)
	if err != nil {
		return err
	}
	for _, id := range rankClicks {
		if _, ok := cat.Item(id); !ok {
			return fmt.Errorf("unknown item %q", id)
		}
	}
	rec := simulateSession(cat, hovers, rankClicks, time.Duration(rankElapsed)*time.Second)
	res := navigation.Rank(cat.Items(), rec)
	if rankJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	if err := report.Ranking(cmd.OutOrStdout(), res, report.TerminalWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

type hover struct {
	id string
	d  time.Duration
}

func parseHovers(values []string) ([]hover, error) {
	out := make([]hover, 0, len(values))
	for _, v := range values {
		id, ms, ok := strings.Cut(v, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid --hover value %q (want id=milliseconds)", v)
		}
		n, err := strconv.ParseInt(strings.TrimSpace(ms), 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid --hover duration %q", ms)
		}
		out = append(out, hover{id: id, d: time.Duration(n) * time.Millisecond})
	}
	return out, nil
}

// simulateSession replays hovers and clicks through a tracker on a virtual
// clock, then advances it to elapsed.
func simulateSession(cat *catalog.Catalog, hovers []hover, clicks []string, elapsed time.Duration) model.BehavioralRecord {
	epoch := time.Unix(0, 0)
	now := epoch
	t := tracker.New(tracker.WithClock(func() time.Time { return now }))
	t.Start()
	for _, h := range hovers {
		now = epoch
		t.TrackHoverStart(h.id)
		now = epoch.Add(h.d)
		t.TrackHoverEnd(h.id)
	}
	now = epoch
	for _, id := range clicks {
		item, _ := cat.Item(id)
		t.TrackClick(id, map[string]string{"type": item.Type})
	}
	now = epoch.Add(elapsed)
	t.Tick()
	rec := t.Snapshot()
	t.Dispose()
	return rec
}

func newQuestionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Manage the served question bank",
	}
	cmd.PersistentFlags().StringVar(&questionsDB, "db", "", "question database path (default: XDG data dir)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored questions",
		Args:  cobra.NoArgs,
		RunE:  runQuestionsListCmd,
	}
	list.Flags().StringVar(&questionsListMode, "mode", "", "mode filter")

	add := &cobra.Command{
		Use:   "add TEXT",
		Short: "Append a question to a mode bank",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runQuestionsAddCmd,
	}
	add.Flags().StringVar(&questionsAddMode, "mode", store.GeneralMode, "target mode")

	cmd.AddCommand(list, add)
	return cmd
}

func runQuestionsListCmd(cmd *cobra.Command, _ []string) error {
	st, err := openSeededStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore(st)

	qs, err := st.List(cmd.Context(), questionsListMode)
	if err != nil {
		return fmt.Errorf("failed to list questions: %w", err)
	}
	if err := report.Questions(cmd.OutOrStdout(), qs, report.TerminalWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runQuestionsAddCmd(cmd *cobra.Command, args []string) error {
	st, err := openSeededStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore(st)

	id, err := st.AddQuestion(cmd.Context(), questionsAddMode, strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("failed to add question: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Added question %d\n", id); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func openStore(path string) (*store.Store, error) {
	if strings.TrimSpace(path) == "" {
		path = config.DefaultDBPath()
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

// openSeededStore opens the question database the way serve does, so that
// edits start from the built-in bank.
func openSeededStore(ctx context.Context) (*store.Store, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	path := questionsDB
	if path == "" {
		fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		path = stringOr(fileCfg.Server.DB, "")
	}
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	st, err := openStore(path)
	if err != nil {
		return nil, err
	}
	if _, err := st.SeedIfEmpty(ctx, cat.Questions); err != nil {
		closeStore(st)
		return nil, fmt.Errorf("failed to seed questions: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# parcours configuration
# Uncomment a value to enable it. CLI flags override config values.

[flow]
# splash = %q              # Title screen duration (0 to skip)
# advance-delay = %q     # Delay between a submitted answer and the next step
# question-timeout = %q     # Skip unanswered questions after this long (0 disables)
# reveal = %q          # Mode visibility policy: always or staged

[questions]
# api-url = "http://localhost:3001"   # Question API; the built-in bank is used when unreachable
# timeout = %q               # Question API request timeout

[server]
# addr = %q                     # Listen address for parcours serve
# allowed-origins = ["http://localhost:5173"]
# db = %q

[log]
# mode = "dev"                # dev or prod encoding
# level = %q               # debug, info, warn, error
# file = %q
`,
		defaultSplash,
		defaultAdvanceDelay,
		defaultQuestionTimeout,
		defaultReveal,
		defaultAPITimeout,
		api.DefaultAddr,
		config.DefaultDBPath(),
		defaultLogLevel,
		config.DefaultLogPath(),
	)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applySliceConfig(cmd *cobra.Command, name string, target, value *[]string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), (*value)...)
}

// envAddr maps PORT to a listen address.
func envAddr() *string {
	port := envString("PORT")
	if port == nil {
		return nil
	}
	addr := ":" + *port
	return &addr
}

func envString(name string) *string {
	value, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	value = strings.TrimSpace(value)
	return &value
}

func stringOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
