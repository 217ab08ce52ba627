package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator"
	"github.com/pelletier/go-toml/v2"

	"github.com/atomicstack/tmux-quicklaunch/internal/app"
	"github.com/atomicstack/tmux-quicklaunch/internal/catalog"
	"github.com/atomicstack/tmux-quicklaunch/internal/launch"
	"github.com/atomicstack/tmux-quicklaunch/internal/search"
	"github.com/atomicstack/tmux-quicklaunch/internal/ui"
	"github.com/atomicstack/tmux-quicklaunch/internal/window"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	// File is the configuration file that was read, if any.
	File  string
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envPrefix     = "TMUX_QUICKLAUNCH_"
	envSocketPath = envPrefix + "SOCKET"
	envWidth      = envPrefix + "WIDTH"
	envHeight     = envPrefix + "HEIGHT"
	envShowFooter = envPrefix + "FOOTER"
	envTrace      = envPrefix + "TRACE"
	envLogFile    = envPrefix + "LOG_FILE"
	envConfig     = envPrefix + "CONFIG"
	envEngine     = envPrefix + "ENGINE"
	envLimit      = envPrefix + "LIMIT"
	envRoots      = envPrefix + "ROOTS"
	envAppDirs    = envPrefix + "APP_DIRS"
	envMaxDepth   = envPrefix + "MAX_DEPTH"
	envLaunch     = envPrefix + "LAUNCH"
	envOpener     = envPrefix + "OPENER"
	envWindow     = envPrefix + "WINDOW"
	envPaneTarget = envPrefix + "PANE_TARGET"
	envResident   = envPrefix + "RESIDENT"
	envErrors     = envPrefix + "ERRORS"
	envDebounce   = envPrefix + "DEBOUNCE"
	envReindex    = envPrefix + "REINDEX"

	defaultConfigName = "config.toml"
	appName           = "tmux-quicklaunch"
)

// fileConfig mirrors the TOML file. Pointer fields distinguish keys that are
// absent from keys set to their zero value.
type fileConfig struct {
	Socket     *string  `toml:"socket"`
	Width      *int     `toml:"width"`
	Height     *int     `toml:"height"`
	Footer     *bool    `toml:"footer"`
	Trace      *bool    `toml:"trace"`
	LogFile    *string  `toml:"log-file"`
	Engine     *string  `toml:"engine"`
	Limit      *int     `toml:"limit"`
	Roots      []string `toml:"roots"`
	AppDirs    []string `toml:"app-dirs"`
	MaxDepth   *int     `toml:"max-depth"`
	Launch     *string  `toml:"launch"`
	Opener     *string  `toml:"opener"`
	Window     *string  `toml:"window"`
	PaneTarget *string  `toml:"pane-target"`
	Resident   *bool    `toml:"resident"`
	Errors     *string  `toml:"errors"`
	Debounce   *string  `toml:"debounce"`
	Reindex    *string  `toml:"reindex"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	crawl := catalog.DefaultOptions()
	return Config{
		App: app.Config{
			Engine:   search.EngineFuzzy,
			Limit:    search.DefaultLimit,
			Roots:    crawl.Roots,
			AppDirs:  crawl.AppDirs,
			MaxDepth: crawl.MaxDepth,
			Launch:   launch.ModeOpen,
			Window:   window.ModePopup,
			Resident: true,
			Errors:   ui.ErrorsLog,
			Debounce: ui.DefaultDebounce,
		},
	}
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Later sources
// override earlier ones: defaults, the TOML file, the environment, flags.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	cfg := Defaults()
	if pane, ok := env["TMUX_PANE"]; ok {
		cfg.App.PaneTarget = pane
	}

	path, explicit := configPath(args, env)
	if path != "" {
		found, err := applyFile(&cfg, path)
		if err != nil {
			return Config{}, err
		}
		if !found && explicit {
			return Config{}, fmt.Errorf("config file %s: %w", path, os.ErrNotExist)
		}
		if found {
			cfg.File = path
		}
	}

	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	a := cfg.App
	fs.String("config", path, "path to a TOML configuration file")
	socket := fs.String("socket", envOrDefault(env, envSocketPath, a.SocketPath), "path to the tmux socket (overrides environment detection)")
	width := fs.Int("width", envOrInt(env, envWidth, a.Width), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, a.Height), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, a.ShowFooter), "enable footer with index status and key hints")
	trace := fs.Bool("trace", envOrBool(env, envTrace, cfg.Logging.Trace), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, cfg.Logging.FilePath), "path to the log file")
	engine := fs.String("engine", envOrDefault(env, envEngine, a.Engine), "search engine: fuzzy or bleve")
	limit := fs.Int("limit", envOrInt(env, envLimit, a.Limit), "maximum number of results per query")
	roots := fs.String("roots", envOrDefault(env, envRoots, strings.Join(a.Roots, ",")), "comma-separated directories indexed for files")
	appDirs := fs.String("app-dirs", envOrDefault(env, envAppDirs, strings.Join(a.AppDirs, ",")), "comma-separated directories indexed for applications")
	maxDepth := fs.Int("max-depth", envOrInt(env, envMaxDepth, a.MaxDepth), "directory depth crawled below each root")
	launchMode := fs.String("launch", envOrDefault(env, envLaunch, a.Launch), "launch mode: open or tmux")
	opener := fs.String("opener", envOrDefault(env, envOpener, a.Opener), "command used to open entries (defaults to the platform opener)")
	windowMode := fs.String("window", envOrDefault(env, envWindow, a.Window), "window mode: popup or pane")
	paneTarget := fs.String("pane-target", envOrDefault(env, envPaneTarget, a.PaneTarget), "tmux pane hosting the overlay in pane mode")
	resident := fs.Bool("resident", envOrBool(env, envResident, a.Resident), "keep running after the overlay is hidden (pane mode)")
	errorsPolicy := fs.String("errors", envOrDefault(env, envErrors, a.Errors), "error surface: log or show")
	debounce := fs.Duration("debounce", envOrDuration(env, envDebounce, a.Debounce), "quiet period before a query is searched")
	reindex := fs.Duration("reindex", envOrDuration(env, envReindex, a.Reindex), "catalog re-crawl interval (0 crawls once)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.App = app.Config{
		SocketPath: *socket,
		Width:      *width,
		Height:     *height,
		ShowFooter: *footer,
		Engine:     strings.ToLower(strings.TrimSpace(*engine)),
		Limit:      *limit,
		Roots:      splitList(*roots),
		AppDirs:    splitList(*appDirs),
		MaxDepth:   *maxDepth,
		Reindex:    *reindex,
		Launch:     strings.ToLower(strings.TrimSpace(*launchMode)),
		Opener:     *opener,
		Window:     strings.ToLower(strings.TrimSpace(*windowMode)),
		PaneTarget: *paneTarget,
		Resident:   *resident,
		Errors:     strings.ToLower(strings.TrimSpace(*errorsPolicy)),
		Debounce:   *debounce,
	}
	cfg.Logging = Logging{FilePath: *logFile, Trace: *trace}
	cfg.Flags = map[string]string{
		"socket":     *socket,
		"width":      strconv.Itoa(*width),
		"height":     strconv.Itoa(*height),
		"footer":     strconv.FormatBool(*footer),
		"trace":      strconv.FormatBool(*trace),
		"logFile":    *logFile,
		"config":     cfg.File,
		"engine":     cfg.App.Engine,
		"limit":      strconv.Itoa(*limit),
		"roots":      strings.Join(cfg.App.Roots, ","),
		"appDirs":    strings.Join(cfg.App.AppDirs, ","),
		"maxDepth":   strconv.Itoa(*maxDepth),
		"launch":     cfg.App.Launch,
		"opener":     *opener,
		"window":     cfg.App.Window,
		"paneTarget": *paneTarget,
		"resident":   strconv.FormatBool(*resident),
		"errors":     cfg.App.Errors,
		"debounce":   debounce.String(),
		"reindex":    reindex.String(),
	}
	cfg.Args = append([]string(nil), args...)

	return cfg, nil
}

// configPath finds the configuration file named by -config or the
// environment, falling back to the user config directory. explicit reports
// whether the path was requested rather than defaulted.
func configPath(args []string, env map[string]string) (string, bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if value, ok := strings.CutPrefix(name, "config="); ok {
			return value, true
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1], true
		}
	}
	if v := strings.TrimSpace(env[envConfig]); v != "" {
		return v, true
	}
	base := env["XDG_CONFIG_HOME"]
	if base == "" {
		home := env["HOME"]
		if home == "" {
			return "", false
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appName, defaultConfigName), false
}

// applyFile overlays the TOML file at path onto cfg. A missing file is not
// an error; found reports whether it was read.
func applyFile(cfg *Config, path string) (found bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return true, fmt.Errorf("parse config %s: %w", path, err)
	}

	a := &cfg.App
	setString(&a.SocketPath, fc.Socket)
	setInt(&a.Width, fc.Width)
	setInt(&a.Height, fc.Height)
	setBool(&a.ShowFooter, fc.Footer)
	setBool(&cfg.Logging.Trace, fc.Trace)
	setString(&cfg.Logging.FilePath, fc.LogFile)
	setString(&a.Engine, fc.Engine)
	setInt(&a.Limit, fc.Limit)
	if fc.Roots != nil {
		a.Roots = expandHome(fc.Roots)
	}
	if fc.AppDirs != nil {
		a.AppDirs = expandHome(fc.AppDirs)
	}
	setInt(&a.MaxDepth, fc.MaxDepth)
	setString(&a.Launch, fc.Launch)
	setString(&a.Opener, fc.Opener)
	setString(&a.Window, fc.Window)
	setString(&a.PaneTarget, fc.PaneTarget)
	setBool(&a.Resident, fc.Resident)
	setString(&a.Errors, fc.Errors)
	if err := setDuration(&a.Debounce, fc.Debounce); err != nil {
		return true, fmt.Errorf("parse config %s: debounce: %w", path, err)
	}
	if err := setDuration(&a.Reindex, fc.Reindex); err != nil {
		return true, fmt.Errorf("parse config %s: reindex: %w", path, err)
	}
	return true, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(*v))
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

func expandHome(paths []string) []string {
	home, err := os.UserHomeDir()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if err == nil && (p == "~" || strings.HasPrefix(p, "~/")) {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
		out = append(out, p)
	}
	return out
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return expandHome(out)
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(useTOMLFieldNames)
	})
	return validate
}

// Validate checks value ranges and enumerations, then the combinations the
// struct tags cannot express.
func Validate(cfg Config) error {
	if err := structValidator().Struct(cfg.App); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			fe := validationErrs[0]
			switch fe.Tag() {
			case "oneof":
				return fmt.Errorf("%s must be one of [%s] (got %v)", fe.Field(), fe.Param(), fe.Value())
			case "gte", "lte":
				return fmt.Errorf("%s is out of range (got %v)", fe.Field(), fe.Value())
			}
		}
		return err
	}
	if cfg.App.Window == window.ModePane && strings.TrimSpace(cfg.App.PaneTarget) == "" {
		return errors.New("pane-target is required in pane mode (run inside tmux or pass -pane-target)")
	}
	return nil
}

func useTOMLFieldNames(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}
