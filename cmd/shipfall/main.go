package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/corvel/shipfall/core"
	"github.com/corvel/shipfall/event"
	"github.com/corvel/shipfall/material"
	"github.com/corvel/shipfall/parameter"
	"github.com/corvel/shipfall/shipdef"
	"github.com/corvel/shipfall/world"
)

type config struct {
	ShipPath     string
	MaterialsDir string
	Seed         int64
	LogFile      string
	LogLevel     string
	Parameters   parameter.Parameters
}

func loadConfig() (config, error) {
	v := viper.New()
	v.SetDefault("ship", "Ships/default.json")
	v.SetDefault("materials", "Data")
	v.SetDefault("seed", time.Now().UnixNano())
	v.SetDefault("log.file", "shipfall.log")
	v.SetDefault("log.level", "info")

	v.SetConfigName("shipfall")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.SetEnvPrefix("shipfall")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	return config{
		ShipPath:     v.GetString("ship"),
		MaterialsDir: v.GetString("materials"),
		Seed:         v.GetInt64("seed"),
		LogFile:      v.GetString("log.file"),
		LogLevel:     v.GetString("log.level"),
		Parameters:   loadParameters(v),
	}, nil
}

// loadParameters seeds the defaults and applies any overrides present in the
// config; World clamps them to their limits on every update.
func loadParameters(v *viper.Viper) parameter.Parameters {
	params := parameter.Defaults()

	overrides := map[string]*float64{
		"parameters.sea_depth":             &params.SeaDepth,
		"parameters.ocean_floor_bumpiness": &params.OceanFloorBumpiness,
		"parameters.wind_speed_base":       &params.WindSpeedBase,
		"parameters.basal_wave_height":     &params.BasalWaveHeightAdjustment,
		"parameters.spring_stiffness":      &params.SpringStiffnessAdjustment,
		"parameters.spring_strength":       &params.SpringStrengthAdjustment,
		"parameters.buoyancy":              &params.BuoyancyAdjustment,
		"parameters.water_intake":          &params.WaterIntakeAdjustment,
		"parameters.tsunami_rate":          &params.TsunamiRate,
		"parameters.rogue_wave_rate":       &params.RogueWaveRate,
	}
	for key, target := range overrides {
		if v.IsSet(key) {
			*target = v.GetFloat64(key)
		}
	}

	if v.IsSet("parameters.gust_modulation") {
		params.DoGustModulation = v.GetBool("parameters.gust_modulation")
	}
	if v.IsSet("parameters.ultra_violent") {
		params.UltraViolentMode = v.GetBool("parameters.ultra_violent")
	}
	return params
}

func newLogger(cfg config) (zerolog.Logger, func(), error) {
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("opening log file %s: %w", cfg.LogFile, err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()
	return log, func() { f.Close() }, nil
}

// eventLogger turns simulation events into log lines; the terminal viewer
// has no audio or UI sink for them.
type eventLogger struct {
	log zerolog.Logger
}

func (e *eventLogger) OnStress(m *material.Structural, isUnderwater bool, size int) {
	e.log.Debug().Str("material", m.Name).Bool("underwater", isUnderwater).Int("count", size).Msg("stress")
}

func (e *eventLogger) OnBreak(m *material.Structural, isUnderwater bool, size int) {
	e.log.Info().Str("material", m.Name).Bool("underwater", isUnderwater).Int("count", size).Msg("break")
}

func (e *eventLogger) OnDestroy(m *material.Structural, isUnderwater bool, size int) {
	e.log.Info().Str("material", m.Name).Bool("underwater", isUnderwater).Int("count", size).Msg("destroy")
}

func (e *eventLogger) OnShipLoaded(id core.ShipID, name string, pointCount int) {
	e.log.Info().Uint32("ship", uint32(id)).Str("name", name).Int("points", pointCount).Msg("ship loaded")
}

func (e *eventLogger) OnSinkingBegin(id core.ShipID) {
	e.log.Warn().Uint32("ship", uint32(id)).Msg("ship is sinking")
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	db, err := material.LoadDatabase(cfg.MaterialsDir)
	if err != nil {
		return fmt.Errorf("loading material database: %w", err)
	}

	def, err := shipdef.Load(cfg.ShipPath, db)
	if err != nil {
		return fmt.Errorf("loading ship: %w", err)
	}

	dispatcher := event.NewDispatcher()
	logger := &eventLogger{log: log}
	dispatcher.RegisterStructuralHandler(logger)
	dispatcher.RegisterLifecycleHandler(logger)

	w := world.New(cfg.Seed, dispatcher).WithLogger(log)
	if _, err := w.AddShip(def, db); err != nil {
		return fmt.Errorf("adding ship: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialising screen: %w", err)
	}

	// Restore the terminal before the panic output hits it
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\x1b[31mVIEWER CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	v := newViewer(screen, w, cfg.Parameters, log)
	v.run()

	log.Info().Float64("simulation_time", w.CurrentSimulationTime()).Msg("exiting")
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "shipfall: %v\n", err)
		os.Exit(1)
	}
}
