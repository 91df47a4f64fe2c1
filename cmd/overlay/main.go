// cmd/overlay/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"go-overlay/internal/app"
	"go-overlay/internal/config"
	"go-overlay/internal/logger"
)

var version = "v0.0.0"

// exitCode ends the process with a specific status.
type exitCode int

func (e exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

type payloadFlags struct {
	DataFile   string `help:"Read the payload from this file." type:"existingfile"`
	FromString string `help:"Use this string as the payload."`
}

func (p payloadFlags) read() (string, error) {
	return app.PayloadSource{
		DataFile:    p.DataFile,
		FromString:  p.FromString,
		Stdin:       os.Stdin,
		DefaultFile: app.DefaultDataPath(),
	}.Read()
}

type showCmd struct {
	payloadFlags
}

func (c *showCmd) Run(a *app.App) error {
	payload, err := c.read()
	if err != nil {
		return err
	}
	if code := a.RenderOverlay(payload); code != app.ExitOK {
		return exitCode(code)
	}
	return nil
}

type serveCmd struct {
	Listen string `help:"Control API address." default:"127.0.0.1:7865"`
	Pprof  bool   `help:"Expose /debug/pprof on the control API."`
}

func (c *serveCmd) Run(a *app.App) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return a.Serve(ctx, app.ServeOptions{Listen: c.Listen, Pprof: c.Pprof})
}

type snapshotCmd struct {
	payloadFlags
	Out    string  `help:"PNG file to write." required:""`
	Width  int     `help:"Display width in logical pixels." default:"1920"`
	Height int     `help:"Display height in logical pixels." default:"1080"`
	Scale  float64 `help:"Device pixel ratio of the source coordinates." default:"1"`
}

func (c *snapshotCmd) Run(a *app.App) error {
	payload, err := c.read()
	if err != nil {
		return err
	}

	f, err := os.Create(c.Out)
	if err != nil {
		return err
	}
	defer f.Close()

	return a.Snapshot(payload, app.SnapshotOptions{
		Width:  c.Width,
		Height: c.Height,
		Scale:  c.Scale,
	}, f)
}

type configGetCmd struct {
	Keys []string `arg:"" optional:"" help:"Keys to print; all when omitted."`
}

func (c *configGetCmd) Run(a *app.App) error {
	return a.PrintConfig(os.Stdout, c.Keys...)
}

type configSetCmd struct {
	Key   string `arg:"" help:"Setting name."`
	Value string `arg:"" help:"New value."`
}

func (c *configSetCmd) Run(a *app.App) error {
	return a.SetConfig(c.Key, c.Value)
}

type configSetColorCmd struct {
	Key   string `arg:"" enum:"text_color,stroke_color,background_color" help:"Color setting."`
	RGB   string `help:"Color without alpha, e.g. #ff8000. Keeps the current color when omitted."`
	Alpha uint8  `help:"Opacity, 0 to 255." default:"255"`
}

func (c *configSetColorCmd) Run(a *app.App) error {
	return a.SetColor(c.Key, c.RGB, c.Alpha)
}

type configCmd struct {
	Get      configGetCmd      `cmd:"" help:"Print settings."`
	Set      configSetCmd      `cmd:"" help:"Change a setting."`
	SetColor configSetColorCmd `cmd:"" help:"Change a color setting from RGB and alpha."`
}

var cli struct {
	ConfigPath string           `name:"config" help:"Path to the settings file." default:"${config_path}"`
	LogLevel   string           `help:"Log level." enum:"debug,info,warn,error" default:"info"`
	LogFile    string           `help:"Also write logs to this file."`
	Version    kong.VersionFlag `help:"Print version and exit."`

	Show     showCmd     `cmd:"" default:"withargs" help:"Show a payload until it is dismissed."`
	Serve    serveCmd    `cmd:"" help:"Keep an overlay window open, controlled over HTTP."`
	Snapshot snapshotCmd `cmd:"" help:"Render a payload to a PNG file."`
	Settings configCmd   `cmd:"" name:"config" help:"Read or change settings."`
}

func newLogger() (*logger.Logger, error) {
	level, err := logger.ParseLevel(cli.LogLevel)
	if err != nil {
		return nil, err
	}

	l := &logger.Logger{
		Level:        level,
		Destinations: []logger.Destination{logger.DestinationStdout},
	}
	if cli.LogFile != "" {
		l.Destinations = append(l.Destinations, logger.DestinationFile)
		l.File = cli.LogFile
	}
	return l, l.Initialize()
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("overlay"),
		kong.Description("Draws positioned text boxes over the screen."),
		kong.UsageOnError(),
		kong.Vars{
			"version":     version,
			"config_path": config.DefaultPath,
		})

	l, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERR: %s\n", err)
		os.Exit(app.ExitFailure)
	}

	a := app.New(config.Resolve(cli.ConfigPath), l)
	err = ctx.Run(a)
	l.Close()

	var code exitCode
	if errors.As(err, &code) {
		os.Exit(int(code))
	}
	ctx.FatalIfErrorf(err)
}
