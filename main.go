package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/scene"
	"github.com/segmentio/encoding/json"
)

const version = "v0.3.0"

type config struct {
	Scene     string `cli:"" env:"HELIOTROPE_SCENE"      help:"Scene configuration file (JSON). Empty compiles the built-in default scene."`
	Output    string `cli:"" env:"HELIOTROPE_OUTPUT"     help:"Output directory for compiled kernel dictionaries. Empty writes to stdout."`
	Workers   int    `cli:"" env:"HELIOTROPE_WORKERS"    help:"Number of compilation workers (0 = one per CPU)."`
	Indent    bool   `cli:"" env:"HELIOTROPE_INDENT"     help:"Indent compiled dictionaries."`
	LogLevel  string `cli:"" env:"HELIOTROPE_LOG_LEVEL"  help:"Log level (debug|info|warning|error)."`
	LogIndent bool   `cli:"" env:"HELIOTROPE_LOG_INDENT" help:"Indent logs."`
	Version   bool   `cli:"" env:"-"                     help:"Show version."`
}

func main() {
	conf := config{
		LogLevel: logs.InfoLevel.String(),
	}

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Compiles declarative observation scene descriptions into kernel-ready dictionaries.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	sc, err := loadScene(conf.Scene)
	if err != nil {
		logs.Fatal(errors.New("loading scene failed").Wrap(err))
	}

	compiled, err := sc.CompileParallel(ctx, conf.Workers)
	if err != nil {
		logs.Fatal(errors.New("compiling scene failed").Wrap(err))
	}

	if err := emit(compiled, conf.Output, conf.Indent); err != nil {
		logs.Fatal(errors.New("writing compiled dictionaries failed").Wrap(err))
	}
}

func loadScene(path string) (*scene.Scene, error) {
	if path == "" {
		return scene.NewDefaultScene()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("reading scene configuration failed").
			WithTag("path", path).
			Wrap(err)
	}
	var cfg factory.Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.New("parsing scene configuration failed").
			WithTag("path", path).
			Wrap(err)
	}
	return scene.NewRegistries().FromConfig(cfg)
}

// emit writes one JSON document per compiled dictionary, either to stdout or
// to <output>/<measure>_<spectral key>.json
func emit(compiled []scene.Compiled, output string, indent bool) error {
	marshal := json.Marshal
	if indent {
		marshal = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}

	if output != "" {
		if err := os.MkdirAll(output, 0o755); err != nil {
			return err
		}
	}

	for _, c := range compiled {
		data, err := marshal(c.Dict)
		if err != nil {
			return errors.New("encoding dictionary failed").
				WithTag("measure", c.Measure).
				WithTag("spectral_key", c.Context.Key()).
				Wrap(err)
		}

		if output == "" {
			fmt.Println(string(data))
			continue
		}

		name := fmt.Sprintf("%s_%s.json", c.Measure, c.Context.Key())
		path := filepath.Join(output, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		logs.WithTag("path", path).Info("dictionary written")
	}
	return nil
}
