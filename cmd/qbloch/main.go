package main

import (
	"fmt"
	"os"

	"github.com/go-faster/errors"
	flags "github.com/jessevdk/go-flags"
	"github.com/massn/envordot"
	"go.uber.org/zap"

	"qbloch/circuit"
	"qbloch/conf"
	"qbloch/log"
)

var parser *flags.Parser
var app *App

func init() {
	if err := envordot.Load(false, ".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Not found \".env\" file. Use only environment variables. Reason:%s\n", err.Error())
	}
	app = &App{}
	setParser(app)
}

type App struct {
	Conf *conf.Conf
}

func setParser(app *App) {
	parser = flags.NewParser(app, flags.Default)
	parser.ShortDescription = "qbloch"
	parser.LongDescription = "state-vector simulator for circuits of up to five qubits."
	parser.AddCommand("run", "simulate a circuit", "simulate a circuit from a QASM file or the setting file and print the final state", &runCmd{})
	parser.AddCommand("tui", "interactive editor", "edit a circuit interactively and watch its state", &tuiCmd{})
}

func parse() {
	if _, err := parser.Parse(); err != nil {
		code := 1
		if fe, ok := err.(*flags.Error); ok {
			if fe.Type == flags.ErrHelp {
				code = 0
			}
		}
		if code == 1 {
			fmt.Fprintf(os.Stderr, "failed to parse flags, because %s\n", err)
		}
		os.Exit(code)
	}
}

func main() {
	parse()
}

func setLogger(c *conf.Conf) *zap.Logger {
	logger, err := log.Setup(c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logger. Reason:%s\n", err)
		os.Exit(1)
	}
	return logger
}

// loadCircuit reads qasmPath when set and the setting file otherwise. A
// missing setting file yields the default empty circuit when allowMissing is
// set.
func loadCircuit(qasmPath, settingPath string, allowMissing bool) (*circuit.Circuit, error) {
	if qasmPath != "" {
		b, err := os.ReadFile(qasmPath)
		if err != nil {
			return nil, errors.Wrap(err, "read qasm")
		}
		c, err := circuit.ParseQASM(string(b))
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", qasmPath)
		}
		return c, nil
	}
	s, err := conf.LoadSetting(settingPath)
	if errors.Is(err, os.ErrNotExist) && allowMissing {
		zap.L().Info("Setting file not found, starting empty", zap.String("path", settingPath))
		s, err = conf.NewSetting(), nil
	}
	if err != nil {
		return nil, err
	}
	return s.BuildCircuit()
}
