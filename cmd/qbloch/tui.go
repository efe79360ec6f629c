package main

import (
	"context"
	"os"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-faster/errors"
	"github.com/oklog/run"
	"go.uber.org/zap"

	"qbloch/tui"
)

type tuiCmd struct {
	QASM string `long:"qasm" description:"QASM file to open instead of the setting file"`
}

func (c *tuiCmd) Execute(args []string) error {
	// stdout belongs to the terminal UI
	app.Conf.DisableStdoutLog = true
	logger := setLogger(app.Conf)
	defer logger.Sync()

	circ, err := loadCircuit(c.QASM, app.Conf.SettingPath, true)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := tea.NewProgram(
		tui.New(ctx, circ, app.Conf.SettingPath),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	var g run.Group
	g.Add(func() error {
		_, err := p.Run()
		return err
	}, func(error) {
		p.Quit()
	})
	g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))

	zap.L().Info("Starting tui", zap.Int("num_qubits", circ.NumQubits), zap.Int("gates", len(circ.Gates)))
	err = g.Run()
	var se run.SignalError
	if errors.As(err, &se) {
		zap.L().Info("Stopped by signal", zap.Stringer("signal", se.Signal))
		return nil
	}
	return err
}
