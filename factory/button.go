package factory

import (
	"errors"
	"fmt"
	"github.com/allape/openpad/config"
	"github.com/allape/openpad/pad/button"
	"github.com/allape/openpad/pad/button/journal"
	"github.com/allape/openpad/pad/button/serialport"
	"github.com/allape/openpad/pad/button/shell"
)

func OutputFromConfig(conf config.Config) (bd button.Driver, err error) {
	switch conf.Output.Type {
	case "", config.OutputNone:
		l.Warn().Println("output driver is none, button states stay in the browser")
		return nil, nil
	case config.OutputSerialPort:
		if conf.Output.Src == "" {
			return nil, errors.New("serial port of output is empty")
		}
		sd, err := SerialFromConfig(conf)
		if err != nil {
			return nil, err
		}
		bd = &serialport.Button{
			Pins: conf.Output.Pins(),
			Port: sd,
		}
	case config.OutputShell:
		l.Info().Println("output driver is shell:", conf.Output.Shell)
		bd = &shell.Button{
			Pins: conf.Output.Pins(),
			Commands: shell.Commands{
				Open:    conf.Output.Shell.Open,
				Press:   conf.Output.Shell.Press,
				Release: conf.Output.Shell.Release,
			},
		}
	default:
		return nil, fmt.Errorf("unknown output driver: %s", conf.Output.Type)
	}

	err = bd.Open()
	if err != nil {
		return nil, err
	}

	return bd, nil
}

func JournalFromConfig(conf config.Config) (button.Driver, error) {
	if !conf.Journal.Enabled {
		return nil, nil
	}

	j := &journal.Journal{Path: conf.Journal.Path}
	err := j.Open()
	if err != nil {
		return nil, err
	}

	return j, nil
}

// DriversFromConfig opens every configured driver, already opened ones are closed again on failure.
func DriversFromConfig(conf config.Config) ([]button.Driver, error) {
	var drivers []button.Driver

	output, err := OutputFromConfig(conf)
	if err != nil {
		return nil, fmt.Errorf("output from config: %w", err)
	}
	if output != nil {
		drivers = append(drivers, output)
	}

	j, err := JournalFromConfig(conf)
	if err != nil {
		for _, d := range drivers {
			_ = d.Close()
		}
		return nil, fmt.Errorf("journal from config: %w", err)
	}
	if j != nil {
		drivers = append(drivers, j)
	}

	return drivers, nil
}
