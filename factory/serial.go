package factory

import (
	"github.com/allape/openpad/config"
	"github.com/allape/openpad/pad/serial"
)

const DefaultBaud = 9600

func SerialFromConfig(conf config.Config) (*serial.Driver, error) {
	baud, err := conf.Output.Ext.GetBaud(DefaultBaud)
	if err != nil {
		return nil, err
	}

	warmup, err := conf.Output.Ext.GetWarmup(serial.DefaultWarmup)
	if err != nil {
		return nil, err
	}

	l.Info().Printf("serial port: %s @ %d", conf.Output.Src, baud)

	sd := serial.New(conf.Output.Src, baud)
	sd.Warmup = warmup

	return sd, nil
}
