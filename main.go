package main

import (
	"github.com/allape/gogger"
	"github.com/allape/openpad/config"
	"github.com/allape/openpad/factory"
	"github.com/allape/openpad/pad"
	"github.com/joho/godotenv"
	"os"
	"os/signal"
	"syscall"
)

var l = gogger.New("main")

func main() {
	err := godotenv.Load()
	if err != nil {
		l.Verbose().Println("no .env loaded:", err)
	}

	conf, err := config.GetConfig()
	if err != nil {
		l.Error().Println("get config:", err)
		os.Exit(1)
	}

	drivers, err := factory.DriversFromConfig(conf)
	if err != nil {
		l.Error().Println("drivers from config:", err)
		os.Exit(1)
	}
	defer func() {
		for _, d := range drivers {
			_ = d.Close()
		}
	}()

	server := pad.New(drivers, pad.Options{
		Sticky: conf.Pad.Sticky,
	})

	engine := SetupRouter(server, conf)

	go func() {
		err := engine.Run(conf.Websocket.Addr)
		l.Error().Println("http server stopped:", err)
		os.Exit(1)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	l.Info().Println("started on", conf.Websocket.Addr)
	sig := <-sigs
	l.Info().Println("exiting with", sig)
}
