package main

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"github.com/allape/gogger"
	"github.com/allape/openpad/config"
	"github.com/allape/openpad/factory"
	"github.com/allape/openpad/pad/button"
	"github.com/allape/openpad/pad/button/serialport"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

// padmon talks to the pad firmware directly, bypassing the server.
// Usage: padmon [openpad.toml], then type commands:
//
//	open          send the pin setup frames
//	press a       press a button
//	release a     release a button
//	0xff020301    send raw bytes

var l = gogger.New("padmon")

type Action string

const (
	ActionOpen    Action = "open"
	ActionPress   Action = "press"
	ActionRelease Action = "release"
	ActionRaw     Action = "raw"
)

type Command struct {
	Action Action
	ID     button.ID
	Raw    []byte
}

func ParseCommand(text string) (Command, error) {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "0x") {
		raw, err := hex.DecodeString(strings.ReplaceAll(text[2:], " ", ""))
		if err != nil {
			return Command{}, fmt.Errorf("invalid hex string: %w", err)
		}
		return Command{Action: ActionRaw, Raw: raw}, nil
	}

	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return Command{}, errors.New("empty command")
	}

	switch action := Action(fields[0]); action {
	case ActionOpen:
		if len(fields) != 1 {
			return Command{}, errors.New("open takes no argument")
		}
		return Command{Action: action}, nil
	case ActionPress, ActionRelease:
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("usage: %s <button>", action)
		}
		id, err := button.ParseID(fields[1])
		if err != nil {
			return Command{}, err
		}
		return Command{Action: action, ID: id}, nil
	default:
		return Command{}, fmt.Errorf("unknown command: %s", fields[0])
	}
}

func run(b *serialport.Button, cmd Command) error {
	switch cmd.Action {
	case ActionOpen:
		return b.Open()
	case ActionPress:
		return b.Press(cmd.ID)
	case ActionRelease:
		return b.Release(cmd.ID)
	case ActionRaw:
		l.Info().Println("> 0x" + hex.EncodeToString(cmd.Raw))
		_, err := b.Port.Write(cmd.Raw)
		return err
	}
	return fmt.Errorf("unsupported action: %s", cmd.Action)
}

func main() {
	conf, err := config.GetConfig()
	if err != nil {
		l.Error().Println("get config:", err)
		os.Exit(1)
	}
	if conf.Output.Src == "" {
		l.Error().Println("output.src is empty, nothing to monitor")
		os.Exit(1)
	}

	sd, err := factory.SerialFromConfig(conf)
	if err != nil {
		l.Error().Println("serial from config:", err)
		os.Exit(1)
	}
	sd.OnLine = func(line string) {
		fmt.Println("<", line)
	}
	defer func() {
		_ = sd.Close()
	}()

	b := &serialport.Button{
		Pins: conf.Output.Pins(),
		Port: sd,
	}

	go func() {
		reader := bufio.NewReader(os.Stdin)
		for {
			text, err := reader.ReadString('\n')
			if err != nil {
				l.Error().Println("fail to read from stdin:", err)
				return
			}

			cmd, err := ParseCommand(text)
			if err != nil {
				l.Warn().Println(err)
				continue
			}

			err = run(b, cmd)
			if err != nil {
				l.Error().Println(cmd.Action, "error:", err)
			}
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	l.Info().Println("awaiting commands")
	sig := <-sigs
	l.Info().Println("exiting with", sig)
}
