package shell

import (
	"errors"
	"github.com/allape/gogger"
	"github.com/allape/openpad/pad/button"
	"os/exec"
	"strings"
)

var l = gogger.New("pad.button.shell")

const (
	PinPlaceholder    = "$PIN"
	ButtonPlaceholder = "$BUTTON"
)

// Commands are argv templates, $PIN and $BUTTON are replaced before running.
type Commands struct {
	Open    []string
	Press   []string
	Release []string
}

type Button struct {
	Pins     map[button.ID]string
	Commands Commands
}

func Command(template []string, id button.ID, pin string) *exec.Cmd {
	if len(template) == 0 {
		return nil
	}

	args := make([]string, len(template))
	for i, segment := range template {
		segment = strings.ReplaceAll(segment, PinPlaceholder, pin)
		segment = strings.ReplaceAll(segment, ButtonPlaceholder, id.String())
		args[i] = segment
	}

	return exec.Command(args[0], args[1:]...)
}

func (b *Button) Exec(cmd *exec.Cmd) error {
	if cmd == nil {
		return nil
	}

	l.Verbose().Println("executing command:", cmd.String())

	bs, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(bs))

	l.Verbose().Println("output:", output)

	if err != nil {
		if output == "" {
			return err
		}
		return errors.New(output)
	}

	return nil
}

func (b *Button) run(template []string, id button.ID) error {
	pin, ok := b.Pins[id]
	if !ok || pin == "" {
		l.Verbose().Println("button", id, "is not wired")
		return nil
	}
	return b.Exec(Command(template, id, pin))
}

func (b *Button) Open() error {
	if len(b.Commands.Press) == 0 && len(b.Commands.Release) == 0 {
		return errors.New("neither press nor release command configured")
	}

	for _, id := range button.IDs {
		err := b.run(b.Commands.Open, id)
		if err != nil {
			return err
		}
	}

	return nil
}

func (b *Button) Close() error {
	return nil
}

func (b *Button) Press(id button.ID) error {
	return b.run(b.Commands.Press, id)
}

func (b *Button) Release(id button.ID) error {
	return b.run(b.Commands.Release, id)
}
