package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/allape/openpad/pad/button"
	"github.com/stretchr/testify/require"
)

func TestCommand(t *testing.T) {
	template := []string{"gpioset", "gpiochip0", "$PIN=1", "--label=$BUTTON"}

	cmd := Command(template, button.X, "17")
	require.Equal(t, []string{"gpioset", "gpiochip0", "17=1", "--label=X"}, cmd.Args)

	// the template is reused for every press
	require.Equal(t, "$PIN=1", template[2])

	require.Nil(t, Command(nil, button.A, "1"))
}

func TestButton(t *testing.T) {
	dir := t.TempDir()
	log := filepath.Join(dir, "presses")

	b := &Button{
		Pins: map[button.ID]string{
			button.A: "4",
			button.B: "5",
		},
		Commands: Commands{
			Press:   []string{"sh", "-c", "echo $BUTTON=$PIN:1 >> " + log},
			Release: []string{"sh", "-c", "echo $BUTTON=$PIN:0 >> " + log},
		},
	}

	require.NoError(t, b.Open())
	require.NoError(t, b.Press(button.A))
	require.NoError(t, b.Release(button.A))
	// unwired buttons are skipped
	require.NoError(t, b.Press(button.Y))

	content, err := os.ReadFile(log)
	require.NoError(t, err)
	require.Equal(t, "A=4:1\nA=4:0\n", string(content))
}

func TestButtonFailure(t *testing.T) {
	b := &Button{
		Pins:     map[button.ID]string{button.B: "1"},
		Commands: Commands{Press: []string{"sh", "-c", "echo no such pin >&2; exit 1"}},
	}
	err := b.Press(button.B)
	require.EqualError(t, err, "no such pin")

	require.Error(t, (&Button{}).Open())
}
