package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/allape/openpad/pad"
	"github.com/allape/openpad/pad/button"
	"github.com/stretchr/testify/require"
)

func TestDraw(t *testing.T) {
	g := pad.NewGroup(false)
	require.NoError(t, g.SetButtonChecked(button.B, true))

	img, err := Draw(g.Snapshot(), DefaultSize)
	require.NoError(t, err)
	require.Equal(t, DefaultSize, img.Bounds().Dx())
	require.Equal(t, DefaultSize, img.Bounds().Dy())

	file, err := os.Create(filepath.Join(t.TempDir(), "pad.png"))
	require.NoError(t, err)
	defer func() {
		_ = file.Close()
	}()
	require.NoError(t, png.Encode(file, img))
}

func TestDrawPressedIsDarker(t *testing.T) {
	g := pad.NewGroup(false)

	released, err := Draw(g.Snapshot(), DefaultSize)
	require.NoError(t, err)

	require.NoError(t, g.Press(button.A))
	pressed, err := Draw(g.Snapshot(), DefaultSize)
	require.NoError(t, err)

	// above the label, inside the body in both states
	x, y, radius := Center(button.A, DefaultSize)
	px, py := int(x), int(y-radius*0.7)

	_, releasedGreen, _, _ := released.At(px, py).RGBA()
	_, pressedGreen, _, _ := pressed.At(px, py).RGBA()
	if pressedGreen >= releasedGreen {
		t.Fatalf("Expected pressed body darker than %d, got %d", releasedGreen, pressedGreen)
	}

	// other buttons are untouched
	bx, by, bRadius := Center(button.B, DefaultSize)
	require.Equal(t, released.At(int(bx), int(by-bRadius*0.7)), pressed.At(int(bx), int(by-bRadius*0.7)))
}

func TestDrawMinSize(t *testing.T) {
	img, err := Draw(pad.Snapshot{}, 1)
	require.NoError(t, err)
	require.Equal(t, MinSize, img.Bounds().Dx())
}

func TestDrawMaxSize(t *testing.T) {
	img, err := Draw(pad.Snapshot{}, 100_000)
	require.NoError(t, err)
	require.Equal(t, MaxSize, img.Bounds().Dx())
	require.Equal(t, MaxSize, img.Bounds().Dy())
}
