package pad

import (
	"github.com/allape/openpad/pad/button"
	"slices"
)

type ChangedFunc func(id int, checked bool)

type ButtonState struct {
	ID      int    `json:"id"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
	Down    bool   `json:"down"`
}

type Snapshot struct {
	Sticky  bool          `json:"sticky"`
	Pressed []int         `json:"pressed"`
	Buttons []ButtonState `json:"buttons"`
}

// Group owns the four face buttons and keeps the set of checked ones.
// It is not safe for concurrent use, see Server for a serialized host.
type Group struct {
	buttons map[button.ID]*button.Button
	pressed map[button.ID]struct{}
	sticky  bool

	changed []ChangedFunc
}

func NewGroup(sticky bool) *Group {
	g := &Group{
		buttons: make(map[button.ID]*button.Button, len(button.IDs)),
		pressed: make(map[button.ID]struct{}, len(button.IDs)),
	}

	for _, id := range button.IDs {
		b := button.New(id)
		b.OnToggled(func(checked bool) {
			g.onToggled(id, checked)
		})
		g.buttons[id] = b
	}

	g.SetStickyMode(sticky)

	return g
}

// OnButtonStateChanged registers fn for every checked-state transition, in the order they occur.
func (g *Group) OnButtonStateChanged(fn ChangedFunc) {
	g.changed = append(g.changed, fn)
}

func (g *Group) onToggled(id button.ID, checked bool) {
	if checked {
		g.pressed[id] = struct{}{}
	} else {
		delete(g.pressed, id)
	}

	for _, fn := range g.changed {
		fn(int(id), checked)
	}
}

func (g *Group) Button(id button.ID) (*button.Button, error) {
	b, ok := g.buttons[id]
	if !ok {
		return nil, &button.NotFoundError{ID: id}
	}
	return b, nil
}

func (g *Group) StickyMode() bool {
	return g.sticky
}

// SetStickyMode switches every button; turning sticky mode off also resets the group.
func (g *Group) SetStickyMode(enabled bool) {
	g.sticky = enabled
	for _, id := range button.IDs {
		g.buttons[id].SetSticky(enabled)
	}
	if !enabled {
		g.ResetAll()
	}
}

func (g *Group) SetButtonChecked(id button.ID, checked bool) error {
	b, err := g.Button(id)
	if err != nil {
		return err
	}
	b.SetChecked(checked)
	return nil
}

func (g *Group) Press(id button.ID) error {
	b, err := g.Button(id)
	if err != nil {
		return err
	}
	b.Press()
	return nil
}

func (g *Group) Release(id button.ID) error {
	b, err := g.Button(id)
	if err != nil {
		return err
	}
	b.Release()
	return nil
}

func (g *Group) Cancel(id button.ID) error {
	b, err := g.Button(id)
	if err != nil {
		return err
	}
	b.Cancel()
	return nil
}

// PressedButtons returns the checked identities in ascending order.
func (g *Group) PressedButtons() []int {
	pressed := make([]int, 0, len(g.pressed))
	for id := range g.pressed {
		pressed = append(pressed, int(id))
	}
	slices.Sort(pressed)
	return pressed
}

// ResetAll clears checked and down on every button, even when nothing is checked,
// since a button can be held down without being checked.
func (g *Group) ResetAll() {
	for _, id := range button.IDs {
		g.buttons[id].Reset()
	}
	clear(g.pressed)
}

func (g *Group) Snapshot() Snapshot {
	s := Snapshot{
		Sticky:  g.sticky,
		Pressed: g.PressedButtons(),
		Buttons: make([]ButtonState, 0, len(button.IDs)),
	}
	for _, id := range button.IDs {
		b := g.buttons[id]
		s.Buttons = append(s.Buttons, ButtonState{
			ID:      int(id),
			Label:   id.String(),
			Checked: b.Checked(),
			Down:    b.Down(),
		})
	}
	return s
}
