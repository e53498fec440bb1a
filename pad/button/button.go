package button

import (
	"github.com/allape/gogger"
	"io"
)

var l = gogger.New("pad.button")

// Driver receives the logical state of every face button, usually a device on the other end.
type Driver interface {
	io.Closer
	Open() error
	Press(id ID) error
	Release(id ID) error
}

type ToggledFunc func(checked bool)

// Button is a single face button.
//
// In momentary mode checked mirrors whether the button is held down.
// In sticky mode checked flips once per completed press-then-release.
type Button struct {
	id ID

	checked bool
	down    bool
	sticky  bool

	toggled []ToggledFunc
}

func New(id ID) *Button {
	return &Button{id: id}
}

func (b *Button) ID() ID {
	return b.id
}

func (b *Button) Checked() bool {
	return b.checked
}

func (b *Button) Down() bool {
	return b.down
}

func (b *Button) Sticky() bool {
	return b.sticky
}

// OnToggled registers fn to be called after every change of the checked state.
func (b *Button) OnToggled(fn ToggledFunc) {
	b.toggled = append(b.toggled, fn)
}

func (b *Button) Press() {
	b.down = true
	if !b.sticky {
		b.SetChecked(true)
	}
}

func (b *Button) Release() {
	if !b.down {
		return
	}
	b.down = false
	if b.sticky {
		b.SetChecked(!b.checked)
	} else {
		b.SetChecked(false)
	}
}

// Cancel ends an activation without completing it, e.g. the pointer left the button while held.
func (b *Button) Cancel() {
	if !b.down {
		return
	}
	b.down = false
	if !b.sticky {
		b.SetChecked(false)
	}
}

func (b *Button) SetChecked(checked bool) {
	if b.checked == checked {
		return
	}
	b.checked = checked

	l.Verbose().Println(b.id, "checked:", checked)

	for _, fn := range b.toggled {
		fn(checked)
	}
}

func (b *Button) SetSticky(enabled bool) {
	b.sticky = enabled
	if !enabled {
		b.SetChecked(false)
	}
}

func (b *Button) Reset() {
	b.SetChecked(false)
	b.down = false
}
