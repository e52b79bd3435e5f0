package props

import (
	"context"
	"errors"
	"image/color"
	"log"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/ncruces/zenity"
)

// Target selects which property a picked color updates.
type Target int

const (
	TargetColor Target = iota
	TargetBackground
)

func (t Target) String() string {
	if t == TargetBackground {
		return KeyBackgroundColor
	}
	return KeyColor
}

type pickRequest struct {
	target  Target
	initial color.Color
}

// Picker opens a native color dialog on request and feeds the choice back
// as an Update. At most one dialog is open at a time.
type Picker struct {
	requests chan pickRequest

	// selectColor is zenity.SelectColor, swapped in tests.
	selectColor func(opts ...zenity.Option) (color.Color, error)
}

func NewPicker() *Picker {
	return &Picker{
		requests:    make(chan pickRequest, 1),
		selectColor: zenity.SelectColor,
	}
}

// Request asks for a dialog. It returns false if one is already pending.
func (p *Picker) Request(target Target, initial color.Color) bool {
	select {
	case p.requests <- pickRequest{target: target, initial: initial}:
		return true
	default:
		return false
	}
}

func (p *Picker) Run(ctx context.Context, emit func(Update)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-p.requests:
			c, err := p.selectColor(
				zenity.Context(ctx),
				zenity.Title("Pick "+req.target.String()),
				zenity.Color(req.initial),
			)
			if errors.Is(err, zenity.ErrCanceled) || ctx.Err() != nil {
				continue
			}
			if err != nil {
				log.Printf("props: color dialog for %s failed: %v", req.target, err)
				continue
			}
			picked, ok := colorful.MakeColor(c)
			if !ok {
				continue
			}
			var u Update
			if req.target == TargetBackground {
				u.Background = &picked
			} else {
				u.Color = &picked
			}
			emit(u)
		}
	}
}
