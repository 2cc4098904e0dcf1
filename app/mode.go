package app

import "fmt"

// Mode selects which processing path the display shows. The pipelines all
// exist from startup; switching modes only changes which one is stepped
// and resets it so stale in-flight state never reaches the screen.
type Mode uint8

const (
	ModePassthrough Mode = iota
	ModeIdentity
	ModeGaussian
	ModeSobelX
	ModeSobelY
	ModeEdge

	modeCount
)

func (m Mode) String() string {
	switch m {
	case ModePassthrough:
		return "raw"
	case ModeIdentity:
		return "identity"
	case ModeGaussian:
		return "blur"
	case ModeSobelX:
		return "sobel-x"
	case ModeSobelY:
		return "sobel-y"
	case ModeEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// next cycles through the modes in button order.
func (m Mode) next() Mode {
	return (m + 1) % modeCount
}

// ParseMode maps a mode name (as printed by String) back to its value.
func ParseMode(name string) (Mode, error) {
	for m := Mode(0); m < modeCount; m++ {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("app: unknown mode %q", name)
}
