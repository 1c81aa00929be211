package renderer

import "fmt"

// Style selects how agents are drawn. It only affects drawing.
type Style uint8

const (
	StyleRealistic Style = iota
	StyleCartoon
	StylePixel
	numStyles
)

// ParseStyle maps a config name to a Style.
func ParseStyle(name string) (Style, error) {
	switch name {
	case "", "realistic":
		return StyleRealistic, nil
	case "cartoon":
		return StyleCartoon, nil
	case "pixel":
		return StylePixel, nil
	default:
		return StyleRealistic, fmt.Errorf("unknown style %q", name)
	}
}

func (s Style) String() string {
	switch s {
	case StyleCartoon:
		return "cartoon"
	case StylePixel:
		return "pixel"
	default:
		return "realistic"
	}
}

// Next returns the style after s, wrapping around.
func (s Style) Next() Style {
	return (s + 1) % numStyles
}
