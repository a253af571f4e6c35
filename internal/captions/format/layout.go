package format

// AnchorPoint is the point of a caption window pinned to its position.
//
//	0 ======== 1 ======== 2
//	|                     |
//	3          4          5
//	|                     |
//	6 ======== 7 ======== 8
type AnchorPoint uint8

const (
	AnchorTopLeft AnchorPoint = iota
	AnchorTopCenter
	AnchorTopRight
	AnchorCenterLeft
	AnchorCenter
	AnchorCenterRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight
)

func (a AnchorPoint) Valid() bool { return a <= AnchorBottomRight }

func (a AnchorPoint) String() string {
	switch a {
	case AnchorTopLeft:
		return "top-left"
	case AnchorTopCenter:
		return "top-center"
	case AnchorTopRight:
		return "top-right"
	case AnchorCenterLeft:
		return "center-left"
	case AnchorCenter:
		return "center"
	case AnchorCenterRight:
		return "center-right"
	case AnchorBottomLeft:
		return "bottom-left"
	case AnchorBottomCenter:
		return "bottom-center"
	case AnchorBottomRight:
		return "bottom-right"
	}
	return "invalid"
}

// ScrollDirection of text inside a window.
type ScrollDirection uint8

const (
	ScrollLTR ScrollDirection = iota
	ScrollRTL
)

func (s ScrollDirection) Valid() bool { return s <= ScrollRTL }

// PrintDirection of glyphs inside a window.
type PrintDirection uint8

const (
	PrintLTRHorizontal PrintDirection = iota
	PrintRTLHorizontal
	// PrintVerticalLTR lays glyphs of vertical scripts upright.
	PrintVerticalLTR
	// PrintVerticalRTL lays text out horizontally, then rotates the line 90° clockwise.
	PrintVerticalRTL
)

func (p PrintDirection) Valid() bool { return p <= PrintVerticalRTL }

// TextAlignment inside a window. Start and End are left and right in LTR scripts.
type TextAlignment uint8

const (
	AlignStart TextAlignment = iota
	AlignEnd
	AlignCenter
	AlignJustify
)

func (t TextAlignment) Valid() bool { return t <= AlignJustify }
