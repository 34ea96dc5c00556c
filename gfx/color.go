package gfx

import (
	"image/color"
	"strings"
)

// Color is a packed 24-bit RGB pixel value.
//
// The zero value is Black, which is also the framebuffer default.
type Color struct {
	R, G, B uint8
}

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// RGBA returns c as an opaque image/color value.
func (c Color) RGBA() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF} }

// Hex formats c as "#rrggbb".
func (c Color) Hex() string {
	const digits = "0123456789abcdef"
	b := [7]byte{'#'}
	for i, ch := range [3]uint8{c.R, c.G, c.B} {
		b[1+i*2] = digits[ch>>4]
		b[2+i*2] = digits[ch&0x0F]
	}
	return string(b[:])
}

// ColorByName looks up a preset by name. Case, spaces, dashes and
// underscores are ignored, so "dark_cyan" and "DarkCyan" both resolve.
func ColorByName(name string) (Color, bool) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(name))
	c, ok := named[key]
	return c, ok
}

var (
	// Basic colors
	Black   = Color{0, 0, 0}
	White   = Color{255, 255, 255}
	Red     = Color{255, 0, 0}
	Green   = Color{0, 255, 0}
	Blue    = Color{0, 0, 255}
	Cyan    = Color{0, 255, 255}
	Magenta = Color{255, 0, 255}
	Yellow  = Color{255, 255, 0}

	// Pink colors
	MediumVioletRed = Color{199, 21, 133}
	DeepPink        = Color{255, 20, 147}
	PaleVioletRed   = Color{219, 112, 147}
	HotPink         = Color{255, 105, 180}
	LightPink       = Color{255, 182, 193}
	Pink            = Color{255, 192, 203}

	// Red colors
	DarkRed     = Color{139, 0, 0}
	Firebrick   = Color{178, 34, 34}
	Crimson     = Color{220, 20, 60}
	IndianRed   = Color{205, 92, 92}
	LightCoral  = Color{240, 128, 128}
	Salmon      = Color{250, 128, 114}
	DarkSalmon  = Color{233, 150, 122}
	LightSalmon = Color{255, 160, 122}

	// Orange colors
	OrangeRed  = Color{255, 69, 0}
	Tomato     = Color{255, 99, 71}
	DarkOrange = Color{255, 140, 0}
	Coral      = Color{255, 127, 80}
	Orange     = Color{255, 165, 0}

	// Yellow colors
	DarkKhaki            = Color{189, 183, 107}
	Gold                 = Color{255, 215, 0}
	Khaki                = Color{240, 230, 140}
	PeachPuff            = Color{255, 218, 185}
	PaleGoldenrod        = Color{238, 232, 170}
	Moccasin             = Color{255, 228, 181}
	PapayaWhip           = Color{255, 239, 213}
	LightGoldenrodYellow = Color{250, 250, 210}
	LemonChiffon         = Color{255, 250, 205}
	LightYellow          = Color{255, 255, 224}

	// Brown colors
	Maroon         = Color{128, 0, 0}
	Brown          = Color{165, 42, 42}
	SaddleBrown    = Color{139, 69, 19}
	Sienna         = Color{160, 82, 45}
	Chocolate      = Color{210, 105, 30}
	DarkGoldenrod  = Color{184, 134, 11}
	Peru           = Color{205, 133, 63}
	RosyBrown      = Color{188, 143, 143}
	Goldenrod      = Color{218, 165, 32}
	SandyBrown     = Color{244, 164, 96}
	Tan            = Color{210, 180, 140}
	Burlywood      = Color{222, 184, 135}
	Wheat          = Color{245, 222, 179}
	NavajoWhite    = Color{255, 222, 173}
	Bisque         = Color{255, 228, 196}
	BlanchedAlmond = Color{255, 235, 205}
	Cornsilk       = Color{255, 248, 220}

	// Green colors
	DarkGreen         = Color{0, 100, 0}
	DarkOliveGreen    = Color{85, 107, 47}
	ForestGreen       = Color{34, 139, 34}
	SeaGreen          = Color{46, 139, 87}
	Olive             = Color{128, 128, 0}
	OliveDrab         = Color{107, 142, 35}
	MediumSeaGreen    = Color{60, 179, 113}
	LimeGreen         = Color{50, 205, 50}
	Lime              = Color{0, 255, 0}
	SpringGreen       = Color{0, 255, 127}
	MediumSpringGreen = Color{0, 250, 154}
	DarkSeaGreen      = Color{143, 188, 143}
	MediumAquamarine  = Color{102, 205, 170}
	YellowGreen       = Color{154, 205, 50}
	LawnGreen         = Color{124, 252, 0}
	Chartreuse        = Color{127, 255, 0}
	LightGreen        = Color{144, 238, 144}
	GreenYellow       = Color{173, 255, 47}
	PaleGreen         = Color{152, 251, 152}

	// Cyan colors
	Teal            = Color{0, 128, 128}
	DarkCyan        = Color{0, 139, 139}
	LightSeaGreen   = Color{32, 178, 170}
	CadetBlue       = Color{95, 158, 160}
	DarkTurquoise   = Color{0, 206, 209}
	MediumTurquoise = Color{72, 209, 204}
	Turquoise       = Color{64, 224, 208}
	Aqua            = Color{0, 255, 255}
	Aquamarine      = Color{127, 255, 212}
	PaleTurquoise   = Color{175, 238, 238}
	LightCyan       = Color{224, 255, 255}

	// Blue colors
	Navy           = Color{0, 0, 128}
	DarkBlue       = Color{0, 0, 139}
	MediumBlue     = Color{0, 0, 205}
	MidnightBlue   = Color{25, 25, 112}
	RoyalBlue      = Color{65, 105, 225}
	SteelBlue      = Color{70, 130, 180}
	DodgerBlue     = Color{30, 144, 255}
	DeepSkyBlue    = Color{0, 191, 255}
	CornflowerBlue = Color{100, 149, 237}
	SkyBlue        = Color{135, 206, 235}
	LightSkyBlue   = Color{135, 206, 250}
	LightSteelBlue = Color{176, 196, 222}
	LightBlue      = Color{173, 216, 230}
	PowderBlue     = Color{176, 224, 230}

	// Purple, violet, and magenta colors
	Indigo          = Color{75, 0, 130}
	DarkMagenta     = Color{139, 0, 139}
	DarkViolet      = Color{148, 0, 211}
	DarkSlateBlue   = Color{72, 61, 139}
	BlueViolet      = Color{138, 43, 226}
	DarkOrchid      = Color{153, 50, 204}
	Fuchsia         = Color{255, 0, 255}
	SlateBlue       = Color{106, 90, 205}
	MediumSlateBlue = Color{123, 104, 238}
	MediumOrchid    = Color{186, 85, 211}
	MediumPurple    = Color{147, 112, 219}
	Orchid          = Color{218, 112, 214}
	Violet          = Color{238, 130, 238}
	Plum            = Color{221, 160, 221}
	Thistle         = Color{216, 191, 216}
	Lavender        = Color{230, 230, 250}

	// White colors
	MistyRose     = Color{255, 228, 225}
	AntiqueWhite  = Color{250, 235, 215}
	Linen         = Color{250, 240, 230}
	Beige         = Color{245, 245, 220}
	WhiteSmoke    = Color{245, 245, 245}
	LavenderBlush = Color{255, 240, 245}
	OldLace       = Color{253, 245, 230}
	AliceBlue     = Color{240, 248, 255}
	Seashell      = Color{255, 245, 238}
	GhostWhite    = Color{248, 248, 255}
	Honeydew      = Color{240, 255, 240}
	FloralWhite   = Color{255, 250, 240}
	Azure         = Color{240, 255, 255}
	MintCream     = Color{245, 255, 250}
	Snow          = Color{255, 250, 250}
	Ivory         = Color{255, 255, 240}

	// Gray and black colors
	DarkSlateGray  = Color{47, 79, 79}
	DimGray        = Color{105, 105, 105}
	SlateGray      = Color{112, 128, 144}
	Gray           = Color{128, 128, 128}
	LightSlateGray = Color{119, 136, 153}
	DarkGray       = Color{169, 169, 169}
	Silver         = Color{192, 192, 192}
	LightGray      = Color{211, 211, 211}
	Gainsboro      = Color{220, 220, 220}
)

var named = map[string]Color{
	"black":                Black,
	"white":                White,
	"red":                  Red,
	"green":                Green,
	"blue":                 Blue,
	"cyan":                 Cyan,
	"magenta":              Magenta,
	"yellow":               Yellow,
	"mediumvioletred":      MediumVioletRed,
	"deeppink":             DeepPink,
	"palevioletred":        PaleVioletRed,
	"hotpink":              HotPink,
	"lightpink":            LightPink,
	"pink":                 Pink,
	"darkred":              DarkRed,
	"firebrick":            Firebrick,
	"crimson":              Crimson,
	"indianred":            IndianRed,
	"lightcoral":           LightCoral,
	"salmon":               Salmon,
	"darksalmon":           DarkSalmon,
	"lightsalmon":          LightSalmon,
	"orangered":            OrangeRed,
	"tomato":               Tomato,
	"darkorange":           DarkOrange,
	"coral":                Coral,
	"orange":               Orange,
	"darkkhaki":            DarkKhaki,
	"gold":                 Gold,
	"khaki":                Khaki,
	"peachpuff":            PeachPuff,
	"palegoldenrod":        PaleGoldenrod,
	"moccasin":             Moccasin,
	"papayawhip":           PapayaWhip,
	"lightgoldenrodyellow": LightGoldenrodYellow,
	"lemonchiffon":         LemonChiffon,
	"lightyellow":          LightYellow,
	"maroon":               Maroon,
	"brown":                Brown,
	"saddlebrown":          SaddleBrown,
	"sienna":               Sienna,
	"chocolate":            Chocolate,
	"darkgoldenrod":        DarkGoldenrod,
	"peru":                 Peru,
	"rosybrown":            RosyBrown,
	"goldenrod":            Goldenrod,
	"sandybrown":           SandyBrown,
	"tan":                  Tan,
	"burlywood":            Burlywood,
	"wheat":                Wheat,
	"navajowhite":          NavajoWhite,
	"bisque":               Bisque,
	"blanchedalmond":       BlanchedAlmond,
	"cornsilk":             Cornsilk,
	"darkgreen":            DarkGreen,
	"darkolivegreen":       DarkOliveGreen,
	"forestgreen":          ForestGreen,
	"seagreen":             SeaGreen,
	"olive":                Olive,
	"olivedrab":            OliveDrab,
	"mediumseagreen":       MediumSeaGreen,
	"limegreen":            LimeGreen,
	"lime":                 Lime,
	"springgreen":          SpringGreen,
	"mediumspringgreen":    MediumSpringGreen,
	"darkseagreen":         DarkSeaGreen,
	"mediumaquamarine":     MediumAquamarine,
	"yellowgreen":          YellowGreen,
	"lawngreen":            LawnGreen,
	"chartreuse":           Chartreuse,
	"lightgreen":           LightGreen,
	"greenyellow":          GreenYellow,
	"palegreen":            PaleGreen,
	"teal":                 Teal,
	"darkcyan":             DarkCyan,
	"lightseagreen":        LightSeaGreen,
	"cadetblue":            CadetBlue,
	"darkturquoise":        DarkTurquoise,
	"mediumturquoise":      MediumTurquoise,
	"turquoise":            Turquoise,
	"aqua":                 Aqua,
	"aquamarine":           Aquamarine,
	"paleturquoise":        PaleTurquoise,
	"lightcyan":            LightCyan,
	"navy":                 Navy,
	"darkblue":             DarkBlue,
	"mediumblue":           MediumBlue,
	"midnightblue":         MidnightBlue,
	"royalblue":            RoyalBlue,
	"steelblue":            SteelBlue,
	"dodgerblue":           DodgerBlue,
	"deepskyblue":          DeepSkyBlue,
	"cornflowerblue":       CornflowerBlue,
	"skyblue":              SkyBlue,
	"lightskyblue":         LightSkyBlue,
	"lightsteelblue":       LightSteelBlue,
	"lightblue":            LightBlue,
	"powderblue":           PowderBlue,
	"indigo":               Indigo,
	"darkmagenta":          DarkMagenta,
	"darkviolet":           DarkViolet,
	"darkslateblue":        DarkSlateBlue,
	"blueviolet":           BlueViolet,
	"darkorchid":           DarkOrchid,
	"fuchsia":              Fuchsia,
	"slateblue":            SlateBlue,
	"mediumslateblue":      MediumSlateBlue,
	"mediumorchid":         MediumOrchid,
	"mediumpurple":         MediumPurple,
	"orchid":               Orchid,
	"violet":               Violet,
	"plum":                 Plum,
	"thistle":              Thistle,
	"lavender":             Lavender,
	"mistyrose":            MistyRose,
	"antiquewhite":         AntiqueWhite,
	"linen":                Linen,
	"beige":                Beige,
	"whitesmoke":           WhiteSmoke,
	"lavenderblush":        LavenderBlush,
	"oldlace":              OldLace,
	"aliceblue":            AliceBlue,
	"seashell":             Seashell,
	"ghostwhite":           GhostWhite,
	"honeydew":             Honeydew,
	"floralwhite":          FloralWhite,
	"azure":                Azure,
	"mintcream":            MintCream,
	"snow":                 Snow,
	"ivory":                Ivory,
	"darkslategray":        DarkSlateGray,
	"dimgray":              DimGray,
	"slategray":            SlateGray,
	"gray":                 Gray,
	"lightslategray":       LightSlateGray,
	"darkgray":             DarkGray,
	"silver":               Silver,
	"lightgray":            LightGray,
	"gainsboro":            Gainsboro,
}
