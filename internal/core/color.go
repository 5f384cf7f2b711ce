package core

// Color is a terminal colour understood by lipgloss: an ANSI index such as
// "245" or a hex value such as "#3c3a32". The empty string means the
// terminal default.
type Color string

// Interface colours.
const (
	ColorDefault Color = ""
	ColorGray    Color = "245"
	ColorDark    Color = "#3c3a32"
	ColorLight   Color = "#f9f6f2"
	ColorRed     Color = "9"
	ColorGreen   Color = "10"
	ColorYellow  Color = "11"

	// ColorBoard is the background of an empty cell.
	ColorBoard Color = "#cdc1b4"
)

// tilePalette holds tile backgrounds by value. Values past the end of the
// palette reuse the last entry.
var tilePalette = []struct {
	value int
	bg    Color
}{
	{2, "#d3e9fe"},
	{4, "#bbddfd"},
	{8, "#a3d2fd"},
	{16, "#8bc6fc"},
	{32, "#72bafc"},
	{64, "#5aaffb"},
	{128, "#42a3fb"},
	{256, "#2b97fa"},
	{512, "#128cfa"},
	{1024, "#047ff0"},
	{2048, "#0473d8"},
	{4096, "#0366c0"},
	{8192, "#0359a8"},
	{16384, "#286d89"},
	{32768, "#135a79"},
	{65536, "#024c90"},
	{131072, "#023f78"},
}

// TileColors returns the background and foreground for a tile value.
// Zero yields the empty-cell colours.
func TileColors(value int) (bg, fg Color) {
	if value <= 0 {
		return ColorBoard, ColorDark
	}

	bg = tilePalette[len(tilePalette)-1].bg
	for _, p := range tilePalette {
		if value <= p.value {
			bg = p.bg
			break
		}
	}

	// Small values sit on pale blues and need dark text.
	if value <= 4 {
		return bg, ColorDark
	}
	return bg, ColorLight
}
