package game

const WindowTitle = "CAR-RACE"

// Font atlas layout, rasterised from basicfont.Face7x13 (ASCII 32-127).
const (
	FontCellW  = 7
	FontCellH  = 13
	FontAscent = 11
	FontCols   = 16
	FontRows   = 6
	FontFirst  = 32
	FontAtlasW = FontCellW * FontCols // 112
	FontAtlasH = FontCellH * FontRows // 78
)

// Text sizes in world pixels per font pixel.
const (
	HUDScale    = 2.0
	BannerScale = 3.0
	BannerPad   = 14 // screen px around the banner text
)
