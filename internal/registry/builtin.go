package registry

func init() {
	Register(Variant{
		ID:          "classic",
		Title:       "Classic",
		Description: "4x4 board, reach 2048",
		Rows:        4,
		Cols:        4,
		StartTiles:  2,
		Goal:        2048,
		SpawnFour:   0.3,
	})
	Register(Variant{
		ID:          "mini",
		Title:       "Mini",
		Description: "3x3 board, reach 256",
		Rows:        3,
		Cols:        3,
		StartTiles:  2,
		Goal:        256,
		SpawnFour:   0.3,
	})
	Register(Variant{
		ID:          "big",
		Title:       "Big",
		Description: "5x5 board, reach 4096",
		Rows:        5,
		Cols:        5,
		StartTiles:  3,
		Goal:        4096,
		SpawnFour:   0.3,
	})
	Register(Variant{
		ID:          "wide",
		Title:       "Wide",
		Description: "4x6 board, reach 2048",
		Rows:        4,
		Cols:        6,
		StartTiles:  2,
		Goal:        2048,
		SpawnFour:   0.3,
	})
}
