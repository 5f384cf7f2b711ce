package display

// WinMessages are shown when a goal is reached.
var WinMessages = []string{
	"AWESOME", "WELL DONE", "NICE PLAY", "BRILLIANT", "GREAT", "NEAT", "RIGHT ON",
	"FANTASTIC", "SUPERB", "EXCELLENT", "BRAVO", "CONGRATS", "WAY TO GO", "TERRIFIC",
}

// LossMessage is shown when no moves are left.
const LossMessage = "GAME OVER"

// Picker is the random source used to pick a message.
type Picker interface {
	Intn(n int) int
}

// WinMessage picks a congratulation. A nil picker returns the first one.
func WinMessage(p Picker) string {
	if p == nil {
		return WinMessages[0]
	}
	return WinMessages[p.Intn(len(WinMessages))]
}
