package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

func Info(title, message string) error {
	return beeep.Notify(title, message, "")
}

func Alert(message string) error {
	return beeep.Alert("NoteVault", message, "")
}

// FormatOverduePrompt builds the reminder shown when routines pass their due
// date without being completed.
func FormatOverduePrompt(overdue int) (string, string) {
	title := "Routine reminder"
	noun := "routines"
	if overdue == 1 {
		noun = "routine"
	}
	msg := fmt.Sprintf("You have %d overdue %s. Keep the streak going?", overdue, noun)
	return title, msg
}
