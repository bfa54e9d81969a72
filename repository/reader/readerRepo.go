package readerrepo

import (
	"context"

	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/model"
)

// Mode biases which card the reader expects next. It is a register on the
// device, separate from the engine's own mode controller.
type Mode string

const (
	ModeUser   Mode = "user"
	ModeBook   Mode = "book"
	ModeNormal Mode = "normal"
)

type Repo interface {
	// Scan reads the single-slot scan register. An empty UID means no
	// new card since the slot was last cleared or expired.
	Scan(ctx context.Context) (model.ScanObservation, error)

	// SetMode writes the reader's capture-bias register.
	SetMode(ctx context.Context, m Mode) error

	// Clear invalidates the scan slot so a consumed UID cannot be
	// re-read by another poller.
	Clear(ctx context.Context) error
}
