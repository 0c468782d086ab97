package media

import "github.com/google/uuid"

// Namer generates file names for temporary and permanent copies. It is
// injectable so tests can use deterministic names.
type Namer interface {
	TempName(userName, ext string) string
	PhotoName(userName, ext string) string
}

// UUIDNamer keeps the user-name prefix for readability but draws the
// unique part from a random UUID instead of a timestamp.
type UUIDNamer struct{}

func (UUIDNamer) TempName(userName, ext string) string {
	return userName + "-" + uuid.NewString() + ext
}

func (UUIDNamer) PhotoName(userName, ext string) string {
	return userName + "-compress-" + uuid.NewString() + ext
}
