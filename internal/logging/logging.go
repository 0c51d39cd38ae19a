package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// New returns a JSON logger at the named level. Unknown levels fall back to
// info.
func New(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
