package media

import (
	"strings"
	"time"

	"ffwizard/internal/model"
)

// ContainerExt is the extension of every output file; the container is
// always MP4 regardless of the input.
const ContainerExt = ".mp4"

// DateLayout formats the optional date suffix (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// OutputBasename returns the trimmed base name, with "-YYYY-MM-DD" appended
// when the date is requested.
func OutputBasename(name model.OutputName, today time.Time) (string, error) {
	base := strings.TrimSpace(name.Base)
	if base == "" {
		return "", model.ErrInvalidOutputName
	}
	if name.IncludeDate {
		base += "-" + today.Format(DateLayout)
	}
	return base, nil
}

// OutputFilename is OutputBasename plus the container extension.
func OutputFilename(name model.OutputName, today time.Time) (string, error) {
	base, err := OutputBasename(name, today)
	if err != nil {
		return "", err
	}
	return base + ContainerExt, nil
}
