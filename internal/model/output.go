package model

// OutputVideo captures the result of one ffmpeg run.
type OutputVideo struct {
	OutputPath string // Path of the produced file, relative to the working directory when the args were.
	Bytes      int64  // 0 if the file could not be stat'ed
	Args       []string
}
