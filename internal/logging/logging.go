package logging

import (
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"fotolab/internal/config"
)

// Writer returns the destination for process and request logs: stdout, plus
// a rotated file when cfg.File is set. The returned closer flushes the file.
func Writer(cfg config.LogConfig) (io.Writer, io.Closer) {
	writers := []io.Writer{os.Stdout}
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		writers = append(writers, fileWriter)
		closer = fileWriter
	}

	return io.MultiWriter(writers...), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
