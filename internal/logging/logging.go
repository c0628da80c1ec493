// Package logging configura el logger estándar del proceso.
package logging

import (
	"io"
	"log"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup envía el log estándar a stderr y, si file no está vacío, también a
// un archivo rotado. El io.Closer devuelto cierra el archivo.
func Setup(file string) io.Closer {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	file = strings.TrimSpace(file)
	if file == "" {
		log.SetOutput(os.Stderr)
		return io.NopCloser(nil)
	}

	rotating := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotating))
	return rotating
}
