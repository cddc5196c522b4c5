package logger

import (
	"log"
	"os"
)

var (
	// Default logger writes to stderr
	std = log.New(os.Stderr, "[ngm] ", log.LstdFlags)
)

func SetOutput(output *os.File) {
	std.SetOutput(output)
}

func Printf(format string, v ...any) {
	std.Printf(format, v...)
}

func Println(v ...any) {
	std.Println(v...)
}

func Fatal(v ...any) {
	std.Fatal(v...)
}

func Fatalf(format string, v ...any) {
	std.Fatalf(format, v...)
}
