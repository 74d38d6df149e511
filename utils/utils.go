package utils

import (
	"fmt"
	"io"
	"log"
	"os"
)

func NewLog(dir, name string) *log.Logger {
	fileName := fmt.Sprintf("%s%s.log", dir, name)
	file, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		panic(err)
	}
	logger := log.New(file, "", log.LstdFlags|log.Lmicroseconds)
	return logger
}

// NewConsoleLog tees the log to stdout as well, for interactive runs.
func NewConsoleLog(dir, name string) *log.Logger {
	fileName := fmt.Sprintf("%s%s.log", dir, name)
	file, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		panic(err)
	}
	logger := log.New(io.MultiWriter(file, os.Stdout), "", log.LstdFlags|log.Lmicroseconds)
	return logger
}
