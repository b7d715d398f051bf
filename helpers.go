package main

import (
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

func endIfErr(e error) {
	if e != nil {
		log.Fatalln(e)
	}
}

// stem is the file name without its directory or final extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
