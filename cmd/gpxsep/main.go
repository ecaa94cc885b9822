package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Miitto/gpx-separator/internal/cmd/root"
)

func main() {
	cmd := root.NewCmdRoot()
	if err := cmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
