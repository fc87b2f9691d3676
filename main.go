package main

import (
	"os"

	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithFields(logger.Fields{
			"at":    "main",
			"error": err.Error(),
		}).Error("go_qcdb_failed")
		os.Exit(1)
	}
}
