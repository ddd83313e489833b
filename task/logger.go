package task

import "github.com/sirupsen/logrus"

var (
	log       = logrus.WithField("module", "task")
	renderLog = logrus.WithField("module", "render")
)
