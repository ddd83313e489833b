package trafficlight

import "github.com/sirupsen/logrus"

// log 信控策略模块的日志记录器
var log = logrus.WithField("module", "trafficlight")
