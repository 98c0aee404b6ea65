package cmdutil

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Catch panics on any non-nil error.
func Catch(v ...interface{}) {
	CatchWithMsg("", v...)
}

// CatchWithMsg panics on any non-nil error with the provided message (if any).
func CatchWithMsg(msg string, v ...interface{}) {
	if err := firstErr(v); err != nil {
		if msg == "" {
			panic(err)
		}
		panic(fmt.Errorf("%s: %v", trimMsg(msg), err))
	}
}

// CatchWithLog calls Fatal on log for any non-nil error.
func CatchWithLog(log logrus.FieldLogger, msg string, v ...interface{}) {
	if err := firstErr(v); err != nil {
		log.WithError(err).Fatal(trimMsg(msg))
	}
}

func firstErr(v []interface{}) error {
	for _, val := range v {
		if err, ok := val.(error); ok && err != nil {
			return err
		}
	}
	return nil
}

func trimMsg(msg string) string {
	return strings.TrimSuffix(strings.TrimSpace(msg), ":")
}
