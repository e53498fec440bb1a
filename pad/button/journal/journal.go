package journal

import (
	"github.com/allape/openpad/pad/button"
	"github.com/sirupsen/logrus"
	"io"
	"os"
)

// Journal records every forwarded transition as one JSON line.
type Journal struct {
	Path string

	log  *logrus.Logger
	file *os.File
}

func (j *Journal) Open() error {
	if j.Path == "" {
		j.OpenWriter(os.Stdout)
		return nil
	}

	file, err := os.OpenFile(j.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	j.file = file
	j.OpenWriter(file)

	return nil
}

// OpenWriter is Open for an already opened sink.
func (j *Journal) OpenWriter(w io.Writer) {
	j.log = logrus.New()
	j.log.SetFormatter(&logrus.JSONFormatter{})
	j.log.SetLevel(logrus.InfoLevel)
	j.log.SetOutput(w)
}

func (j *Journal) Close() error {
	if j.file == nil {
		return nil
	}
	err := j.file.Close()
	j.file = nil
	return err
}

func (j *Journal) record(id button.ID, checked bool) {
	j.log.WithFields(logrus.Fields{
		"button":  int(id),
		"label":   id.String(),
		"checked": checked,
	}).Info("button state changed")
}

func (j *Journal) Press(id button.ID) error {
	j.record(id, true)
	return nil
}

func (j *Journal) Release(id button.ID) error {
	j.record(id, false)
	return nil
}
