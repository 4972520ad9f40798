package log

import (
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var logger = newLogger(os.Stdout)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "ts",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "action",
		},
	})
	return l
}

// SetOutput redirects every entry, e.g. to tee into a log file.
func SetOutput(w io.Writer) { logger.SetOutput(w) }

// Writer returns the current sink.
func Writer() io.Writer { return logger.Out }

func write(level logrus.Level, kind string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	f := logrus.Fields{}
	if kind != "" {
		f["kind"] = kind
	}
	if len(fields) > 0 {
		f["fields"] = fields
	}
	if c != nil {
		f["ip"] = c.IP()
		f["method"] = c.Method()
		f["path"] = c.Path()
		if st := c.Response().StatusCode(); st != 0 {
			f["status"] = st
		}
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			f["req_id"] = rid
		}
		if a, ok := c.Locals("actor_id").(string); ok && a != "" {
			f["user_id"] = a
		}
	}
	if err != nil {
		f["err"] = err.Error()
	}
	logger.WithFields(f).Log(level, action)
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(logrus.InfoLevel, "", c, action, nil, fields)
}

// Audit records a state change made by staff.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(logrus.InfoLevel, "audit", c, action, nil, fields)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(logrus.WarnLevel, "security", c, action, nil, fields)
}

func Warn(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(logrus.WarnLevel, "", c, action, err, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(logrus.ErrorLevel, "", c, action, err, fields)
}
