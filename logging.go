package reel

import (
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// newLogger returns the default engine logger: text to stderr at warn level.
func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	return l
}

// SetLogger replaces the engine logger. The session field is kept.
func (e *Engine) SetLogger(l *logrus.Logger) {
	if l == nil {
		l = newLogger()
	}
	e.logger = l
	e.log = l.WithField("session", e.sessionID.String())
	if e.debug {
		l.SetLevel(logrus.DebugLevel)
	}
}

// SetDebugMode enables or disables debug logging of classifications, autoplay
// advances, viewer transitions and source rebuilds.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
	if enabled {
		e.logger.SetLevel(logrus.DebugLevel)
	} else if e.logger.GetLevel() == logrus.DebugLevel {
		e.logger.SetLevel(logrus.WarnLevel)
	}
}

// SessionID returns the id of this viewing session, attached to every log
// line.
func (e *Engine) SessionID() uuid.UUID {
	return e.sessionID
}

func (e *Engine) logGesture(g Gesture) {
	if !e.debug {
		return
	}
	e.log.WithFields(logrus.Fields{
		"kind":      g.Kind.String(),
		"direction": g.Direction.String(),
		"region":    g.Region.Name,
		"target":    g.Target,
		"x":         g.Position.X,
		"y":         g.Position.Y,
		"duration":  g.Duration,
	}).Debug("gesture classified")
}
