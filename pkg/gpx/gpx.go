// Package gpx splits a GPX document into waypoint, route and track documents.
//
// The source is never parsed into a tree. It is cut into a flat token sequence
// and each token is routed either to a single category stream or to all three,
// with one indentation state shared by every stream.
package gpx

import (
	"github.com/sirupsen/logrus"
)

var fLogger logrus.FieldLogger = logrus.NewEntry(logrus.New())

// SetLogger configures a logrus.FieldLogger for the package.
func SetLogger(l logrus.FieldLogger) { fLogger = l }
