// Package logging provides the leveled logging facade used throughout the
// EUDR client.
//
// Callers depend only on the Logger interface. Two implementations exist:
// a structured backend over logrus and a plain console fallback writing
// key=value lines to an io.Writer. The variant is selected once at
// construction; there is no runtime switching.
//
// The default logger's level is taken from the EUDR_LOG_LEVEL environment
// variable, falling back to warn when the variable is absent or names an
// unknown level.
package logging
