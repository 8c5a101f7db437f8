// Package automock generates mock implementations of traits, impl blocks,
// free-function modules and extern blocks written in the declaration
// language.
package automock

import (
	"log/slog"

	engine "github.com/KimMachineGun/automock/internal/automock"
)

// Diagnostic is an expansion failure anchored to the offending source span.
type Diagnostic = engine.Diagnostic

var defaultEngine = engine.New()

// Expand mocks item, the declaration carrying the automock attribute, as
// configured by attr, the attribute's arguments. On failure the returned
// error is a *Diagnostic.
func Expand(attr, item string) (string, error) {
	return defaultEngine.ExpandSource(attr, item)
}

// ExpandWithLogger is Expand with the strategy choices traced to logger.
func ExpandWithLogger(logger *slog.Logger, attr, item string) (string, error) {
	return engine.New(engine.WithLogger(logger)).ExpandSource(attr, item)
}
