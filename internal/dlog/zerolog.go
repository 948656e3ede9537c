package dlog

import "github.com/rs/zerolog"

// ZerologProvider adapts a zerolog.Logger to Provider, for processes that
// want structured, leveled JSON trace output instead of the plain default.
type ZerologProvider struct {
	Log zerolog.Logger
}

var _ Provider = ZerologProvider{}

func (p ZerologProvider) Critical(format string, v ...interface{}) {
	p.Log.Error().Bool("critical", true).Msgf(format, v...)
}

func (p ZerologProvider) Error(format string, v ...interface{}) {
	p.Log.Error().Msgf(format, v...)
}

func (p ZerologProvider) Warn(format string, v ...interface{}) {
	p.Log.Warn().Msgf(format, v...)
}

func (p ZerologProvider) Debug(format string, v ...interface{}) {
	p.Log.Debug().Msgf(format, v...)
}
