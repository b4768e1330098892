package listctl

import "github.com/rs/zerolog/log"

// Notifier receives the single user-visible notification each completed
// mutation produces. The host UI maps this onto its toast system.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier is the default Notifier, writing to the global logger.
type LogNotifier struct{}

func (LogNotifier) Success(msg string) {
	log.Info().Str("notice", "success").Msg(msg)
}

func (LogNotifier) Error(msg string) {
	log.Warn().Str("notice", "error").Msg(msg)
}
