package server

import (
	"fmt"
	"strings"
	"sync"

	"list-blitz/internal/engine"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	maxNameLength   = 20
	maxPackIDLength = 64
)

var knownIntents = map[engine.Intent]struct{}{
	engine.IntentStart:      {},
	engine.IntentIncrement:  {},
	engine.IntentDecrement:  {},
	engine.IntentPassTurn:   {},
	engine.IntentNextPlayer: {},
	engine.IntentNextRound:  {},
	engine.IntentNextMatch:  {},
	engine.IntentEditScore:  {},
	engine.IntentRestart:    {},
}

var validatorOnce sync.Once

func registerValidators() {
	validatorOnce.Do(func() {
		validate, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = validate.RegisterValidation("mode", func(fl validator.FieldLevel) bool {
			_, err := parseModeField(fl.Field().String())
			return err == nil
		})
		_ = validate.RegisterValidation("intent", func(fl validator.FieldLevel) bool {
			_, ok := knownIntents[parseIntent(fl.Field().String())]
			return ok
		})
		_ = validate.RegisterValidation("playername", func(fl validator.FieldLevel) bool {
			_, err := validateName(fl.Field().String())
			return err == nil
		})
		_ = validate.RegisterValidation("packid", func(fl validator.FieldLevel) bool {
			_, err := validatePackID(fl.Field().String())
			return err == nil
		})
	})
}

func parseModeField(raw string) (engine.GameMode, error) {
	return engine.ParseMode(raw)
}

func parseIntent(raw string) engine.Intent {
	return engine.Intent(strings.ToLower(strings.TrimSpace(raw)))
}

// validateName accepts an empty name, which resets the player to the default.
func validateName(name string) (string, error) {
	trimmed := normalizeText(name)
	if trimmed == "" {
		return "", nil
	}
	return validateText("name", trimmed, maxNameLength)
}

func validatePackID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) > maxPackIDLength {
		return "", fmt.Errorf("pack_id must be %d characters or fewer", maxPackIDLength)
	}
	for _, r := range trimmed {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '_' {
			continue
		}
		return "", fmt.Errorf("pack_id contains unsupported characters")
	}
	return trimmed, nil
}

func validateText(label, text string, maxLen int) (string, error) {
	trimmed := normalizeText(text)
	if trimmed == "" {
		return "", fmt.Errorf("%s is required", label)
	}
	if len(trimmed) > maxLen {
		return "", fmt.Errorf("%s must be %d characters or fewer", label, maxLen)
	}
	if !isSafeText(trimmed) {
		return "", fmt.Errorf("%s contains unsupported characters", label)
	}
	return trimmed, nil
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}

func isSafeText(text string) bool {
	for _, r := range text {
		if r > 127 {
			return false
		}
		if r >= 'a' && r <= 'z' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			continue
		}
		if r >= '0' && r <= '9' {
			continue
		}
		switch r {
		case ' ', '-', '_', '\'', '.', '!', '?', '&':
			continue
		default:
			return false
		}
	}
	return true
}
