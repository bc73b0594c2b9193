package handlers

import (
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/callbacktypes"
)

// Handlers обрабатывает команды и текстовые сообщения (шаги диалогов)
type Handlers struct {
	deps *callbacktypes.Handler
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(deps *callbacktypes.Handler) *Handlers {
	return &Handlers{deps: deps}
}
