package handlers

// Ограничения на пользовательский ввод в диалогах
const (
	PasswordMinLength = 6
	NameMinLength     = 2
	NameMaxLength     = 100
	NotesMaxLength    = 500
	CommentMaxLength  = 1000

	// SkipToken позволяет пропустить необязательный шаг диалога
	SkipToken = "-"
)
