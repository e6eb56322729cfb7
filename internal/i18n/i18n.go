package i18n

import "strings"

type Language string

const (
	Portuguese Language = "pt"
	English    Language = "en"
)

type Messages struct {
	// Structured text labels
	ContentLabel      string
	IntroductionLabel string
	ProcedureLabel    string
	StepLabel         string
	PartLabel         string
	ConclusionLabel   string

	// Authentication
	InvalidCredentials string
	LoginFailed        string
	SessionExpired     string
	NotAuthenticated   string

	// Content
	LoadContentFailed string
	SaveContentFailed string
	ContentNotFound   string
	NoEditPermission  string
	NoSectorAccess    string

	// Content deletion
	DeleteFailed       string
	DeleteUnauthorized string
	DeleteForbidden    string
	DeleteNotFound     string
	DeleteServerError  string

	// Validation
	InvalidInput  string
	TitleRequired string
	TextRequired  string
	FileRequired  string
	InvalidUpload string
	AdditionEmpty string

	// Users
	LoadUsersFailed   string
	SaveUserFailed    string
	DeleteUserFailed  string
	UserNotFound      string
	NoUserPermission  string
	RoleNotAssignable string
	EmailTaken        string

	PageNotFound  string
	InternalError string
}

var catalogs = map[Language]*Messages{
	Portuguese: {
		ContentLabel:      "Conteúdo",
		IntroductionLabel: "Introdução",
		ProcedureLabel:    "Procedimento",
		StepLabel:         "Etapa",
		PartLabel:         "Parte",
		ConclusionLabel:   "Conclusão",

		InvalidCredentials: "E-mail ou senha inválidos",
		LoginFailed:        "Não foi possível entrar. Tente novamente.",
		SessionExpired:     "Sua sessão expirou. Faça login novamente.",
		NotAuthenticated:   "Você precisa estar autenticado",

		LoadContentFailed: "Não foi possível carregar o conteúdo",
		SaveContentFailed: "Não foi possível salvar o conteúdo",
		ContentNotFound:   "Conteúdo não encontrado",
		NoEditPermission:  "Você não tem permissão para editar este conteúdo",
		NoSectorAccess:    "Você não tem acesso a este setor",

		DeleteFailed:       "Não foi possível excluir o conteúdo",
		DeleteUnauthorized: "Sessão expirada. Faça login novamente para excluir.",
		DeleteForbidden:    "Você não tem permissão para excluir este conteúdo",
		DeleteNotFound:     "Este conteúdo já foi excluído",
		DeleteServerError:  "Erro no servidor ao excluir o conteúdo",

		InvalidInput:  "Dados inválidos",
		TitleRequired: "O título é obrigatório",
		TextRequired:  "O conteúdo de texto é obrigatório para este tipo",
		FileRequired:  "Selecione um arquivo para fotos e vídeos",
		InvalidUpload: "Não foi possível ler o arquivo enviado",
		AdditionEmpty: "Informe o conteúdo da adição",

		LoadUsersFailed:   "Não foi possível carregar os usuários",
		SaveUserFailed:    "Não foi possível salvar o usuário",
		DeleteUserFailed:  "Não foi possível excluir o usuário",
		UserNotFound:      "Usuário não encontrado",
		NoUserPermission:  "Você só pode gerenciar usuários do seu setor",
		RoleNotAssignable: "Você não pode atribuir este perfil",
		EmailTaken:        "Já existe um usuário com este e-mail",

		PageNotFound:  "Página não encontrada",
		InternalError: "Erro interno do servidor",
	},
	English: {
		ContentLabel:      "Content",
		IntroductionLabel: "Introduction",
		ProcedureLabel:    "Procedure",
		StepLabel:         "Step",
		PartLabel:         "Part",
		ConclusionLabel:   "Conclusion",

		InvalidCredentials: "Invalid e-mail or password",
		LoginFailed:        "Could not sign in. Please try again.",
		SessionExpired:     "Your session has expired. Please sign in again.",
		NotAuthenticated:   "You must be signed in",

		LoadContentFailed: "Could not load content",
		SaveContentFailed: "Could not save content",
		ContentNotFound:   "Content not found",
		NoEditPermission:  "You are not allowed to edit this content",
		NoSectorAccess:    "You do not have access to this sector",

		DeleteFailed:       "Could not delete content",
		DeleteUnauthorized: "Session expired. Sign in again to delete.",
		DeleteForbidden:    "You are not allowed to delete this content",
		DeleteNotFound:     "This content has already been deleted",
		DeleteServerError:  "Server error while deleting content",

		InvalidInput:  "Invalid input",
		TitleRequired: "Title is required",
		TextRequired:  "Text content is required for this type",
		FileRequired:  "Select a file for photos and videos",
		InvalidUpload: "Could not read the uploaded file",
		AdditionEmpty: "Addition content is required",

		LoadUsersFailed:   "Could not load users",
		SaveUserFailed:    "Could not save user",
		DeleteUserFailed:  "Could not delete user",
		UserNotFound:      "User not found",
		NoUserPermission:  "You can only manage users of your own sector",
		RoleNotAssignable: "You cannot assign this role",
		EmailTaken:        "A user with this e-mail already exists",

		PageNotFound:  "Page not found",
		InternalError: "Internal server error",
	},
}

// ParseLanguage maps a language tag such as "pt-BR" or "en" to a supported
// Language, falling back to Portuguese.
func ParseLanguage(tag string) Language {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if strings.HasPrefix(tag, "en") {
		return English
	}
	return Portuguese
}

// Get returns the catalog for lang, Portuguese when unknown.
func Get(lang Language) *Messages {
	if m, ok := catalogs[lang]; ok {
		return m
	}
	return catalogs[Portuguese]
}
