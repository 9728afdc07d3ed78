// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package i18n

// Message keys for user-visible notices.
const (
	MsgLoadAuthors    = "authors.load_error"
	MsgLoadPlays      = "plays.load_error"
	MsgLoadLibrary    = "library.load_error"
	MsgLoadDetail     = "detail.load_error"
	MsgLoadHome       = "home.load_error"
	MsgNoResults      = "listing.no_results"
	MsgSaveFailed     = "admin.save_error"
	MsgDeleteFailed   = "admin.delete_error"
	MsgUploadFailed   = "admin.upload_error"
	MsgLoginFailed    = "admin.login_error"
	MsgLoginRequired  = "admin.login_required"
	MsgAllGenres      = "plays.all_genres"
	MsgAllThemes      = "plays.all_themes"
	MsgAllAuthors     = "library.all_authors"
	MsgAllPlays       = "library.all_plays"
	MsgFiltersApplied = "filters.applied"
	MsgFiltersCleared = "filters.cleared"
	MsgLoggedIn       = "admin.logged_in"
	MsgLoggedOut      = "admin.logged_out"
	MsgSaved          = "admin.saved"
	MsgDeleted        = "admin.deleted"
	MsgUploaded       = "admin.uploaded"
	MsgUnknownCommand = "shell.unknown_command"
)

var messages = map[Lang]map[string]string{
	Bulgarian: {
		MsgLoadAuthors:    "Неуспешно зареждане на автори.",
		MsgLoadPlays:      "Неуспешно зареждане на пиеси.",
		MsgLoadLibrary:    "Неуспешно зареждане на библиотеката.",
		MsgLoadDetail:     "Неуспешно зареждане на данните.",
		MsgLoadHome:       "Грешка при зареждането на данните.",
		MsgNoResults:      "Няма резултат по зададените критерии.",
		MsgSaveFailed:     "Записът е неуспешен.",
		MsgDeleteFailed:   "Изтриването е неуспешно.",
		MsgUploadFailed:   "Качването е неуспешно.",
		MsgLoginFailed:    "Грешна парола.",
		MsgLoginRequired:  "Необходим е администраторски вход.",
		MsgAllGenres:      "Всички жанрове",
		MsgAllThemes:      "Всички теми",
		MsgAllAuthors:     "Всички автори",
		MsgAllPlays:       "Всички пиеси",
		MsgFiltersApplied: "Филтрите са приложени.",
		MsgFiltersCleared: "Филтрите са изчистени.",
		MsgLoggedIn:       "Влязохте като администратор.",
		MsgLoggedOut:      "Излязохте.",
		MsgSaved:          "Записано.",
		MsgDeleted:        "Изтрито.",
		MsgUploaded:       "Файлът е качен.",
		MsgUnknownCommand: "Непозната команда. Напишете help.",
	},
	English: {
		MsgLoadAuthors:    "Failed to load authors.",
		MsgLoadPlays:      "Failed to load plays.",
		MsgLoadLibrary:    "Failed to load the library.",
		MsgLoadDetail:     "Failed to load data.",
		MsgLoadHome:       "Error while loading data.",
		MsgNoResults:      "No results match the selected criteria.",
		MsgSaveFailed:     "Saving failed.",
		MsgDeleteFailed:   "Deleting failed.",
		MsgUploadFailed:   "Upload failed.",
		MsgLoginFailed:    "Wrong password.",
		MsgLoginRequired:  "Admin login required.",
		MsgAllGenres:      "All genres",
		MsgAllThemes:      "All themes",
		MsgAllAuthors:     "All authors",
		MsgAllPlays:       "All plays",
		MsgFiltersApplied: "Filters applied.",
		MsgFiltersCleared: "Filters cleared.",
		MsgLoggedIn:       "Logged in as admin.",
		MsgLoggedOut:      "Logged out.",
		MsgSaved:          "Saved.",
		MsgDeleted:        "Deleted.",
		MsgUploaded:       "File uploaded.",
		MsgUnknownCommand: "Unknown command. Type help.",
	},
}

// T returns the notice for key in lang, falling back to Bulgarian and then to
// the key itself.
func T(lang Lang, key string) string {
	if msg, ok := messages[lang][key]; ok {
		return msg
	}
	if msg, ok := messages[Default][key]; ok {
		return msg
	}
	return key
}
