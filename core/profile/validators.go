package profile

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/orientation/core"
)

// InitValidators registers the profile validators & their translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	core.RegisterOneOf(validate, translator, "profilerole", "rôle invalide", AllRoles)
	core.RegisterOneOf(validate, translator, "profilestatus", "statut invalide", AllStatuses)
}
