package assessment

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/orientation/core"
)

var (
	testTypeTag  = "testtype"
	testTypeText = "type de test inconnu"
)

// InitValidators registers the assessment validators & their translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(testTypeTag, testTypeValidation)
	core.RegisterCustomTranslation(validate, translator, testTypeTag, testTypeText)
}

func testTypeValidation(fl validator.FieldLevel) bool {
	_, err := ParseTestType(fl.Field().String())
	return err == nil
}
