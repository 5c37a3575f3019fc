package dto

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/saralbooks/bank_recon_app/internal/core/domain"
)

// RegisterCustomValidations attaches the request-level validation rules to
// gin's binding validator. Called once from main before routes are served.
func RegisterCustomValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// txnkind: the ingestion kind field must be CREDIT or DEBIT,
	// case-insensitively.
	_ = v.RegisterValidation("txnkind", func(fl validator.FieldLevel) bool {
		kind := domain.TransactionKind(strings.ToUpper(fl.Field().String()))
		return kind == domain.Credit || kind == domain.Debit
	})
}
