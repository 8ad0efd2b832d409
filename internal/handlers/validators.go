package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/oakhost/oakhost_backend/internal/core/domain"
)

// registerCustomValidators adds domain-specific binding rules on top of the
// defaults gin ships with. "domainname" accepts exactly the names the quote
// engine can split into SLD and TLD, so a request that binds is a request the
// services can price.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("domainname", func(fl validator.FieldLevel) bool {
		_, _, err := domain.SplitDomainName(fl.Field().String())
		return err == nil
	})
}
