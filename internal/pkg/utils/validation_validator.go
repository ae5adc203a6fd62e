package utils

import (
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/scheduling"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("actor_role", validateActorRole)
	validate.RegisterValidation("schedule_label", validateScheduleLabel)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateActorRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case constvars.ActorRoleDoctor, constvars.ActorRoleNurse, constvars.ActorRoleAdmin, constvars.ActorRoleStaff:
		return true
	}
	return false
}

// validateScheduleLabel accepts blank labels so optional schedule fields pass.
func validateScheduleLabel(fl validator.FieldLevel) bool {
	_, err := scheduling.ResolveLabel(fl.Field().String(), time.Now())
	return err == nil
}
