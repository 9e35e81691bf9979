package handler

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/delishare/recipe_server/internal/model"
)

var registerOnce sync.Once

// RegisterValidators 注册自定义校验标签，重复调用无副作用
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
			return model.Difficulty(fl.Field().String()).Valid()
		})
	})
}
