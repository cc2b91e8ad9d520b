package usecase

import (
	"go.uber.org/zap"

	"meditrack/internal/data/storage"
	"meditrack/pkg/utils"
)

type Service struct {
	Auth    AuthService
	Profile ProfileService
}

func NewService(store storage.Storage, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(store, config, log),
		Profile: NewProfileService(store, log),
	}
}
