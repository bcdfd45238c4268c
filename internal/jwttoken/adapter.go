package jwttoken

import (
	"fundguard/pkg/platform/middleware/auth"
)

// Adapter bridges the JWT service to the auth middleware's TokenValidator
// interface so the middleware stays decoupled from the JWT library.
type Adapter struct {
	service *Service
}

func NewAdapter(service *Service) *Adapter {
	return &Adapter{service: service}
}

func (a *Adapter) ValidateToken(tokenString string) (*auth.Claims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &auth.Claims{
		UserID: claims.UserID,
		Role:   claims.Role,
	}, nil
}
