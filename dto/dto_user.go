package dto

import "reviewio/internal/models"

type SignupReq struct {
	Name     string `json:"name"     validate:"required,max=50"`
	Username string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthData struct {
	User *models.User `json:"user"`
}

type AuthResponse struct {
	Status string   `json:"status"`
	Token  string   `json:"token"`
	Data   AuthData `json:"data"`
}

func Auth(token string, u *models.User) AuthResponse {
	return AuthResponse{Status: StatusSuccess, Token: token, Data: AuthData{User: u}}
}

type UpdateMeReq struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=50"`
	Bio  *string `json:"bio"  validate:"omitempty,max=280"`
}

type BanReq struct {
	Days int `json:"days" validate:"required,min=1,max=3650"`
}
