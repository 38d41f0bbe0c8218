package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"amabackend/internal/domain"
	"amabackend/internal/domain/models"
	"amabackend/internal/repositories"
	"amabackend/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

const msgBadCredentials = "Invalid username or password"

type LoginRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// CardInfo is a tokenized payment card attached to a registration.
type CardInfo struct {
	Token string `json:"token" binding:"required"`
	Last4 int    `json:"last4" binding:"required"`
}

func (c CardInfo) valid() bool {
	return strings.HasPrefix(c.Token, "tok_") && c.Last4 >= 1000 && c.Last4 <= 9999
}

type RegisterRequest struct {
	FirstName string         `json:"first_name" binding:"required,max=100"`
	LastName  string         `json:"last_name" binding:"required,max=100"`
	Email     string         `json:"email" binding:"required,email"`
	Phone     string         `json:"phone" binding:"required,e164"`
	UserName  string         `json:"user_name" binding:"required,max=100"`
	State     string         `json:"state" binding:"required,len=2"`
	Country   domain.Country `json:"country" binding:"required,oneof=CA US"`
	Password  string         `json:"password" binding:"required,min=8,max=64"`
	Card      *CardInfo      `json:"card"`
}

type ForgetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token          string `json:"token" binding:"required"`
	NewPassword    string `json:"new_password" binding:"required,min=8,max=64"`
	ReTypePassword string `json:"re_type_password" binding:"required,eqfield=NewPassword"`
}

// AuthService handles login, registration and password recovery.
type AuthService struct {
	Users      repositories.UserRepository
	Tokens     Tokens
	Mailer     Mailer
	SiteURL    string
	BcryptCost int
	RequestID  string
}

func (s AuthService) cost() int {
	if s.BcryptCost == 0 {
		return bcrypt.DefaultCost
	}
	return s.BcryptCost
}

func (s AuthService) mailer() Mailer {
	if s.Mailer != nil {
		return s.Mailer
	}
	return LogMailer{RequestID: s.RequestID}
}

// Login verifies credentials and returns a signed session token.
func (s AuthService) Login(ctx context.Context, req LoginRequest) (string, error) {
	user, err := s.Users.FindByUserName(ctx, req.UserName)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", domain.UnauthorizedError{Msg: msgBadCredentials}
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", domain.UnauthorizedError{Msg: msgBadCredentials}
	}

	token, err := s.Tokens.SessionToken(UserClaim{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Photo:     user.Photo,
	})
	if err != nil {
		return "", domain.InternalError{Msg: "failed to sign token", Err: err}
	}
	utils.LogEvent(s.RequestID, "auth", "login", "user logged in", "user_name", user.UserName)
	return token, nil
}

// Register creates an Associate account. The card, when present, is checked
// for shape only.
func (s AuthService) Register(ctx context.Context, req RegisterRequest) (int64, error) {
	if req.Card != nil && !req.Card.valid() {
		return 0, domain.ValidationError{Field: "card", Msg: "Invalid Payment Information"}
	}

	exists, err := s.Users.Exists(ctx, req.UserName, req.Email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, domain.ConflictError{Resource: "User", Msg: "user name or email already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost())
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to hash password", Err: err}
	}

	id, err := s.Users.Create(ctx, models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		UserName:     req.UserName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		UserType:     domain.UserTypeAssociate,
		Status:       domain.UserStatusActive,
		State:        strings.ToUpper(req.State),
		Country:      req.Country,
	})
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "auth", "register", "user registered", "user_id", id)
	return id, nil
}

// ForgetPassword mails a 10 minute reset link to the owner of email.
func (s AuthService) ForgetPassword(ctx context.Context, req ForgetPasswordRequest) error {
	user, err := s.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.ConflictError{Msg: "User with this email does not exist."}
		}
		return err
	}

	token, err := s.Tokens.resetToken(user.UserName)
	if err != nil {
		return domain.InternalError{Msg: "failed to sign token", Err: err}
	}

	link := ResetLink(s.SiteURL, token)
	msg := Message{
		To:      user.Email,
		Name:    strings.TrimSpace(user.FirstName + " " + user.LastName),
		Subject: "Reset Password Link",
		HTML: fmt.Sprintf("<p>Hi %s %s,</p><p>Please <a href='%s'>click here</a> to reset your password.</p>",
			html.EscapeString(user.FirstName), html.EscapeString(user.LastName), html.EscapeString(link)),
	}
	if err := s.mailer().Send(ctx, msg); err != nil {
		return domain.InternalError{Msg: "failed to send reset email", Err: err}
	}
	utils.LogEvent(s.RequestID, "auth", "forget_password", "reset link sent", "user_name", user.UserName)
	return nil
}

// ResetPassword stores a new password for the user named in the reset token.
func (s AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if req.NewPassword != req.ReTypePassword {
		return domain.ValidationError{Field: "re_type_password", Msg: "Passwords do not match"}
	}
	userName, err := s.Tokens.parseReset(req.Token)
	if err != nil {
		return domain.ValidationError{Msg: "Invalid Token", Err: err}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost())
	if err != nil {
		return domain.InternalError{Msg: "failed to hash password", Err: err}
	}
	n, err := s.Users.UpdatePassword(ctx, userName, string(hash))
	if err != nil {
		return err
	}
	if n != 1 {
		return domain.ValidationError{Msg: "Invalid Token", Err: errors.New("no user updated")}
	}
	utils.LogEvent(s.RequestID, "auth", "reset_password", "password updated", "user_name", userName)
	return nil
}

// ResetLink builds the client-facing reset URL.
func ResetLink(siteURL, token string) string {
	if siteURL == "" {
		siteURL = "http://domain.com/"
	}
	if !strings.HasSuffix(siteURL, "/") {
		siteURL += "/"
	}
	return siteURL + "reset-password/" + token
}
