package rest

import (
	"net/http"
	"strings"

	"medicore-be/internal/auth"
	"medicore-be/internal/user"

	"github.com/labstack/echo/v4"
)

type authHandler struct {
	users         user.Service
	secureCookies bool
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"max=50"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=patient doctor pharmacist"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token       string `json:"resetToken" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type updateProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Phone    *string `json:"phone" validate:"omitempty,max=50"`
	Password *string `json:"password"`
}

func (h *authHandler) register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.users.Register(c.Request().Context(), user.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     user.Role(req.Role),
	})
	if err != nil {
		return err
	}
	auth.SetSessionCookie(c.Response(), res.Token, h.secureCookies)
	return c.JSON(http.StatusCreated, res)
}

func (h *authHandler) login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	auth.SetSessionCookie(c.Response(), res.Token, h.secureCookies)
	return c.JSON(http.StatusOK, res)
}

// logout only drops the session cookie; issued tokens stay valid until expiry.
func (h *authHandler) logout(c echo.Context) error {
	auth.ClearSessionCookie(c.Response(), h.secureCookies)
	return c.JSON(http.StatusOK, ok("Logged out"))
}

// forgotPassword hands the reset token straight back; there is no mail delivery.
func (h *authHandler) forgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.users.ForgotPassword(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":    true,
		"message":    "Reset token generated",
		"demo_token": token,
	})
}

func (h *authHandler) resetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.users.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Password reset successful"))
}

func (h *authHandler) me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	u, err := h.users.Me(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (h *authHandler) updateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	// A blank password field means "keep the current one".
	if req.Password != nil && strings.TrimSpace(*req.Password) == "" {
		req.Password = nil
	}

	u, err := h.users.UpdateProfile(c.Request().Context(), user.UpdateProfileParams{
		UserID:   userID,
		Name:     req.Name,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Profile updated!",
		"user":    u,
	})
}
