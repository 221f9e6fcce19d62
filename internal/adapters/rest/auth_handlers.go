package rest

import (
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
	"marketplace-service/internal/core/port/usecases_port"
	"net/http"
)

// AuthHandlers обслуживает /api/auth
type AuthHandlers struct {
	registerUC   usecases_port.RegisterUserUseCasePort
	loginUC      usecases_port.LoginUserUseCasePort
	getProfileUC usecases_port.GetProfileUseCasePort
}

func NewAuthHandlers(registerUC usecases_port.RegisterUserUseCasePort,
	loginUC usecases_port.LoginUserUseCasePort,
	getProfileUC usecases_port.GetProfileUseCasePort) *AuthHandlers {
	return &AuthHandlers{
		registerUC:   registerUC,
		loginUC:      loginUC,
		getProfileUC: getProfileUC,
	}
}

// Register обрабатывает POST /api/auth/register
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Register"})

	var req RegisterRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid register request", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Пароль в логи не пишем
	handlerLogger := logger.WithFields(port.Fields{"email": req.Email, "user_type": req.UserType})
	handlerLogger.Info("Processing register request", nil)

	user, token, err := h.registerUC.Execute(r.Context(), domain.Registration{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		UserType: req.UserType,
	})
	if err != nil {
		writeUseCaseError(w, handlerLogger, err, "Failed to create user")
		return
	}

	handlerLogger.Info("User registered successfully", port.Fields{"user_id": user.ID})
	RespondWithJSON(w, http.StatusCreated, AuthResponse{
		Message: "User created successfully",
		Token:   token,
		User:    toUserResponse(user),
	})
}

// Login обрабатывает POST /api/auth/login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Login"})

	var req LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid login request", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"email": req.Email})
	handlerLogger.Info("Processing login request", nil)

	user, token, err := h.loginUC.Execute(r.Context(), req.Email, req.Password)
	if err != nil {
		writeUseCaseError(w, handlerLogger, err, "Server error")
		return
	}

	handlerLogger.Info("User logged in successfully", port.Fields{"user_id": user.ID})
	RespondWithJSON(w, http.StatusOK, AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    toUserResponse(user),
	})
}

// Me обрабатывает GET /api/auth/me
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Me"})

	claims, ok := claimsFromRequest(r)
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	user, err := h.getProfileUC.Execute(r.Context(), claims.UserID)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to fetch user")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]UserResponse{"user": toUserResponse(user)})
}
