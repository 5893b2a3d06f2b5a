package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"assistant/pkg/jwtauth"
)

type AuthHandlers struct {
	log            *slog.Logger
	jwtm           *jwtauth.Manager
	passphraseHash []byte
}

func NewAuthHandlers(log *slog.Logger, jwtm *jwtauth.Manager, passphraseHash string) *AuthHandlers {
	return &AuthHandlers{log: log, jwtm: jwtm, passphraseHash: []byte(passphraseHash)}
}

type loginReq struct {
	Passphrase string `json:"passphrase"`
}

type loginResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (h *AuthHandlers) Login(c *gin.Context) {
	noCache(c)

	l := ReqLog(c, h.log)

	var in loginReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if in.Passphrase == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passphrase is required"})
		return
	}

	if bcrypt.CompareHashAndPassword(h.passphraseHash, []byte(in.Passphrase)) != nil {
		l.Warn("auth.login: wrong passphrase", slog.String("client_ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid passphrase"})
		return
	}

	token, _, err := h.jwtm.Generate()
	if err != nil {
		l.Error("auth.login: token generate failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, loginResp{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   h.jwtm.ExpiresIn(),
	})
}
