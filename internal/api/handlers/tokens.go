// Package handlers provides HTTP request handlers for the Tokenboard
// development backend.
//
// This file implements the token read endpoints backed by the seeded store:
// detail lookup, search, and holder position. Responses are the bare wire
// types the client unmarshals; only failures carry the {error, code}
// envelope.
//
// Handlers depend on narrow local interfaces rather than the store type, so
// handler tests run against small fakes and the package stays decoupled
// from the store implementation.
//
// ENDPOINTS:
//   - GET /api/tokens/:id: Returns one token with submissions and tallies
//   - GET /api/tokens/search?q=: Returns tokens matching a query
//   - GET /api/tokens/:id/holder/:wallet: Returns a wallet's position

package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tokenboard/tokenboard/internal/tokens"
	"github.com/tokenboard/tokenboard/internal/validate"
)

// TokenReader is the read surface token endpoints need from the store
type TokenReader interface {
	Token(id string) (*tokens.TokenInfo, bool)
	Search(query string) []tokens.TokenInfo
	Holder(tokenID, wallet string) (*tokens.HolderInfo, bool)
}

// HandleTokenByID returns one token's detail with live vote tallies folded
// into its submissions
func HandleTokenByID(store TokenReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenID := c.Param("id")
		if err := validate.TokenIDFormat(tokenID); err != nil {
			respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
			return
		}

		info, ok := store.Token(tokenID)
		if !ok {
			respondError(c, http.StatusNotFound, CodeNotFound,
				fmt.Sprintf("token not found: %s", tokenID))
			return
		}

		c.JSON(http.StatusOK, info)
	}
}

// HandleTokenSearch returns tokens whose ID, name, or symbol matches the q
// query parameter
func HandleTokenSearch(store TokenReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("q"))
		if query == "" {
			respondError(c, http.StatusBadRequest, CodeInvalidRequest,
				"query parameter q is required")
			return
		}

		c.JSON(http.StatusOK, tokens.SearchResponse{
			Query:   query,
			Results: store.Search(query),
		})
	}
}

// HandleHolderStatus returns a wallet's position in a token. Non-holders get
// a zero position, not an error; only an unknown token is a 404.
func HandleHolderStatus(store TokenReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenID := c.Param("id")
		walletAddr := c.Param("wallet")

		if err := validate.TokenIDFormat(tokenID); err != nil {
			respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
			return
		}
		if err := validate.WalletAddressFormat(walletAddr); err != nil {
			respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
			return
		}

		info, ok := store.Holder(tokenID, walletAddr)
		if !ok {
			respondError(c, http.StatusNotFound, CodeNotFound,
				fmt.Sprintf("token not found: %s", tokenID))
			return
		}

		c.JSON(http.StatusOK, info)
	}
}
