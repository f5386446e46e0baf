package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type errorKind struct {
	target  error
	status  int
	code    string
	message string
}

// Matched in order; the first sentinel found in the chain wins.
var errorKinds = []errorKind{
	{common.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED", "Unauthorized"},
	{common.ErrInvalidArgument, http.StatusBadRequest, "INVALID_ARGUMENT", ""},
	{common.ErrAlreadyExists, http.StatusBadRequest, "ALREADY_EXISTS", "Already exist"},
	{common.ErrInvalidParent, http.StatusBadRequest, "INVALID_PARENT", "Parent not found"},
	{common.ErrParentNotFolder, http.StatusBadRequest, "PARENT_NOT_FOLDER", "Parent is not a folder"},
	{common.ErrNotFound, http.StatusNotFound, "NOT_FOUND", "Not found"},
	{common.ErrInvalidOperation, http.StatusBadRequest, "INVALID_OPERATION", "A folder doesn't have content"},
}

func classify(err error) (int, errorBody) {
	for _, k := range errorKinds {
		if !errors.Is(err, k.target) {
			continue
		}
		msg := k.message
		if msg == "" {
			msg = detail(err, k.target)
		}
		return k.status, errorBody{Error: msg, Code: k.code}
	}
	return http.StatusInternalServerError, errorBody{Error: "Internal Server Error", Code: "INTERNAL"}
}

// detail strips the sentinel prefix from a wrapped error and capitalizes the
// rest: "invalid argument: missing name" becomes "Missing name".
func detail(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error())
	msg = strings.TrimPrefix(msg, ": ")
	if msg == "" {
		msg = sentinel.Error()
	}
	r, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + msg[size:]
}

func (s *Server) abort(c *gin.Context, err error) {
	status, body := classify(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.AbortWithStatusJSON(status, body)
}
