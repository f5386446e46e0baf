package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/server/services"
	"github.com/gin-gonic/gin"
)

func (s *Server) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.users.Status(c.Request.Context()))
}

func (s *Server) getStats(c *gin.Context) {
	st, err := s.users.Stats(c.Request.Context())
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) postUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abort(c, fmt.Errorf("%w: invalid body", common.ErrInvalidArgument))
		return
	}

	u, err := s.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, userView{ID: u.ID, Email: u.Email})
}

func (s *Server) getConnect(c *gin.Context) {
	token, err := s.auth.Login(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) getDisconnect(c *gin.Context) {
	if err := s.auth.Logout(c.Request.Context(), c.GetHeader(common.TokenHeaderName)); err != nil {
		s.abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) getMe(c *gin.Context) {
	u, err := s.users.Me(c.Request.Context(), callerID(c))
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, userView{ID: u.ID, Email: u.Email})
}

func (s *Server) postUpload(c *gin.Context) {
	if s.maxBody > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBody)
	}

	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.abort(c, fmt.Errorf("%w: data too large", common.ErrInvalidArgument))
			return
		}
		s.abort(c, fmt.Errorf("%w: invalid body", common.ErrInvalidArgument))
		return
	}

	node, err := s.files.Upload(c.Request.Context(), callerID(c), services.UploadInput{
		Name:     req.Name,
		Type:     req.Type,
		ParentID: string(req.ParentID),
		IsPublic: req.IsPublic,
		Data:     req.Data,
	})
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, toView(node))
}

func (s *Server) getShow(c *gin.Context) {
	node, err := s.files.GetNode(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, toView(node))
}

func (s *Server) getIndex(c *gin.Context) {
	parentID := c.DefaultQuery("parentId", common.RootParentID)
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		page = 0
	}

	nodes, err := s.files.ListNodes(c.Request.Context(), callerID(c), parentID, page)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, toViews(nodes))
}

func (s *Server) putPublish(c *gin.Context) {
	s.setVisibility(c, true)
}

func (s *Server) putUnpublish(c *gin.Context) {
	s.setVisibility(c, false)
}

func (s *Server) setVisibility(c *gin.Context, isPublic bool) {
	node, err := s.files.SetVisibility(c.Request.Context(), callerID(c), c.Param("id"), isPublic)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, toView(node))
}

func (s *Server) getData(c *gin.Context) {
	size, err := services.ParseSize(c.Query("size"))
	if err != nil {
		s.abort(c, err)
		return
	}

	content, err := s.files.ReadBytes(c.Request.Context(), callerID(c), c.Param("id"), size)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.Data(http.StatusOK, content.ContentType, content.Data)
}
