package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
)

// nodeView is the client representation of a file node. It never carries
// the storage location.
type nodeView struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	IsPublic bool      `json:"isPublic"`
	ParentID parentRef `json:"parentId"`
}

func toView(n *models.FileNode) nodeView {
	return nodeView{
		ID:       n.ID,
		UserID:   n.UserID,
		Name:     n.Name,
		Type:     string(n.Type),
		IsPublic: n.IsPublic,
		ParentID: parentRef(n.ParentID),
	}
}

func toViews(nodes []*models.FileNode) []nodeView {
	out := make([]nodeView, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, toView(n))
	}
	return out
}

// parentRef is a parent id on the wire. The root is the number 0; both 0
// and "0" are accepted on input.
type parentRef string

func (p parentRef) MarshalJSON() ([]byte, error) {
	if p == "" || string(p) == common.RootParentID {
		return []byte("0"), nil
	}
	return json.Marshal(string(p))
}

func (p *parentRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*p = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = parentRef(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("parentId must be a string or 0: %w", err)
		}
		*p = parentRef(n.String())
		return nil
	}
}

type userView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type uploadRequest struct {
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	ParentID parentRef `json:"parentId"`
	IsPublic bool      `json:"isPublic"`
	Data     string    `json:"data"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
