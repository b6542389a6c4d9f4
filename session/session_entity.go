package session

import (
	"context"
	"time"

	"github.com/fundwit/go-commons/types"
)

type Session struct {
	Token    string   `json:"token"`
	Identity Identity `json:"identity"`

	SigningTime time.Time       `json:"-"`
	Context     context.Context `json:"-"`
}

// Identity is the signed-in employee: the acting user of every request.
type Identity struct {
	ID   types.ID `json:"id"`
	Name string   `json:"name"`
	Role string   `json:"role"`
}

func (s *Session) Clone() Session {
	c := *s
	return c
}
