package session

import "github.com/KirkDiggler/dicetray/internal/models"

type SaveSessionInput struct {
	Session *models.Session
}

type GetSessionInput struct {
	Key string
}

type DeleteSessionInput struct {
	Key string
}
