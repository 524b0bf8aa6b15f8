package server

import (
	"encoding/json"

	"list-blitz/internal/db"

	"gorm.io/datatypes"
)

// persistSession writes the history row for a new session and returns its
// database id. Without a database it returns 0.
func (s *Server) persistSession(live *liveSession) (uint, error) {
	if s.db == nil {
		return 0, nil
	}
	settings := live.Session.Settings()
	record := db.Session{
		PublicID:    live.ID,
		JoinCode:    live.JoinCode,
		Mode:        string(settings.Mode),
		PlayerCount: settings.PlayerCount,
		PackID:      settings.PackID,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return 0, err
	}
	return record.ID, s.persistEvent(record.ID, eventSessionCreated, nil, EventPayload{
		SessionID:   live.ID,
		JoinCode:    live.JoinCode,
		Mode:        string(settings.Mode),
		PlayerCount: settings.PlayerCount,
		PackID:      settings.PackID,
	})
}

func (s *Server) persistEvent(sessionDBID uint, eventType string, playerID *int, payload EventPayload) error {
	if s.db == nil || sessionDBID == 0 {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	record := db.Event{
		SessionID: sessionDBID,
		PlayerID:  playerID,
		Type:      eventType,
		Payload:   datatypes.JSON(data),
	}
	return s.db.Create(&record).Error
}

func (s *Server) persistSessionEnded(sessionDBID uint, sessionID, reason string) error {
	if s.db == nil || sessionDBID == 0 {
		return nil
	}
	now := timeNowUTC()
	if err := s.db.Model(&db.Session{}).Where("id = ?", sessionDBID).Update("ended_at", &now).Error; err != nil {
		return err
	}
	return s.persistEvent(sessionDBID, eventSessionEnded, nil, EventPayload{
		SessionID: sessionID,
		Reason:    reason,
	})
}

func (s *Server) listHistory(page, perPage int) ([]db.Session, int64, error) {
	if s.db == nil {
		return nil, 0, nil
	}
	var total int64
	if err := s.db.Model(&db.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var sessions []db.Session
	err := s.db.Order("created_at desc").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&sessions).Error
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}
