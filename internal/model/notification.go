package model

import "time"

// NotificationType is a free-form tag describing a notification.
type NotificationType string

const (
	NotificationSuccess  NotificationType = "success"
	NotificationError    NotificationType = "error"
	NotificationInfo     NotificationType = "info"
	NotificationReaction NotificationType = "reaction"
	NotificationComment  NotificationType = "comment"
	NotificationShare    NotificationType = "share"
	NotificationMention  NotificationType = "mention"
)

// Notification is an append-only message addressed to a user.
type Notification struct {
	ID             uint             `json:"id" gorm:"primaryKey"`
	UserID         uint             `json:"userId" gorm:"not null;index:idx_notifications_user_read,priority:1"`
	Message        string           `json:"message" gorm:"type:text;not null"`
	Type           NotificationType `json:"type" gorm:"type:varchar(20);not null;default:'info'"`
	RelatedContent *string          `json:"relatedContent,omitempty" gorm:"type:text"`
	ActionUserID   *uint            `json:"actionUserId,omitempty"`
	Read           bool             `json:"read" gorm:"column:is_read;default:false;index:idx_notifications_user_read,priority:2"`
	CreatedAt      time.Time        `json:"createdAt" gorm:"index"`
}
