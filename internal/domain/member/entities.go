package member

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("member not found")

type Member struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"-"`
	MemberID   string    `gorm:"size:32;uniqueIndex:ux_members_member_id" json:"member_id"`
	FullName   string    `gorm:"size:120" json:"full_name"`
	Phone      string    `gorm:"size:32" json:"phone"`
	DateJoined time.Time `gorm:"type:date" json:"date_joined"`
	Status     string    `gorm:"size:16;default:'Active'" json:"status"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Member) TableName() string { return "members" }
