package mysql

import (
	"context"
	"errors"

	memberDomain "tablebanking/internal/domain/member"

	"gorm.io/gorm"
)

type MemberRepository struct{ db *gorm.DB }

func NewMemberRepository(db *gorm.DB) *MemberRepository { return &MemberRepository{db: db} }

func (r *MemberRepository) GetByMemberID(ctx context.Context, memberID string) (*memberDomain.Member, error) {
	var out memberDomain.Member
	res := r.db.WithContext(ctx).Where("member_id = ?", memberID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, memberDomain.ErrNotFound
	}
	return &out, res.Error
}
