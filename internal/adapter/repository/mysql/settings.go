package mysql

import (
	"context"

	settingsDomain "tablebanking/internal/domain/settings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository struct{ db *gorm.DB }

func NewSettingsRepository(db *gorm.DB) *SettingsRepository { return &SettingsRepository{db: db} }

func (r *SettingsRepository) All(ctx context.Context) (map[string]string, error) {
	var rows []settingsDomain.Setting
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, s := range rows {
		out[s.KeyName] = s.KeyValue
	}
	return out, nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	rows := make([]settingsDomain.Setting, 0, len(values))
	for k, v := range values {
		rows = append(rows, settingsDomain.Setting{KeyName: k, KeyValue: v})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"key_value"}),
	}).Create(&rows).Error
}
